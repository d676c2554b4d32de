package item

import (
	"errors"
	"strconv"
	"strings"

	"github.com/felixgeelhaar/richfield/internal/editor/sdk"
	"github.com/felixgeelhaar/richfield/internal/plugin"
	"github.com/felixgeelhaar/richfield/internal/toolbar/deps"
)

var (
	ErrInvalidTableSize = errors.New("rows and columns must be positive numbers")
	ErrEmptyImageSource = errors.New("image source is required")
	ErrEmptyEquation    = errors.New("equation is required")
	ErrUnknownLayout    = errors.New("unknown column layout")
)

func insertButton(p Props, key, label, icon string, cmd sdk.Command, payload any) *Control {
	d := p.deps()
	return &Control{
		Key:      key,
		Kind:     KindOption,
		Label:    p.label(label),
		Icon:     icon,
		Title:    p.title(label),
		Disabled: !d.IsEditable(),
		action: func() error {
			return d.Dispatch(cmd, payload)
		},
	}
}

// HorizontalRule inserts a horizontal rule below the selection.
func HorizontalRule(p Props) *Control {
	return insertButton(p, "horizontalRule", "Horizontal Rule", "icon horizontal-rule", sdk.CommandInsertHorizontalRule, nil)
}

// PageBreak inserts a page break below the selection.
func PageBreak(p Props) *Control {
	return insertButton(p, "pageBreak", "Page Break", "icon page-break", sdk.CommandInsertPageBreak, nil)
}

// Collapsible inserts a collapsible container.
func Collapsible(p Props) *Control {
	return insertButton(p, "collapsible", "Collapsible container", "icon caret-right", sdk.CommandInsertCollapsible, nil)
}

// dialogButton renders a control opening a modal whose body is built by
// open. The dialog acts on the surface active when it is confirmed.
func dialogButton(p Props, key, label, title, icon string, open func(d *deps.RenderDependencies, onClose func()) any) *Control {
	d := p.deps()
	return &Control{
		Key:      key,
		Kind:     KindOption,
		Label:    p.label(label),
		Icon:     icon,
		Title:    p.title(title),
		Disabled: !d.IsEditable(),
		action: func() error {
			return d.ShowModal(title, func(onClose func()) any {
				return open(d, onClose)
			})
		},
	}
}

// ImageDialog inserts a block or inline image.
type ImageDialog struct {
	deps    *deps.RenderDependencies
	onClose func()
	inline  bool

	Src     string
	AltText string
	// Caption adds an editable caption below a block image.
	Caption bool
}

// Inline reports whether the dialog inserts an inline image.
func (dlg *ImageDialog) Inline() bool { return dlg.inline }

// Confirm inserts the image and closes the dialog.
func (dlg *ImageDialog) Confirm() error {
	src := strings.TrimSpace(dlg.Src)
	if src == "" {
		return ErrEmptyImageSource
	}
	cmd := sdk.CommandInsertImage
	if dlg.inline {
		cmd = sdk.CommandInsertInlineImage
	}
	if err := dlg.deps.Dispatch(cmd, sdk.ImagePayload{Src: src, AltText: dlg.AltText, Caption: dlg.Caption && !dlg.inline}); err != nil {
		return err
	}
	dlg.onClose()
	return nil
}

// Image opens the image dialog.
func Image(p Props) *Control {
	return dialogButton(p, "image", "Image", "Insert Image", "icon image", func(d *deps.RenderDependencies, onClose func()) any {
		return &ImageDialog{deps: d, onClose: onClose, Caption: true}
	})
}

// InlineImage opens the image dialog for an inline image.
func InlineImage(p Props) *Control {
	return dialogButton(p, "inlineImage", "Inline Image", "Insert Inline Image", "icon image", func(d *deps.RenderDependencies, onClose func()) any {
		return &ImageDialog{deps: d, onClose: onClose, inline: true}
	})
}

// TableDialog asks for the size of a new table. Rows and Columns hold the
// raw input.
type TableDialog struct {
	deps    *deps.RenderDependencies
	onClose func()

	Rows    string
	Columns string
}

// Confirm inserts the table and closes the dialog.
func (dlg *TableDialog) Confirm() error {
	rows, err := strconv.Atoi(strings.TrimSpace(dlg.Rows))
	if err != nil || rows < 1 {
		return ErrInvalidTableSize
	}
	cols, err := strconv.Atoi(strings.TrimSpace(dlg.Columns))
	if err != nil || cols < 1 {
		return ErrInvalidTableSize
	}
	if err := dlg.deps.Dispatch(sdk.CommandInsertTable, sdk.TablePayload{Rows: rows, Columns: cols}); err != nil {
		return err
	}
	dlg.onClose()
	return nil
}

// Table opens the table dialog.
func Table(p Props) *Control {
	return dialogButton(p, "table", "Table", "Insert Table", "icon table", func(d *deps.RenderDependencies, onClose func()) any {
		return &TableDialog{
			deps:    d,
			onClose: onClose,
			Rows:    strconv.Itoa(plugin.DefaultTableRows),
			Columns: strconv.Itoa(plugin.DefaultTableColumns),
		}
	})
}

// ColumnLayout is one choice of the columns dialog.
type ColumnLayout struct {
	Label   string
	Columns int
}

// ColumnLayouts are the layouts the columns dialog offers.
var ColumnLayouts = []ColumnLayout{
	{Label: "2 columns (equal width)", Columns: 2},
	{Label: "3 columns (equal width)", Columns: 3},
	{Label: "4 columns (equal width)", Columns: 4},
}

// ColumnsDialog picks a column layout.
type ColumnsDialog struct {
	deps    *deps.RenderDependencies
	onClose func()

	// Layout is the label of the chosen entry of ColumnLayouts.
	Layout string
}

// Confirm inserts the layout and closes the dialog.
func (dlg *ColumnsDialog) Confirm() error {
	for _, l := range ColumnLayouts {
		if l.Label != dlg.Layout {
			continue
		}
		if err := dlg.deps.Dispatch(sdk.CommandInsertLayout, l.Columns); err != nil {
			return err
		}
		dlg.onClose()
		return nil
	}
	return ErrUnknownLayout
}

// Columns opens the column layout dialog.
func Columns(p Props) *Control {
	return dialogButton(p, "columns", "Columns Layout", "Insert Columns Layout", "icon columns", func(d *deps.RenderDependencies, onClose func()) any {
		return &ColumnsDialog{deps: d, onClose: onClose, Layout: ColumnLayouts[0].Label}
	})
}

// EquationDialog takes a KaTeX equation.
type EquationDialog struct {
	deps    *deps.RenderDependencies
	onClose func()

	Equation string
	Inline   bool
}

// Confirm inserts the equation and closes the dialog.
func (dlg *EquationDialog) Confirm() error {
	eq := strings.TrimSpace(dlg.Equation)
	if eq == "" {
		return ErrEmptyEquation
	}
	if err := dlg.deps.Dispatch(sdk.CommandInsertEquation, sdk.EquationPayload{Equation: eq, Inline: dlg.Inline}); err != nil {
		return err
	}
	dlg.onClose()
	return nil
}

// Equation opens the equation dialog.
func Equation(p Props) *Control {
	return dialogButton(p, "equation", "Equation", "Insert Equation", "icon equation", func(d *deps.RenderDependencies, onClose func()) any {
		return &EquationDialog{deps: d, onClose: onClose, Inline: true}
	})
}

// MediaImage opens the host's media library dialog.
func MediaImage(p Props) *Control {
	d := p.deps()
	return &Control{
		Key:      "mediaImage",
		Kind:     KindButton,
		Label:    p.label("Media Library Image"),
		Icon:     "format image",
		Title:    p.title("Insert image from the media library"),
		Disabled: !d.IsEditable(),
		action: func() error {
			return d.SetImageDialogOpen(true)
		},
	}
}

// InsertMedia inserts the assets picked in the media library dialog and
// closes it.
func InsertMedia(d *deps.RenderDependencies, images []sdk.ImagePayload) error {
	if len(images) > 0 {
		if err := d.Dispatch(sdk.CommandInsertMediaImage, images); err != nil {
			return err
		}
	}
	return d.SetImageDialogOpen(false)
}
