package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/felixgeelhaar/richfield/internal/app"
	"github.com/felixgeelhaar/richfield/internal/editor/document"
	"github.com/felixgeelhaar/richfield/internal/editor/engine"
	"github.com/felixgeelhaar/richfield/internal/toolbar/item"
	"github.com/felixgeelhaar/richfield/internal/wordcount"
	"github.com/rivo/uniseg"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// ErrUnknownControl is returned by --click for a key the toolbar does not
// show.
var ErrUnknownControl = errors.New("no such toolbar control")

func newToolbarCmd(opts *options) *cobra.Command {
	var (
		text   string
		plain  bool
		clicks []string
		caret  bool
	)

	cmd := &cobra.Command{
		Use:   "toolbar",
		Short: "Mount a field and print its toolbar",
		Long: `Mount a field holding --text, select the text and print the toolbar
rendered for that selection. Each line of --text is a paragraph.

--click activates a control by key before printing. A dropdown option is
chosen with key=option.

Examples:
  richfield toolbar --text "Hello world" --click nodeType.bold
  richfield toolbar --click meta.blockTypes=h2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := getContainer()
			if err != nil {
				return err
			}
			o, err := opts.overrides(c)
			if err != nil {
				return err
			}

			var texts, paragraphs []*document.Node
			for _, line := range strings.Split(text, "\n") {
				t := document.NewText(line)
				texts = append(texts, t)
				paragraphs = append(paragraphs, document.NewParagraph(t))
			}
			editor := engine.New(engine.WithDocument(document.NewRoot(paragraphs...)), engine.WithLogger(getLogger()))

			var counts wordcount.Counts
			f, err := c.Mount(cmd.Context(), app.MountOptions{
				Surface:   editor,
				Overrides: o,
				OnCount:   func(wc wordcount.Counts) { counts = wc },
			})
			if err != nil {
				return err
			}
			defer f.Close()

			first, last := texts[0], texts[len(texts)-1]
			if caret {
				editor.Select(document.Caret(editor.State(), first.Key(), 0))
			} else {
				editor.Select(document.Range(
					document.Point{Key: first.Key()},
					document.Point{Key: last.Key(), Offset: len([]rune(last.TextContent()))},
				))
			}

			for _, click := range clicks {
				if err := clickControl(f, click); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			writeControls(out, f.Toolbar.Controls(), !plain && isTerminal(out))
			fmt.Fprintf(out, "%d words, %d characters", counts.Words, counts.Characters)
			if counts.Limit > 0 {
				fmt.Fprintf(out, " (%d remaining)", counts.Remaining)
			}
			fmt.Fprintln(out)
			return nil
		},
	}

	cmd.Flags().StringVar(&text, "text", "Hello world", "field content")
	cmd.Flags().BoolVar(&plain, "plain", false, "never draw boxes")
	cmd.Flags().BoolVar(&caret, "caret", false, "place a caret instead of selecting the text")
	cmd.Flags().StringArrayVar(&clicks, "click", nil, "control key to activate, or key=option (repeatable)")
	return cmd
}

func clickControl(f *app.Field, click string) error {
	key, option, hasOption := strings.Cut(click, "=")
	control := f.Toolbar.Control(key)
	if control == nil {
		return fmt.Errorf("%w: %s", ErrUnknownControl, key)
	}
	if hasOption {
		if control.Kind == item.KindColor {
			return control.Pick(option, false)
		}
		return control.Select(option)
	}
	return control.Click()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// writeControls prints one line per control. Boxed output frames every
// group between dividers.
func writeControls(w io.Writer, controls []*item.Control, boxed bool) {
	var group []string
	flush := func() {
		if len(group) == 0 {
			return
		}
		if boxed {
			writeBox(w, group)
		} else {
			for _, line := range group {
				fmt.Fprintln(w, line)
			}
			fmt.Fprintln(w, "--")
		}
		group = nil
	}

	for _, c := range controls {
		if c.Kind == item.KindDivider {
			flush()
			continue
		}
		group = append(group, describe(c, ""))
		for _, child := range c.Children {
			if child.Kind == item.KindDivider {
				continue
			}
			group = append(group, describe(child, "  "))
		}
	}
	flush()
}

func describe(c *item.Control, indent string) string {
	var b strings.Builder
	b.WriteString(indent)
	b.WriteString(c.Key)
	if c.Label != "" {
		b.WriteString("  " + c.Label)
	}
	if c.Value != "" {
		b.WriteString(" [" + c.Value + "]")
	}
	if c.Active {
		b.WriteString(" *")
	}
	if c.Disabled {
		b.WriteString(" (disabled)")
	}
	return b.String()
}

func writeBox(w io.Writer, lines []string) {
	width := 0
	for _, l := range lines {
		width = max(width, uniseg.StringWidth(l))
	}
	fmt.Fprintf(w, "┌%s┐\n", strings.Repeat("─", width+2))
	for _, l := range lines {
		fmt.Fprintf(w, "│ %s%s │\n", l, strings.Repeat(" ", width-uniseg.StringWidth(l)))
	}
	fmt.Fprintf(w, "└%s┘\n", strings.Repeat("─", width+2))
}
