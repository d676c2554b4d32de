package capability

import (
	"slices"
	"strings"

	"github.com/felixgeelhaar/richfield/internal/toolbar/item"
	"github.com/felixgeelhaar/richfield/internal/wordcount"
	"github.com/tidwall/gjson"
)

const (
	pathNodeTypes        = "options.enabledNodeTypes"
	pathSessionHistory   = "options.enabledActions.sessionHistory"
	pathClear            = "options.enabledActions.clear"
	pathExportAsMarkdown = "options.enabledActions.exportAsMarkdown"
	pathImport           = "options.enabledActions.import"
	pathExport           = "options.enabledActions.export"
	pathTreeView         = "options.developers.treeView"
	pathFontMinSize      = "options.font.minSize"
	pathFontMaxSize      = "options.font.maxSize"
	pathFontDefaultSize  = "options.font.defaultSize"
	pathFontFamilies     = "options.font.families"
	pathCounterLimit     = "options.counter.limit"
	pathCounterCharset   = "options.counter.charset"
)

func nodeTypePath(id ID) string { return pathNodeTypes + "." + id.String() }

// Actions toggles the editor-wide actions.
type Actions struct {
	SessionHistory   bool
	Clear            bool
	ExportAsMarkdown bool
	Import           bool
	Export           bool
}

// Font bounds the font dropdowns.
type Font struct {
	MinSize     int
	MaxSize     int
	DefaultSize int
	Families    []string
}

// Developers toggles developer tooling.
type Developers struct {
	TreeView bool
}

// Counter configures the character counter. A zero Limit means no limit.
type Counter struct {
	Limit   int
	Charset wordcount.Charset
}

// Configuration is the resolved configuration of one field instance. It
// holds a value for every capability and never changes after resolution.
type Configuration struct {
	enabled [idCount]bool

	Actions    Actions
	Font       Font
	Developers Developers
	Counter    Counter
}

// Clone returns a copy that shares no memory with c.
func (c Configuration) Clone() Configuration {
	c.Font.Families = slices.Clone(c.Font.Families)
	return c
}

// Enabled reports whether id is enabled.
func (c Configuration) Enabled(id ID) bool {
	return id.Valid() && c.enabled[id]
}

// EnabledIDs returns the enabled capabilities in declaration order.
func (c Configuration) EnabledIDs() []ID {
	var ids []ID
	for id, on := range c.enabled {
		if on {
			ids = append(ids, ID(id))
		}
	}
	return ids
}

// DefaultFont is used for options the host leaves unset.
func DefaultFont() Font {
	return Font{
		MinSize:     item.DefaultMinFontSize,
		MaxSize:     item.DefaultMaxFontSize,
		DefaultSize: 15,
		Families:    append([]string(nil), item.DefaultFontFamilies...),
	}
}

// Resolve merges overrides with the registry defaults. Every registered
// capability gets a value; override keys that match nothing are logged and
// dropped.
func Resolve(reg *Registry, o Overrides) Configuration {
	known := make(map[string]bool)
	var cfg Configuration

	for _, d := range reg.Descriptors() {
		path := nodeTypePath(d.ID)
		known[path] = true
		cfg.enabled[d.ID] = boolOr(o.Get(path), d.EnabledByDefault)
	}

	cfg.Actions = Actions{
		SessionHistory:   boolOr(o.Get(pathSessionHistory), true),
		Clear:            boolOr(o.Get(pathClear), false),
		ExportAsMarkdown: boolOr(o.Get(pathExportAsMarkdown), false),
		Import:           boolOr(o.Get(pathImport), false),
		Export:           boolOr(o.Get(pathExport), false),
	}
	cfg.Developers = Developers{TreeView: boolOr(o.Get(pathTreeView), false)}

	def := DefaultFont()
	cfg.Font = Font{
		MinSize:     intOr(o.Get(pathFontMinSize), def.MinSize),
		MaxSize:     intOr(o.Get(pathFontMaxSize), def.MaxSize),
		DefaultSize: intOr(o.Get(pathFontDefaultSize), def.DefaultSize),
		Families:    def.Families,
	}
	if fams := o.Get(pathFontFamilies); fams.IsArray() {
		var families []string
		for _, f := range fams.Array() {
			if name := strings.TrimSpace(f.String()); name != "" {
				families = append(families, name)
			}
		}
		if len(families) > 0 {
			cfg.Font.Families = families
		}
	}
	if cfg.Font.MaxSize < cfg.Font.MinSize {
		reg.logger.Debug("font size bounds inverted, using defaults",
			"min", cfg.Font.MinSize,
			"max", cfg.Font.MaxSize,
		)
		cfg.Font.MinSize, cfg.Font.MaxSize = def.MinSize, def.MaxSize
	}

	cfg.Counter = Counter{Limit: max(intOr(o.Get(pathCounterLimit), 0), 0), Charset: wordcount.CharsetUTF16}
	if cs := o.Get(pathCounterCharset); cs.Exists() {
		charset, err := wordcount.ParseCharset(cs.String())
		if err != nil {
			reg.logger.Debug("unrecognized counter charset", "charset", cs.String())
		} else {
			cfg.Counter.Charset = charset
		}
	}

	for _, p := range []string{
		pathSessionHistory, pathClear, pathExportAsMarkdown, pathImport, pathExport,
		pathTreeView, pathFontMinSize, pathFontMaxSize, pathFontDefaultSize,
		pathFontFamilies, pathCounterLimit, pathCounterCharset,
	} {
		known[p] = true
	}
	for _, k := range o.Keys() {
		if !known[k] {
			reg.logger.Debug("unrecognized capability reference", "key", k)
		}
	}
	return cfg
}

func boolOr(v gjson.Result, def bool) bool {
	switch v.Type {
	case gjson.True, gjson.False, gjson.Number:
		return v.Bool()
	case gjson.String:
		switch strings.ToLower(strings.TrimSpace(v.Str)) {
		case "true", "1", "on", "yes":
			return true
		case "false", "0", "off", "no", "":
			return false
		}
	}
	return def
}

func intOr(v gjson.Result, def int) int {
	switch v.Type {
	case gjson.Number:
		return int(v.Int())
	case gjson.String:
		if n := gjson.Parse(strings.TrimSpace(v.Str)); n.Type == gjson.Number {
			return int(n.Int())
		}
	}
	return def
}
