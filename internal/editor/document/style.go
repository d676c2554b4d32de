package document

import (
	"sort"
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
)

// StyleObject parses an inline CSS declaration list into a property map.
// Malformed input yields an empty map; an unparsable style carries no values.
func StyleObject(style string) map[string]string {
	out := make(map[string]string)
	decls, err := parseDeclarations(style)
	if err != nil {
		return out
	}
	for _, d := range decls {
		out[strings.ToLower(d.Property)] = d.Value
	}
	return out
}

// PatchStyle merges patch into style. An empty value removes the property.
// Existing property order is kept; new properties are appended.
func PatchStyle(style string, patch map[string]string) string {
	var order []string
	values := make(map[string]string)
	if strings.TrimSpace(style) != "" {
		if decls, err := parseDeclarations(style); err == nil {
			for _, d := range decls {
				p := strings.ToLower(d.Property)
				if _, seen := values[p]; !seen {
					order = append(order, p)
				}
				values[p] = d.Value
			}
		}
	}
	for _, p := range sortedKeys(patch) {
		if _, seen := values[p]; !seen {
			order = append(order, p)
		}
		values[p] = patch[p]
	}

	var b strings.Builder
	for _, p := range order {
		v := values[p]
		if v == "" {
			continue
		}
		b.WriteString(p)
		b.WriteString(": ")
		b.WriteString(v)
		b.WriteString(";")
	}
	return b.String()
}

// parseDeclarations parses a declaration list. The parser leaves the value of
// an unterminated last declaration empty, so the list is always terminated.
func parseDeclarations(style string) ([]*css.Declaration, error) {
	style = strings.TrimSpace(style)
	if style == "" {
		return nil, nil
	}
	if !strings.HasSuffix(style, ";") {
		style += ";"
	}
	return parser.ParseDeclarations(style)
}

// NodeStyleValue returns the value of prop on a text node, or def when unset.
func NodeStyleValue(n *Node, prop, def string) string {
	if n == nil {
		return def
	}
	if v, ok := StyleObject(n.style)[prop]; ok && v != "" {
		return v
	}
	return def
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
