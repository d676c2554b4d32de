package capability

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"gopkg.in/yaml.v3"
)

// Overrides are the option values a host supplies for one field instance.
// Values are addressed by dotted paths such as
// "options.enabledNodeTypes.bold".
type Overrides struct {
	doc string
}

// NoOverrides resolves every option to its default.
var NoOverrides = Overrides{}

func (o Overrides) json() string {
	if o.doc == "" {
		return "{}"
	}
	return o.doc
}

// FromFlat builds overrides from flat dotted keys.
func FromFlat(values map[string]any) (Overrides, error) {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	doc := "{}"
	for _, k := range keys {
		if strings.TrimSpace(k) == "" {
			continue
		}
		next, err := sjson.Set(doc, k, values[k])
		if err != nil {
			return Overrides{}, fmt.Errorf("set override %q: %w", k, err)
		}
		doc = next
	}
	return Overrides{doc: doc}, nil
}

// FromJSON builds overrides from a nested JSON document.
func FromJSON(data []byte) (Overrides, error) {
	if !gjson.ValidBytes(data) {
		return Overrides{}, fmt.Errorf("overrides: invalid JSON document")
	}
	if !gjson.ParseBytes(data).IsObject() {
		return Overrides{}, fmt.Errorf("overrides: document must be an object")
	}
	return Overrides{doc: string(data)}, nil
}

// FromYAML builds overrides from a YAML options file.
func FromYAML(data []byte) (Overrides, error) {
	var tree map[string]any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return Overrides{}, fmt.Errorf("overrides: parse yaml: %w", err)
	}
	if tree == nil {
		return NoOverrides, nil
	}
	raw, err := json.Marshal(tree)
	if err != nil {
		return Overrides{}, fmt.Errorf("overrides: encode yaml: %w", err)
	}
	return Overrides{doc: string(raw)}, nil
}

// Get returns the value at a dotted path.
func (o Overrides) Get(path string) gjson.Result {
	return gjson.Get(o.json(), path)
}

// Merge returns o with every value of other applied on top.
func (o Overrides) Merge(other Overrides) (Overrides, error) {
	doc := o.json()
	for _, k := range other.Keys() {
		next, err := sjson.SetRaw(doc, k, other.Get(k).Raw)
		if err != nil {
			return Overrides{}, fmt.Errorf("merge override %q: %w", k, err)
		}
		doc = next
	}
	return Overrides{doc: doc}, nil
}

// Keys returns the dotted paths of every leaf value, sorted. Arrays are
// leaves.
func (o Overrides) Keys() []string {
	var keys []string
	var walk func(prefix string, v gjson.Result)
	walk = func(prefix string, v gjson.Result) {
		if !v.IsObject() {
			keys = append(keys, prefix)
			return
		}
		v.ForEach(func(k, child gjson.Result) bool {
			path := k.String()
			if prefix != "" {
				path = prefix + "." + path
			}
			walk(path, child)
			return true
		})
	}
	root := gjson.Parse(o.json())
	root.ForEach(func(k, child gjson.Result) bool {
		walk(k.String(), child)
		return true
	})
	sort.Strings(keys)
	return keys
}

// String returns the overrides as a JSON document.
func (o Overrides) String() string { return o.json() }
