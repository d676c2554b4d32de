package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/felixgeelhaar/richfield/internal/app"
	"github.com/felixgeelhaar/richfield/internal/capability"
)

// overrides layers --options and --set over the options the container
// loaded from the environment.
func (o *options) overrides(c *app.Container) (capability.Overrides, error) {
	result := c.Overrides

	if o.file != "" {
		fromFile, err := app.LoadOverrides(o.file)
		if err != nil {
			return capability.NoOverrides, err
		}
		if result, err = result.Merge(fromFile); err != nil {
			return capability.NoOverrides, err
		}
	}

	if len(o.set) > 0 {
		values, err := parseSet(o.set)
		if err != nil {
			return capability.NoOverrides, err
		}
		flat, err := capability.FromFlat(values)
		if err != nil {
			return capability.NoOverrides, err
		}
		if result, err = result.Merge(flat); err != nil {
			return capability.NoOverrides, err
		}
	}
	return result, nil
}

// parseSet turns key=value pairs into typed values. Booleans and integers
// are recognized, anything else stays a string.
func parseSet(pairs []string) (map[string]any, error) {
	values := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, raw, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --set %q: expected key=value", pair)
		}
		values[key] = parseValue(strings.TrimSpace(raw))
	}
	return values, nil
}

func parseValue(raw string) any {
	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}
	if b, err := strconv.ParseBool(raw); err == nil {
		return b
	}
	return raw
}
