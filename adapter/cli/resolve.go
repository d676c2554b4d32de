package cli

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/richfield/internal/capability"
	"github.com/felixgeelhaar/richfield/internal/composer"
	"github.com/spf13/cobra"
)

type resolvedView struct {
	Enabled    []string              `json:"enabled"`
	Actions    capability.Actions    `json:"actions"`
	Font       capability.Font       `json:"font"`
	Developers capability.Developers `json:"developers"`
	Counter    capability.Counter    `json:"counter"`
}

func newResolveCmd(opts *options) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve field options into the field configuration",
		Long: `Resolve applies the field options over the capability defaults and
prints the result. Unknown option keys are ignored.

Examples:
  richfield resolve --set options.enabledNodeTypes.table=true
  richfield resolve --options field.yaml --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := getContainer()
			if err != nil {
				return err
			}
			o, err := opts.overrides(c)
			if err != nil {
				return err
			}
			cfg := capability.Resolve(c.Registry, o)

			view := resolvedView{
				Enabled:    ids(cfg.EnabledIDs()),
				Actions:    cfg.Actions,
				Font:       cfg.Font,
				Developers: cfg.Developers,
				Counter:    cfg.Counter,
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), view)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Enabled (%d): %s\n", len(view.Enabled), strings.Join(view.Enabled, ", "))
			fmt.Fprintf(out, "Actions: session history %s, clear %s, export as markdown %s, import %s, export %s\n",
				onOff(cfg.Actions.SessionHistory), onOff(cfg.Actions.Clear), onOff(cfg.Actions.ExportAsMarkdown),
				onOff(cfg.Actions.Import), onOff(cfg.Actions.Export))
			fmt.Fprintf(out, "Font: %d-%d (default %d), families %s\n",
				cfg.Font.MinSize, cfg.Font.MaxSize, cfg.Font.DefaultSize, strings.Join(cfg.Font.Families, ", "))
			fmt.Fprintf(out, "Tree view: %s\n", onOff(cfg.Developers.TreeView))
			limit := "none"
			if cfg.Counter.Limit > 0 {
				limit = fmt.Sprint(cfg.Counter.Limit)
			}
			fmt.Fprintf(out, "Counter: limit %s, charset %s\n", limit, cfg.Counter.Charset)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func newComposeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "compose",
		Short: "List the editor extensions a field installs",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := getContainer()
			if err != nil {
				return err
			}
			o, err := opts.overrides(c)
			if err != nil {
				return err
			}
			cfg := capability.Resolve(c.Registry, o)

			out := cmd.OutOrStdout()
			for _, f := range composer.Base() {
				fmt.Fprintf(out, "%s (base)\n", f.Name())
			}
			for _, f := range composer.Compose(c.Registry, cfg) {
				fmt.Fprintln(out, f.Name())
			}
			return nil
		},
	}
}

func ids(in []capability.ID) []string {
	out := make([]string, len(in))
	for i, id := range in {
		out[i] = id.String()
	}
	return out
}
