package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newCapabilitiesCmd() *cobra.Command {
	var (
		sections bool
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:     "capabilities",
		Aliases: []string{"caps"},
		Short:   "List the capabilities a field can enable",
		Long: `List every registered capability with its default state, the editor
extension it needs and whether it has a toolbar control.

With --sections the option sections a host shows to administrators are
printed instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := getContainer()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if sections {
				if asJSON {
					return writeJSON(out, c.Registry.OptionSections())
				}
				for _, s := range c.Registry.OptionSections() {
					fmt.Fprintf(out, "%s\n", s.Title)
					for _, item := range s.Items {
						fmt.Fprintf(out, "  %-45s %-10s %s\n", item.Name, item.Type, item.Label)
					}
				}
				return nil
			}

			if asJSON {
				type entry struct {
					ID      string `json:"id"`
					Label   string `json:"label"`
					Default bool   `json:"enabledByDefault"`
					Plugin  string `json:"plugin,omitempty"`
					Control bool   `json:"control"`
				}
				entries := make([]entry, 0, c.Registry.Len())
				for _, d := range c.Registry.Descriptors() {
					e := entry{ID: d.ID.String(), Label: d.DefaultLabel, Default: d.EnabledByDefault, Control: d.Item != nil}
					if d.Plugin != nil {
						e.Plugin = d.Plugin.Name()
					}
					entries = append(entries, e)
				}
				return writeJSON(out, entries)
			}

			fmt.Fprintf(out, "%-18s %-24s %-8s %-14s %s\n", "ID", "LABEL", "DEFAULT", "PLUGIN", "CONTROL")
			for _, d := range c.Registry.Descriptors() {
				plugin := "-"
				if d.Plugin != nil {
					plugin = d.Plugin.Name()
				}
				fmt.Fprintf(out, "%-18s %-24s %-8s %-14s %s\n",
					d.ID, d.DefaultLabel, onOff(d.EnabledByDefault), plugin, yesNo(d.Item != nil))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&sections, "sections", false, "print the host option sections")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
