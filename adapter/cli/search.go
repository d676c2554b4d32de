package cli

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/richfield/internal/linksearch"
	"github.com/spf13/cobra"
)

func newSearchCmd() *cobra.Command {
	var (
		current string
		model   string
		field   string
		locale  string
	)

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search link targets the way the link dialog does",
		Long: `Open the link dialog and search the configured endpoint
(RICHFIELD_SEARCH_URL). A failed search prints no results.

--current opens the dialog on an existing link; an internal link shows its
target as the selected result.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := getContainer()
			if err != nil {
				return err
			}

			scope := c.SearchScope()
			if model != "" {
				scope.Model = model
			}
			if field != "" {
				scope.Field = field
			}
			if locale != "" {
				scope.Locale = locale
			}

			dialog := linksearch.NewDialog(cmd.Context(), c.Searcher, scope, current)
			if len(args) == 1 {
				dialog.Search(cmd.Context(), args[0])
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Tab: %s\n", dialog.Tab)
			if len(dialog.Results) == 0 {
				fmt.Fprintln(out, "No results")
				return nil
			}
			for _, r := range dialog.Results {
				fmt.Fprintf(out, "%-40s %s\n", highlight(r.Label, dialog.Query), r.Target())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&current, "current", "", "link under the cursor")
	cmd.Flags().StringVar(&model, "model", "", "content model to search")
	cmd.Flags().StringVar(&field, "field", "", "field of the model")
	cmd.Flags().StringVar(&locale, "locale", "", "content locale")
	return cmd
}

// highlight wraps the parts of label matching q in brackets.
func highlight(label, q string) string {
	var b strings.Builder
	for _, s := range linksearch.Highlight(label, q) {
		if s.Match {
			b.WriteString("[" + s.Text + "]")
			continue
		}
		b.WriteString(s.Text)
	}
	return b.String()
}
