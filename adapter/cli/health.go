package cli

import (
	"fmt"
	"sort"

	"github.com/felixgeelhaar/richfield/pkg/observability"
	"github.com/spf13/cobra"
)

func newHealthCmd() *cobra.Command {
	var metrics bool

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check the search endpoint and cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := getContainer()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			results := c.Health.Check(cmd.Context())
			for _, name := range c.Health.Names() {
				r := results[name]
				fmt.Fprintf(out, "%-10s %-10s %s\n", name, r.Status, r.Message)
			}
			overall := observability.Overall(results)
			fmt.Fprintf(out, "overall: %s\n", overall)

			if metrics {
				counters := c.Metrics.Counters()
				names := make([]string, 0, len(counters))
				for name := range counters {
					names = append(names, name)
				}
				sort.Strings(names)
				for _, name := range names {
					fmt.Fprintf(out, "%s %d\n", name, counters[name])
				}
			}

			if overall == observability.HealthStatusUnhealthy {
				return fmt.Errorf("unhealthy")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&metrics, "metrics", false, "also print metric counters")
	return cmd
}
