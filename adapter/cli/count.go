package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/felixgeelhaar/richfield/internal/wordcount"
	"github.com/spf13/cobra"
)

func newCountCmd() *cobra.Command {
	var (
		charset string
		limit   int
	)

	cmd := &cobra.Command{
		Use:   "count [text]",
		Short: "Count words and characters the way the field counter does",
		Long: `Count words and characters of text, or of stdin when no text is given.
Characters are counted in code units of --charset (UTF-8 or UTF-16).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cs, err := wordcount.ParseCharset(charset)
			if err != nil {
				return err
			}
			counter, err := wordcount.New(cs, limit)
			if err != nil {
				return err
			}

			var text string
			if len(args) == 1 {
				text = args[0]
			} else {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("failed to read input: %w", err)
				}
				text = strings.TrimSuffix(string(data), "\n")
			}

			counts := counter.Count(text)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Words:      %d\n", counts.Words)
			fmt.Fprintf(out, "Characters: %d (%s)\n", counts.Characters, counter.Charset())
			if counts.Limit > 0 {
				fmt.Fprintf(out, "Remaining:  %d of %d (%.0f%%)\n", counts.Remaining, counts.Limit, counts.Percentage())
				if counts.Exceeded() {
					fmt.Fprintln(out, "Limit exceeded")
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&charset, "charset", string(wordcount.CharsetUTF16), "counting charset")
	cmd.Flags().IntVar(&limit, "limit", 0, "character limit, 0 for none")
	return cmd
}
