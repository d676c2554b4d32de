package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/richfield/internal/app"
	"github.com/felixgeelhaar/richfield/pkg/observability"
	"github.com/spf13/cobra"
)

var (
	logger    *slog.Logger
	container *app.Container
)

type commandContext struct {
	correlationID string
	startedAt     time.Time
}

type commandContextKey struct{}

// options are the persistent flags shared by the field commands.
type options struct {
	file string
	set  []string
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "richfield",
		Short: "richfield - capability-driven rich-text field toolbar",
		Long: `richfield resolves the options of a rich-text field into the set of
enabled capabilities, composes the editor extensions they need and renders
the toolbar that drives them.

Options come from RICHFIELD_OPTIONS_FILE, --options and --set, later
sources winning.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log := getLogger()
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx = observability.WithCorrelationID(ctx, "")
			info := commandContext{
				correlationID: observability.CorrelationIDFromContext(ctx),
				startedAt:     time.Now(),
			}
			cmd.SetContext(context.WithValue(ctx, commandContextKey{}, info))
			log.Debug("command start",
				"command", cmd.CommandPath(),
				observability.CorrelationIDKey, info.correlationID,
			)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			info, ok := cmd.Context().Value(commandContextKey{}).(commandContext)
			if !ok {
				return
			}
			getLogger().Debug("command end",
				"command", cmd.CommandPath(),
				observability.CorrelationIDKey, info.correlationID,
				observability.DurationKey, time.Since(info.startedAt).Milliseconds(),
			)
		},
	}

	root.PersistentFlags().StringVarP(&opts.file, "options", "o", "", "YAML or JSON file of field options")
	root.PersistentFlags().StringArrayVar(&opts.set, "set", nil, "field option as dotted.key=value (repeatable)")

	root.AddCommand(
		newCapabilitiesCmd(),
		newResolveCmd(opts),
		newComposeCmd(opts),
		newToolbarCmd(opts),
		newSearchCmd(),
		newCountCmd(),
		newHealthCmd(),
		newVersionCmd(),
	)
	return root
}

// SetLogger sets the CLI logger.
func SetLogger(l *slog.Logger) {
	logger = l
}

// SetContainer sets the dependency container used by the commands.
func SetContainer(c *app.Container) {
	container = c
}

func getLogger() *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}

func getContainer() (*app.Container, error) {
	if container == nil {
		return nil, fmt.Errorf("container not initialized")
	}
	return container, nil
}
