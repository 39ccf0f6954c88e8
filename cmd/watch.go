package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/TFMV/fsvisit/visit"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// newWatchCmd returns the watch subcommand. Filter flags are shared with
// the root command through v.
func newWatchCmd(v *viper.Viper) *cobra.Command {
	watchCmd := &cobra.Command{
		Use:   "watch [path]",
		Short: "Watch for filesystem changes",
		Long: `Watch for filesystem changes and print each matching event.

Examples:
  fsvisit watch /path/to/watch
  fsvisit watch --events=create,modify /path/to/watch
  fsvisit watch --pattern="*.go" --template="{base} was {event} at {time}" /path/to/watch
  fsvisit watch --recursive --timeout=1h /path/to/watch`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := defaultRoot
			if len(args) > 0 {
				root = args[0]
			}
			return runWatch(cmd, v, root)
		},
	}

	watchCmd.Flags().StringSlice("events", []string{}, "Events to watch for (create, modify, delete, rename, chmod)")
	watchCmd.Flags().Bool("recursive", false, "Watch subdirectories recursively")
	watchCmd.Flags().Duration("timeout", 0, "Duration to watch before exiting (e.g., 1h, 30m)")
	watchCmd.Flags().StringP("pattern", "n", "", "Match base names against a glob pattern")
	watchCmd.Flags().StringSlice("ignore", []string{}, "Leave out names matching these globs")
	watchCmd.Flags().Bool("no-hidden", false, "Leave out names starting with a dot")
	watchCmd.Flags().String("template", "", "Output template, e.g. \"{event} {base}\"")

	v.BindPFlag("watch.events", watchCmd.Flags().Lookup("events"))
	v.BindPFlag("watch.recursive", watchCmd.Flags().Lookup("recursive"))
	v.BindPFlag("watch.timeout", watchCmd.Flags().Lookup("timeout"))
	v.BindPFlag("watch.pattern", watchCmd.Flags().Lookup("pattern"))
	v.BindPFlag("watch.ignore", watchCmd.Flags().Lookup("ignore"))
	v.BindPFlag("watch.no-hidden", watchCmd.Flags().Lookup("no-hidden"))
	v.BindPFlag("watch.template", watchCmd.Flags().Lookup("template"))
	return watchCmd
}

func runWatch(cmd *cobra.Command, v *viper.Viper, root string) error {
	logger := newLogger(v)
	defer logger.Sync()

	var events []visit.WatchEvent
	for _, name := range splitList(v.GetStringSlice("watch.events")) {
		e, err := visit.ParseWatchEvent(strings.ToLower(strings.TrimSpace(name)))
		if err != nil {
			return err
		}
		events = append(events, e)
	}

	opts := visit.WatchOptions{
		Events:    events,
		Recursive: v.GetBool("watch.recursive"),
		Timeout:   v.GetDuration("watch.timeout"),
	}
	filterOpts := visit.FilterOptions{
		Pattern:       v.GetString("watch.pattern"),
		ExcludeNames:  splitList(v.GetStringSlice("watch.ignore")),
		ExcludeHidden: v.GetBool("watch.no-hidden"),
	}
	if err := validateGlobs("pattern", []string{filterOpts.Pattern}); err != nil {
		return err
	}
	if err := validateGlobs("ignore", filterOpts.ExcludeNames); err != nil {
		return err
	}
	if !filterOpts.IsZero() {
		opts.Filter = visit.NewFilter(filterOpts)
	}

	out := cmd.OutOrStdout()
	silent := v.GetBool("silent")
	if !silent {
		fmt.Fprintf(cmd.ErrOrStderr(), "Watching %s for changes...\n", root)
	}

	logger.Debug("watch started", zap.String("root", root), zap.Bool("recursive", opts.Recursive))
	return visit.Watch(cmd.Context(), root, opts, watchPrinter(out, logger, v.GetString("watch.template"), silent))
}

// watchPrinter returns a handler that writes one line per event and logs
// watcher errors.
func watchPrinter(w io.Writer, logger *zap.Logger, template string, silent bool) visit.WatchHandler {
	return func(_ context.Context, result visit.WatchResult) error {
		if result.Error != nil {
			logger.Warn("watch error", zap.Error(result.Error))
			return nil
		}
		if silent {
			return nil
		}
		_, err := fmt.Fprintln(w, formatWatchMessage(template, result.Message))
		return err
	}
}

// formatWatchMessage expands {event} and {time} plus the entry placeholders
// understood by visit.Format.
func formatWatchMessage(template string, msg visit.WatchMessage) string {
	if template == "" {
		return fmt.Sprintf("%s %s", msg.Event, msg.Entry.Path)
	}
	template = strings.NewReplacer(
		"{event}", string(msg.Event),
		"{time}", msg.Time.Format(time.RFC3339),
	).Replace(template)
	return visit.Format(template, msg.Entry)
}
