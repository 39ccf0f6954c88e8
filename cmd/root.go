package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/TFMV/fsvisit/visit"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "0.1.0"

// defaultRoot is visited when no path is given.
const defaultRoot = "."

// Execute adds all child commands to the root command and runs it until
// it finishes or an interrupt arrives.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return newRootCmd().ExecuteContext(ctx)
}

// newRootCmd builds the command tree with its own viper instance.
func newRootCmd() *cobra.Command {
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:   "fsvisit [options] [path]",
		Short: "List the files and directories below a path",
		Long: `fsvisit walks a directory tree depth first, listing the files of each
directory before descending into its subdirectories. Entries can be filtered
by name, type, size and modification time.

Examples:
  fsvisit
  fsvisit /path/to/search --pattern="*.go"
  fsvisit /path/to/search --ext=.txt,.md --min-size=1KB --format=table
  fsvisit /path/to/search --exclude=node_modules --stop-after=100
  fsvisit /path/to/search --template="{kind} {base}"`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			root := defaultRoot
			if len(args) > 0 {
				root = args[0]
			}
			return runVisit(cmd, v, root)
		},
	}

	initConfig(v)

	// Filter flags
	rootCmd.Flags().StringP("pattern", "n", "", "Match base names against a glob pattern")
	rootCmd.Flags().StringP("regex", "r", "", "Match full paths against a regular expression")
	rootCmd.Flags().StringSlice("ext", []string{}, "File extensions to include (e.g. .go,.txt)")
	rootCmd.Flags().String("type", "any", "Entry type to include (any|file|dir)")
	rootCmd.Flags().String("min-size", "", "Minimum file size (e.g. 500KB, 1MB)")
	rootCmd.Flags().String("max-size", "", "Maximum file size (e.g. 500KB, 1MB)")
	rootCmd.Flags().String("newer-than", "", "Entries modified within this duration (e.g. 7d, 24h)")
	rootCmd.Flags().String("older-than", "", "Entries modified before this duration (e.g. 7d, 24h)")
	rootCmd.Flags().Bool("no-hidden", false, "Leave out names starting with a dot")

	// Traversal flags
	rootCmd.Flags().StringSlice("exclude", []string{}, "Leave out entries whose name matches these globs")
	rootCmd.Flags().Int("stop-after", 0, "Stop the search after this many entries are found")
	rootCmd.Flags().Bool("follow-symlinks", false, "Descend into symbolic links to directories")
	rootCmd.Flags().Bool("sorted", false, "Sort entries by name within each directory")

	// Output flags
	rootCmd.Flags().String("format", "text", "Output format (text|json|table)")
	rootCmd.Flags().String("template", "", "Output template, e.g. \"{kind} {base}\"")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().Bool("silent", false, "Disable all output except errors")
	rootCmd.PersistentFlags().String("log-file", "", "Write logs to this file instead of stderr")

	// Bind flags to viper
	v.BindPFlag("pattern", rootCmd.Flags().Lookup("pattern"))
	v.BindPFlag("regex", rootCmd.Flags().Lookup("regex"))
	v.BindPFlag("ext", rootCmd.Flags().Lookup("ext"))
	v.BindPFlag("type", rootCmd.Flags().Lookup("type"))
	v.BindPFlag("min-size", rootCmd.Flags().Lookup("min-size"))
	v.BindPFlag("max-size", rootCmd.Flags().Lookup("max-size"))
	v.BindPFlag("newer-than", rootCmd.Flags().Lookup("newer-than"))
	v.BindPFlag("older-than", rootCmd.Flags().Lookup("older-than"))
	v.BindPFlag("no-hidden", rootCmd.Flags().Lookup("no-hidden"))
	v.BindPFlag("exclude", rootCmd.Flags().Lookup("exclude"))
	v.BindPFlag("stop-after", rootCmd.Flags().Lookup("stop-after"))
	v.BindPFlag("follow-symlinks", rootCmd.Flags().Lookup("follow-symlinks"))
	v.BindPFlag("sorted", rootCmd.Flags().Lookup("sorted"))
	v.BindPFlag("format", rootCmd.Flags().Lookup("format"))
	v.BindPFlag("template", rootCmd.Flags().Lookup("template"))
	v.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	v.BindPFlag("silent", rootCmd.PersistentFlags().Lookup("silent"))
	v.BindPFlag("log-file", rootCmd.PersistentFlags().Lookup("log-file"))

	rootCmd.AddCommand(newWatchCmd(v))
	return rootCmd
}

// initConfig reads settings from FSVISIT_* environment variables.
func initConfig(v *viper.Viper) {
	v.SetEnvPrefix("fsvisit")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
}

func runVisit(cmd *cobra.Command, v *viper.Viper, root string) error {
	logger := newLogger(v)
	defer logger.Sync()

	filter, err := buildFilter(v)
	if err != nil {
		return err
	}

	format := v.GetString("format")
	if err := validateFormat(format); err != nil {
		return err
	}

	visitor := visit.New(root, visit.Options{
		Filter: filter,
		Walker: visit.WalkerOptions{
			FollowSymlinks: v.GetBool("follow-symlinks"),
			Sorted:         v.GetBool("sorted"),
		},
		Logger: logger,
	})
	if v.GetBool("verbose") {
		visitor.Observe(visit.NewLoggingObserver(logger))
	}

	excludes := splitList(v.GetStringSlice("exclude"))
	if err := validateGlobs("exclude", excludes); err != nil {
		return err
	}
	stopAfter := v.GetInt("stop-after")
	var found int
	onFound := func(c *visit.Control, path string) {
		found++
		name := filepath.Base(path)
		for _, pattern := range excludes {
			if matched, _ := filepath.Match(pattern, name); matched {
				c.Skip()
				break
			}
		}
		if stopAfter > 0 && found >= stopAfter {
			c.Stop()
		}
	}
	visitor.OnFileFound(onFound)
	visitor.OnDirectoryFound(onFound)
	visitor.OnFilteredFileFound(onFound)
	visitor.OnFilteredDirectoryFound(onFound)

	if err := visitor.Execute(cmd.Context()); err != nil {
		return fmt.Errorf("visit %s: %w", root, err)
	}

	if v.GetBool("silent") {
		return nil
	}
	return printEntries(cmd.OutOrStdout(), visitor.All(), format, v.GetString("template"))
}

// buildFilter turns the filter flags into a visit.Filter. It returns nil
// when no filter flag is set so the unfiltered notifications are used.
func buildFilter(v *viper.Viper) (visit.Filter, error) {
	opts := visit.FilterOptions{
		Pattern:       v.GetString("pattern"),
		IncludeTypes:  normalizeExts(splitList(v.GetStringSlice("ext"))),
		ExcludeHidden: v.GetBool("no-hidden"),
	}

	if regexStr := v.GetString("regex"); regexStr != "" {
		re, err := regexp.Compile(regexStr)
		if err != nil {
			return nil, fmt.Errorf("invalid regex pattern: %w", err)
		}
		opts.Regex = re
	}

	switch typ := v.GetString("type"); typ {
	case "", "any":
		opts.Kind = visit.AnyKind
	case "file", "f":
		opts.Kind = visit.FilesOnly
	case "dir", "d", "directory":
		opts.Kind = visit.DirectoriesOnly
	default:
		return nil, fmt.Errorf("invalid type: %s", typ)
	}

	if minSizeStr := v.GetString("min-size"); minSizeStr != "" {
		size, err := humanize.ParseBytes(minSizeStr)
		if err != nil {
			return nil, fmt.Errorf("invalid min-size value: %w", err)
		}
		opts.MinSize = int64(size)
	}

	if maxSizeStr := v.GetString("max-size"); maxSizeStr != "" {
		size, err := humanize.ParseBytes(maxSizeStr)
		if err != nil {
			return nil, fmt.Errorf("invalid max-size value: %w", err)
		}
		opts.MaxSize = int64(size)
	}

	if newerThanStr := v.GetString("newer-than"); newerThanStr != "" {
		duration, err := parseDuration(newerThanStr)
		if err != nil {
			return nil, fmt.Errorf("invalid newer-than value: %w", err)
		}
		opts.ModifiedAfter = time.Now().Add(-duration)
	}

	if olderThanStr := v.GetString("older-than"); olderThanStr != "" {
		duration, err := parseDuration(olderThanStr)
		if err != nil {
			return nil, fmt.Errorf("invalid older-than value: %w", err)
		}
		opts.ModifiedBefore = time.Now().Add(-duration)
	}

	if opts.IsZero() {
		return nil, nil
	}
	return visit.NewFilter(opts), nil
}
