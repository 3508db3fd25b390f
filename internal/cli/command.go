// Package cli wires duhist's commands to the aggregation engines and the
// report renderers.
package cli

import (
	"errors"
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/jmeppley/duhist/internal/agescan"
	"github.com/jmeppley/duhist/internal/errs"
	"github.com/jmeppley/duhist/internal/integration"
)

// CLI represents the command-line interface.
type CLI struct {
	version string
}

// New creates a new CLI instance with the given version.
func New(version string) CLI {
	return CLI{version: version}
}

// histOptions carries the root-command flags.
type histOptions struct {
	// Log uses a log scale; ramp characters indicate order of magnitude.
	Log bool
	// Time prints an age prefix and sorts by age.
	Time bool
	// AllFS crosses filesystem boundaries during measurement.
	AllFS bool
	// Width is the output text width.
	Width int
	// Debug enables debug output.
	Debug bool
	// Init outputs the shell integration snippet and exits.
	Init bool
	// ConfigFile points at the YAML defaults file.
	ConfigFile string
}

// oldOptions carries the oldfiles-command flags.
type oldOptions struct {
	// Hist prints the by-owner usage histogram to stdout.
	Hist bool
	// ListFile receives the by-owner file list.
	ListFile string
	// TableFile receives the owner-by-age CSV table.
	TableFile string
	// BinType is the age-bin unit.
	BinType string
	// BinSize is the age-bin width in BinType units.
	BinSize int
	// MinAge is the minimum file age in BinType units.
	MinAge int
	// Users limits results to these numeric owner ids.
	Users []string
	// FollowLinks follows symbolic links during the walk.
	FollowLinks bool
	// Width is the output text width.
	Width int
	// Verbose enables debug output.
	Verbose bool
	// ConfigFile points at the YAML defaults file.
	ConfigFile string
}

// Execute runs the CLI with the provided arguments.
func (c CLI) Execute() error {
	var (
		hist histOptions
		old  oldOptions
	)

	root := &cobra.Command{
		Use:   "duhist [flags] [directory...]",
		Short: "ASCII histogram of disk usage",
		Long: heredoc.Doc(`
			duhist measures the disk usage of a directory's entries with du and
			plots an ASCII histogram of their sizes. Omit the directory to
			measure the current one; with several directories, entry names keep
			their parent path.

			Directory entries show their size in parentheses, plain files with
			surrounding spaces.
		`),
		Example: heredoc.Doc(`
			# histogram of the current directory on a log scale
			duhist -l

			# oldest entries first, with an age column, staying wide
			duhist -t -w 120 /scratch
		`),
		Version:       c.version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if hist.Init {
				rendered, err := integration.Render()
				if err != nil {
					return err
				}

				fmt.Fprintln(cmd.OutOrStdout(), rendered)

				return nil
			}

			cfg, err := loadConfig(hist.ConfigFile, cmd.Flags().Changed("config"))
			if err != nil {
				return err
			}

			cfg.apply(cmd.Flags())

			if hist.Width < 1 {
				return &errs.ConfigError{Param: "width", Reason: "must be positive"}
			}

			return runHist(cmd.Context(), hist, args)
		},
	}

	rootFlags := root.Flags()
	rootFlags.BoolVarP(&hist.Log, "log", "l", false,
		"Use log scale (chars - ~ = and # indicate order of magnitude)")
	rootFlags.BoolVarP(&hist.Time, "time", "t", false,
		"Print and sort by age (10m -> 10 months, 5h -> 5 hours)")
	rootFlags.BoolVarP(&hist.AllFS, "allfs", "X", false,
		"Cross filesystem boundaries")
	rootFlags.IntVarP(&hist.Width, "width", "w", 80, "Width of text to print")
	rootFlags.BoolVar(&hist.Debug, "debug", false, "Enable debug output")
	rootFlags.BoolVarP(&hist.Init, "init", "i", false, "Output init script for shell usage")
	rootFlags.StringVar(&hist.ConfigFile, "config", defaultConfigPath(), "YAML file with flag defaults")
	rootFlags.SortFlags = false

	oldCmd := &cobra.Command{
		Use:   "oldfiles [flags] <directory>",
		Short: "Locate files on a volume by age and owner",
		Long: heredoc.Doc(`
			oldfiles walks a directory tree and buckets file sizes by owner and
			age. It can produce any combination of three outputs on one walk,
			which is useful because gathering the underlying data can take a
			long time:

			  --hist    text histogram of usage by owner on stdout
			  --list    list of files older than the age cutoff, by owner
			  --table   CSV table of usage by owner and age bin
		`),
		Example: heredoc.Doc(`
			# histogram of usage by owner, files at least 6 months old
			duhist oldfiles --hist /data

			# CSV of 2-week age bins, two specific owners
			duhist oldfiles --table usage.csv --type weeks --size 2 -u 1001 -u 1002 /data
		`),
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(old.ConfigFile, cmd.Flags().Changed("config"))
			if err != nil {
				return err
			}

			cfg.apply(cmd.Flags())

			if !old.Hist && old.ListFile == "" && old.TableFile == "" {
				return errors.New("nothing to do: pass at least one of --hist, --list or --table")
			}

			// Reject bad parameters before the walk starts.
			if _, err := agescan.UnitSeconds(old.BinType); err != nil {
				return err
			}

			if old.BinSize <= 0 {
				return &errs.ConfigError{Param: "age bin size", Reason: "must be positive"}
			}

			if old.MinAge < 0 {
				return &errs.ConfigError{Param: "minimum age", Reason: "cannot be negative"}
			}

			if old.Width < 1 {
				return &errs.ConfigError{Param: "width", Reason: "must be positive"}
			}

			return runOldfiles(cmd.Context(), old, args[0])
		},
	}

	oldFlags := oldCmd.Flags()
	oldFlags.BoolVarP(&old.Hist, "hist", "H", false, "Print text histogram of usage by owner to stdout")
	oldFlags.StringVarP(&old.ListFile, "list", "L", "", "Generate list of files by owner into this file")
	oldFlags.StringVarP(&old.TableFile, "table", "T", "", "Generate CSV table of usage by owner and age into this file")
	oldFlags.StringVarP(&old.BinType, "type", "t", "months", "Age bin unit: minutes, hours, days, weeks or months")
	oldFlags.IntVarP(&old.BinSize, "size", "s", 6, "Age bin size for table outputs")
	oldFlags.IntVarP(&old.MinAge, "age", "a", 6, "Minimum file age to consider, in --type units")
	oldFlags.StringSliceVarP(&old.Users, "user", "u", nil, "Limit results to these numeric owner ids (repeatable)")
	oldFlags.BoolVarP(&old.FollowLinks, "follow-links", "X", false, "Follow symbolic links")
	oldFlags.IntVarP(&old.Width, "width", "w", 80, "Width of text histogram")
	oldFlags.BoolVarP(&old.Verbose, "verbose", "v", false, "Print debug messages")
	oldFlags.StringVar(&old.ConfigFile, "config", defaultConfigPath(), "YAML file with flag defaults")
	oldFlags.SortFlags = false

	root.AddCommand(oldCmd)

	return root.Execute()
}
