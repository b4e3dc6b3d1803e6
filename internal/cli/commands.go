// Package cli implements the octofs command tree. octofs is the
// host-side harness for OctopOS partitions: the same core the OS,
// installer, and bootloader link against, driven from the command
// line over a directory-backed block store.
package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/chainguard-dev/clog"
	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"sigs.k8s.io/release-utils/version"

	"github.com/trusslab/octopos-filesystem/blockdev"
	"github.com/trusslab/octopos-filesystem/fs"
)

func New() *cobra.Command {
	var verbose int

	cmd := &cobra.Command{
		Use:               "octofs",
		Short:             "Inspect and modify an OctopOS partition",
		DisableAutoGenTag: true,
		SilenceUsage:      true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose > 0 {
				level = slog.LevelDebug
			}

			slog.SetDefault(slog.New(charmlog.NewWithOptions(os.Stderr, charmlog.Options{
				ReportTimestamp: true,
				Level:           charmlog.Level(level),
			})))
		},
	}

	cmd.AddCommand(formatCmd())
	cmd.AddCommand(lsCmd())
	cmd.AddCommand(catCmd())
	cmd.AddCommand(writeCmd())
	cmd.AddCommand(statCmd())
	cmd.AddCommand(version.Version())

	cmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "enable debug logging")

	return cmd
}

// openFS builds the filesystem over the configured block store and
// recovers (or formats) the partition.
func openFS(ctx context.Context, cfg *Config) (*fs.FileSystem, error) {
	log := clog.FromContext(ctx)

	dev, err := blockdev.NewDir(cfg.Store, log)
	if err != nil {
		return nil, err
	}

	fsys := fs.New(dev, fs.WithLogger(log))
	fsys.Init(cfg.Blocks)

	return fsys, nil
}
