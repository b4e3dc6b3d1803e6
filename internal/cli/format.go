package cli

import (
	"context"

	"github.com/chainguard-dev/clog"
	"github.com/spf13/cobra"

	octopos "github.com/trusslab/octopos-filesystem"
	"github.com/trusslab/octopos-filesystem/blockdev"
	"github.com/trusslab/octopos-filesystem/fs"
)

func formatCmd() *cobra.Command {
	var cf configFlags

	cmd := &cobra.Command{
		Use:   "format",
		Short: "Write a fresh, empty directory page to the partition",
		Long: `Format wipes the directory page and reinitializes it with the
partition signature and zero files. Payload blocks are not touched,
but every file record is gone, so their contents are unreachable.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cf.resolve()
			if err != nil {
				return err
			}
			return FormatImpl(cmd.Context(), cfg)
		},
	}

	cf.register(cmd)

	return cmd
}

func FormatImpl(ctx context.Context, cfg *Config) error {
	log := clog.FromContext(ctx)

	dev, err := blockdev.NewDir(cfg.Store, log)
	if err != nil {
		return err
	}

	// blank the directory page so Init sees no signature and
	// formats from scratch
	zero := make([]byte, octopos.DirDataSize)
	dev.WriteBlocks(zero, 0, octopos.DirBlocks)

	fsys := fs.New(dev, fs.WithLogger(log))
	fsys.Init(cfg.Blocks)
	fsys.Close()

	log.Infof("formatted partition: %d blocks in %s", cfg.Blocks, cfg.Store)

	return nil
}
