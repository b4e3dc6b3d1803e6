package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/chainguard-dev/clog"
	"github.com/spf13/cobra"

	octopos "github.com/trusslab/octopos-filesystem"
)

func writeCmd() *cobra.Command {
	var cf configFlags
	var from string
	var offset uint32

	cmd := &cobra.Command{
		Use:   "write FILE [DATA]",
		Short: "Write data into a file, creating it if needed",
		Long: `Write stores DATA (or the contents of --from, or stdin) into FILE
at the given offset. The file is created when it does not exist.
Writes past the current end of the file are rejected; writes the
allocator cannot back come up short.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cf.resolve()
			if err != nil {
				return err
			}

			var data []byte
			switch {
			case len(args) == 2:
				data = []byte(args[1])
			case from != "":
				data, err = os.ReadFile(from)
				if err != nil {
					return err
				}
			default:
				data, err = io.ReadAll(os.Stdin)
				if err != nil {
					return err
				}
			}

			return WriteImpl(cmd.Context(), cfg, args[0], data, offset)
		},
	}

	cf.register(cmd)
	cmd.Flags().StringVar(&from, "from", "", "read the data from this host file instead of the arguments")
	cmd.Flags().Uint32Var(&offset, "offset", 0, "byte offset to write at")

	return cmd
}

func WriteImpl(ctx context.Context, cfg *Config, filename string, data []byte, offset uint32) error {
	log := clog.FromContext(ctx)

	fsys, err := openFS(ctx, cfg)
	if err != nil {
		return err
	}
	defer fsys.Close()

	fd := fsys.Open(filename, octopos.ModeOpenCreate)
	if fd == 0 {
		return fmt.Errorf("failed to open or create %s", filename)
	}
	defer fsys.CloseFile(fd)

	n := fsys.Write(fd, data, offset)
	if n != uint32(len(data)) {
		return fmt.Errorf("short write to %s: %d of %d bytes", filename, n, len(data))
	}

	log.Infof("wrote %d bytes to %s at offset %d", n, filename, offset)

	return nil
}
