package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	octopos "github.com/trusslab/octopos-filesystem"
)

func catCmd() *cobra.Command {
	var cf configFlags

	cmd := &cobra.Command{
		Use:   "cat FILE",
		Short: "Print a file's contents to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cf.resolve()
			if err != nil {
				return err
			}
			return CatImpl(cmd.Context(), cfg, args[0])
		},
	}

	cf.register(cmd)

	return cmd
}

func CatImpl(ctx context.Context, cfg *Config, filename string) error {
	fsys, err := openFS(ctx, cfg)
	if err != nil {
		return err
	}
	defer fsys.Close()

	info, ok := fsys.Stat(filename)
	if !ok {
		return fmt.Errorf("no such file: %s", filename)
	}

	fd := fsys.Open(filename, octopos.ModeOpen)
	if fd == 0 {
		return fmt.Errorf("failed to open %s", filename)
	}
	defer fsys.CloseFile(fd)

	buf := make([]byte, info.Size)
	if n := fsys.Read(fd, buf, 0); n != info.Size {
		return fmt.Errorf("short read from %s: %d of %d bytes", filename, n, info.Size)
	}

	_, err = os.Stdout.Write(buf)
	return err
}
