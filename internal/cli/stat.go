package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func statCmd() *cobra.Command {
	var cf configFlags

	cmd := &cobra.Command{
		Use:   "stat FILE",
		Short: "Show a file's directory record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cf.resolve()
			if err != nil {
				return err
			}
			return StatImpl(cmd.Context(), cfg, args[0])
		},
	}

	cf.register(cmd)

	return cmd
}

func StatImpl(ctx context.Context, cfg *Config, filename string) error {
	fsys, err := openFS(ctx, cfg)
	if err != nil {
		return err
	}
	defer fsys.Close()

	info, ok := fsys.Stat(filename)
	if !ok {
		return fmt.Errorf("no such file: %s", filename)
	}

	fmt.Printf("name:        %s\n", info.Name)
	fmt.Printf("size:        %d\n", info.Size)
	fmt.Printf("start block: %d\n", info.StartBlock)
	fmt.Printf("num blocks:  %d\n", info.NumBlocks)

	return nil
}
