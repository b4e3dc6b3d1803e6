package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func lsCmd() *cobra.Command {
	var cf configFlags

	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List the files on the partition",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cf.resolve()
			if err != nil {
				return err
			}
			return LsImpl(cmd.Context(), cfg)
		},
	}

	cf.register(cmd)

	return cmd
}

func LsImpl(ctx context.Context, cfg *Config) error {
	fsys, err := openFS(ctx, cfg)
	if err != nil {
		return err
	}
	defer fsys.Close()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSIZE\tSTART\tBLOCKS")
	for _, info := range fsys.Files() {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\n", info.Name, info.Size, info.StartBlock, info.NumBlocks)
	}

	return w.Flush()
}
