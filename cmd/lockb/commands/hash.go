package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/lockb/internal/app"
)

func (c *CLI) newHashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash [file]",
		Short: "Print the metadata hash of a binary lockfile",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Hash(cmd.Context(), app.HashOptions{
				Input:  fileArg(args),
				Stdout: cmd.OutOrStdout(),
			})
		},
	}
}
