package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/lockb/internal/app"
)

func (c *CLI) newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Verify that a text lockfile matches the binary lockfile",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			against, _ := cmd.Flags().GetString("against")
			return c.app.Check(cmd.Context(), app.CheckOptions{
				Input:   fileArg(args),
				Against: against,
			})
		},
	}
	cmd.Flags().String("against", "", "Text lockfile to compare with (default yarn.lock)")
	return cmd
}
