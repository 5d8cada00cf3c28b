package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/lockb/internal/app"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [file]",
		Short: "Convert the binary lockfile whenever it changes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")
			return c.app.Watch(cmd.Context(), app.WatchOptions{
				Input:  fileArg(args),
				Output: output,
				Stdout: cmd.OutOrStdout(),
			})
		},
	}
	cmd.Flags().StringP("output", "o", "", "Write the text lockfile to a file instead of stdout")
	return cmd
}
