// Package commands implements the CLI commands for lockb.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/lockb/internal/app"
	"go.trai.ch/lockb/internal/build"
)

// CLI represents the command line interface for lockb.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	ConfigureLogging(jsonOutput bool)
	Convert(ctx context.Context, opts app.ConvertOptions) error
	Hash(ctx context.Context, opts app.HashOptions) error
	Check(ctx context.Context, opts app.CheckOptions) error
	Watch(ctx context.Context, opts app.WatchOptions) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	c := &CLI{app: a}

	rootCmd := &cobra.Command{
		Use:   "lockb [file]",
		Short: "Print a bun.lockb binary lockfile as a yarn.lock v1 text lockfile",
		Long: "Decode a bun.lockb binary lockfile and print it as a yarn.lock v1 text lockfile.\n" +
			"The file defaults to ./bun.lockb or the input set in .lockb.yaml.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			jsonOutput, _ := cmd.Flags().GetBool("log-json")
			c.app.ConfigureLogging(jsonOutput)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if show, _ := cmd.Flags().GetBool("show-version"); show {
				printVersion(cmd.OutOrStdout())
				return nil
			}
			output, _ := cmd.Flags().GetString("output")
			return c.app.Convert(cmd.Context(), app.ConvertOptions{
				Input:  fileArg(args),
				Output: output,
				Stdout: cmd.OutOrStdout(),
			})
		},
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"
	// -V is accepted as well as -v.
	rootCmd.Flags().BoolP("show-version", "V", false, "Print the application version")
	_ = rootCmd.Flags().MarkHidden("show-version")

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.Flags().StringP("output", "o", "", "Write the text lockfile to a file instead of stdout")
	rootCmd.PersistentFlags().Bool("log-json", false, "Emit logs as JSON")

	c.rootCmd = rootCmd

	rootCmd.AddCommand(c.newHashCmd())
	rootCmd.AddCommand(c.newCheckCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// fileArg returns the optional positional lockfile argument.
func fileArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
