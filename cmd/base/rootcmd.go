package base

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "cisample",
	Short:         "CI sample app",
	Long:          "A tiny HTTP server answering every request with a greeting",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func AddSubCommands(cmds ...*cobra.Command) {
	rootCmd.AddCommand(cmds...)
}

// SetDefaultCommand makes the root command behave like cmd when invoked without a subcommand.
func SetDefaultCommand(cmd *cobra.Command) {
	rootCmd.Flags().AddFlagSet(cmd.Flags())
	rootCmd.RunE = cmd.RunE
}

// Execute runs the root command with args instead of os.Args.
func Execute(ctx context.Context, args ...string) error {
	rootCmd.SetArgs(append([]string{}, args...))
	return rootCmd.ExecuteContext(ctx)
}

func Run() {
	if err := Execute(context.Background(), os.Args[1:]...); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
