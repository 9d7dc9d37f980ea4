package cli

import "github.com/spf13/cobra"

var (
	version = "dev"
	commit  = "none"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "ecfix",
		Short:         "Turn Conforma verify logs into fix proposals",
		Long:          "ecfix extracts violations, policy configuration, and component metadata from Conforma verification logs, groups violations by rule, and assembles the context an external proposal generator needs to suggest fixes.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newExtractCmd())
	cmd.AddCommand(newResolveCmd())
	cmd.AddCommand(newMCPCmd())
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}
