package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ecfix/ecfix/internal/adapters/outbound/tui"
	"github.com/ecfix/ecfix/internal/application"
)

func newExtractPolicyCmd() *cobra.Command {
	var (
		jsonOutput bool
		pretty     bool
	)

	cmd := &cobra.Command{
		Use:   "policy <log_file>",
		Short: "Extract the effective policy configuration from a verification log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ex, err := application.NewExtractService().ExtractFile(args[0])
			if err != nil {
				return err
			}
			printWarnings(cmd, ex.Warnings)
			if ex.Policy == nil {
				return fmt.Errorf("no policy configuration found in %s", args[0])
			}

			if jsonOutput {
				return renderJSON(cmd, ex.Policy, pretty)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderPolicy(ex.Policy))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the policy as JSON")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print the JSON output")

	return cmd
}
