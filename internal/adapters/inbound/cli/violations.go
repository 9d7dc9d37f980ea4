package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ecfix/ecfix/internal/adapters/outbound/tui"
	"github.com/ecfix/ecfix/internal/application"
	"github.com/ecfix/ecfix/internal/domain"
)

func newExtractViolationsCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "violations <log_file>",
		Short: "Extract violations from a verification log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ex, err := application.NewExtractService().ExtractFile(args[0])
			if err != nil {
				return err
			}
			printWarnings(cmd, ex.Warnings)
			if !ex.ViolationsFound {
				fmt.Fprintln(cmd.ErrOrStderr(), "warning: validation section not found")
			}

			if jsonOutput {
				violations := ex.Violations
				if violations == nil {
					violations = []domain.Violation{}
				}
				return renderJSON(cmd, violations, true)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderViolations(ex.Violations))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output violations as JSON")

	return cmd
}

func printWarnings(cmd *cobra.Command, warnings []string) {
	for _, w := range warnings {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning:", w)
	}
}
