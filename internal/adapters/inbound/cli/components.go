package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ecfix/ecfix/internal/adapters/outbound/tui"
	"github.com/ecfix/ecfix/internal/application"
	"github.com/ecfix/ecfix/internal/domain"
)

func newExtractComponentsCmd() *cobra.Command {
	var (
		jsonOutput bool
		name       string
	)

	cmd := &cobra.Command{
		Use:   "components <log_file>",
		Short: "Extract component metadata from a verification log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ex, err := application.NewExtractService().ExtractFile(args[0])
			if err != nil {
				return err
			}
			printWarnings(cmd, ex.Warnings)
			if !ex.ComponentsFound {
				return fmt.Errorf("no components block found in %s", args[0])
			}

			components := ex.Components
			if name != "" {
				// Lookup is exact and case-sensitive; a miss is an error,
				// never a silent empty result.
				comp, ok := ex.ComponentByName(name)
				if !ok {
					return fmt.Errorf("no component named %q in %s", name, args[0])
				}
				components = []domain.Component{comp}
			}

			if jsonOutput {
				if len(components) == 1 {
					return renderJSON(cmd, components[0], true)
				}
				return renderJSON(cmd, components, true)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderComponents(components))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output components as JSON")
	cmd.Flags().StringVar(&name, "name", "", "Select a single component by exact name")

	return cmd
}
