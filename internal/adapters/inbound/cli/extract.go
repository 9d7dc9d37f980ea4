package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

func newExtractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract structured records from a verification log",
		Long:  "Standalone extractors for the individual record types of a Conforma verification log: violations, policy configuration, components, and image references.",
	}
	cmd.AddCommand(newExtractViolationsCmd())
	cmd.AddCommand(newExtractPolicyCmd())
	cmd.AddCommand(newExtractComponentsCmd())
	cmd.AddCommand(newExtractImageRefsCmd())
	return cmd
}

func renderJSON(cmd *cobra.Command, v any, pretty bool) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
