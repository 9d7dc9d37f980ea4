package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ecfix/ecfix/internal/application"
)

func newExtractImageRefsCmd() *cobra.Command {
	var (
		jsonOutput bool
		firstOnly  bool
	)

	cmd := &cobra.Command{
		Use:   "image-refs <log_file>",
		Short: "Extract image references from a verification log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ex, err := application.NewExtractService().ExtractFile(args[0])
			if err != nil {
				return err
			}
			printWarnings(cmd, ex.Warnings)

			refs := ex.ImageRefs
			if firstOnly {
				first, ok := ex.FirstImageRef()
				if !ok {
					return fmt.Errorf("no image references found in %s", args[0])
				}
				refs = []string{first}
			}

			switch {
			case jsonOutput && firstOnly:
				fmt.Fprintln(cmd.OutOrStdout(), refs[0])
			case jsonOutput:
				return renderJSON(cmd, refs, true)
			case firstOnly:
				fmt.Fprintln(cmd.OutOrStdout(), refs[0])
			default:
				if len(refs) == 0 {
					return fmt.Errorf("no image references found in %s", args[0])
				}
				for i, ref := range refs {
					fmt.Fprintf(cmd.OutOrStdout(), "%d. %s\n", i+1, ref)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output references as JSON")
	cmd.Flags().BoolVar(&firstOnly, "first", false, "Output only the first image reference")

	return cmd
}
