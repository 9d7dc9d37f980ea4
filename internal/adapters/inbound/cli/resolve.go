package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	appconfig "github.com/ecfix/ecfix/internal/adapters/outbound/config"
	"github.com/ecfix/ecfix/internal/adapters/outbound/crdschema"
	"github.com/ecfix/ecfix/internal/adapters/outbound/policyrepo"
	"github.com/ecfix/ecfix/internal/adapters/outbound/proposal"
	"github.com/ecfix/ecfix/internal/adapters/outbound/runs"
	"github.com/ecfix/ecfix/internal/adapters/outbound/tui"
	"github.com/ecfix/ecfix/internal/application"
	"github.com/ecfix/ecfix/internal/domain"
)

func newResolveCmd() *cobra.Command {
	var (
		jsonOutput bool
		policyRepo string
		runsDir    string
		crdURL     string
		noClone    bool
	)

	cmd := &cobra.Command{
		Use:   "resolve <log_file>",
		Short: "Run the full pipeline over a verification log",
		Long:  "Extract and group violations, resolve rule source, tests, and CRD schema for each group, and hand each rule to the external proposal driver (set " + proposal.CommandEnv + " to enable proposals).",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := appconfig.New().Load(".")
			if err != nil {
				return fmt.Errorf("loading configuration: %w", err)
			}
			if policyRepo != "" {
				cfg.PolicyRepoPath = policyRepo
			}
			if runsDir != "" {
				cfg.RunsDir = runsDir
			}
			if crdURL != "" {
				cfg.CRDSchemaURL = crdURL
			}
			if noClone {
				cfg.NoClone = true
			}

			svc := newResolveService(cfg)
			report, err := svc.ResolveFile(args[0])
			if err != nil {
				return err
			}

			if jsonOutput {
				return renderJSON(cmd, report, true)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderReport(report))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the report as JSON")
	cmd.Flags().StringVar(&policyRepo, "policy-repo", "", "Path to a local policy repository clone")
	cmd.Flags().StringVar(&runsDir, "runs-dir", "", "Directory of example pipelineRun definitions")
	cmd.Flags().StringVar(&crdURL, "crd-url", "", "URL of the policy CRD document")
	cmd.Flags().BoolVar(&noClone, "no-clone", false, "Never clone the policy repository on demand")

	return cmd
}

func newResolveService(cfg domain.Config) *application.ResolveService {
	fetcher := crdschema.NewFetcher(cfg.CRDSchemaURL, crdschema.NewCache())

	var cloner domain.RepoCloner
	if !cfg.NoClone {
		cloner = policyrepo.NewGitCloner()
	}
	resolver := policyrepo.New(cfg.PolicyRepoPath, cfg.PolicyRepoURL, cloner, fetcher)

	var proposer domain.ProposalGenerator
	if driver, ok := proposal.FromEnv(); ok {
		proposer = driver
	}

	return application.NewResolveService(
		application.NewExtractService(),
		resolver,
		runs.New(cfg.RunsDir),
		crdschema.NewValidator(fetcher),
		proposer,
	)
}
