package domain

import "fmt"

// Defaults for the Conforma policy repository and CRD schema document.
const (
	DefaultPolicyRepoURL = "https://github.com/conforma/policy.git"
	DefaultCRDSchemaURL  = "https://raw.githubusercontent.com/conforma/crds/refs/heads/main/config/crd/bases/appstudio.redhat.com_enterprisecontractpolicies.yaml"
	DefaultPolicyRepoDir = "policy"
	DefaultRunsDir       = "pipelineRuns"
)

// Config holds run-level configuration loaded from .ecfix.yaml. Flags on the
// command line override whatever is loaded here.
type Config struct {
	PolicyRepoPath string `yaml:"policy_repo_path" json:"policy_repo_path,omitempty"`
	PolicyRepoURL  string `yaml:"policy_repo_url"  json:"policy_repo_url,omitempty"`
	CRDSchemaURL   string `yaml:"crd_schema_url"   json:"crd_schema_url,omitempty"`
	RunsDir        string `yaml:"runs_dir"         json:"runs_dir,omitempty"`
	NoClone        bool   `yaml:"no_clone"         json:"no_clone,omitempty"`
}

// DefaultConfig returns the configuration used when no .ecfix.yaml exists.
func DefaultConfig() Config {
	return Config{
		PolicyRepoPath: DefaultPolicyRepoDir,
		PolicyRepoURL:  DefaultPolicyRepoURL,
		CRDSchemaURL:   DefaultCRDSchemaURL,
		RunsDir:        DefaultRunsDir,
	}
}

// Validate catches obviously broken configuration before a run starts.
func (c Config) Validate() error {
	if c.PolicyRepoPath == "" {
		return fmt.Errorf("policy_repo_path must not be empty")
	}
	if !c.NoClone && c.PolicyRepoURL == "" {
		return fmt.Errorf("policy_repo_url must not be empty unless no_clone is set")
	}
	return nil
}
