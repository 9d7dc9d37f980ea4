package domain

// ContextResolver resolves the source, tests, and schema fragment for one
// rule. Resolution never fails as a whole; artifacts that cannot be located
// come back as empty fields.
type ContextResolver interface {
	Resolve(rule RuleID) RuleContext
}

// RepoCloner clones a remote git repository into a local directory.
type RepoCloner interface {
	Clone(url, dir string) error
}

// SchemaSource provides the CRD schema fragment describing policy
// configuration. ok is false when the schema is unavailable.
type SchemaSource interface {
	SpecSchema() (fragment string, ok bool)
}

// PolicyValidator checks an extracted policy config against the CRD schema.
// Findings are warnings; validation never aborts a run.
type PolicyValidator interface {
	Validate(cfg *PolicyConfig) []string
}

// RunLoader loads example pipelineRun definitions from a local directory.
type RunLoader interface {
	// LoadAll returns every definition concatenated with document
	// separators, or "" when the directory holds none.
	LoadAll() (string, error)
	// BestMatch returns the single definition whose filename best matches
	// the given component name, or "" when nothing matches.
	BestMatch(componentName string) (string, error)
}

// ProposalGenerator is the external collaborator that turns one resolved
// rule into a fix proposal.
type ProposalGenerator interface {
	Generate(in ProposalInput) (string, error)
}

// ConfigLoader reads the project-level run configuration.
type ConfigLoader interface {
	Load(dir string) (Config, error)
}
