package crdschema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/ecfix/ecfix/internal/domain"
)

// Validator implements domain.PolicyValidator by checking an extracted
// policy config against the CRD's spec schema. Findings come back as
// warnings; a missing or uncompilable schema downgrades to "validation
// skipped", never an error.
type Validator struct {
	fetcher *Fetcher
}

func NewValidator(f *Fetcher) *Validator {
	return &Validator{fetcher: f}
}

func (v *Validator) Validate(cfg *domain.PolicyConfig) []string {
	if cfg == nil {
		return nil
	}
	if _, ok := v.fetcher.SpecSchema(); !ok {
		return []string{"policy validation skipped: CRD schema unavailable"}
	}
	// The untruncated subtree is used for compilation; the truncated
	// fragment is only a prompt artifact.
	return ValidateAgainst(v.fetcher.full, cfg)
}

// ValidateAgainst checks cfg against a YAML schema fragment.
func ValidateAgainst(fragmentYAML string, cfg *domain.PolicyConfig) []string {
	schema, err := compileFragment(fragmentYAML)
	if err != nil {
		return []string{fmt.Sprintf("policy validation skipped: %v", err)}
	}

	raw, err := json.Marshal(cfg)
	if err != nil {
		return []string{fmt.Sprintf("policy validation skipped: %v", err)}
	}
	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return []string{fmt.Sprintf("policy validation skipped: %v", err)}
	}

	if err := schema.Validate(payload); err != nil {
		return []string{fmt.Sprintf("policy config does not conform to CRD schema: %v", err)}
	}
	return nil
}

func compileFragment(fragmentYAML string) (*jsonschema.Schema, error) {
	var node map[string]any
	if err := yaml.Unmarshal([]byte(fragmentYAML), &node); err != nil {
		return nil, fmt.Errorf("parsing schema fragment: %w", err)
	}
	raw, err := json.Marshal(node)
	if err != nil {
		return nil, fmt.Errorf("converting schema fragment: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("crd-spec.json", bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("adding schema resource: %w", err)
	}
	schema, err := compiler.Compile("crd-spec.json")
	if err != nil {
		return nil, fmt.Errorf("compiling schema: %w", err)
	}
	return schema, nil
}
