package domain

import (
	"encoding/json"
	"regexp"
	"strings"
	"time"
)

// Violation is a single policy-rule failure extracted from a verification log.
// Rule is always non-empty and has the dotted package.rule_name form; every
// other field is optional.
type Violation struct {
	Rule        string `json:"rule"`
	Message     string `json:"message,omitempty"`
	ImageRef    string `json:"image_ref,omitempty"`
	Term        string `json:"term,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Solution    string `json:"solution,omitempty"`
}

var rulePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+(\.[A-Za-z0-9_-]+)+$`)

// ValidRule reports whether s is a well-formed dotted rule identifier.
func ValidRule(s string) bool { return rulePattern.MatchString(s) }

// RuleID is a parsed package.rule_name identifier.
type RuleID struct {
	Package string
	Name    string
}

// ParseRuleID splits a dotted rule identifier at its first dot.
func ParseRuleID(s string) (RuleID, bool) {
	if !ValidRule(s) {
		return RuleID{}, false
	}
	pkg, name, _ := strings.Cut(s, ".")
	return RuleID{Package: pkg, Name: name}, true
}

func (r RuleID) String() string { return r.Package + "." + r.Name }

// ViolationGroup holds all violations that share a rule, in the order they
// appeared in the log. RepresentativeImage is the image ref of the first
// violation in the group that has one; empty when none do.
type ViolationGroup struct {
	Rule                string      `json:"rule"`
	Violations          []Violation `json:"violations"`
	RepresentativeImage string      `json:"representative_image,omitempty"`
}

func (g ViolationGroup) Count() int { return len(g.Violations) }

// PolicyConfig is the effective policy extracted from the configuration-dump
// section of a log.
type PolicyConfig struct {
	Sources   []PolicySource `json:"sources"`
	RuleData  map[string]any `json:"ruleData,omitempty"`
	PublicKey string         `json:"publicKey,omitempty"`
}

// PolicySource is one configured origin of policy rules and data. A source
// without at least one policy URL is invalid and is dropped at extraction
// time.
type PolicySource struct {
	Name            string              `json:"name,omitempty"`
	PolicyURLs      []string            `json:"policy"`
	DataURLs        []string            `json:"data,omitempty"`
	Include         []string            `json:"include,omitempty"`
	Exclude         []string            `json:"exclude,omitempty"`
	VolatileExclude []VolatileExclusion `json:"volatileExclude,omitempty"`
	RuleData        map[string]any      `json:"ruleData,omitempty"`
}

// policySourceWire mirrors the on-the-wire shape, where include/exclude live
// under a nested "config" key and volatile exclusions under "volatileConfig".
// The flat form emitted by MarshalJSON is also accepted.
type policySourceWire struct {
	Name       string         `json:"name"`
	PolicyURLs []string       `json:"policy"`
	DataURLs   []string       `json:"data"`
	Include    []string       `json:"include"`
	Exclude    []string       `json:"exclude"`
	RuleData   map[string]any `json:"ruleData"`
	Config     *struct {
		Include []string `json:"include"`
		Exclude []string `json:"exclude"`
	} `json:"config"`
	VolatileExclude []VolatileExclusion `json:"volatileExclude"`
	VolatileConfig  *struct {
		Exclude []VolatileExclusion `json:"exclude"`
	} `json:"volatileConfig"`
}

func (s *PolicySource) UnmarshalJSON(data []byte) error {
	var w policySourceWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	s.Name = w.Name
	s.PolicyURLs = w.PolicyURLs
	s.DataURLs = w.DataURLs
	s.Include = w.Include
	s.Exclude = w.Exclude
	s.RuleData = w.RuleData
	s.VolatileExclude = w.VolatileExclude
	if w.Config != nil {
		if len(s.Include) == 0 {
			s.Include = w.Config.Include
		}
		if len(s.Exclude) == 0 {
			s.Exclude = w.Config.Exclude
		}
	}
	if w.VolatileConfig != nil && len(s.VolatileExclude) == 0 {
		s.VolatileExclude = w.VolatileConfig.Exclude
	}
	return nil
}

// Valid reports whether the source carries at least one policy URL.
func (s PolicySource) Valid() bool { return len(s.PolicyURLs) > 0 }

// VolatileExclusion is a time-bounded or image-scoped rule suppression.
type VolatileExclusion struct {
	Value          string     `json:"value"`
	EffectiveUntil *time.Time `json:"effectiveUntil,omitempty"`
	ImageDigest    string     `json:"imageDigest,omitempty"`
	Reference      string     `json:"reference,omitempty"`
}

// Expired reports whether the exclusion's window has passed at the given
// instant. Exclusions without an EffectiveUntil never expire.
func (v VolatileExclusion) Expired(now time.Time) bool {
	return v.EffectiveUntil != nil && now.After(*v.EffectiveUntil)
}

// Component is an application component referenced by a log, carrying the
// source repository coordinates needed to locate its pipeline definitions.
type Component struct {
	Name           string `json:"name"`
	ContainerImage string `json:"containerImage,omitempty"`
	GitURL         string `json:"git_url,omitempty"`
	GitRevision    string `json:"git_revision,omitempty"`
	DockerfilePath string `json:"dockerfile_path,omitempty"`
}

// componentWire accepts the nested source.git form used in logs alongside
// the flat form emitted by MarshalJSON.
type componentWire struct {
	Name           string `json:"name"`
	ContainerImage string `json:"containerImage"`
	GitURL         string `json:"git_url"`
	GitRevision    string `json:"git_revision"`
	DockerfilePath string `json:"dockerfile_path"`
	Source         *struct {
		Git *struct {
			URL           string `json:"url"`
			Revision      string `json:"revision"`
			DockerfileURL string `json:"dockerfileUrl"`
		} `json:"git"`
	} `json:"source"`
}

func (c *Component) UnmarshalJSON(data []byte) error {
	var w componentWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	c.Name = w.Name
	c.ContainerImage = w.ContainerImage
	c.GitURL = w.GitURL
	c.GitRevision = w.GitRevision
	c.DockerfilePath = w.DockerfilePath
	if w.Source != nil && w.Source.Git != nil {
		if c.GitURL == "" {
			c.GitURL = w.Source.Git.URL
		}
		if c.GitRevision == "" {
			c.GitRevision = w.Source.Git.Revision
		}
		if c.DockerfilePath == "" {
			c.DockerfilePath = w.Source.Git.DockerfileURL
		}
	}
	return nil
}

// RuleContext bundles everything resolved for one rule. Empty fields mean
// the artifact could not be located; that is a reportable state, not an
// error.
type RuleContext struct {
	Rule           string `json:"rule"`
	SourceCode     string `json:"source_code,omitempty"`
	TestCode       string `json:"test_code,omitempty"`
	SchemaFragment string `json:"schema_fragment,omitempty"`
}

// Extraction is everything pulled out of a single log file. Found flags
// distinguish "section absent or unparseable" from a legitimately empty
// result.
type Extraction struct {
	ViolationsFound bool          `json:"violations_found"`
	Violations      []Violation   `json:"violations,omitempty"`
	Policy          *PolicyConfig `json:"policy,omitempty"`
	ComponentsFound bool          `json:"components_found"`
	Components      []Component   `json:"components,omitempty"`
	ImageRefs       []string      `json:"image_refs,omitempty"`
	Warnings        []string      `json:"warnings,omitempty"`
}

// ComponentByName returns the component with the exact given name.
func (e *Extraction) ComponentByName(name string) (Component, bool) {
	for _, c := range e.Components {
		if c.Name == name {
			return c, true
		}
	}
	return Component{}, false
}

// FirstImageRef returns the first extracted image reference, if any.
func (e *Extraction) FirstImageRef() (string, bool) {
	if len(e.ImageRefs) == 0 {
		return "", false
	}
	return e.ImageRefs[0], true
}

// RuleResolution pairs one violation group with everything resolved for it.
type RuleResolution struct {
	Group      ViolationGroup `json:"group"`
	Context    RuleContext    `json:"context"`
	Component  *Component     `json:"component,omitempty"`
	RunExample string         `json:"run_example,omitempty"`
	Proposal   string         `json:"proposal,omitempty"`
}

// ResolveReport is the output of a full pipeline run over one log file.
type ResolveReport struct {
	LogFile     string           `json:"log_file"`
	Extraction  *Extraction      `json:"extraction"`
	Resolutions []RuleResolution `json:"resolutions,omitempty"`
	Warnings    []string         `json:"warnings,omitempty"`
}

// ProposalInput is the tuple handed to the external proposal driver, one
// rule at a time.
type ProposalInput struct {
	Rule       string         `json:"rule"`
	Group      ViolationGroup `json:"group"`
	Context    RuleContext    `json:"context"`
	Policy     *PolicyConfig  `json:"policy,omitempty"`
	Component  *Component     `json:"component,omitempty"`
	RunExample string         `json:"run_example,omitempty"`
}
