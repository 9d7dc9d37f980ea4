package application

import (
	"fmt"

	"github.com/ecfix/ecfix/internal/domain"
)

// maxRunExampleBytes keeps the attached pipelineRun example within the
// downstream prompt budget.
const maxRunExampleBytes = 3000

// ResolveService orchestrates the pipeline for one log file:
// extract → group → resolve context → hand off to the proposal driver,
// strictly sequentially, one rule at a time.
type ResolveService struct {
	extract   *ExtractService
	resolver  domain.ContextResolver
	runs      domain.RunLoader
	validator domain.PolicyValidator
	proposer  domain.ProposalGenerator
}

// NewResolveService wires the pipeline. runs, validator, and proposer may
// be nil; the corresponding step is then skipped.
func NewResolveService(
	extract *ExtractService,
	resolver domain.ContextResolver,
	runs domain.RunLoader,
	validator domain.PolicyValidator,
	proposer domain.ProposalGenerator,
) *ResolveService {
	return &ResolveService{
		extract:   extract,
		resolver:  resolver,
		runs:      runs,
		validator: validator,
		proposer:  proposer,
	}
}

// ResolveFile processes one log file end to end. The only fatal error is an
// unreadable or empty input; every downstream miss becomes an absent field
// or a warning on the report.
func (s *ResolveService) ResolveFile(path string) (*domain.ResolveReport, error) {
	ex, err := s.extract.ExtractFile(path)
	if err != nil {
		return nil, err
	}

	report := &domain.ResolveReport{LogFile: path, Extraction: ex}

	if s.validator != nil && ex.Policy != nil {
		report.Warnings = append(report.Warnings, s.validator.Validate(ex.Policy)...)
	}

	for _, group := range domain.GroupViolations(ex.Violations) {
		report.Resolutions = append(report.Resolutions, s.resolveGroup(group, ex, report))
	}

	return report, nil
}

func (s *ResolveService) resolveGroup(group domain.ViolationGroup, ex *domain.Extraction, report *domain.ResolveReport) domain.RuleResolution {
	res := domain.RuleResolution{Group: group, Context: domain.RuleContext{Rule: group.Rule}}

	if id, ok := domain.ParseRuleID(group.Rule); ok && s.resolver != nil {
		res.Context = s.resolver.Resolve(id)
	}

	// A group without a representative image proceeds with no component
	// attached; image absence is informational, not fatal.
	if comp, ok := domain.MatchComponent(group.RepresentativeImage, ex.Components); ok {
		res.Component = &comp
	}

	res.RunExample = s.runExample(res.Component)

	if s.proposer != nil {
		text, err := s.proposer.Generate(domain.ProposalInput{
			Rule:       group.Rule,
			Group:      group,
			Context:    res.Context,
			Policy:     ex.Policy,
			Component:  res.Component,
			RunExample: res.RunExample,
		})
		if err != nil {
			report.Warnings = append(report.Warnings, fmt.Sprintf("rule %s: %v", group.Rule, err))
		} else {
			res.Proposal = text
		}
	}

	return res
}

func (s *ResolveService) runExample(comp *domain.Component) string {
	if s.runs == nil {
		return ""
	}
	if comp != nil && comp.Name != "" {
		if match, err := s.runs.BestMatch(comp.Name); err == nil && match != "" {
			return clip(match)
		}
	}
	all, err := s.runs.LoadAll()
	if err != nil {
		return ""
	}
	return clip(all)
}

func clip(s string) string {
	if len(s) <= maxRunExampleBytes {
		return s
	}
	return s[:maxRunExampleBytes] + "\n... (truncated)"
}
