package tui_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ecfix/ecfix/internal/adapters/outbound/tui"
	"github.com/ecfix/ecfix/internal/domain"
)

func sampleReport() *domain.ResolveReport {
	return &domain.ResolveReport{
		LogFile: "testdata/build.log",
		Extraction: &domain.Extraction{
			ViolationsFound: true,
			Warnings:        []string{"validation section: skipped 1 malformed violation record(s)"},
		},
		Resolutions: []domain.RuleResolution{
			{
				Group: domain.ViolationGroup{
					Rule: "sbom_spdx.allowed_package_sources",
					Violations: []domain.Violation{
						{Rule: "sbom_spdx.allowed_package_sources"},
						{Rule: "sbom_spdx.allowed_package_sources"},
					},
					RepresentativeImage: "quay.io/acme/api:1",
				},
				Context: domain.RuleContext{
					Rule:       "sbom_spdx.allowed_package_sources",
					SourceCode: "package sbom_spdx\n",
				},
				Component: &domain.Component{Name: "api"},
				Proposal:  "widen the allowed source list",
			},
			{
				Group:   domain.ViolationGroup{Rule: "cve.cve_blockers", Violations: []domain.Violation{{Rule: "cve.cve_blockers"}}},
				Context: domain.RuleContext{Rule: "cve.cve_blockers"},
			},
		},
		Warnings: []string{"rule cve.cve_blockers: proposal command failed"},
	}
}

func TestRenderReport_ContainsRulesAndCounts(t *testing.T) {
	output := tui.RenderReport(sampleReport())

	assert.Contains(t, output, "ecfix")
	assert.Contains(t, output, "2 rule(s) violated")
	assert.Contains(t, output, "sbom_spdx.allowed_package_sources")
	assert.Contains(t, output, "(2 violations)")
	assert.Contains(t, output, "cve.cve_blockers")
}

func TestRenderReport_ArtifactPresence(t *testing.T) {
	output := tui.RenderReport(sampleReport())

	assert.Contains(t, output, "rule source")
	assert.Contains(t, output, "rule tests unavailable")
	assert.Contains(t, output, "CRD schema unavailable")
}

func TestRenderReport_ProposalAndWarnings(t *testing.T) {
	output := tui.RenderReport(sampleReport())

	assert.Contains(t, output, "Proposal")
	assert.Contains(t, output, "widen the allowed source list")
	assert.Contains(t, output, "proposal command failed")
	assert.Contains(t, output, "skipped 1 malformed violation record")
}

func TestRenderReport_MissingImage(t *testing.T) {
	output := tui.RenderReport(sampleReport())

	assert.Contains(t, output, "quay.io/acme/api:1")
	assert.Contains(t, output, "image unknown")
	assert.Contains(t, output, "component api")
}

func TestRenderViolations(t *testing.T) {
	output := tui.RenderViolations([]domain.Violation{
		{Rule: "cve.cve_blockers", Message: "critical CVE found", Solution: "rebuild on a patched base"},
	})

	assert.Contains(t, output, "Found 1 violation(s)")
	assert.Contains(t, output, "cve.cve_blockers")
	assert.Contains(t, output, "critical CVE found")
	assert.Contains(t, output, "rebuild on a patched base")
}

func TestRenderViolations_Empty(t *testing.T) {
	assert.Contains(t, tui.RenderViolations(nil), "No violations found")
}

func TestRenderPolicy(t *testing.T) {
	output := tui.RenderPolicy(&domain.PolicyConfig{
		Sources: []domain.PolicySource{{
			Name:       "Default",
			PolicyURLs: []string{"oci::registry/policy:latest"},
			Exclude:    []string{"cve.cve_blockers"},
		}},
		PublicKey: "k8s://ns/key",
	})

	assert.Contains(t, output, "Policy: 1 source(s)")
	assert.Contains(t, output, "Default")
	assert.Contains(t, output, "oci::registry/policy:latest")
	assert.Contains(t, output, "cve.cve_blockers")
	assert.Contains(t, output, "public key present")
}

func TestRenderPolicy_Nil(t *testing.T) {
	assert.Contains(t, tui.RenderPolicy(nil), "No policy configuration found")
}

func TestRenderComponents(t *testing.T) {
	output := tui.RenderComponents([]domain.Component{
		{Name: "api", ContainerImage: "quay.io/acme/api:1", GitURL: "https://github.com/acme/api"},
	})

	assert.Contains(t, output, "Found 1 component(s)")
	assert.Contains(t, output, "api")
	assert.Contains(t, output, "quay.io/acme/api:1")
	assert.Contains(t, output, "https://github.com/acme/api")
}
