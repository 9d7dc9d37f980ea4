package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ecfix/ecfix/internal/domain"
)

func TestValidRule(t *testing.T) {
	assert.True(t, domain.ValidRule("cve.cve_blockers"))
	assert.True(t, domain.ValidRule("sbom_spdx.allowed_package_sources"))
	assert.True(t, domain.ValidRule("builtin.attestation.signature_check"))

	assert.False(t, domain.ValidRule(""))
	assert.False(t, domain.ValidRule("nodot"))
	assert.False(t, domain.ValidRule(".leading"))
	assert.False(t, domain.ValidRule("trailing."))
	assert.False(t, domain.ValidRule("has space.rule"))
}

func TestParseRuleID(t *testing.T) {
	id, ok := domain.ParseRuleID("sbom_spdx.allowed_package_sources")
	assert.True(t, ok)
	assert.Equal(t, "sbom_spdx", id.Package)
	assert.Equal(t, "allowed_package_sources", id.Name)
	assert.Equal(t, "sbom_spdx.allowed_package_sources", id.String())

	// Only the first dot splits; the rest stays in the name.
	id, ok = domain.ParseRuleID("builtin.attestation.signature_check")
	assert.True(t, ok)
	assert.Equal(t, "builtin", id.Package)
	assert.Equal(t, "attestation.signature_check", id.Name)

	_, ok = domain.ParseRuleID("nodot")
	assert.False(t, ok)
}

func TestPolicyConfig_JSONRoundTrip(t *testing.T) {
	until := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
	original := domain.PolicyConfig{
		Sources: []domain.PolicySource{
			{
				Name:       "Default",
				PolicyURLs: []string{"oci::quay.io/enterprise-contract/ec-release-policy:latest"},
				DataURLs:   []string{"git::https://github.com/release-engineering/rhtap-ec-policy//data"},
				Include:    []string{"@redhat"},
				Exclude:    []string{"cve.cve_blockers"},
				VolatileExclude: []domain.VolatileExclusion{
					{Value: "cve.cve_blockers", EffectiveUntil: &until},
				},
			},
		},
		PublicKey: "k8s://openshift-pipelines/public-key",
	}

	data, err := json.Marshal(original)
	assert.NoError(t, err)

	var decoded domain.PolicyConfig
	err = json.Unmarshal(data, &decoded)
	assert.NoError(t, err)

	assert.Equal(t, original.PublicKey, decoded.PublicKey)
	assert.Len(t, decoded.Sources, 1)
	assert.Equal(t, original.Sources[0].Name, decoded.Sources[0].Name)
	assert.Equal(t, original.Sources[0].PolicyURLs, decoded.Sources[0].PolicyURLs)
	assert.Equal(t, original.Sources[0].Include, decoded.Sources[0].Include)
	assert.Equal(t, original.Sources[0].Exclude, decoded.Sources[0].Exclude)
	assert.Len(t, decoded.Sources[0].VolatileExclude, 1)
	assert.Equal(t, "cve.cve_blockers", decoded.Sources[0].VolatileExclude[0].Value)
	assert.True(t, until.Equal(*decoded.Sources[0].VolatileExclude[0].EffectiveUntil))
}

func TestPolicySource_Valid(t *testing.T) {
	assert.True(t, domain.PolicySource{PolicyURLs: []string{"oci::x"}}.Valid())
	assert.False(t, domain.PolicySource{DataURLs: []string{"git::y"}}.Valid())
}

func TestVolatileExclusion_Expired(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	assert.True(t, domain.VolatileExclusion{EffectiveUntil: &past}.Expired(now))
	assert.False(t, domain.VolatileExclusion{EffectiveUntil: &future}.Expired(now))
	assert.False(t, domain.VolatileExclusion{}.Expired(now))
}

func TestComponent_UnmarshalNestedSourceGit(t *testing.T) {
	payload := `{"name": "api", "containerImage": "quay.io/acme/api:1", "source": {"git": {"url": "https://github.com/acme/api", "revision": "main", "dockerfileUrl": "Dockerfile"}}}`

	var c domain.Component
	err := json.Unmarshal([]byte(payload), &c)
	assert.NoError(t, err)

	assert.Equal(t, "api", c.Name)
	assert.Equal(t, "https://github.com/acme/api", c.GitURL)
	assert.Equal(t, "main", c.GitRevision)
	assert.Equal(t, "Dockerfile", c.DockerfilePath)
}

func TestComponent_JSONRoundTrip(t *testing.T) {
	original := domain.Component{
		Name:           "api",
		ContainerImage: "quay.io/acme/api:1",
		GitURL:         "https://github.com/acme/api",
		GitRevision:    "main",
		DockerfilePath: "Dockerfile",
	}

	data, err := json.Marshal(original)
	assert.NoError(t, err)

	var decoded domain.Component
	err = json.Unmarshal(data, &decoded)
	assert.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func TestExtraction_Accessors(t *testing.T) {
	ex := domain.Extraction{
		Components: []domain.Component{{Name: "api"}, {Name: "web"}},
		ImageRefs:  []string{"quay.io/acme/api:1", "quay.io/acme/web:1"},
	}

	c, ok := ex.ComponentByName("web")
	assert.True(t, ok)
	assert.Equal(t, "web", c.Name)

	_, ok = ex.ComponentByName("missing")
	assert.False(t, ok)

	first, ok := ex.FirstImageRef()
	assert.True(t, ok)
	assert.Equal(t, "quay.io/acme/api:1", first)

	empty := domain.Extraction{}
	_, ok = empty.FirstImageRef()
	assert.False(t, ok)
}
