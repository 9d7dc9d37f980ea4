package logparse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ecfix/ecfix/internal/domain/logparse"
)

func configSection(text string) logparse.Section {
	sections := logparse.ScanSections("STEP-SHOW-CONFIG\n" + text)
	sec, _ := sections.ShowConfig()
	return sec
}

func TestExtractPolicy_FlatObject(t *testing.T) {
	sec := configSection(
		"Loaded policy:\n" +
			`{"sources": [{"name": "Default", "policy": ["oci::quay.io/enterprise-contract/ec-release-policy:latest"], "data": ["git::https://github.com/release-engineering/rhtap-ec-policy//data"]}], "publicKey": "k8s://openshift-pipelines/public-key"}` + "\n")

	cfg, warnings := logparse.ExtractPolicy(sec)

	assert.Empty(t, warnings)
	assert.NotNil(t, cfg)
	assert.Equal(t, "k8s://openshift-pipelines/public-key", cfg.PublicKey)
	assert.Len(t, cfg.Sources, 1)
	assert.Equal(t, "Default", cfg.Sources[0].Name)
	assert.Equal(t, []string{"oci::quay.io/enterprise-contract/ec-release-policy:latest"}, cfg.Sources[0].PolicyURLs)
	assert.Equal(t, []string{"git::https://github.com/release-engineering/rhtap-ec-policy//data"}, cfg.Sources[0].DataURLs)
}

func TestExtractPolicy_PolicyEnvelope(t *testing.T) {
	sec := configSection(
		`{"policy": {"sources": [{"policy": ["oci::registry/policy:latest"]}]}}` + "\n")

	cfg, warnings := logparse.ExtractPolicy(sec)

	assert.Empty(t, warnings)
	assert.NotNil(t, cfg)
	assert.Len(t, cfg.Sources, 1)
}

func TestExtractPolicy_NestedConfigAndVolatileConfig(t *testing.T) {
	sec := configSection(
		`{"sources": [{` +
			`"policy": ["oci::registry/policy:latest"],` +
			`"config": {"include": ["@redhat"], "exclude": ["cve.cve_blockers"]},` +
			`"volatileConfig": {"exclude": [{"value": "cve.cve_blockers", "effectiveUntil": "2026-12-31T00:00:00Z"}]}` +
			`}]}` + "\n")

	cfg, warnings := logparse.ExtractPolicy(sec)

	assert.Empty(t, warnings)
	assert.NotNil(t, cfg)
	src := cfg.Sources[0]
	assert.Equal(t, []string{"@redhat"}, src.Include)
	assert.Equal(t, []string{"cve.cve_blockers"}, src.Exclude)
	assert.Len(t, src.VolatileExclude, 1)
	assert.Equal(t, "cve.cve_blockers", src.VolatileExclude[0].Value)
	assert.NotNil(t, src.VolatileExclude[0].EffectiveUntil)
}

func TestExtractPolicy_SkipsNonPolicyIslands(t *testing.T) {
	sec := configSection(
		`{"level": "info", "msg": "loading configuration"}` + "\n" +
			`{"sources": [{"policy": ["oci::registry/policy:latest"]}]}` + "\n")

	cfg, warnings := logparse.ExtractPolicy(sec)

	assert.Empty(t, warnings)
	assert.NotNil(t, cfg)
	assert.Len(t, cfg.Sources, 1)
}

func TestExtractPolicy_DropsSourceWithoutPolicyURLs(t *testing.T) {
	sec := configSection(
		`{"sources": [{"name": "empty", "data": ["git::somewhere"]}, {"policy": ["oci::registry/policy:latest"]}]}` + "\n")

	cfg, warnings := logparse.ExtractPolicy(sec)

	assert.NotNil(t, cfg)
	assert.Len(t, cfg.Sources, 1)
	assert.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "dropping source 0")
}

func TestExtractPolicy_NothingParseable(t *testing.T) {
	sec := configSection("no json here\n")

	cfg, warnings := logparse.ExtractPolicy(sec)

	assert.Nil(t, cfg)
	assert.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "no parseable policy object")
}
