package cli_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecfix/ecfix/internal/adapters/inbound/cli"
	"github.com/ecfix/ecfix/internal/domain"
)

const fixtureLog = "../../../../testdata/build.log"

func runCommand(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd := cli.NewRootCmdForTest()
	out := new(bytes.Buffer)
	errBuf := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(errBuf)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errBuf.String(), err
}

func TestExtractViolations_JSON(t *testing.T) {
	stdout, _, err := runCommand(t, "extract", "violations", fixtureLog, "--json")
	require.NoError(t, err)

	var violations []domain.Violation
	require.NoError(t, json.Unmarshal([]byte(stdout), &violations))
	require.Len(t, violations, 3)
	assert.Equal(t, "sbom_spdx.allowed_package_sources", violations[0].Rule)
	assert.Equal(t, "cve.cve_blockers", violations[2].Rule)
	assert.Contains(t, violations[0].ImageRef, "@sha256:")
}

func TestExtractViolations_TUI(t *testing.T) {
	stdout, _, err := runCommand(t, "extract", "violations", fixtureLog)
	require.NoError(t, err)

	assert.Contains(t, stdout, "Found 3 violation(s)")
	assert.Contains(t, stdout, "cve.cve_blockers")
}

func TestExtractViolations_NoValidationSection(t *testing.T) {
	log := writeTempLog(t, "no markers at all\n")

	stdout, stderr, err := runCommand(t, "extract", "violations", log, "--json")
	require.NoError(t, err)

	assert.Contains(t, stderr, "validation section not found")
	// Empty JSON array, never null.
	assert.Equal(t, "[]", trimmed(stdout))
}

func TestExtractViolations_MissingFile(t *testing.T) {
	_, _, err := runCommand(t, "extract", "violations", "does-not-exist.log")
	assert.Error(t, err)
}

func TestExtractPolicy_JSON(t *testing.T) {
	stdout, _, err := runCommand(t, "extract", "policy", fixtureLog, "--json")
	require.NoError(t, err)

	var cfg domain.PolicyConfig
	require.NoError(t, json.Unmarshal([]byte(stdout), &cfg))
	require.Len(t, cfg.Sources, 1)
	assert.Equal(t, "Default", cfg.Sources[0].Name)
	assert.Equal(t, []string{"@redhat"}, cfg.Sources[0].Include)
	assert.Equal(t, "k8s://openshift-pipelines/public-key", cfg.PublicKey)
}

func TestExtractPolicy_NotFound(t *testing.T) {
	log := writeTempLog(t, "STEP-VALIDATE\nbody\n")

	_, _, err := runCommand(t, "extract", "policy", log)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no policy configuration found")
}

func TestExtractComponents_JSON(t *testing.T) {
	stdout, _, err := runCommand(t, "extract", "components", fixtureLog, "--json")
	require.NoError(t, err)

	var components []domain.Component
	require.NoError(t, json.Unmarshal([]byte(stdout), &components))
	require.Len(t, components, 2)
	assert.Equal(t, "api", components[0].Name)
	assert.Equal(t, "https://github.com/acme/api", components[0].GitURL)
	assert.Equal(t, "web", components[1].Name)
}

func TestExtractComponents_ByName(t *testing.T) {
	stdout, _, err := runCommand(t, "extract", "components", fixtureLog, "--json", "--name", "web")
	require.NoError(t, err)

	var comp domain.Component
	require.NoError(t, json.Unmarshal([]byte(stdout), &comp))
	assert.Equal(t, "web", comp.Name)
	assert.Equal(t, "quay.io/acme/web:1.4.2", comp.ContainerImage)
}

func TestExtractComponents_NameMiss(t *testing.T) {
	_, _, err := runCommand(t, "extract", "components", fixtureLog, "--name", "billing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"billing"`)
}

func TestExtractImageRefs_First(t *testing.T) {
	stdout, _, err := runCommand(t, "extract", "image-refs", fixtureLog, "--first")
	require.NoError(t, err)

	assert.Equal(t, "quay.io/acme/api@sha256:6c3c624b58dbbcd3c0dd82b4c53f04194d1247c6eebdaab7c610cf7d66709b3b", trimmed(stdout))
}

func TestExtractImageRefs_List(t *testing.T) {
	stdout, _, err := runCommand(t, "extract", "image-refs", fixtureLog)
	require.NoError(t, err)

	assert.Contains(t, stdout, "1. quay.io/acme/api@sha256:")
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := runCommand(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "ecfix")
}
