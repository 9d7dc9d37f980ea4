package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecfix/ecfix/internal/adapters/outbound/config"
	"github.com/ecfix/ecfix/internal/domain"
)

func TestYAMLLoader_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := config.New().Load(t.TempDir())

	assert.NoError(t, err)
	assert.Equal(t, domain.DefaultConfig(), cfg)
}

func TestYAMLLoader_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".ecfix.yaml"),
		[]byte("policy_repo_path: /srv/policy\nno_clone: true\n"), 0644))

	cfg, err := config.New().Load(dir)

	assert.NoError(t, err)
	assert.Equal(t, "/srv/policy", cfg.PolicyRepoPath)
	assert.True(t, cfg.NoClone)
	// Unset fields keep their defaults.
	assert.Equal(t, domain.DefaultCRDSchemaURL, cfg.CRDSchemaURL)
	assert.Equal(t, domain.DefaultRunsDir, cfg.RunsDir)
}

func TestYAMLLoader_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".ecfix.yaml"),
		[]byte("policy_repo_path: [broken\n"), 0644))

	_, err := config.New().Load(dir)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "parsing .ecfix.yaml")
}

func TestYAMLLoader_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".ecfix.yaml"),
		[]byte("policy_repo_path: \"\"\n"), 0644))

	_, err := config.New().Load(dir)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid .ecfix.yaml")
}
