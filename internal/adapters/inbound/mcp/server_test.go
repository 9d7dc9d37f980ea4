package mcp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mcpadapter "github.com/ecfix/ecfix/internal/adapters/inbound/mcp"
)

func TestNewECFixMCPServer(t *testing.T) {
	s := mcpadapter.NewECFixMCPServer()
	require.NotNil(t, s)
}

func TestMCPServerHasTools(t *testing.T) {
	s := mcpadapter.NewECFixMCPServer()
	require.NotNil(t, s)

	tools := s.ListTools()
	require.NotNil(t, tools)

	expectedTools := []string{
		"ecfix_extract_violations",
		"ecfix_extract_policy",
		"ecfix_extract_components",
		"ecfix_extract_image_refs",
		"ecfix_resolve",
	}

	for _, name := range expectedTools {
		_, exists := tools[name]
		assert.True(t, exists, "tool %q should be registered", name)
	}

	assert.Len(t, tools, len(expectedTools), "should have exactly %d tools", len(expectedTools))
}
