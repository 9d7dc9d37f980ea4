package mcp

import (
	"context"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	appconfig "github.com/ecfix/ecfix/internal/adapters/outbound/config"
	"github.com/ecfix/ecfix/internal/adapters/outbound/crdschema"
	"github.com/ecfix/ecfix/internal/adapters/outbound/policyrepo"
	"github.com/ecfix/ecfix/internal/domain"
)

// registerResources registers all ecfix MCP resources on the given server.
func registerResources(s *server.MCPServer) {
	// 1. ecfix://schema - policy CRD spec schema fragment
	s.AddResource(
		mcplib.NewResource(
			"ecfix://schema",
			"Policy Schema",
			mcplib.WithResourceDescription("Spec schema fragment of the policy CRD"),
			mcplib.WithMIMEType("application/yaml"),
		),
		handleSchemaResource(),
	)

	// 2. ecfix://rules/{package}/{rule} - policy rule source (resource template)
	s.AddResourceTemplate(
		mcplib.NewResourceTemplate(
			"ecfix://rules/{package}/{rule}",
			"Rule Source",
			mcplib.WithTemplateDescription("Source code of a policy rule, with its package tests when present"),
			mcplib.WithTemplateMIMEType("text/plain"),
		),
		handleRuleResource(),
	)
}

func handleSchemaResource() server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		cfg, err := appconfig.New().Load(".")
		if err != nil {
			return nil, fmt.Errorf("loading configuration: %w", err)
		}

		fetcher := crdschema.NewFetcher(cfg.CRDSchemaURL, crdschema.NewCache())
		fragment, ok := fetcher.SpecSchema()
		if !ok {
			return nil, fmt.Errorf("policy schema is unavailable")
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      "ecfix://schema",
				MIMEType: "application/yaml",
				Text:     fragment,
			},
		}, nil
	}
}

func handleRuleResource() server.ResourceTemplateHandlerFunc {
	return func(_ context.Context, request mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		// Extract path segments from the arguments (populated by template matching)
		pkg, ok := request.Params.Arguments["package"].(string)
		if !ok || pkg == "" {
			return nil, fmt.Errorf("rule package is required")
		}
		rule, ok := request.Params.Arguments["rule"].(string)
		if !ok || rule == "" {
			return nil, fmt.Errorf("rule name is required")
		}

		cfg, err := appconfig.New().Load(".")
		if err != nil {
			return nil, fmt.Errorf("loading configuration: %w", err)
		}

		var cloner domain.RepoCloner
		if !cfg.NoClone {
			cloner = policyrepo.NewGitCloner()
		}
		resolver := policyrepo.New(cfg.PolicyRepoPath, cfg.PolicyRepoURL, cloner, nil)

		rc := resolver.Resolve(domain.RuleID{Package: pkg, Name: rule})
		if rc.SourceCode == "" {
			return nil, fmt.Errorf("rule %s.%s not found in policy repository", pkg, rule)
		}

		text := rc.SourceCode
		if rc.TestCode != "" {
			text += "\n\n" + rc.TestCode
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      request.Params.URI,
				MIMEType: "text/plain",
				Text:     text,
			},
		}, nil
	}
}
