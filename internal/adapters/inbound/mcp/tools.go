package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	appconfig "github.com/ecfix/ecfix/internal/adapters/outbound/config"
	"github.com/ecfix/ecfix/internal/adapters/outbound/crdschema"
	"github.com/ecfix/ecfix/internal/adapters/outbound/policyrepo"
	"github.com/ecfix/ecfix/internal/adapters/outbound/runs"
	"github.com/ecfix/ecfix/internal/application"
	"github.com/ecfix/ecfix/internal/domain"
)

// registerTools registers all ecfix MCP tools on the given server.
func registerTools(s *server.MCPServer) {
	// 1. ecfix_extract_violations
	s.AddTool(
		mcplib.NewTool("ecfix_extract_violations",
			mcplib.WithDescription("Extract policy violations from a verification log file as JSON"),
			mcplib.WithString("log_file",
				mcplib.Required(),
				mcplib.Description("Path to the verification log file"),
			),
		),
		handleExtractViolations(),
	)

	// 2. ecfix_extract_policy
	s.AddTool(
		mcplib.NewTool("ecfix_extract_policy",
			mcplib.WithDescription("Extract the effective policy configuration from a verification log file as JSON"),
			mcplib.WithString("log_file",
				mcplib.Required(),
				mcplib.Description("Path to the verification log file"),
			),
		),
		handleExtractPolicy(),
	)

	// 3. ecfix_extract_components
	s.AddTool(
		mcplib.NewTool("ecfix_extract_components",
			mcplib.WithDescription("Extract component metadata (image, git URL, revision) from a verification log file"),
			mcplib.WithString("log_file",
				mcplib.Required(),
				mcplib.Description("Path to the verification log file"),
			),
			mcplib.WithString("name",
				mcplib.Description("Select a single component by exact name"),
			),
		),
		handleExtractComponents(),
	)

	// 4. ecfix_extract_image_refs
	s.AddTool(
		mcplib.NewTool("ecfix_extract_image_refs",
			mcplib.WithDescription("Extract image references from a verification log file"),
			mcplib.WithString("log_file",
				mcplib.Required(),
				mcplib.Description("Path to the verification log file"),
			),
			mcplib.WithBoolean("first",
				mcplib.Description("Return only the first image reference"),
			),
		),
		handleExtractImageRefs(),
	)

	// 5. ecfix_resolve
	s.AddTool(
		mcplib.NewTool("ecfix_resolve",
			mcplib.WithDescription("Group violations by rule and resolve rule source, tests, and CRD schema for each group"),
			mcplib.WithString("log_file",
				mcplib.Required(),
				mcplib.Description("Path to the verification log file"),
			),
			mcplib.WithString("policy_repo",
				mcplib.Description("Path to a local policy repository clone"),
			),
			mcplib.WithBoolean("no_clone",
				mcplib.Description("Never clone the policy repository on demand"),
			),
		),
		handleResolve(),
	)
}

func handleExtractViolations() server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		ex, result := extractLog(request)
		if result != nil {
			return result, nil
		}
		violations := ex.Violations
		if violations == nil {
			violations = []domain.Violation{}
		}
		return jsonResult(violations)
	}
}

func handleExtractPolicy() server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		ex, result := extractLog(request)
		if result != nil {
			return result, nil
		}
		if ex.Policy == nil {
			return errorResult("no policy configuration found in log"), nil
		}
		return jsonResult(ex.Policy)
	}
}

func handleExtractComponents() server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		ex, result := extractLog(request)
		if result != nil {
			return result, nil
		}
		if !ex.ComponentsFound {
			return errorResult("no components block found in log"), nil
		}
		if name, _ := request.GetArguments()["name"].(string); name != "" {
			comp, ok := ex.ComponentByName(name)
			if !ok {
				return errorResult(fmt.Sprintf("no component named %q in log", name)), nil
			}
			return jsonResult(comp)
		}
		return jsonResult(ex.Components)
	}
}

func handleExtractImageRefs() server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		ex, result := extractLog(request)
		if result != nil {
			return result, nil
		}
		if first, _ := request.GetArguments()["first"].(bool); first {
			first, ok := ex.FirstImageRef()
			if !ok {
				return errorResult("no image references found in log"), nil
			}
			return textResult(first), nil
		}
		refs := ex.ImageRefs
		if refs == nil {
			refs = []string{}
		}
		return jsonResult(refs)
	}
}

func handleResolve() server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		logFile, err := request.RequireString("log_file")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		cfg, err := appconfig.New().Load(".")
		if err != nil {
			return errorResult(fmt.Sprintf("loading configuration: %v", err)), nil
		}
		args := request.GetArguments()
		if repo, _ := args["policy_repo"].(string); repo != "" {
			cfg.PolicyRepoPath = repo
		}
		if noClone, _ := args["no_clone"].(bool); noClone {
			cfg.NoClone = true
		}

		report, err := newResolveService(cfg).ResolveFile(logFile)
		if err != nil {
			return errorResult(fmt.Sprintf("resolve failed: %v", err)), nil
		}
		return jsonResult(report)
	}
}

// extractLog runs the extraction service for the request's log_file. The
// second return value is non-nil when the request failed and should be
// returned as-is.
func extractLog(request mcplib.CallToolRequest) (*domain.Extraction, *mcplib.CallToolResult) {
	logFile, err := request.RequireString("log_file")
	if err != nil {
		return nil, errorResult(err.Error())
	}
	ex, err := application.NewExtractService().ExtractFile(logFile)
	if err != nil {
		return nil, errorResult(fmt.Sprintf("extraction failed: %v", err))
	}
	return ex, nil
}

// newResolveService wires the standard adapters for an MCP-initiated run.
// Proposals stay disabled over MCP; the caller is the assistant itself.
func newResolveService(cfg domain.Config) *application.ResolveService {
	fetcher := crdschema.NewFetcher(cfg.CRDSchemaURL, crdschema.NewCache())

	var cloner domain.RepoCloner
	if !cfg.NoClone {
		cloner = policyrepo.NewGitCloner()
	}
	resolver := policyrepo.New(cfg.PolicyRepoPath, cfg.PolicyRepoURL, cloner, fetcher)

	return application.NewResolveService(
		application.NewExtractService(),
		resolver,
		runs.New(cfg.RunsDir),
		crdschema.NewValidator(fetcher),
		nil,
	)
}

// jsonResult marshals v to JSON and returns it as a text content result.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// textResult returns a plain text content result.
func textResult(text string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(text)},
	}
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
