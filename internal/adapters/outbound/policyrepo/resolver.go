// Package policyrepo resolves rule context from a local clone of the policy
// repository, cloning it on demand at most once per run.
package policyrepo

import (
	"os"
	"path/filepath"

	"github.com/ecfix/ecfix/internal/domain"
)

// Rule files live under release/<package>/ (or policy/release/<package>/ in
// a full repo checkout), possibly one subdirectory deeper. Extensions are
// tried in order.
var (
	releaseRoots = []string{filepath.Join("policy", "release"), "release"}
	ruleExts     = []string{".rego", ".go"}
)

type cloneState int

const (
	stateUninitialized cloneState = iota
	stateCloneOK
	stateCloneFailed
)

// Resolver implements domain.ContextResolver against an on-disk policy
// repository. The first lookup that finds no usable checkout triggers a
// single clone attempt; after a failed attempt every later lookup goes
// straight to "source unavailable" instead of re-hitting the network.
// Source, test, and schema sub-resolutions are independent: a miss in one
// never blocks the others.
type Resolver struct {
	repoPath  string
	remoteURL string
	cloner    domain.RepoCloner
	schema    domain.SchemaSource
	state     cloneState
}

// New builds a Resolver rooted at repoPath. A nil cloner disables the
// on-demand clone; a nil schema source leaves schema fragments empty.
func New(repoPath, remoteURL string, cloner domain.RepoCloner, schema domain.SchemaSource) *Resolver {
	return &Resolver{repoPath: repoPath, remoteURL: remoteURL, cloner: cloner, schema: schema}
}

func (r *Resolver) Resolve(rule domain.RuleID) domain.RuleContext {
	ctx := domain.RuleContext{Rule: rule.String()}

	if r.ensureRepo() {
		ctx.SourceCode = r.findRuleFile(rule.Package, sourceNames(rule))
		ctx.TestCode = r.findRuleFile(rule.Package, testNames(rule))
	}
	if r.schema != nil {
		if fragment, ok := r.schema.SpecSchema(); ok {
			ctx.SchemaFragment = fragment
		}
	}

	return ctx
}

// ensureRepo reports whether a usable checkout exists, cloning at most once
// across the resolver's lifetime.
func (r *Resolver) ensureRepo() bool {
	switch r.state {
	case stateCloneOK:
		return true
	case stateCloneFailed:
		return false
	}

	if r.checkoutReady() {
		r.state = stateCloneOK
		return true
	}
	if r.cloner == nil {
		r.state = stateCloneFailed
		return false
	}
	if err := r.cloner.Clone(r.remoteURL, r.repoPath); err != nil || !r.checkoutReady() {
		r.state = stateCloneFailed
		return false
	}
	r.state = stateCloneOK
	return true
}

func (r *Resolver) checkoutReady() bool {
	for _, root := range releaseRoots {
		if info, err := os.Stat(filepath.Join(r.repoPath, root)); err == nil && info.IsDir() {
			return true
		}
	}
	return false
}

func sourceNames(rule domain.RuleID) []string {
	names := make([]string, 0, len(ruleExts))
	for _, ext := range ruleExts {
		names = append(names, rule.Name+ext)
	}
	return names
}

func testNames(rule domain.RuleID) []string {
	names := make([]string, 0, 2*len(ruleExts))
	for _, ext := range ruleExts {
		names = append(names, rule.Name+"_test"+ext)
	}
	for _, ext := range ruleExts {
		names = append(names, rule.Package+"_test"+ext)
	}
	return names
}

// findRuleFile looks for the first of names under every release root's
// package directory, then one subdirectory deeper, and returns its content.
func (r *Resolver) findRuleFile(pkg string, names []string) string {
	for _, root := range releaseRoots {
		pkgDir := filepath.Join(r.repoPath, root, pkg)

		for _, name := range names {
			if body, ok := readFile(filepath.Join(pkgDir, name)); ok {
				return body
			}
		}

		entries, err := os.ReadDir(pkgDir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			for _, name := range names {
				if body, ok := readFile(filepath.Join(pkgDir, entry.Name(), name)); ok {
					return body
				}
			}
		}
	}
	return ""
}

func readFile(path string) (string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	return string(data), true
}
