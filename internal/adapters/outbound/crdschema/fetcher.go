// Package crdschema fetches the EnterpriseContractPolicy CRD document and
// carves out the schema subtree describing policy configuration.
package crdschema

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"gopkg.in/yaml.v3"
)

// maxFragmentBytes keeps the fragment within the downstream prompt budget.
const maxFragmentBytes = 8000

type fetchState int

const (
	stateUninitialized fetchState = iota
	stateFetchOK
	stateFetchFailed
)

// Fetcher implements domain.SchemaSource. The document is fetched at most
// once per run; after a failed fetch every later call reports the schema as
// unavailable instead of retrying.
type Fetcher struct {
	url      string
	client   *http.Client
	cache    *Cache
	state    fetchState
	fragment string
	full     string
}

// NewFetcher builds a Fetcher for the given CRD URL. cache may be nil to
// disable the on-disk document cache.
func NewFetcher(url string, cache *Cache) *Fetcher {
	return &Fetcher{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
		cache:  cache,
	}
}

// SpecSchema returns the policy-configuration schema fragment, truncated to
// the prompt budget. ok is false when the document cannot be fetched or
// does not contain the expected subtree.
func (f *Fetcher) SpecSchema() (string, bool) {
	switch f.state {
	case stateFetchOK:
		return f.fragment, true
	case stateFetchFailed:
		return "", false
	}

	doc, err := f.fetchDocument()
	if err != nil {
		f.state = stateFetchFailed
		return "", false
	}
	fragment, err := SpecSubtree(doc)
	if err != nil {
		f.state = stateFetchFailed
		return "", false
	}

	f.full = fragment
	f.fragment = truncate(fragment, maxFragmentBytes)
	f.state = stateFetchOK
	return f.fragment, true
}

func (f *Fetcher) fetchDocument() ([]byte, error) {
	if f.cache != nil {
		if doc, ok := f.cache.Load(); ok {
			return doc, nil
		}
	}

	resp, err := f.client.Get(f.url)
	if err != nil {
		return nil, fmt.Errorf("fetching CRD schema: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching CRD schema: unexpected status %s", resp.Status)
	}
	doc, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading CRD schema: %w", err)
	}

	if f.cache != nil {
		_ = f.cache.Save(doc) // best-effort
	}
	return doc, nil
}

// SpecSubtree navigates a CRD document down to
// spec.versions[0].schema.openAPIV3Schema.properties.spec and returns that
// subtree re-serialized as YAML.
func SpecSubtree(doc []byte) (string, error) {
	var root map[string]any
	if err := yaml.Unmarshal(doc, &root); err != nil {
		return "", fmt.Errorf("parsing CRD document: %w", err)
	}

	spec, _ := root["spec"].(map[string]any)
	versions, _ := spec["versions"].([]any)
	if len(versions) == 0 {
		return "", fmt.Errorf("CRD document has no versions")
	}
	version, _ := versions[0].(map[string]any)
	schema, _ := version["schema"].(map[string]any)
	openAPI, _ := schema["openAPIV3Schema"].(map[string]any)
	props, _ := openAPI["properties"].(map[string]any)
	subtree, ok := props["spec"].(map[string]any)
	if !ok {
		return "", fmt.Errorf("CRD document has no spec schema subtree")
	}

	out, err := yaml.Marshal(subtree)
	if err != nil {
		return "", fmt.Errorf("serializing schema subtree: %w", err)
	}
	return string(out), nil
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "\n... (truncated)"
}
