package logparse

import (
	"encoding/json"
	"fmt"

	"github.com/ecfix/ecfix/internal/domain"
)

// ExtractPolicy locates the effective-policy JSON object inside the
// configuration-dump section and maps it to a PolicyConfig. The object may
// be wrapped in a {"policy": ...} envelope and is surrounded by unrelated
// log noise; the first island that parses into a policy shape wins. Sources
// without a policy URL are dropped with a warning rather than failing the
// whole parse. A nil config with warnings means the section existed but
// held nothing parseable.
func ExtractPolicy(sec Section) (*domain.PolicyConfig, []string) {
	var warnings []string

	for _, island := range ScanIslands(sec.Text) {
		if !island.Object() {
			continue
		}
		cfg, ok := decodePolicy(island)
		if !ok {
			continue
		}

		kept := cfg.Sources[:0]
		for i, src := range cfg.Sources {
			if !src.Valid() {
				warnings = append(warnings, fmt.Sprintf("policy config: dropping source %d: no policy URLs", i))
				continue
			}
			kept = append(kept, src)
		}
		cfg.Sources = kept
		return cfg, warnings
	}

	warnings = append(warnings, "configuration section: no parseable policy object found")
	return nil, warnings
}

// decodePolicy tries the wrapped and unwrapped encodings of the policy
// object. An island only qualifies when it actually carries policy content,
// so arbitrary JSON noise in the section is passed over.
func decodePolicy(island Island) (*domain.PolicyConfig, bool) {
	var probe map[string]json.RawMessage
	if err := island.Decode(&probe); err != nil {
		return nil, false
	}

	payload := []byte(island.Text)
	if wrapped, ok := probe["policy"]; ok {
		payload = wrapped
		probe = nil
		if err := json.Unmarshal(wrapped, &probe); err != nil {
			return nil, false
		}
	}

	if !policyShaped(probe) {
		return nil, false
	}

	var cfg domain.PolicyConfig
	if err := json.Unmarshal(payload, &cfg); err != nil {
		return nil, false
	}
	return &cfg, true
}

func policyShaped(m map[string]json.RawMessage) bool {
	if _, ok := m["sources"]; ok {
		return true
	}
	if _, ok := m["publicKey"]; ok {
		return true
	}
	return false
}
