package logparse

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/ecfix/ecfix/internal/domain"
)

var digestRefPattern = regexp.MustCompile(`^[^\s@]+@sha256:[a-f0-9]{64}$`)

// ValidImageRef reports whether s is an acceptable image reference. A
// reference carrying a digest must have exactly 64 hex characters after
// @sha256:; truncated digests are rejected outright. Tag-only references
// pass through as long as they contain no whitespace.
func ValidImageRef(s string) bool {
	if s == "" || strings.ContainsAny(s, " \t") {
		return false
	}
	if strings.Contains(s, "@") {
		return digestRefPattern.MatchString(s)
	}
	return true
}

// ExtractComponents locates the components JSON block anywhere in the log
// text. Both the "components" array form and the older single "component"
// object form are handled; the block may sit under an "application"
// envelope. found distinguishes "no block present" from "block present but
// empty".
func ExtractComponents(text string) (components []domain.Component, found bool, warnings []string) {
	for _, island := range ScanIslands(text) {
		if !island.Object() {
			continue
		}
		var probe map[string]json.RawMessage
		if err := island.Decode(&probe); err != nil {
			continue
		}
		if wrapped, ok := probe["application"]; ok {
			var inner map[string]json.RawMessage
			if err := json.Unmarshal(wrapped, &inner); err == nil && componentKeyed(inner) {
				probe = inner
			}
		}
		if !componentKeyed(probe) {
			continue
		}

		if raw, ok := probe["components"]; ok {
			var list []domain.Component
			if err := json.Unmarshal(raw, &list); err != nil {
				warnings = append(warnings, fmt.Sprintf("components block: %v", err))
				continue
			}
			return list, true, warnings
		}
		var single domain.Component
		if err := json.Unmarshal(probe["component"], &single); err != nil {
			warnings = append(warnings, fmt.Sprintf("component block: %v", err))
			continue
		}
		return []domain.Component{single}, true, warnings
	}

	return nil, false, warnings
}

func componentKeyed(m map[string]json.RawMessage) bool {
	if _, ok := m["components"]; ok {
		return true
	}
	_, ok := m["component"]
	return ok
}

// ExtractImageRefs collects image references from the validation section
// header: lone "ImageRef:" lines and the COMPONENTS: list. The header ends
// at the "Results:" line. When a COMPONENTS list is present it takes
// precedence over lone ImageRef lines, since the list is the authoritative
// multi-component form. Duplicates are dropped, first occurrence kept.
func ExtractImageRefs(sec Section) (refs []string, warnings []string) {
	var (
		singles      []string
		fromList     []string
		inComponents bool
		seen         = map[string]bool{}
	)

	add := func(dst *[]string, ref string) {
		if ref == "" || seen[ref] {
			return
		}
		if !ValidImageRef(ref) {
			warnings = append(warnings, fmt.Sprintf("validation section: rejecting malformed image reference %q", ref))
			return
		}
		seen[ref] = true
		*dst = append(*dst, ref)
	}

	for _, raw := range strings.Split(sec.Text, "\n") {
		line := strings.TrimSpace(raw)

		if strings.HasPrefix(line, "Results:") {
			break
		}
		if strings.HasPrefix(line, "COMPONENTS:") {
			inComponents = true
			continue
		}
		if inComponents && line == "" {
			inComponents = false
			continue
		}
		if ref, ok := strings.CutPrefix(line, "ImageRef:"); ok {
			if inComponents {
				add(&fromList, strings.TrimSpace(ref))
			} else {
				add(&singles, strings.TrimSpace(ref))
			}
		}
	}

	if len(fromList) > 0 {
		return fromList, warnings
	}
	return singles, warnings
}
