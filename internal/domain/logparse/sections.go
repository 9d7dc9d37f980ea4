// Package logparse turns loosely-structured verification log text into typed
// records. It separates "where is the data" (section markers, JSON islands)
// from "what does the data mean" (per-record-type extractors).
package logparse

import (
	"regexp"
	"strings"
)

// Section kinds the extractors care about. Any other STEP- marker still
// delimits sections but its content is not retained.
const (
	KindValidate   = "VALIDATE"
	KindShowConfig = "SHOW-CONFIG"
)

// Section is one marker-delimited region of a log. Start and End are byte
// offsets into the original text; Text excludes the marker line itself.
type Section struct {
	Name  string
	Start int
	End   int
	Text  string
}

// Sections maps section name to the section's content. When a marker
// repeats, the last occurrence wins: later pipeline steps supersede earlier
// retries of the same step.
type Sections map[string]Section

// Validate returns the validation step's section, if present.
func (s Sections) Validate() (Section, bool) {
	sec, ok := s[KindValidate]
	return sec, ok
}

// ShowConfig returns the configuration-dump step's section, if present.
func (s Sections) ShowConfig() (Section, bool) {
	sec, ok := s[KindShowConfig]
	return sec, ok
}

var markerPattern = regexp.MustCompile(`^STEP-([A-Z0-9][A-Z0-9-]*)$`)

// ScanSections splits log text into marker-delimited sections. A marker is a
// line whose trimmed content is STEP-<NAME>; a section runs from the line
// after its marker to the next marker or end of file. Text with no markers
// yields an empty map, not an error.
func ScanSections(text string) Sections {
	sections := make(Sections)

	var (
		open   bool
		name   string
		start  int
		offset int
	)
	flush := func(end int) {
		if !open {
			return
		}
		sections[name] = Section{
			Name:  name,
			Start: start,
			End:   end,
			Text:  text[start:end],
		}
		open = false
	}

	for offset < len(text) {
		lineEnd := strings.IndexByte(text[offset:], '\n')
		next := len(text)
		if lineEnd >= 0 {
			next = offset + lineEnd + 1
		}
		line := strings.TrimSpace(text[offset:next])

		if m := markerPattern.FindStringSubmatch(line); m != nil {
			flush(offset)
			open = true
			name = m[1]
			start = next
		}
		offset = next
	}
	flush(len(text))

	return sections
}
