package logparse

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/ecfix/ecfix/internal/domain"
)

// ExtractViolations pulls every violation record out of the validation
// section, in file order. Two encodings coexist in real logs: violation
// objects embedded as JSON islands (flat or with a metadata.code wrapper)
// and textual report blocks introduced by a [Violation] marker line.
// Malformed records are skipped individually; the returned warnings
// summarize what was lost at the section level.
func ExtractViolations(sec Section) ([]domain.Violation, []string) {
	var (
		found    []placedViolation
		warnings []string
		skipped  int
	)

	islands := ScanIslands(sec.Text)
	for _, island := range islands {
		vs, bad := violationsFromIsland(island)
		skipped += bad
		for _, v := range vs {
			found = append(found, placedViolation{offset: island.Start, v: v})
		}
	}

	blocks := scanViolationBlocks(sec.Text)
	for _, b := range blocks {
		if insideAny(b.offset, islands) {
			continue
		}
		found = append(found, b)
	}

	sort.SliceStable(found, func(i, j int) bool { return found[i].offset < found[j].offset })

	violations := make([]domain.Violation, 0, len(found))
	for _, p := range found {
		if !domain.ValidRule(p.v.Rule) {
			skipped++
			continue
		}
		violations = append(violations, p.v)
	}

	if skipped > 0 {
		warnings = append(warnings, fmt.Sprintf("validation section: skipped %d malformed violation record(s)", skipped))
	}
	return violations, warnings
}

type placedViolation struct {
	offset int
	v      domain.Violation
}

func insideAny(offset int, islands []Island) bool {
	for _, i := range islands {
		if offset >= i.Start && offset < i.End {
			return true
		}
	}
	return false
}

// violationsFromIsland interprets one JSON island as zero or more violation
// records. Recognized shapes: a single violation object, an array of them,
// an object with a "violations" array, and the result-report form where
// violations hang off a "components" array. bad counts elements that looked
// like violations but could not be mapped.
func violationsFromIsland(island Island) (vs []domain.Violation, bad int) {
	var raw any
	if err := island.Decode(&raw); err != nil {
		return nil, 0
	}

	collect := func(item any) {
		m, ok := item.(map[string]any)
		if !ok {
			return
		}
		if !violationShaped(m) {
			return
		}
		v, ok := violationFromMap(m)
		if !ok {
			bad++
			return
		}
		vs = append(vs, v)
	}

	switch node := raw.(type) {
	case []any:
		for _, item := range node {
			collect(item)
		}
	case map[string]any:
		if list, ok := node["violations"].([]any); ok {
			for _, item := range list {
				collect(item)
			}
			return vs, bad
		}
		if comps, ok := node["components"].([]any); ok {
			for _, c := range comps {
				cm, ok := c.(map[string]any)
				if !ok {
					continue
				}
				image, _ := cm["containerImage"].(string)
				list, _ := cm["violations"].([]any)
				before := len(vs)
				for _, item := range list {
					collect(item)
				}
				// Violations reported per component inherit its image when
				// they carry none of their own.
				for i := before; i < len(vs); i++ {
					if vs[i].ImageRef == "" {
						vs[i].ImageRef = image
					}
				}
			}
			return vs, bad
		}
		collect(node)
	}
	return vs, bad
}

func violationShaped(m map[string]any) bool {
	if _, ok := m["rule"]; ok {
		return true
	}
	if meta, ok := m["metadata"].(map[string]any); ok {
		_, ok := meta["code"]
		return ok
	}
	return false
}

func violationFromMap(m map[string]any) (domain.Violation, bool) {
	meta, _ := m["metadata"].(map[string]any)

	pick := func(keys ...string) string {
		for _, k := range keys {
			if s, ok := m[k].(string); ok && s != "" {
				return s
			}
			if s, ok := meta[k].(string); ok && s != "" {
				return s
			}
		}
		return ""
	}

	v := domain.Violation{
		Rule:        pick("rule", "code"),
		Message:     pick("message", "msg", "reason"),
		ImageRef:    pick("image_ref", "imageRef"),
		Term:        pick("term"),
		Title:       pick("title"),
		Description: pick("description"),
		Solution:    pick("solution"),
	}
	if v.Rule == "" {
		return domain.Violation{}, false
	}
	return v, true
}

var blockMarker = regexp.MustCompile(`\[Violation\]\s+(\S+)\s*$`)

// Field markers of the textual block form; anything else is a continuation
// line of the current field.
var blockFields = map[string]func(*domain.Violation) *string{
	"ImageRef":    func(v *domain.Violation) *string { return &v.ImageRef },
	"Reason":      func(v *domain.Violation) *string { return &v.Message },
	"Term":        func(v *domain.Violation) *string { return &v.Term },
	"Title":       func(v *domain.Violation) *string { return &v.Title },
	"Description": func(v *domain.Violation) *string { return &v.Description },
	"Solution":    func(v *domain.Violation) *string { return &v.Solution },
}

// scanViolationBlocks parses the textual report form: a marker line naming
// the rule, followed by "Field: value" lines with indented continuations,
// terminated by a blank line.
func scanViolationBlocks(text string) []placedViolation {
	var blocks []placedViolation

	offset := 0
	lines := strings.SplitAfter(text, "\n")
	i := 0
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])
		m := blockMarker.FindStringSubmatch(line)
		if m == nil {
			offset += len(lines[i])
			i++
			continue
		}

		v := domain.Violation{Rule: m[1]}
		start := offset
		offset += len(lines[i])
		i++

		var field *string
		var value []string
		store := func() {
			if field != nil && len(value) > 0 {
				*field = strings.TrimSpace(strings.Join(value, "\n"))
			}
		}

		for i < len(lines) {
			line := strings.TrimSpace(lines[i])
			if line == "" {
				break
			}
			name, rest, isField := cutField(line)
			if isField {
				store()
				field = blockFields[name](&v)
				value = []string{rest}
			} else if field != nil {
				value = append(value, line)
			} else if v.Message == "" {
				// Free text before any field marker continues the reason.
				v.Message = line
			}
			offset += len(lines[i])
			i++
		}
		store()

		blocks = append(blocks, placedViolation{offset: start, v: v})
	}

	return blocks
}

func cutField(line string) (name, rest string, ok bool) {
	for f := range blockFields {
		if strings.HasPrefix(line, f+":") {
			return f, strings.TrimSpace(line[len(f)+1:]), true
		}
	}
	return "", "", false
}
