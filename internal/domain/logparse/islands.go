package logparse

import "encoding/json"

// Island is a substring that forms a syntactically complete JSON value,
// located by balanced delimiter scanning. Offsets are relative to the text
// handed to ScanIslands.
type Island struct {
	Start int
	End   int
	Text  string
}

// Object reports whether the island is a JSON object (as opposed to an
// array).
func (i Island) Object() bool { return len(i.Text) > 0 && i.Text[0] == '{' }

// Decode unmarshals the island into v.
func (i Island) Decode(v any) error { return json.Unmarshal([]byte(i.Text), v) }

// ScanIslands finds top-level JSON islands in free-form text. Delimiters are
// matched with a stack and string/escape awareness, so braces inside JSON
// strings do not confuse the scan. A balanced span is only emitted when it
// is actually valid JSON; when it is not, scanning resumes just past the
// span's opening delimiter so islands nested in junk are still found. An
// opener left unbalanced at end of file is discarded.
func ScanIslands(text string) []Island {
	var islands []Island

	pos := 0
	for pos < len(text) {
		c := text[pos]
		if c != '{' && c != '[' {
			pos++
			continue
		}

		end, ok := balancedSpan(text, pos)
		if ok && json.Valid([]byte(text[pos:end])) {
			islands = append(islands, Island{Start: pos, End: end, Text: text[pos:end]})
			pos = end
			continue
		}
		// Balanced but invalid, or never closed: step past the opener and
		// keep looking.
		pos++
	}

	return islands
}

// balancedSpan returns the end offset (exclusive) of the delimiter-balanced
// span opening at start, or ok=false when the span never closes or closes
// with a mismatched delimiter.
func balancedSpan(text string, start int) (int, bool) {
	var stack []byte
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		c := text[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{', '[':
			stack = append(stack, c)
		case '}', ']':
			if len(stack) == 0 {
				return 0, false
			}
			open := stack[len(stack)-1]
			if (c == '}') != (open == '{') {
				return 0, false
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return i + 1, true
			}
		}
	}

	return 0, false
}
