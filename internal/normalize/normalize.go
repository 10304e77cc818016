// Package normalize recovers JSON embedded in free-text model output.
//
// Models routinely wrap the JSON they were asked for in prose or markdown fences.
// Extraction scans for an opening '[' or '{', follows bracket depth (ignoring
// brackets inside JSON strings) to the matching close, and strictly parses that
// span. An opener that never balances is skipped and the scan resumes at the next
// opening delimiter. A balanced span that does not parse is skipped whole: its
// inner fragments are never returned in its place.
package normalize

import (
	"encoding/json"
	"errors"
	"fmt"
	"iter"
)

var (
	// ErrNoJSON means no balanced array or object span exists in the text.
	ErrNoJSON = errors.New("no json found in text")
	// ErrInvalidJSON means balanced spans exist but none parse as JSON.
	ErrInvalidJSON = errors.New("embedded json is malformed")
)

// ExtractStructured returns the first parseable JSON array or object embedded in
// text, decoded into generic Go values. It never fails: when nothing parses it
// returns an empty sequence.
func ExtractStructured(text string) any {
	raw, err := Extract(text)
	if err != nil {
		return []any{}
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return []any{}
	}
	return v
}

// Extract returns the raw bytes of the first balanced JSON array or object in text
// that parses. The error distinguishes "nothing JSON-like" from "JSON-like but
// malformed".
func Extract(text string) (json.RawMessage, error) {
	found := false
	for span, valid := range spans(text) {
		found = true
		if valid {
			return json.RawMessage(span), nil
		}
	}
	if !found {
		return nil, ErrNoJSON
	}
	return nil, ErrInvalidJSON
}

// DecodeList extracts the first embedded JSON array that decodes into a non-empty
// []T. A bare object is not accepted as a list.
func DecodeList[T any](text string) ([]T, error) {
	found := false
	err := ErrInvalidJSON
	for span, valid := range spans(text) {
		found = true
		if !valid {
			continue
		}
		if span[0] != '[' {
			err = fmt.Errorf("%w: expected array, got object", ErrInvalidJSON)
			continue
		}
		var out []T
		if uerr := json.Unmarshal([]byte(span), &out); uerr != nil {
			err = fmt.Errorf("%w: %v", ErrInvalidJSON, uerr)
			continue
		}
		if len(out) == 0 {
			err = fmt.Errorf("%w: empty array", ErrInvalidJSON)
			continue
		}
		return out, nil
	}
	if !found {
		return nil, ErrNoJSON
	}
	return nil, err
}

// spans yields every balanced bracket span in text with whether it parses, in
// order of its opening delimiter. Spans nested in a valid span follow it; a span
// that does not parse is skipped whole, so none of its fragments are yielded.
func spans(text string) iter.Seq2[string, bool] {
	return func(yield func(string, bool) bool) {
		m := matcher{text: text, ends: make(map[int]int)}
		for i := 0; i < len(text); i++ {
			if text[i] != '[' && text[i] != '{' {
				continue
			}
			end := m.match(i)
			if end < 0 {
				continue
			}
			span := text[i : end+1]
			valid := json.Valid([]byte(span))
			if !yield(span, valid) {
				return
			}
			if !valid {
				i = end
			}
		}
	}
}

// matcher finds closing delimiters. One walk records the close of every opener it
// passes outside a string, since a walk started at that opener would see the same
// bytes in the same state. That keeps runs of unbalanced openers linear.
type matcher struct {
	text string
	ends map[int]int // opener index -> closer index, or -1 when it never closes
}

func (m *matcher) match(start int) int {
	if end, ok := m.ends[start]; ok {
		return end
	}
	m.walk(start)
	return m.ends[start]
}

type opener struct {
	pos    int
	closer byte
}

// walk scans from the opener at start until it balances. Openers still open when
// the brackets never balance or a closer of the wrong kind appears can never
// close either.
func (m *matcher) walk(start int) {
	stack := make([]opener, 0, 8)
	inString := false
	escaped := false
	for i := start; i < len(m.text); i++ {
		c := m.text[i]
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
		case '[':
			stack = append(stack, opener{pos: i, closer: ']'})
		case '{':
			stack = append(stack, opener{pos: i, closer: '}'})
		case ']', '}':
			if len(stack) == 0 || stack[len(stack)-1].closer != c {
				m.fail(stack)
				return
			}
			m.ends[stack[len(stack)-1].pos] = i
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return
			}
		}
	}
	m.fail(stack)
}

func (m *matcher) fail(stack []opener) {
	for _, o := range stack {
		m.ends[o.pos] = -1
	}
}
