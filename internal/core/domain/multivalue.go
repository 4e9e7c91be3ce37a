package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// MultiValue is a multi-valued product attribute. The backend sends it either
// as a JSON array or as a comma-joined string; both decode to the same slice.
type MultiValue []string

func (m *MultiValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*m = nil
		return nil
	case len(data) > 0 && data[0] == '[':
		var items []string
		if err := json.Unmarshal(data, &items); err != nil {
			return fmt.Errorf("multi-value array: %w", err)
		}
		*m = items
		return nil
	default:
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("multi-value string: %w", err)
		}
		*m = SplitMulti(s)
		return nil
	}
}

// SplitMulti splits a comma-joined value, trimming whitespace and dropping
// empty segments.
func SplitMulti(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// JoinMulti is the inverse of SplitMulti for submission.
func JoinMulti(values []string) string {
	return strings.Join(values, ",")
}

// NormalizeMulti prefers the first non-empty sequence; an empty result is
// returned as an empty, non-nil slice so drafts always serialize as [].
func NormalizeMulti(candidates ...MultiValue) []string {
	for _, c := range candidates {
		if len(c) > 0 {
			out := make([]string, len(c))
			copy(out, c)
			return out
		}
	}
	return []string{}
}

// Numeric holds a number the backend may send as a JSON number or as a
// decimal string (prices are decimals serialized as strings).
type Numeric string

func (n *Numeric) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = Numeric(s)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("numeric: %w", err)
	}
	*n = Numeric(num.String())
	return nil
}

func (n Numeric) String() string { return string(n) }
