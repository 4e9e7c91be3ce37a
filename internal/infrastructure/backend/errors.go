package backend

import (
	"bytes"
	"encoding/json"
	"strings"
)

// messageKeys are checked before field errors, in this order.
var messageKeys = []string{"message", "detail", "error"}

// extractMessage pulls a human-readable message out of an error body:
// message, detail or error when present, else the first message of the first
// field in document order ({"email": ["already exists"]}). Non-JSON bodies
// yield "".
func extractMessage(body []byte) string {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return ""
	}

	switch body[0] {
	case '[':
		var list []json.RawMessage
		if err := json.Unmarshal(body, &list); err != nil {
			return ""
		}
		for _, item := range list {
			if msg := firstText(item); msg != "" {
				return msg
			}
		}
		return ""
	case '{':
	default:
		return ""
	}

	fields, err := orderedFields(body)
	if err != nil {
		return ""
	}
	for _, key := range messageKeys {
		for _, f := range fields {
			if f.name == key {
				if msg := firstText(f.value); msg != "" {
					return msg
				}
			}
		}
	}
	for _, f := range fields {
		if msg := firstText(f.value); msg != "" {
			return msg
		}
	}
	return ""
}

type rawField struct {
	name  string
	value json.RawMessage
}

// orderedFields decodes a JSON object keeping key order, which a map would
// lose.
func orderedFields(body []byte) ([]rawField, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	var out []rawField
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		name, _ := tok.(string)
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		out = append(out, rawField{name: name, value: value})
	}
	return out, nil
}

// firstText returns a non-empty string value, or the first non-empty string
// of an array, or the first message found in a nested object.
func firstText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return strings.TrimSpace(s)
	case '[':
		var list []json.RawMessage
		if err := json.Unmarshal(raw, &list); err != nil {
			return ""
		}
		for _, item := range list {
			if s := firstText(item); s != "" {
				return s
			}
		}
	case '{':
		return extractMessage(raw)
	}
	return ""
}
