package server

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/rpgo/savings-projector/internal/validation"
)

// decodeValues reads a JSON object of input fields into raw form values. Keys
// may be snake_case or field names; values may be numbers, strings or null.
// Keys that are absent stay absent so the rule table reports them as missing.
func decodeValues(body []byte) (validation.Values, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}
	values := validation.Values{}
	for key, msg := range raw {
		field, ok := validation.FieldByKey(key)
		if !ok {
			return nil, fmt.Errorf("unknown field: %s", key)
		}
		text, err := rawText(msg)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", key, err)
		}
		values[field] = text
	}
	return values, nil
}

func rawText(msg json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(msg)
	switch {
	case bytes.Equal(trimmed, []byte("null")):
		return "", nil
	case len(trimmed) > 0 && trimmed[0] == '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return "", err
		}
		return s, nil
	}
	var n json.Number
	if len(trimmed) == 0 || (trimmed[0] != '-' && (trimmed[0] < '0' || trimmed[0] > '9')) {
		return "", fmt.Errorf("must be a number or a string")
	}
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return "", fmt.Errorf("must be a number or a string")
	}
	return n.String(), nil
}
