package facts

import (
	"fmt"

	gojson "github.com/goccy/go-json"
)

// EncodeJSON serializes a record for storage in a jsonb column. Records are
// flat, so the output is always a single-level JSON object whose keys may
// contain dots.
func EncodeJSON(r Record) ([]byte, error) {
	if r == nil {
		r = Record{}
	}
	b, err := gojson.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("failed to encode facts: %w", err)
	}
	return b, nil
}

// DecodeJSON deserializes a record persisted by EncodeJSON. Dotted keys come
// back as the same literal keys; nothing is re-nested.
func DecodeJSON(b []byte) (Record, error) {
	if len(b) == 0 {
		return Record{}, nil
	}
	var r Record
	if err := gojson.Unmarshal(b, &r); err != nil {
		return nil, fmt.Errorf("failed to decode facts: %w", err)
	}
	return r, nil
}
