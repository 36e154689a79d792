package facts

import (
	"reflect"
	"strings"
)

// Record is the flat key/value store holding everything known about a case.
// Keys may contain dots (e.g. "notice_service.notice_date") but the store is
// never nested: a dotted key is one literal key. Values are scalars, nil, or
// slices of scalars. A non-nil plain object is never a legal value; the
// mapper's guard exists to keep them out, because downstream consumers
// (document templates, compliance rules, court-form field tables) all assume
// flat leaves.
type Record map[string]any

// Clone returns a shallow copy of the record. Stored values are scalars or
// slices that callers treat as read-only, so a key-level copy is enough to
// give Set its copy-on-write semantics.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Has reports whether key is present, regardless of its value.
func (r Record) Has(key string) bool {
	_, ok := r[key]
	return ok
}

// Set returns a copy of r with path set as a literal key. Dots in the path
// are not parsed as nesting; empty segments are dropped, so ".a.b." and
// "a.b" address the same key. A path with no non-empty segments is a no-op
// and returns r unchanged. The input record is never mutated.
func Set(r Record, path string, v any) Record {
	key := CanonicalKey(path)
	if key == "" {
		return r
	}
	out := r.Clone()
	out[key] = v
	return out
}

// CanonicalKey normalizes a mapping path into the literal record key: empty
// dot segments are removed and the remainder rejoined. Returns "" when
// nothing is left.
func CanonicalKey(path string) string {
	segments := strings.Split(path, ".")
	kept := segments[:0]
	for _, s := range segments {
		if s != "" {
			kept = append(kept, s)
		}
	}
	return strings.Join(kept, ".")
}

// lastSegment returns the final non-empty dot segment of a mapping path.
// For a bare path the whole path is the segment.
func lastSegment(path string) string {
	key := CanonicalKey(path)
	if i := strings.LastIndexByte(key, '.'); i >= 0 {
		return key[i+1:]
	}
	return key
}

// isPlainObject reports whether v is a non-nil map-shaped value. Answers
// arriving through JSON decode as map[string]any; the reflect fallback
// catches other map types handed in by in-process callers. Slices and
// arrays are not objects.
func isPlainObject(v any) bool {
	if v == nil {
		return false
	}
	if _, ok := v.(map[string]any); ok {
		return true
	}
	return reflect.ValueOf(v).Kind() == reflect.Map
}
