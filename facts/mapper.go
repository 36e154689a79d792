package facts

import (
	"log/slog"
	"strings"
)

// Mapper fans a single answered question out into the flat facts record.
// Each question definition carries a list of target paths (mapsTo); the
// mapper resolves what to write per path and refuses to ever write a plain
// object, logging a warning instead. A malformed answer must never abort the
// wizard flow or corrupt facts collected so far, so Apply has no error
// return at all.
type Mapper struct {
	log *slog.Logger
}

// NewMapper creates a mapper that reports skipped writes to log. A nil
// logger falls back to slog.Default.
func NewMapper(log *slog.Logger) *Mapper {
	if log == nil {
		log = slog.Default()
	}
	return &Mapper{log: log}
}

// genericAddressKeys are the field names an address sub-form emits. A path
// like "landlord_address_line1" answered with {"address_line1": ...} still
// maps, as long as the exact last-segment key is absent from the answer.
// Exact match always wins over this fallback.
var genericAddressKeys = []string{
	"address_line1",
	"address_line2",
	"address_line3",
	"city",
	"county",
	"postcode",
}

// Apply merges one answer into r across every target path, in order, and
// returns the accumulated record. r itself is never mutated. A nil or empty
// mapsTo means the answer has no downstream fact targets and r is returned
// as-is.
func (m *Mapper) Apply(r Record, mapsTo []string, answer any) Record {
	if len(mapsTo) == 0 {
		return r
	}

	out := r
	for _, path := range mapsTo {
		v := resolve(path, answer)
		if isPlainObject(v) {
			// The central anti-corruption rule: a stray object in the
			// flat store breaks every downstream consumer. Skip the
			// write and surface the path so schema drift between
			// question packs and the fact schema is visible to ops.
			m.log.Warn("facts: refusing to write object value, skipping path",
				"path", path,
			)
			continue
		}
		out = Set(out, path, v)
	}
	return out
}

// resolve picks the value to write for one target path. An object answer can
// answer several mapped paths at once (an address widget filling
// address_line1, city and postcode in one go), so the last path segment is
// used to project the matching sub-field out of it. Primitives, slices and
// nil pass through untouched. When an object answer has no field for this
// path the object itself falls through to Apply's guard, which skips the
// write with a warning.
func resolve(path string, answer any) any {
	obj, ok := answer.(map[string]any)
	if !ok {
		return answer
	}

	key := lastSegment(path)
	if v, present := obj[key]; present {
		return v
	}

	for _, alias := range genericAddressKeys {
		if key == alias {
			continue // already checked as the exact key
		}
		if strings.HasSuffix(key, alias) {
			if v, present := obj[alias]; present {
				return v
			}
		}
	}

	return answer
}
