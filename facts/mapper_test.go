package facts

import (
	"context"
	"log/slog"
	"reflect"
	"sync"
	"testing"
)

// captureHandler is a slog.Handler that records every message it receives,
// so tests can assert on the diagnostics the mapper emits without touching
// global logger state.
type captureHandler struct {
	mu      sync.Mutex
	records []slog.Record
}

func (h *captureHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *captureHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, r.Clone())
	return nil
}

func (h *captureHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *captureHandler) WithGroup(string) slog.Handler      { return h }

func (h *captureHandler) warningsForPath(path string) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	count := 0
	for _, r := range h.records {
		if r.Level != slog.LevelWarn {
			continue
		}
		r.Attrs(func(a slog.Attr) bool {
			if a.Key == "path" && a.Value.String() == path {
				count++
			}
			return true
		})
	}
	return count
}

func newTestMapper() (*Mapper, *captureHandler) {
	h := &captureHandler{}
	return NewMapper(slog.New(h)), h
}

// TestApplyEmptyMappingIsIdentity verifies that nil or empty mapsTo returns
// the input record unchanged.
func TestApplyEmptyMappingIsIdentity(t *testing.T) {
	m, h := newTestMapper()
	orig := Record{"existing": "value"}

	for _, mapsTo := range [][]string{nil, {}} {
		got := m.Apply(orig, mapsTo, "anything")
		if !reflect.DeepEqual(got, orig) {
			t.Errorf("Apply(%v) = %v, want unchanged %v", mapsTo, got, orig)
		}
	}

	if len(h.records) != 0 {
		t.Errorf("no diagnostics expected, got %d", len(h.records))
	}
}

// TestApplyScalarPassthrough verifies that a plain scalar answer is written
// verbatim under a single mapped path.
func TestApplyScalarPassthrough(t *testing.T) {
	m, _ := newTestMapper()

	got := m.Apply(Record{}, []string{"landlord_full_name"}, "John Smith")

	want := Record{"landlord_full_name": "John Smith"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Apply() = %v, want %v", got, want)
	}
}

// TestApplySubFieldExtraction verifies that one object answer fans out
// across multiple mapped paths by last path segment.
func TestApplySubFieldExtraction(t *testing.T) {
	m, _ := newTestMapper()

	answer := map[string]any{
		"landlord_full_name": "John Smith",
		"landlord_phone":     "020 1234 5678",
	}
	got := m.Apply(Record{}, []string{"landlord_full_name", "landlord_phone"}, answer)

	want := Record{
		"landlord_full_name": "John Smith",
		"landlord_phone":     "020 1234 5678",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Apply() = %v, want %v", got, want)
	}
}

// TestApplyDottedPathExtractsByLastSegment verifies that a dotted target
// path projects the answer sub-field named by its final segment, while the
// record key stays the full dotted path.
func TestApplyDottedPathExtractsByLastSegment(t *testing.T) {
	m, _ := newTestMapper()

	answer := map[string]any{"notice_date": "22/12/2025"}
	got := m.Apply(Record{}, []string{"notice_service.notice_date"}, answer)

	if v := got["notice_service.notice_date"]; v != "22/12/2025" {
		t.Errorf("record = %v, want dotted literal key with projected value", got)
	}
}

// TestApplyMissingKeyLeavesFactAbsent verifies that an object answer lacking
// the expected field leaves that fact key fully absent, not present-but-nil,
// while other paths still map.
func TestApplyMissingKeyLeavesFactAbsent(t *testing.T) {
	m, _ := newTestMapper()

	got := m.Apply(Record{}, []string{"a", "b"}, map[string]any{"a": 1})

	if v, ok := got["a"]; !ok || v != 1 {
		t.Errorf("matched path should map, record = %v", got)
	}
	if got.Has("b") {
		t.Errorf("unmatched path should leave the key absent, record = %v", got)
	}
}

// TestApplyNestedObjectGuard verifies the central anti-corruption rule: a
// resolved value that is itself an object is never written, the rest of the
// record is untouched, and a warning identifying the path is emitted.
func TestApplyNestedObjectGuard(t *testing.T) {
	m, h := newTestMapper()
	orig := Record{"existing": "value"}

	answer := map[string]any{"nested_field": map[string]any{"some": "nested"}}
	got := m.Apply(orig, []string{"nested_field"}, answer)

	want := Record{"existing": "value"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Apply() = %v, want %v", got, want)
	}
	if h.warningsForPath("nested_field") == 0 {
		t.Error("expected a warning naming the skipped path")
	}
}

// TestApplyWholeObjectFallthroughIsGuarded verifies that when an object
// answer has no field for any mapped path, the object itself is not written
// as a fallback.
func TestApplyWholeObjectFallthroughIsGuarded(t *testing.T) {
	m, h := newTestMapper()

	got := m.Apply(Record{}, []string{"tenant_email"}, map[string]any{"unrelated": true})

	if len(got) != 0 {
		t.Errorf("Apply() = %v, want empty record", got)
	}
	if h.warningsForPath("tenant_email") == 0 {
		t.Error("expected a warning naming the skipped path")
	}
}

// TestApplyArrayPassthrough verifies that slices are written as-is and never
// treated as objects by the guard.
func TestApplyArrayPassthrough(t *testing.T) {
	m, h := newTestMapper()

	grounds := []any{"ground_8", "ground_10"}
	got := m.Apply(Record{}, []string{"section8_grounds"}, grounds)

	if !reflect.DeepEqual(got["section8_grounds"], grounds) {
		t.Errorf("record = %v, want the slice stored verbatim", got)
	}
	if len(h.records) != 0 {
		t.Errorf("arrays must not trigger the object guard, got %d diagnostics", len(h.records))
	}
}

// TestApplyNilAndBoolPassthrough verifies the remaining primitive shapes.
func TestApplyNilAndBoolPassthrough(t *testing.T) {
	m, _ := newTestMapper()

	got := m.Apply(Record{}, []string{"deposit_protected"}, true)
	got = m.Apply(got, []string{"agent_name"}, nil)

	if v := got["deposit_protected"]; v != true {
		t.Errorf("bool answer not stored, record = %v", got)
	}
	if v, ok := got["agent_name"]; !ok || v != nil {
		t.Errorf("nil is a permitted value and should be stored, record = %v", got)
	}
}

// TestApplyAddressFallback verifies that a generic address widget answer
// maps onto prefixed target paths: a path ending in a generic address suffix
// accepts the generic key when the exact last-segment key is absent.
func TestApplyAddressFallback(t *testing.T) {
	m, h := newTestMapper()

	answer := map[string]any{
		"address_line1": "123 High St",
		"city":          "Leeds",
		"postcode":      "LS1 1AA",
	}
	mapsTo := []string{
		"landlord_address_line1",
		"landlord_address_line2",
		"landlord_city",
		"landlord_postcode",
	}
	got := m.Apply(Record{}, mapsTo, answer)

	want := Record{
		"landlord_address_line1": "123 High St",
		"landlord_city":          "Leeds",
		"landlord_postcode":      "LS1 1AA",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Apply() = %v, want %v", got, want)
	}

	// line2 had neither an exact nor a generic match, so the object fell
	// through to the guard.
	if h.warningsForPath("landlord_address_line2") == 0 {
		t.Error("expected a warning for the unmatched address path")
	}
}

// TestApplyExactMatchBeatsAddressFallback pins the precedence rule: when the
// answer contains both the exact last-segment key and the generic key, the
// exact key wins.
func TestApplyExactMatchBeatsAddressFallback(t *testing.T) {
	m, _ := newTestMapper()

	answer := map[string]any{
		"landlord_postcode": "LS28 7HF",
		"postcode":          "LS1 1AA",
	}
	got := m.Apply(Record{}, []string{"landlord_postcode"}, answer)

	if v := got["landlord_postcode"]; v != "LS28 7HF" {
		t.Errorf("exact last-segment match must take precedence, got %v", v)
	}
}

// TestApplyDoesNotMutateInput verifies copy-on-write across a whole mapping
// pass, including passes that hit the guard.
func TestApplyDoesNotMutateInput(t *testing.T) {
	m, _ := newTestMapper()
	orig := Record{"existing": "value"}

	_ = m.Apply(orig, []string{"existing", "added"}, map[string]any{
		"existing": "overwritten",
		"added":    map[string]any{"oops": 1},
	})

	if len(orig) != 1 || orig["existing"] != "value" {
		t.Errorf("input record was mutated: %v", orig)
	}
}

// TestApplyNoObjectInvariant sweeps a set of awkward answers and checks that
// no resulting record ever holds a non-nil plain object under any key.
func TestApplyNoObjectInvariant(t *testing.T) {
	m, _ := newTestMapper()

	answers := []any{
		"scalar",
		42,
		3.14,
		true,
		nil,
		[]any{"a", "b"},
		map[string]any{"k": "v"},
		map[string]any{"k": map[string]any{"deep": 1}},
		map[string]any{"other": map[string]any{"deep": 1}},
		map[string]string{"typed": "map"},
	}
	mapsTo := []string{"k", "section.k", "unmatched"}

	for _, answer := range answers {
		got := m.Apply(Record{"seed": 1}, mapsTo, answer)
		for key, v := range got {
			if isPlainObject(v) {
				t.Errorf("answer %v left object under %q: %v", answer, key, v)
			}
		}
	}
}

// TestApplyAccumulatesAcrossCalls verifies the wizard-session shape: one
// record folded through several answered questions.
func TestApplyAccumulatesAcrossCalls(t *testing.T) {
	m, _ := newTestMapper()

	r := Record{}
	r = m.Apply(r, []string{"landlord_full_name"}, "Tariq Mohammed")
	r = m.Apply(r, []string{"property_address"}, "35 Woodhall Park Avenue, Pudsey, LS28 7HF")
	r = m.Apply(r, []string{"section8_grounds"}, []any{"ground_8", "ground_10", "ground_11"})
	r = m.Apply(r, []string{"notice_service.notice_date"}, map[string]any{"notice_date": "01/01/2026"})

	if len(r) != 4 {
		t.Fatalf("record = %v, want 4 facts", r)
	}
	if r["notice_service.notice_date"] != "01/01/2026" {
		t.Errorf("dotted fact missing, record = %v", r)
	}
}
