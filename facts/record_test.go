package facts

import (
	"reflect"
	"testing"
)

// TestSetLiteralDottedKey verifies that dots in a path are not parsed as
// nesting: the whole path becomes one literal key.
func TestSetLiteralDottedKey(t *testing.T) {
	got := Set(Record{}, "a.b.c", "v")

	want := Record{"a.b.c": "v"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Set() = %v, want %v", got, want)
	}

	if _, nested := got["a"]; nested {
		t.Error("Set() should never create a nested structure under the first segment")
	}
}

// TestSetTrimsEmptySegments verifies that empty dot segments are dropped
// before the key is formed.
func TestSetTrimsEmptySegments(t *testing.T) {
	got := Set(Record{}, ".landlord_full_name.", "John Smith")

	if v := got["landlord_full_name"]; v != "John Smith" {
		t.Errorf("Set() stored under wrong key, record = %v", got)
	}
}

// TestSetEmptyPathIsNoOp verifies that a path with no non-empty segments
// adds no key.
func TestSetEmptyPathIsNoOp(t *testing.T) {
	orig := Record{"existing": "value"}

	for _, path := range []string{"", ".", "..", "..."} {
		got := Set(orig, path, "v")
		if len(got) != 1 || got["existing"] != "value" {
			t.Errorf("Set(%q) should be a no-op, got %v", path, got)
		}
	}
}

// TestSetDoesNotMutateInput verifies copy-on-write semantics: the input
// record is left untouched by overwrites and additions.
func TestSetDoesNotMutateInput(t *testing.T) {
	orig := Record{"k": "old"}

	got := Set(orig, "k", "new")

	if orig["k"] != "old" {
		t.Errorf("input record was mutated: %v", orig)
	}
	if got["k"] != "new" {
		t.Errorf("returned record missing the write: %v", got)
	}

	got2 := Set(orig, "other", 1)
	if len(orig) != 1 {
		t.Errorf("input record gained a key: %v", orig)
	}
	if len(got2) != 2 {
		t.Errorf("returned record = %v, want two keys", got2)
	}
}

// TestCanonicalKey verifies path normalization.
func TestCanonicalKey(t *testing.T) {
	testCases := []struct {
		path string
		want string
	}{
		{"landlord_full_name", "landlord_full_name"},
		{"notice_service.notice_date", "notice_service.notice_date"},
		{".a.b.", "a.b"},
		{"a..b", "a.b"},
		{"", ""},
		{"...", ""},
	}

	for _, tc := range testCases {
		if got := CanonicalKey(tc.path); got != tc.want {
			t.Errorf("CanonicalKey(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
}

// TestEncodeDecodeJSONPreservesFlatKeys verifies that a record containing
// dotted literal keys survives the jsonb round trip without being re-nested.
func TestEncodeDecodeJSONPreservesFlatKeys(t *testing.T) {
	r := Record{
		"landlord_full_name":          "John Smith",
		"notice_service.notice_date":  "22/12/2025",
		"section8_grounds":            []any{"ground_8", "ground_10"},
		"tenancy.deposit_protected":   true,
		"arrears.total_amount_pounds": 3000.0,
	}

	b, err := EncodeJSON(r)
	if err != nil {
		t.Fatalf("EncodeJSON() failed: %v", err)
	}

	got, err := DecodeJSON(b)
	if err != nil {
		t.Fatalf("DecodeJSON() failed: %v", err)
	}

	if !reflect.DeepEqual(got, r) {
		t.Errorf("round trip changed the record:\n got %v\nwant %v", got, r)
	}
	if _, nested := got["notice_service"]; nested {
		t.Error("dotted key was re-nested during the round trip")
	}
}
