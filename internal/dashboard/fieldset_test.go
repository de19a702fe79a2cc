package dashboard

import "testing"

func TestFieldSetNestedSetGet(t *testing.T) {
	fs := FieldSet{}

	if err := fs.Set("firstName", "Ada"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := fs.Set("emergencyContact.phone", "+234800"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := fs.Get("firstName"); got != "Ada" {
		t.Errorf("Get(firstName) = %v", got)
	}
	if got := fs.Get("emergencyContact.phone"); got != "+234800" {
		t.Errorf("Get(emergencyContact.phone) = %v", got)
	}
	if got := fs.Get("emergencyContact.name"); got != nil {
		t.Errorf("missing nested field should read nil, got %v", got)
	}
	if got := fs.Get("noSuchField"); got != nil {
		t.Errorf("missing field should read nil, got %v", got)
	}
}

func TestFieldSetRejectsDeepPaths(t *testing.T) {
	fs := FieldSet{}
	if err := fs.Set("a.b.c", 1); err == nil {
		t.Error("expected error for two-level nesting")
	}
	if err := fs.Set(".leading", 1); err == nil {
		t.Error("expected error for empty parent")
	}
	if err := fs.Set("trailing.", 1); err == nil {
		t.Error("expected error for empty child")
	}
}

func TestFieldSetSetRejectsNonNestedParent(t *testing.T) {
	fs := FieldSet{"name": "Cardiology"}
	if err := fs.Set("name.sub", 1); err == nil {
		t.Error("expected error writing below a scalar field")
	}
}

func TestFieldSetToggle(t *testing.T) {
	fs := FieldSet{}

	for _, opt := range []string{"penicillin", "latex"} {
		if err := fs.Toggle("allergies", opt, true); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	// Checking an already-present option is a no-op.
	if err := fs.Toggle("allergies", "latex", true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, _ := fs.Get("allergies").([]any)
	if len(got) != 2 || got[0] != "penicillin" || got[1] != "latex" {
		t.Fatalf("unexpected set after adds: %v", got)
	}

	if err := fs.Toggle("allergies", "penicillin", false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ = fs.Get("allergies").([]any)
	if len(got) != 1 || got[0] != "latex" {
		t.Fatalf("unexpected set after remove: %v", got)
	}

	// Unchecking something absent is a no-op.
	if err := fs.Toggle("allergies", "pollen", false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ = fs.Get("allergies").([]any)
	if len(got) != 1 {
		t.Fatalf("unexpected set after absent remove: %v", got)
	}
}

func TestFieldSetCloneIsolation(t *testing.T) {
	orig := FieldSet{
		"name":      "Ada",
		"allergies": []any{"latex"},
		"emergencyContact": FieldSet{
			"phone": "+234800",
		},
	}
	clone := orig.Clone()

	if !orig.Equal(clone) {
		t.Fatal("clone should equal the original")
	}

	// Mutating the clone must not reach the original.
	_ = clone.Set("name", "Bisi")
	_ = clone.Set("emergencyContact.phone", "+234900")
	_ = clone.Toggle("allergies", "penicillin", true)

	if orig.Get("name") != "Ada" {
		t.Error("scalar leaked through clone")
	}
	if orig.Get("emergencyContact.phone") != "+234800" {
		t.Error("nested set leaked through clone")
	}
	if list, _ := orig.Get("allergies").([]any); len(list) != 1 {
		t.Errorf("slice leaked through clone: %v", list)
	}
	if orig.Equal(clone) {
		t.Error("original should now differ from mutated clone")
	}
}

func TestIsMissing(t *testing.T) {
	cases := []struct {
		v    any
		want bool
	}{
		{nil, true},
		{"", true},
		{"x", false},
		{0, false},     // zero is a present value
		{false, false}, // unchecked boolean is a present value
		{0.0, false},
	}
	for _, tc := range cases {
		if got := IsMissing(tc.v); got != tc.want {
			t.Errorf("IsMissing(%#v) = %v, want %v", tc.v, got, tc.want)
		}
	}
}
