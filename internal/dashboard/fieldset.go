package dashboard

import (
	"fmt"
	"strings"
)

// FieldSet is a named bag of form field values for one wizard step or one
// in-place edit form. Values are primitives, dates, nested FieldSets up to
// one level deep, or slices of primitives (checkbox sets). File inputs hold
// an opaque handle; the engine never reads file contents.
type FieldSet map[string]any

// splitPath splits a field path into its parent and child parts. Exactly
// one level of nesting is supported ("emergencyContact.phone"); deeper
// paths are rejected.
func splitPath(path string) (parent, child string, err error) {
	switch parts := strings.Split(path, "."); len(parts) {
	case 1:
		return "", parts[0], nil
	case 2:
		if parts[0] == "" || parts[1] == "" {
			return "", "", fmt.Errorf("malformed field path %q", path)
		}
		return parts[0], parts[1], nil
	default:
		return "", "", fmt.Errorf("field path %q nests deeper than one level", path)
	}
}

// Set writes a value at path, creating the nested FieldSet for a dotted
// path if the parent does not exist yet.
func (f FieldSet) Set(path string, value any) error {
	parent, child, err := splitPath(path)
	if err != nil {
		return err
	}
	if parent == "" {
		f[child] = value
		return nil
	}
	nested, ok := f[parent].(FieldSet)
	if !ok {
		if f[parent] != nil {
			return fmt.Errorf("field %q is not a nested field set", parent)
		}
		nested = FieldSet{}
		f[parent] = nested
	}
	nested[child] = value
	return nil
}

// Get reads the value at path. Missing fields read as nil.
func (f FieldSet) Get(path string) any {
	parent, child, err := splitPath(path)
	if err != nil {
		return nil
	}
	if parent == "" {
		return f[child]
	}
	nested, ok := f[parent].(FieldSet)
	if !ok {
		return nil
	}
	return nested[child]
}

// Toggle implements checkbox-set semantics for a multi-select field: adds
// option when checked and not already present, removes it when unchecked.
// The slice keeps insertion order but is treated as a set.
func (f FieldSet) Toggle(path string, option any, checked bool) error {
	current, _ := f.Get(path).([]any)
	if checked {
		for _, v := range current {
			if v == option {
				return nil
			}
		}
		return f.Set(path, append(current, option))
	}
	out := current[:0:0]
	for _, v := range current {
		if v != option {
			out = append(out, v)
		}
	}
	return f.Set(path, out)
}

// Clone deep-copies the field set: nested FieldSets and slices are copied,
// everything else is a value. Cloned snapshots back the wizard's cancel
// semantics, so mutation of the live set must never reach the snapshot.
func (f FieldSet) Clone() FieldSet {
	out := make(FieldSet, len(f))
	for k, v := range f {
		switch tv := v.(type) {
		case FieldSet:
			out[k] = tv.Clone()
		case []any:
			cp := make([]any, len(tv))
			copy(cp, tv)
			out[k] = cp
		default:
			out[k] = v
		}
	}
	return out
}

// Equal reports whether two field sets hold the same values, comparing
// nested sets and slices element-wise.
func (f FieldSet) Equal(other FieldSet) bool {
	if len(f) != len(other) {
		return false
	}
	for k, v := range f {
		if !valueEqual(v, other[k]) {
			return false
		}
	}
	return true
}

func valueEqual(a, b any) bool {
	switch av := a.(type) {
	case FieldSet:
		bv, ok := b.(FieldSet)
		return ok && av.Equal(bv)
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !valueEqual(av[i], bv[i]) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}

// IsMissing implements the wizard's presence check: empty strings and nil
// count as missing; zero numbers and false do not.
func IsMissing(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}
