// Package dashboard implements the role-scoped dashboard engine: a view
// router with sidebar group state, a multi-step form wizard, a remote
// resource list with edit-in-place, and the session/role gate that guards
// dashboard entry. One generic engine serves the admin, doctor and patient
// dashboards; each role supplies its own view registry, wizard and list
// definitions, and capability set.
package dashboard

import "strings"

// ViewKey identifies a dashboard panel. Hierarchical keys carry a sidebar
// group ("patients.list" belongs to group "patients"); flat keys such as
// "overview" have no group and never affect sidebar state.
type ViewKey struct {
	Group string `json:"group,omitempty"`
	Leaf  string `json:"leaf"`
}

// FlatKey returns a ViewKey with no sidebar group.
func FlatKey(leaf string) ViewKey { return ViewKey{Leaf: leaf} }

// GroupKey returns a ViewKey inside the given sidebar group.
func GroupKey(group, leaf string) ViewKey { return ViewKey{Group: group, Leaf: leaf} }

// ParseViewKey parses the wire form of a view key. "patients.list" becomes
// {Group: "patients", Leaf: "list"}; anything without a dot is flat. Only
// the first dot is significant.
func ParseViewKey(s string) ViewKey {
	if i := strings.Index(s, "."); i >= 0 {
		return ViewKey{Group: s[:i], Leaf: s[i+1:]}
	}
	return ViewKey{Leaf: s}
}

// String renders the wire form of the key.
func (k ViewKey) String() string {
	if k.Group == "" {
		return k.Leaf
	}
	return k.Group + "." + k.Leaf
}

// IsZero reports whether the key is empty.
func (k ViewKey) IsZero() bool { return k.Group == "" && k.Leaf == "" }

// PanelID names the renderable content bound to a ViewKey.
type PanelID string

// ViewRegistry is a total mapping from ViewKey to PanelID. Resolution never
// fails: unknown keys fall back to the designated default so a bad key can
// only ever land on the default dashboard panel, not a blank screen.
type ViewRegistry struct {
	panels     map[ViewKey]PanelID
	defaultKey ViewKey
}

// NewViewRegistry creates a registry whose default entry is registered
// immediately.
func NewViewRegistry(defaultKey ViewKey, defaultPanel PanelID) *ViewRegistry {
	r := &ViewRegistry{
		panels:     make(map[ViewKey]PanelID),
		defaultKey: defaultKey,
	}
	r.panels[defaultKey] = defaultPanel
	return r
}

// Register binds a key to a panel.
func (r *ViewRegistry) Register(key ViewKey, panel PanelID) {
	r.panels[key] = panel
}

// Known reports whether the key is registered.
func (r *ViewRegistry) Known(key ViewKey) bool {
	_, ok := r.panels[key]
	return ok
}

// DefaultKey returns the registry's default key.
func (r *ViewRegistry) DefaultKey() ViewKey { return r.defaultKey }

// Resolve maps a key to its panel, substituting the default key and panel
// when the key is unknown. The returned key is always a registered one.
func (r *ViewRegistry) Resolve(key ViewKey) (ViewKey, PanelID) {
	if p, ok := r.panels[key]; ok {
		return key, p
	}
	return r.defaultKey, r.panels[r.defaultKey]
}

// Keys returns all registered keys. Order is not specified.
func (r *ViewRegistry) Keys() []ViewKey {
	out := make([]ViewKey, 0, len(r.panels))
	for k := range r.panels {
		out = append(out, k)
	}
	return out
}
