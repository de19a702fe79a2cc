package dashboard

// Router selects which panel renders inside a mounted dashboard shell. It
// is not a guarded state machine: panels are mutually independent, so
// Navigate is an unconditional assignment with a known-key fallback. The
// router also owns the sidebar expansion state so navigation can keep the
// invariant "the current view's group is expanded".
type Router struct {
	reg     *ViewRegistry
	current ViewKey
	sidebar SidebarState
}

// NewRouter creates a router positioned on the registry's default view.
func NewRouter(reg *ViewRegistry) *Router {
	r := &Router{
		reg:     reg,
		current: reg.DefaultKey(),
		sidebar: make(SidebarState),
	}
	if g := r.current.Group; g != "" {
		r.sidebar.Expand(g)
	}
	return r
}

// Current returns the current view key. Exactly one key is current at any
// time.
func (r *Router) Current() ViewKey { return r.current }

// Select resolves the current view to its panel. Total: an unknown current
// key (which Navigate never produces) still resolves to the default panel.
func (r *Router) Select() PanelID {
	_, panel := r.reg.Resolve(r.current)
	return panel
}

// Navigate moves to the given view, falling back to the default view when
// the key is unknown. Navigating to a hierarchical key expands its sidebar
// group. Returns the view that is current after the move.
func (r *Router) Navigate(key ViewKey) ViewKey {
	resolved, _ := r.reg.Resolve(key)
	r.current = resolved
	if resolved.Group != "" {
		r.sidebar.Expand(resolved.Group)
	}
	return r.current
}

// Sidebar returns the sidebar expansion state.
func (r *Router) Sidebar() SidebarState { return r.sidebar }

// ToggleGroup expands or collapses a sidebar group without touching the
// current view.
func (r *Router) ToggleGroup(group string) { r.sidebar.Toggle(group) }
