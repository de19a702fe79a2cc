package dashboard

// SidebarState tracks which sidebar groups are expanded. It is independent
// of the current view: expanding or collapsing a group never changes which
// panel is shown, and navigation into a collapsed group auto-expands it.
type SidebarState map[string]bool

// Expanded reports whether the group is currently expanded. Unknown groups
// are collapsed.
func (s SidebarState) Expanded(group string) bool { return s[group] }

// Toggle flips the expansion flag for the group.
func (s SidebarState) Toggle(group string) { s[group] = !s[group] }

// Expand marks the group expanded.
func (s SidebarState) Expand(group string) { s[group] = true }

// Collapse marks the group collapsed.
func (s SidebarState) Collapse(group string) { s[group] = false }
