package dashboard

// Capabilities describes what a role may do with one resource on its
// dashboard. The three dashboards are compositions of the same generic
// panels with different capability sets, not separate codebases.
type Capabilities struct {
	View       bool `json:"view"`
	Create     bool `json:"create"`
	Edit       bool `json:"edit"`
	Deactivate bool `json:"deactivate"`
}

// CapabilitySet maps resource name to capabilities.
type CapabilitySet map[string]Capabilities

// For returns the capabilities for a resource. Unknown resources get the
// zero value, which permits nothing.
func (c CapabilitySet) For(resource string) Capabilities { return c[resource] }
