package dashboard

// Role is the caller's role as asserted by the auth collaborator.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
	RolePending Role = "pending"
)

// Session is the engine's read-only view of the auth collaborator's state.
// Loaded is false while the provider is still resolving; the gate emits no
// decision during that window to prevent redirect flicker.
type Session struct {
	Loaded   bool
	SignedIn bool
	Role     Role
	UserID   string
	Name     string
}

// DecisionKind enumerates gate outcomes.
type DecisionKind int

const (
	// DecisionPending means the session is still loading: render nothing,
	// perform no redirect.
	DecisionPending DecisionKind = iota
	// DecisionAllow admits the caller to the dashboard.
	DecisionAllow
	// DecisionRedirect sends the caller to Target before any dashboard
	// state is constructed.
	DecisionRedirect
)

// Decision is the gate's verdict for one dashboard mount.
type Decision struct {
	Kind   DecisionKind
	Target string
}

// Gate is the single enforcement boundary in the engine: a boolean "may
// this caller see this dashboard" check, re-evaluated on every mount,
// never cached across sessions.
type Gate struct {
	required     Role
	signInTarget string
	entryPages   map[Role]string
}

// NewGate builds a gate for a dashboard requiring the given role.
// signInTarget receives signed-out callers; entryPages maps each role to
// its own dashboard entry so wrong-role callers land on their home, not an
// error page.
func NewGate(required Role, signInTarget string, entryPages map[Role]string) *Gate {
	return &Gate{required: required, signInTarget: signInTarget, entryPages: entryPages}
}

// Check evaluates the session. Idempotent per resolved state: the same
// session always yields the same decision.
func (g *Gate) Check(s Session) Decision {
	if !s.Loaded {
		return Decision{Kind: DecisionPending}
	}
	if !s.SignedIn {
		return Decision{Kind: DecisionRedirect, Target: g.signInTarget}
	}
	if s.Role != g.required {
		target, ok := g.entryPages[s.Role]
		if !ok {
			target = g.signInTarget
		}
		return Decision{Kind: DecisionRedirect, Target: target}
	}
	return Decision{Kind: DecisionAllow}
}
