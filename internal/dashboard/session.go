package dashboard

import (
	"context"
	"fmt"
	"sync"
)

// WizardBuilder constructs a fresh wizard for a panel mount. Builders that
// need collaborator data (the departments dropdown, an edit seed) fetch it
// here, so the wizard holds an immutable snapshot rather than a live
// reference.
type WizardBuilder func(ctx context.Context) (*Wizard, error)

// ListBuilder constructs a fresh list panel state.
type ListBuilder func() *ListView

// Config describes one role-scoped dashboard: its view registry, the
// wizard and list definitions keyed by panel, and what the role may do.
type Config struct {
	Role     Role
	Registry *ViewRegistry
	Caps     CapabilitySet
	Wizards  map[PanelID]WizardBuilder
	Lists    map[PanelID]ListBuilder
}

// DashSession is the mounted dashboard state for one signed-in user: a
// router plus whatever wizard or list state the current panel owns. Panel
// state is created when its panel mounts and discarded when navigation
// leaves it. Navigation and sidebar events are serialized by the session
// mutex; the mounted Wizard and ListView carry their own locks, since
// handlers keep operating on them after the session lookup returns.
type DashSession struct {
	mu      sync.Mutex
	cfg     *Config
	router  *Router
	wizards map[PanelID]*Wizard
	lists   map[PanelID]*ListView
}

func newDashSession(ctx context.Context, cfg *Config) (*DashSession, error) {
	s := &DashSession{
		cfg:     cfg,
		router:  NewRouter(cfg.Registry),
		wizards: make(map[PanelID]*Wizard),
		lists:   make(map[PanelID]*ListView),
	}
	if err := s.mountPanel(ctx, s.router.Select()); err != nil {
		return nil, err
	}
	return s, nil
}

// Role returns the dashboard's role.
func (s *DashSession) Role() Role { return s.cfg.Role }

// Capabilities returns the role's capability set.
func (s *DashSession) Capabilities() CapabilitySet { return s.cfg.Caps }

// Current returns the current view key.
func (s *DashSession) Current() ViewKey {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.router.Current()
}

// Panel returns the current panel.
func (s *DashSession) Panel() PanelID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.router.Select()
}

// Sidebar returns a copy of the sidebar expansion state.
func (s *DashSession) Sidebar() SidebarState {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(SidebarState, len(s.router.Sidebar()))
	for k, v := range s.router.Sidebar() {
		out[k] = v
	}
	return out
}

// Navigate changes the current view. The previous panel's wizard or list
// state is discarded; the target panel's state is constructed fresh.
// Unknown keys fall back to the default view. Navigation never blocks on
// the target panel's data: list panels mount empty and fill in when their
// own load resolves.
func (s *DashSession) Navigate(ctx context.Context, key ViewKey) (ViewKey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.router.Select()
	current := s.router.Navigate(key)
	next := s.router.Select()
	if next != prev {
		delete(s.wizards, prev)
		delete(s.lists, prev)
		if err := s.mountPanel(ctx, next); err != nil {
			return current, err
		}
	}
	return current, nil
}

// mountPanel instantiates the wizard or list owned by a panel, if any.
// Caller holds the lock.
func (s *DashSession) mountPanel(ctx context.Context, panel PanelID) error {
	if build, ok := s.cfg.Wizards[panel]; ok {
		w, err := build(ctx)
		if err != nil {
			return fmt.Errorf("mount panel %s: %w", panel, err)
		}
		s.wizards[panel] = w
	}
	if build, ok := s.cfg.Lists[panel]; ok {
		s.lists[panel] = build()
	}
	return nil
}

// ToggleGroup flips a sidebar group without changing the current view.
func (s *DashSession) ToggleGroup(group string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.router.ToggleGroup(group)
}

// Wizard returns the mounted wizard for a panel, or nil when the panel has
// none or is not mounted.
func (s *DashSession) Wizard(panel PanelID) *Wizard {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wizards[panel]
}

// List returns the mounted list state for a panel, or nil.
func (s *DashSession) List(panel PanelID) *ListView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lists[panel]
}

// Store holds mounted dashboard sessions, keyed by user and role. Sessions
// are process-local: each panel instance owns its state exclusively and no
// cross-panel shared mutable state exists, so no distributed store is
// needed.
type Store struct {
	mu       sync.Mutex
	configs  map[Role]*Config
	sessions map[string]*DashSession
}

// NewStore creates a session store over the given role configurations.
func NewStore(configs map[Role]*Config) *Store {
	return &Store{
		configs:  configs,
		sessions: make(map[string]*DashSession),
	}
}

func sessionKey(userID string, role Role) string {
	return userID + "/" + string(role)
}

// Mount returns the user's dashboard session for a role, constructing it
// with defaults on first access.
func (st *Store) Mount(ctx context.Context, userID string, role Role) (*DashSession, error) {
	cfg, ok := st.configs[role]
	if !ok {
		return nil, fmt.Errorf("no dashboard configured for role %q", role)
	}
	key := sessionKey(userID, role)

	st.mu.Lock()
	defer st.mu.Unlock()
	if s, ok := st.sessions[key]; ok {
		return s, nil
	}
	s, err := newDashSession(ctx, cfg)
	if err != nil {
		return nil, err
	}
	st.sessions[key] = s
	return s, nil
}

// Unmount discards the user's dashboard session for a role. All view,
// sidebar, wizard and list state is dropped.
func (st *Store) Unmount(userID string, role Role) {
	st.mu.Lock()
	delete(st.sessions, sessionKey(userID, role))
	st.mu.Unlock()
}
