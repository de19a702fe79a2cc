package dashboard

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/hms/hms/internal/platform/auth"
)

// Handler exposes the dashboard engine over HTTP. Every endpoint passes
// the role gate before any dashboard state is touched; wizard and list
// operations address the current panel's state, since panels own their
// state exclusively.
type Handler struct {
	store *Store
	gates map[Role]*Gate
	log   zerolog.Logger
}

// Entry pages per role, used by the gate to send wrong-role callers to
// their own dashboard rather than an error page.
var entryPages = map[Role]string{
	RoleAdmin:   "/admin",
	RoleDoctor:  "/doctor",
	RolePatient: "/patient",
	RolePending: "/pending-approval",
}

const signInPage = "/sign-in"

// NewHandler creates the dashboard HTTP surface with one gate per
// configured role.
func NewHandler(store *Store, log zerolog.Logger) *Handler {
	gates := make(map[Role]*Gate, len(store.configs))
	for role := range store.configs {
		gates[role] = NewGate(role, signInPage, entryPages)
	}
	return &Handler{store: store, gates: gates, log: log}
}

// RegisterRoutes mounts the dashboard endpoints on the API group.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/dashboard/:role")
	g.GET("/state", h.State)
	g.DELETE("", h.Unmount)
	g.POST("/navigate", h.Navigate)
	g.POST("/sidebar/:group/toggle", h.ToggleSidebar)

	g.POST("/wizard/field", h.WizardField)
	g.POST("/wizard/toggle", h.WizardToggle)
	g.POST("/wizard/next", h.WizardNext)
	g.POST("/wizard/back", h.WizardBack)
	g.POST("/wizard/cancel", h.WizardCancel)
	g.POST("/wizard/submit", h.WizardSubmit)

	g.POST("/list/refresh", h.ListRefresh)
	g.POST("/list/search", h.ListSearch)
	g.POST("/list/filter", h.ListFilter)
	g.POST("/list/edit/:id", h.BeginEdit)
	g.PUT("/list/edit", h.EditField)
	g.POST("/list/edit/submit", h.SubmitEdit)
	g.DELETE("/list/edit", h.CancelEdit)
}

// sessionFrom assembles the gate's view of the caller from the auth
// middleware's claims. Once the middleware has run the session is loaded;
// the pending state only exists for callers the middleware never saw.
func sessionFrom(c echo.Context) Session {
	ctx := c.Request().Context()
	userID := auth.UserIDFromContext(ctx)
	return Session{
		Loaded:   true,
		SignedIn: userID != "",
		Role:     Role(auth.RoleFromContext(ctx)),
		UserID:   userID,
		Name:     auth.NameFromContext(ctx),
	}
}

// mount runs the gate for the requested dashboard and returns the caller's
// session state. The gate is re-evaluated on every call; nothing is cached
// across sessions.
func (h *Handler) mount(c echo.Context) (*DashSession, error) {
	role := Role(c.Param("role"))
	gate, ok := h.gates[role]
	if !ok {
		return nil, echo.NewHTTPError(http.StatusNotFound, "unknown dashboard")
	}
	sess := sessionFrom(c)
	switch d := gate.Check(sess); d.Kind {
	case DecisionAllow:
	case DecisionRedirect:
		status := http.StatusForbidden
		if !sess.SignedIn {
			status = http.StatusUnauthorized
		}
		return nil, echo.NewHTTPError(status, map[string]string{"redirect": d.Target})
	default:
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "session not resolved")
	}
	ds, err := h.store.Mount(c.Request().Context(), sess.UserID, role)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return ds, nil
}

type wizardState struct {
	Step       int                 `json:"step"`
	StepCount  int                 `json:"step_count"`
	StepName   string              `json:"step_name"`
	CanAdvance bool                `json:"can_advance"`
	Fields     []FieldSet          `json:"fields"`
	Options    map[string][]Record `json:"options,omitempty"`
}

type listState struct {
	Items      []Record `json:"items"`
	Total      int      `json:"total"`
	SearchTerm string   `json:"search_term"`
	Filter     string   `json:"filter"`
	EditingID  string   `json:"editing_id,omitempty"`
	EditFields FieldSet `json:"edit_fields,omitempty"`
}

type stateResponse struct {
	Role         Role          `json:"role"`
	View         string        `json:"view"`
	Panel        PanelID       `json:"panel"`
	Sidebar      SidebarState  `json:"sidebar"`
	Capabilities CapabilitySet `json:"capabilities"`
	Wizard       *wizardState  `json:"wizard,omitempty"`
	List         *listState    `json:"list,omitempty"`
}

func (h *Handler) state(ds *DashSession) *stateResponse {
	resp := &stateResponse{
		Role:         ds.Role(),
		View:         ds.Current().String(),
		Panel:        ds.Panel(),
		Sidebar:      ds.Sidebar(),
		Capabilities: ds.Capabilities(),
	}
	if w := ds.Wizard(ds.Panel()); w != nil {
		fields := make([]FieldSet, w.StepCount())
		for i := range fields {
			fields[i] = w.Fields(i)
		}
		resp.Wizard = &wizardState{
			Step:       w.Step(),
			StepCount:  w.StepCount(),
			StepName:   w.StepName(w.Step()),
			CanAdvance: w.CanAdvance(),
			Fields:     fields,
			Options:    w.Options,
		}
	}
	if l := ds.List(ds.Panel()); l != nil {
		filtered := l.Filtered()
		resp.List = &listState{
			Items:      filtered,
			Total:      len(filtered),
			SearchTerm: l.SearchTerm(),
			Filter:     l.Filter(),
			EditingID:  l.EditingID(),
			EditFields: l.EditFields(),
		}
	}
	return resp
}

// State returns the full dashboard state for the caller.
func (h *Handler) State(c echo.Context) error {
	ds, err := h.mount(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.state(ds))
}

// Unmount discards the caller's dashboard session.
func (h *Handler) Unmount(c echo.Context) error {
	role := Role(c.Param("role"))
	if _, ok := h.gates[role]; !ok {
		return echo.NewHTTPError(http.StatusNotFound, "unknown dashboard")
	}
	sess := sessionFrom(c)
	if !sess.SignedIn {
		return echo.NewHTTPError(http.StatusUnauthorized, "not signed in")
	}
	h.store.Unmount(sess.UserID, role)
	return c.NoContent(http.StatusNoContent)
}

// Navigate changes the current view and returns the resulting state.
func (h *Handler) Navigate(c echo.Context) error {
	ds, err := h.mount(c)
	if err != nil {
		return err
	}
	var body struct {
		View string `json:"view"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if _, err := ds.Navigate(c.Request().Context(), ParseViewKey(body.View)); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, h.state(ds))
}

// ToggleSidebar expands or collapses a sidebar group. The current view is
// untouched.
func (h *Handler) ToggleSidebar(c echo.Context) error {
	ds, err := h.mount(c)
	if err != nil {
		return err
	}
	ds.ToggleGroup(c.Param("group"))
	return c.JSON(http.StatusOK, h.state(ds))
}

func (h *Handler) wizard(c echo.Context) (*DashSession, *Wizard, error) {
	ds, err := h.mount(c)
	if err != nil {
		return nil, nil, err
	}
	w := ds.Wizard(ds.Panel())
	if w == nil {
		return nil, nil, echo.NewHTTPError(http.StatusConflict, "current panel has no form wizard")
	}
	return ds, w, nil
}

// WizardField writes one field of one step.
func (h *Handler) WizardField(c echo.Context) error {
	ds, w, err := h.wizard(c)
	if err != nil {
		return err
	}
	var body struct {
		Step  int    `json:"step"`
		Path  string `json:"path"`
		Value any    `json:"value"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := w.UpdateField(body.Step, body.Path, body.Value); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, h.state(ds))
}

// WizardToggle applies checkbox-set semantics to a multi-select field.
func (h *Handler) WizardToggle(c echo.Context) error {
	ds, w, err := h.wizard(c)
	if err != nil {
		return err
	}
	var body struct {
		Step    int    `json:"step"`
		Path    string `json:"path"`
		Option  any    `json:"option"`
		Checked bool   `json:"checked"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := w.Toggle(body.Step, body.Path, body.Option, body.Checked); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, h.state(ds))
}

// WizardNext advances the wizard when the current step validates. A
// blocked advance is not an error: the state response simply reports the
// unchanged index, mirroring a disabled control.
func (h *Handler) WizardNext(c echo.Context) error {
	ds, w, err := h.wizard(c)
	if err != nil {
		return err
	}
	w.Next()
	return c.JSON(http.StatusOK, h.state(ds))
}

// WizardBack moves backward without validation.
func (h *Handler) WizardBack(c echo.Context) error {
	ds, w, err := h.wizard(c)
	if err != nil {
		return err
	}
	w.Back()
	return c.JSON(http.StatusOK, h.state(ds))
}

// WizardCancel restores the construction-time snapshot.
func (h *Handler) WizardCancel(c echo.Context) error {
	ds, w, err := h.wizard(c)
	if err != nil {
		return err
	}
	w.Cancel()
	return c.JSON(http.StatusOK, h.state(ds))
}

// WizardSubmit issues the wizard's single save request. On failure the
// wizard state is preserved so a retry resubmits the same data.
func (h *Handler) WizardSubmit(c echo.Context) error {
	ds, w, err := h.wizard(c)
	if err != nil {
		return err
	}
	if err := w.Submit(c.Request().Context()); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, h.state(ds))
}

func (h *Handler) list(c echo.Context) (*DashSession, *ListView, error) {
	ds, err := h.mount(c)
	if err != nil {
		return nil, nil, err
	}
	l := ds.List(ds.Panel())
	if l == nil {
		return nil, nil, echo.NewHTTPError(http.StatusConflict, "current panel has no resource list")
	}
	return ds, l, nil
}

// ListRefresh reloads the list. On failure the previous items stay and the
// error surfaces to the caller.
func (h *Handler) ListRefresh(c echo.Context) error {
	ds, l, err := h.list(c)
	if err != nil {
		return err
	}
	if err := l.Load(c.Request().Context()); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, h.state(ds))
}

// ListSearch updates the search term.
func (h *Handler) ListSearch(c echo.Context) error {
	ds, l, err := h.list(c)
	if err != nil {
		return err
	}
	var body struct {
		Term string `json:"term"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	l.SetSearchTerm(body.Term)
	return c.JSON(http.StatusOK, h.state(ds))
}

// ListFilter updates the active filter.
func (h *Handler) ListFilter(c echo.Context) error {
	ds, l, err := h.list(c)
	if err != nil {
		return err
	}
	var body struct {
		Filter string `json:"filter"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	l.SetFilter(body.Filter)
	return c.JSON(http.StatusOK, h.state(ds))
}

// BeginEdit seeds the edit form from a list row. A stale id is a no-op.
func (h *Handler) BeginEdit(c echo.Context) error {
	ds, l, err := h.list(c)
	if err != nil {
		return err
	}
	l.BeginEdit(c.Param("id"))
	return c.JSON(http.StatusOK, h.state(ds))
}

// EditField writes one field of the in-progress edit form.
func (h *Handler) EditField(c echo.Context) error {
	ds, l, err := h.list(c)
	if err != nil {
		return err
	}
	var body struct {
		Path  string `json:"path"`
		Value any    `json:"value"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := l.UpdateEditField(body.Path, body.Value); err != nil {
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}
	return c.JSON(http.StatusOK, h.state(ds))
}

// SubmitEdit issues the update and reloads the list. On failure the edit
// form stays open with the entered values intact.
func (h *Handler) SubmitEdit(c echo.Context) error {
	ds, l, err := h.list(c)
	if err != nil {
		return err
	}
	if err := l.SubmitEdit(c.Request().Context()); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, h.state(ds))
}

// CancelEdit discards the edit form. Idempotent.
func (h *Handler) CancelEdit(c echo.Context) error {
	ds, l, err := h.list(c)
	if err != nil {
		return err
	}
	l.CancelEdit()
	return c.JSON(http.StatusOK, h.state(ds))
}
