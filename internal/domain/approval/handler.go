package approval

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/hms/hms/internal/platform/auth"
	"github.com/hms/hms/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	// A roleless account may only announce itself.
	api.POST("/approvals/register", h.Register, auth.RequireRole("pending"))

	admin := api.Group("", auth.RequireRole("admin"))
	admin.GET("/approvals", h.List)
	admin.GET("/approvals/:id", h.Get)
	admin.POST("/approvals/:id/approve", h.Approve)
	admin.POST("/approvals/:id/reject", h.Reject)
}

func (h *Handler) Register(c echo.Context) error {
	var body struct {
		Email         string  `json:"email"`
		Name          string  `json:"name"`
		RequestedRole *string `json:"requestedRole"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	u := &PendingUser{
		SubjectID:     auth.UserIDFromContext(ctx),
		Email:         body.Email,
		Name:          body.Name,
		RequestedRole: body.RequestedRole,
		SubmittedAt:   time.Now().UTC(),
	}
	if u.Name == "" {
		u.Name = auth.NameFromContext(ctx)
	}

	if err := h.svc.Register(ctx, u); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, u)
}

func (h *Handler) List(c echo.Context) error {
	pg := pagination.FromContext(c)

	status := c.QueryParam("status")
	if status == "" {
		status = StatusPending
	}
	if status == "all" {
		status = ""
	}

	users, total, err := h.svc.List(c.Request().Context(), status, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(users, total, pg.Limit, pg.Offset))
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	u, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "approval request not found")
	}
	return c.JSON(http.StatusOK, u)
}

func (h *Handler) Approve(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var body struct {
		Role string `json:"role"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	u, err := h.svc.Approve(ctx, id, body.Role, auth.UserIDFromContext(ctx))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, u)
}

func (h *Handler) Reject(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	ctx := c.Request().Context()
	u, err := h.svc.Reject(ctx, id, auth.UserIDFromContext(ctx))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, u)
}
