package export

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/hms/hms/internal/platform/auth"
)

// RosterSource produces the sheets of the staff roster export. Wired up in
// main from the directory and identity services.
type RosterSource func(ctx context.Context) ([]Sheet, error)

type Handler struct {
	roster RosterSource
	log    zerolog.Logger
}

func NewHandler(roster RosterSource, log zerolog.Logger) *Handler {
	return &Handler{roster: roster, log: log}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/exports/roster", h.Roster, auth.RequireRole("admin"))
}

func (h *Handler) Roster(c echo.Context) error {
	ctx := c.Request().Context()

	sheets, err := h.roster(ctx)
	if err != nil {
		h.log.Error().Err(err).Msg("building roster export")
		return echo.NewHTTPError(http.StatusInternalServerError, "export failed")
	}

	buf, err := Workbook(sheets)
	if err != nil {
		h.log.Error().Err(err).Msg("rendering roster workbook")
		return echo.NewHTTPError(http.StatusInternalServerError, "export failed")
	}

	filename := "roster-" + time.Now().UTC().Format("2006-01-02") + ".xlsx"
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
