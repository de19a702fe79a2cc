package assistant

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/hms/hms/internal/platform/auth"
)

type Handler struct {
	client Client
	log    zerolog.Logger
}

func NewHandler(client Client, log zerolog.Logger) *Handler {
	return &Handler{client: client, log: log}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/assistant", h.Chat, auth.RequireRole("admin", "doctor", "patient"))
}

type chatRequest struct {
	Messages []Message `json:"messages"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

func (h *Handler) Chat(c echo.Context) error {
	var req chatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	reply, err := h.client.Complete(ctx, SystemPrompt(), req.Messages)
	if err != nil {
		h.log.Warn().Err(err).
			Str("user_id", auth.UserIDFromContext(ctx)).
			Msg("assistant completion failed")
		return echo.NewHTTPError(http.StatusBadGateway, "assistant is unavailable")
	}
	return c.JSON(http.StatusOK, chatResponse{Reply: reply})
}
