package meeting

import (
	"net/http"
	"strings"

	gorillawebsocket "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/hms/hms/internal/platform/auth"
)

var upgrader = gorillawebsocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins; tighten in production.
	},
}

// JoinInfo is everything a client needs to enter a meeting room.
type JoinInfo struct {
	RoomName    string `json:"roomName"`
	DisplayName string `json:"displayName"`
	Role        string `json:"role"`
}

type Handler struct {
	hub        *Hub
	roomPrefix string
	log        zerolog.Logger
}

func NewHandler(hub *Hub, roomPrefix string, log zerolog.Logger) *Handler {
	return &Handler{hub: hub, roomPrefix: roomPrefix, log: log}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("", auth.RequireRole("admin", "doctor", "patient"))
	g.GET("/meetings/:room/join", h.Join)
	g.GET("/meetings/:room/ws", h.Presence)
}

// Join returns the room join info for the authenticated user. Room names
// are validated against the configured prefix so clients cannot be
// tricked into arbitrary rooms.
func (h *Handler) Join(c echo.Context) error {
	room := c.Param("room")
	if !strings.HasPrefix(room, h.roomPrefix+"-") {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown room")
	}

	ctx := c.Request().Context()
	name := auth.NameFromContext(ctx)
	if name == "" {
		name = auth.UserIDFromContext(ctx)
	}

	return c.JSON(http.StatusOK, JoinInfo{
		RoomName:    room,
		DisplayName: name,
		Role:        auth.RoleFromContext(ctx),
	})
}

// Presence upgrades to WebSocket and keeps the caller on the room's
// presence channel until the connection drops.
func (h *Handler) Presence(c echo.Context) error {
	room := c.Param("room")
	if !strings.HasPrefix(room, h.roomPrefix+"-") {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown room")
	}

	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	client := &Client{
		UserID: auth.UserIDFromContext(ctx),
		Name:   auth.NameFromContext(ctx),
		Role:   auth.RoleFromContext(ctx),
		Room:   room,
		Send:   make(chan []byte, 64),
	}

	h.hub.Join(client)

	go h.writePump(client, ws)
	go h.readPump(client, ws)

	return nil
}

func (h *Handler) readPump(client *Client, ws *gorillawebsocket.Conn) {
	defer func() {
		h.hub.Leave(client)
		ws.Close()
	}()

	// Presence is one-way; inbound frames only keep the connection alive.
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}
}

func (h *Handler) writePump(client *Client, ws *gorillawebsocket.Conn) {
	defer ws.Close()

	for message := range client.Send {
		if err := ws.WriteMessage(gorillawebsocket.TextMessage, message); err != nil {
			break
		}
	}
}
