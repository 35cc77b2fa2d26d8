package handlers

import (
	"net/http"

	"github.com/futurepulse/backend/internal/models"
	"github.com/futurepulse/backend/internal/realtime"
	"github.com/futurepulse/backend/internal/repositories"
	"github.com/golang-jwt/jwt/v4"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// backlogLimit bounds the notification backlog pushed to an authenticated
// client right after it connects
const backlogLimit = 20

// ChannelHandler is the connection gateway for the persistent channel
// routes. Each accepted connection is joined to its route's groups, kept in
// the registry for its lifetime and removed from every group on disconnect.
// Inbound client payloads are ignored: these are push-only channels.
type ChannelHandler struct {
	registry               *realtime.Registry
	notificationRepository repositories.NotificationRepository
	jwtSecret              string
	upgrader               websocket.Upgrader
}

// NewChannelHandler creates a new ChannelHandler over the given registry.
// jwtSecret verifies the token query param on the notifications route.
func NewChannelHandler(registry *realtime.Registry, notifRepo repositories.NotificationRepository, jwtSecret string) *ChannelHandler {
	return &ChannelHandler{
		registry:               registry,
		notificationRepository: notifRepo,
		jwtSecret:              jwtSecret,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// RegisterChannelRoutes registers the channel routes on the root router
// (no auth middleware; the notifications route reads its own token)
func (h *ChannelHandler) RegisterChannelRoutes(e *echo.Echo) {
	e.GET("/ws/reports/", h.Reports)
	e.GET("/ws/predictions/", h.Predictions)
	e.GET("/ws/notifications/", h.Notifications)
}

// Reports serves the reports feed channel
func (h *ChannelHandler) Reports(c echo.Context) error {
	return h.serve(c, 0, []string{realtime.GroupReports})
}

// Predictions serves the predictions feed channel
func (h *ChannelHandler) Predictions(c echo.Context) error {
	return h.serve(c, 0, []string{realtime.GroupPredictions})
}

// Notifications serves the notifications channel. Every connection joins
// the notifications broadcast group; a connection carrying a valid token
// also joins the user's private group and receives its backlog.
func (h *ChannelHandler) Notifications(c echo.Context) error {
	userID := h.identify(c)
	groups := []string{realtime.GroupNotifications}
	if userID != 0 {
		groups = append(groups, realtime.UserGroup(userID))
	}
	return h.serve(c, userID, groups)
}

// serve upgrades the connection, joins the groups and blocks until the
// client disconnects. Disconnect cleanup is idempotent.
func (h *ChannelHandler) serve(c echo.Context, userID uint, groups []string) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	client := realtime.NewClient(conn, userID)
	for _, group := range groups {
		h.registry.Join(group, client)
	}

	if userID != 0 && h.notificationRepository != nil {
		if backlog, _, err := h.notificationRepository.GetByRecipientID(userID, 1, backlogLimit); err == nil {
			client.Send(realtime.NotificationDigest{Notifications: backlog})
		}
	}

	go client.WritePump()

	// Inbound frames are discarded; reading only detects the close
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.registry.RemoveClient(client)
	client.Close()
	return nil
}

// identify resolves the token query parameter to a user ID. Returns 0 for
// missing or invalid tokens: the connection is still accepted, it just gets
// no private group.
func (h *ChannelHandler) identify(c echo.Context) uint {
	tokenString := c.QueryParam("token")
	if tokenString == "" {
		return 0
	}

	claims := &models.JwtCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(h.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return 0
	}
	return claims.UserID
}
