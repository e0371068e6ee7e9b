package server

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"gallery/internal/auth"
	"gallery/internal/middleware"
	"gallery/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// wsTicketTTL bounds how long an issued ticket can wait for its upgrade.
const wsTicketTTL = 30 * time.Second

func wsTicketKey(ticket string) string {
	return fmt.Sprintf("ws_ticket:%s", ticket)
}

// IssueWSTicket handles POST /api/ws/ticket
// @Summary Issue WebSocket ticket
// @Description Browsers cannot set headers on an upgrade request, so they
// @Description exchange their token for a short-lived single-use ticket.
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 201 {object} object{ticket=string,expires_in=int}
// @Failure 401 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /ws/ticket [post]
func (s *Server) IssueWSTicket(c *fiber.Ctx) error {
	if s.redis == nil {
		return models.RespondWithError(c, fiber.StatusServiceUnavailable,
			&models.AppError{Code: models.CodeInternal, Message: "Notifications are unavailable"})
	}

	actor := middleware.PrincipalFrom(c)
	ticket := uuid.NewString()
	if err := s.redis.Set(c.UserContext(), wsTicketKey(ticket), actor.ID, wsTicketTTL).Err(); err != nil {
		return respondError(c, models.NewInternalError(err))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"ticket":     ticket,
		"expires_in": int(wsTicketTTL.Seconds()),
	})
}

// WSTicketAuth authenticates a ?ticket= query parameter. The ticket is
// consumed on first use whether or not the upgrade succeeds. Requests
// without a ticket keep the principal resolved from the header.
func (s *Server) WSTicketAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ticket := c.Query("ticket")
		if ticket == "" {
			return c.Next()
		}

		reject := func() error {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				&models.AppError{Code: models.CodeInvalidToken, Message: "Invalid or expired WebSocket ticket"})
		}
		if s.redis == nil {
			return reject()
		}

		raw, err := s.redis.GetDel(c.UserContext(), wsTicketKey(ticket)).Result()
		if err != nil {
			return reject()
		}
		userID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || userID == 0 {
			return reject()
		}

		user, err := s.userRepo.GetByID(c.UserContext(), uint(userID))
		if err != nil {
			return reject()
		}

		middleware.SetPrincipal(c, auth.PrincipalFor(user))
		return c.Next()
	}
}

// NotificationsWebSocket handles GET /api/ws
// @Summary Notification stream
// @Description Pushes photo_liked events to the photo owner
// @Tags notifications
// @Param ticket query string false "Ticket from /ws/ticket"
// @Success 101
// @Failure 401 {object} models.ErrorResponse
// @Failure 426 {object} models.ErrorResponse
// @Router /ws [get]
func (s *Server) NotificationsWebSocket() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		principal, ok := conn.Locals(middleware.PrincipalLocalsKey).(auth.Principal)
		if !ok || principal.IsAnonymous() || s.hub == nil {
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"unauthorized"}`))
			_ = conn.Close()
			return
		}

		client, err := s.hub.Register(principal.ID, conn)
		if err != nil {
			slog.Warn("websocket registration refused",
				slog.Uint64("user_id", uint64(principal.ID)),
				slog.String("error", err.Error()),
			)
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"`+err.Error()+`"}`))
			_ = conn.Close()
			return
		}
		defer s.hub.UnregisterClient(client)

		go client.WritePump()
		client.ReadPump()
	})
}
