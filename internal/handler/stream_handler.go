package handler

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"sahby-assistant-be/internal/dto"
	"sahby-assistant-be/internal/entity"
	"sahby-assistant-be/internal/pkg/logger"
	"sahby-assistant-be/internal/repository/contract"
	"sahby-assistant-be/internal/service"
	internalWS "sahby-assistant-be/internal/websocket"
	"sahby-assistant-be/pkg/store"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// StreamHandler serves the websocket view-state stream. Every connected
// device of a user receives the full projected snapshot after each change:
// thread list, messages of the active thread, draft and composing flag.
type StreamHandler struct {
	assistant service.IAssistantService
	watcher   contract.ConversationWatcher
	hub       *internalWS.Hub
	logger    logger.ILogger
}

func NewStreamHandler(assistant service.IAssistantService, watcher contract.ConversationWatcher, hub *internalWS.Hub, log logger.ILogger) *StreamHandler {
	return &StreamHandler{
		assistant: assistant,
		watcher:   watcher,
		hub:       hub,
		logger:    log,
	}
}

// ServeWs handles websocket requests from the peer.
func (h *StreamHandler) ServeWs(c *fiber.Ctx) error {
	// 1. Get Token source
	// Priority 1: Query Param (Browser standard)
	tokenStr := c.Query("token")

	// Priority 2: Authorization Header (Tooling/Non-browser standard)
	if tokenStr == "" {
		authHeader := c.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenStr = authHeader[7:]
		}
	}

	if tokenStr == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing token (Query 'token' or Header 'Authorization')"})
	}

	// 2. Parse JWT with the same secret the REST middleware checks
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.ErrUnauthorized
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})

	if err != nil || !token.Valid {
		h.logger.Warn("StreamHandler", "Invalid Token in WS Handshake", map[string]interface{}{"error": err})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token claims"})
	}

	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Token missing user_id"})
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user ID format in token"})
	}

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("StreamHandler", "Starting view-state stream", map[string]interface{}{"user_id": userID})
			h.stream(conn, userID)
			h.logger.Info("StreamHandler", "View-state stream ended", map[string]interface{}{"user_id": userID})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

// stream is the single writer for the connection. It merges three sources:
// session events from the hub, thread snapshots and message snapshots from
// the watcher, and pushes the recomposed view state after each of them.
func (h *StreamHandler) stream(conn *websocket.Conn, userID uuid.UUID) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	state, err := h.assistant.ViewState(ctx, userID)
	if err != nil {
		h.logger.Error("StreamHandler", "Initial view state failed", map[string]interface{}{"error": err.Error()})
		return
	}

	client := internalWS.NewClient(h.hub, conn, userID)
	client.Register()
	go client.KeepAlive(ctx, cancel)

	threadsCh, err := h.watcher.ObserveThreads(ctx, userID)
	if err != nil {
		h.logger.Error("StreamHandler", "Thread observation failed", map[string]interface{}{"error": err.Error()})
		return
	}

	var msgsCh <-chan []*entity.Message
	msgsCancel := func() {}
	observeActive := func(threadId uuid.UUID) {
		msgsCancel()
		mctx, mcancel := context.WithCancel(ctx)
		msgsCancel = mcancel
		ch, err := h.watcher.ObserveMessages(mctx, threadId)
		if err != nil {
			h.logger.Warn("StreamHandler", "Message observation failed", map[string]interface{}{
				"thread_id": threadId.String(),
				"error":     err.Error(),
			})
			msgsCh = nil
			return
		}
		msgsCh = ch
	}
	defer func() { msgsCancel() }()

	if state.ActiveThreadId != nil {
		observeActive(*state.ActiveThreadId)
	}

	if !h.push(conn, state) {
		return
	}

	ticker := time.NewTicker(internalWS.PingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case data, ok := <-client.Send:
			if !ok {
				return
			}
			var evt struct {
				Type string         `json:"type"`
				Data *store.Session `json:"data"`
			}
			if err := json.Unmarshal(data, &evt); err != nil || evt.Data == nil {
				continue
			}
			sess := evt.Data
			state.Draft = sess.Draft
			state.IsTyping = sess.AwaitingReply
			switch {
			case sess.ActiveThreadID == uuid.Nil:
				state.ActiveThreadId = nil
				state.Messages = nil
				msgsCancel()
				msgsCh = nil
			case state.ActiveThreadId == nil || *state.ActiveThreadId != sess.ActiveThreadID:
				id := sess.ActiveThreadID
				state.ActiveThreadId = &id
				state.Messages = nil
				observeActive(id)
			}
			if !h.push(conn, state) {
				return
			}

		case threads, ok := <-threadsCh:
			if !ok {
				return
			}
			state.Threads = threadsToResponse(threads)
			if !h.push(conn, state) {
				return
			}

		case messages, ok := <-msgsCh:
			if !ok {
				msgsCh = nil
				continue
			}
			state.Messages = messagesToResponse(messages)
			if !h.push(conn, state) {
				return
			}

		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(internalWS.WriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *StreamHandler) push(conn *websocket.Conn, state *dto.ViewState) bool {
	payload, err := json.Marshal(map[string]interface{}{
		"type": "view_state",
		"data": state,
	})
	if err != nil {
		h.logger.Error("StreamHandler", "View state marshal failed", map[string]interface{}{"error": err.Error()})
		return false
	}
	conn.SetWriteDeadline(time.Now().Add(internalWS.WriteWait))
	return conn.WriteMessage(websocket.TextMessage, payload) == nil
}

func threadsToResponse(threads []*entity.Thread) []dto.ThreadResponse {
	out := make([]dto.ThreadResponse, 0, len(threads))
	for _, t := range threads {
		out = append(out, dto.ThreadResponse{
			Id:          t.Id,
			Title:       t.Title,
			LastMessage: t.LastMessage,
			UpdatedAt:   t.UpdatedAt.UnixMilli(),
		})
	}
	return out
}

func messagesToResponse(messages []*entity.Message) []dto.MessageResponse {
	out := make([]dto.MessageResponse, 0, len(messages))
	for _, m := range messages {
		resp := dto.MessageResponse{
			Id:        m.Id,
			ThreadId:  m.ThreadId,
			Role:      m.Role,
			Content:   m.Content,
			CreatedAt: m.CreatedAt.UnixMilli(),
		}
		if m.Meta != nil {
			resp.Topic = m.Meta.Topic
		}
		out = append(out, resp)
	}
	return out
}

// RegisterRoutes registers the websocket stream route.
func (h *StreamHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/stream", h.ServeWs)
}
