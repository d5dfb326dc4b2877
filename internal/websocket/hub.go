// internal/websocket/hub.go
package websocket

import (
	"context"
	"strings"
	"sync"

	"alamin-service/internal/domain/user"
	wstypes "alamin-service/internal/domain/websocket"
	"alamin-service/internal/pkg/jwt"
	"alamin-service/internal/pkg/session"

	"go.uber.org/zap"
)

type Hub struct {
	// Registered sessions by lowercase username
	sessions map[string]map[*Session]bool
	mu       sync.RWMutex

	// Registration/unregistration
	Register   chan *Session
	unregister chan *Session

	// Broadcasting
	broadcast chan *BroadcastMessage

	// Auth dependencies
	jwtManager     *jwt.Manager
	sessionManager *session.Manager

	logger *zap.Logger
}

// BroadcastMessage targets the union of the named usernames and the named
// roles. When both are nil it goes to every session subscribed to the
// channel.
type BroadcastMessage struct {
	Usernames []string
	Roles     []user.Role
	Channel   wstypes.ChannelType
	Message   *wstypes.WSMessage
}

// Stats is a point-in-time view of the hub, exposed on the admin surface.
type Stats struct {
	TotalSessions  int            `json:"totalSessions"`
	ConnectedUsers int            `json:"connectedUsers"`
	SessionsByUser map[string]int `json:"sessionsByUser"`
}

func NewHub(jwtManager *jwt.Manager, sessionManager *session.Manager, logger *zap.Logger) *Hub {
	return &Hub{
		sessions:       make(map[string]map[*Session]bool),
		Register:       make(chan *Session),
		unregister:     make(chan *Session),
		broadcast:      make(chan *BroadcastMessage, 256),
		jwtManager:     jwtManager,
		sessionManager: sessionManager,
		logger:         logger,
	}
}

// Authenticate validates the bearer token and checks that its session is
// still live before a socket may join the hub.
func (h *Hub) Authenticate(ctx context.Context, token string) (*SessionAuth, error) {
	claims, err := h.jwtManager.Verify(token)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if _, err := h.sessionManager.Get(ctx, claims.Username, claims.ID); err != nil {
		return nil, ErrSessionExpired
	}

	return &SessionAuth{
		Username:  claims.Username,
		Name:      claims.Name,
		Role:      user.Role(claims.Role),
		SessionID: claims.ID,
	}, nil
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return

		case s := <-h.Register:
			h.registerSession(s)

		case s := <-h.unregister:
			h.unregisterSession(s)

		case msg := <-h.broadcast:
			h.deliver(msg)
		}
	}
}

func (h *Hub) registerSession(s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()

	key := strings.ToLower(s.username)
	if h.sessions[key] == nil {
		h.sessions[key] = make(map[*Session]bool)
	}
	h.sessions[key][s] = true

	h.logger.Info("websocket session connected",
		zap.String("username", s.username),
		zap.String("session_id", s.sessionID),
		zap.Int("total", h.totalSessions()))

	s.SendMessage(wstypes.NewMessage(wstypes.EventTypeConnected, map[string]interface{}{
		"username":  s.username,
		"name":      s.name,
		"role":      s.role,
		"sessionId": s.sessionID,
	}))
}

func (h *Hub) unregisterSession(s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()

	key := strings.ToLower(s.username)
	if sessions, ok := h.sessions[key]; ok {
		if _, exists := sessions[s]; exists {
			delete(sessions, s)
			s.Close()

			if len(sessions) == 0 {
				delete(h.sessions, key)
			}

			h.logger.Info("websocket session disconnected",
				zap.String("username", s.username),
				zap.String("session_id", s.sessionID),
				zap.Int("total", h.totalSessions()))
		}
	}
}

func (h *Hub) deliver(msg *BroadcastMessage) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if msg.Usernames == nil && msg.Roles == nil {
		for _, sessions := range h.sessions {
			for s := range sessions {
				if s.IsSubscribed(msg.Channel) {
					s.SendMessage(msg.Message)
				}
			}
		}
		return
	}

	delivered := make(map[*Session]bool)
	send := func(s *Session) {
		if !delivered[s] && s.IsSubscribed(msg.Channel) {
			delivered[s] = true
			s.SendMessage(msg.Message)
		}
	}

	for _, username := range msg.Usernames {
		for s := range h.sessions[strings.ToLower(username)] {
			send(s)
		}
	}
	for _, role := range msg.Roles {
		for _, sessions := range h.sessions {
			for s := range sessions {
				if s.role == role {
					send(s)
				}
			}
		}
	}
}

// Broadcast queues a message without blocking the caller. Messages are
// dropped when the hub cannot keep up; every event is an invalidation hint,
// so a dropped one costs a refresh, not correctness.
func (h *Hub) Broadcast(msg *BroadcastMessage) {
	select {
	case h.broadcast <- msg:
	default:
		h.logger.Warn("broadcast queue full, dropping message",
			zap.String("type", string(msg.Message.Type)))
	}
}

// DisconnectUser closes every session a user holds, after telling them why.
func (h *Hub) DisconnectUser(username string, reason string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	key := strings.ToLower(username)
	if sessions, ok := h.sessions[key]; ok {
		msg := wstypes.NewMessage(wstypes.EventTypeDisconnected, map[string]interface{}{
			"reason": reason,
		})
		for s := range sessions {
			s.SendMessage(msg)
			s.Close()
		}
		delete(h.sessions, key)

		h.logger.Info("disconnected all sessions",
			zap.String("username", username),
			zap.String("reason", reason))
	}
}

func (h *Hub) IsUserConnected(username string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions[strings.ToLower(username)]) > 0
}

func (h *Hub) Stats() Stats {
	h.mu.RLock()
	defer h.mu.RUnlock()

	stats := Stats{SessionsByUser: make(map[string]int, len(h.sessions))}
	for username, sessions := range h.sessions {
		stats.SessionsByUser[username] = len(sessions)
		stats.TotalSessions += len(sessions)
	}
	stats.ConnectedUsers = len(h.sessions)
	return stats
}

func (h *Hub) totalSessions() int {
	total := 0
	for _, sessions := range h.sessions {
		total += len(sessions)
	}
	return total
}

func (h *Hub) shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, sessions := range h.sessions {
		for s := range sessions {
			s.Close()
		}
	}
	h.sessions = make(map[string]map[*Session]bool)
}
