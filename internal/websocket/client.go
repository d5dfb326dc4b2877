// internal/websocket/client.go
package websocket

import (
	"context"
	"sync"
	"time"

	wstypes "alamin-service/internal/domain/websocket"
	"alamin-service/internal/domain/user"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024 // 64KB; inbound traffic is subscriptions and pings
)

// SessionAuth holds the verified identity a socket connects with.
type SessionAuth struct {
	Username  string
	Name      string
	Role      user.Role
	SessionID string
}

// Session is one live websocket connection. A user may hold several at once,
// one per browser tab.
type Session struct {
	hub       *Hub
	conn      *websocket.Conn
	send      chan []byte
	username  string
	name      string
	role      user.Role
	sessionID string

	// Channels this session is listening to
	subscriptions map[wstypes.ChannelType]bool
	subMutex      sync.RWMutex

	ctx    context.Context
	cancel context.CancelFunc

	closeOnce sync.Once
}

func NewSession(hub *Hub, conn *websocket.Conn, auth *SessionAuth) *Session {
	ctx, cancel := context.WithCancel(context.Background())

	s := &Session{
		hub:           hub,
		conn:          conn,
		send:          make(chan []byte, 256),
		username:      auth.Username,
		name:          auth.Name,
		role:          auth.Role,
		sessionID:     auth.SessionID,
		subscriptions: make(map[wstypes.ChannelType]bool),
		ctx:           ctx,
		cancel:        cancel,
	}

	// Every session starts subscribed to everything; unsubscribe is opt-out.
	for _, ch := range []wstypes.ChannelType{
		wstypes.ChannelClients,
		wstypes.ChannelInsurance,
		wstypes.ChannelReminders,
		wstypes.ChannelSystem,
	} {
		s.subscriptions[ch] = true
	}
	return s
}

func (s *Session) Username() string { return s.username }

func (s *Session) Role() user.Role { return s.role }

func (s *Session) SessionID() string { return s.sessionID }

func (s *Session) Subscribe(channel wstypes.ChannelType) {
	s.subMutex.Lock()
	defer s.subMutex.Unlock()
	s.subscriptions[channel] = true
}

func (s *Session) Unsubscribe(channel wstypes.ChannelType) {
	s.subMutex.Lock()
	defer s.subMutex.Unlock()
	delete(s.subscriptions, channel)
}

func (s *Session) IsSubscribed(channel wstypes.ChannelType) bool {
	s.subMutex.RLock()
	defer s.subMutex.RUnlock()
	return s.subscriptions[channel]
}

// ReadPump handles incoming messages until the peer goes away.
func (s *Session) ReadPump() {
	defer func() {
		s.hub.unregister <- s
		s.conn.Close()
	}()

	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetReadLimit(maxMessageSize)
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		select {
		case <-s.ctx.Done():
			return
		default:
			_, message, err := s.conn.ReadMessage()
			if err != nil {
				return
			}
			s.handleMessage(message)
		}
	}
}

// WritePump drains the send queue and keeps the connection alive with pings.
func (s *Session) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()

	for {
		select {
		case <-s.ctx.Done():
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			s.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		case message := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (s *Session) handleMessage(data []byte) {
	msg, err := wstypes.ParseMessage(data)
	if err != nil {
		s.SendError("invalid_message", "Failed to parse message", err.Error())
		return
	}

	switch msg.Type {
	case wstypes.EventTypePing:
		s.SendMessage(wstypes.NewMessage(wstypes.EventTypePong, nil))

	case wstypes.EventTypeSubscribe:
		var req wstypes.SubscribeRequest
		if err := mapToStruct(msg.Data, &req); err != nil {
			s.SendError("invalid_subscribe", "Invalid subscribe request", err.Error())
			return
		}
		for _, channel := range req.Channels {
			s.Subscribe(channel)
		}
		s.SendMessage(wstypes.NewMessage(wstypes.EventTypeSubscribe, map[string]interface{}{
			"channels": req.Channels,
			"status":   "subscribed",
		}))

	case wstypes.EventTypeUnsubscribe:
		var req wstypes.UnsubscribeRequest
		if err := mapToStruct(msg.Data, &req); err != nil {
			s.SendError("invalid_unsubscribe", "Invalid unsubscribe request", err.Error())
			return
		}
		for _, channel := range req.Channels {
			s.Unsubscribe(channel)
		}
		s.SendMessage(wstypes.NewMessage(wstypes.EventTypeUnsubscribe, map[string]interface{}{
			"channels": req.Channels,
			"status":   "unsubscribed",
		}))
	}
}

// SendMessage queues a message for this session. A session that cannot keep
// up is dropped rather than allowed to stall the hub.
func (s *Session) SendMessage(msg *wstypes.WSMessage) {
	data, err := msg.ToJSON()
	if err != nil {
		return
	}

	select {
	case <-s.ctx.Done():
		return
	default:
	}

	select {
	case s.send <- data:
	case <-s.ctx.Done():
	default:
		// Queue full. Cancel now so further sends become no-ops, then hand
		// removal to the hub loop asynchronously: this path runs on the hub
		// goroutine during delivery, and a direct send to unregister would
		// block on the only receiver, the hub itself.
		s.Close()
		go func() { s.hub.unregister <- s }()
	}
}

// SendError sends an error event to the session.
func (s *Session) SendError(code, message, details string) {
	s.SendMessage(wstypes.NewMessage(wstypes.EventTypeError, wstypes.ErrorData{
		Code:    code,
		Message: message,
		Details: details,
	}))
}

// Close shuts the session down. Safe to call more than once. The send
// channel is never closed: senders race with Close, and the context guard in
// SendMessage is what stops them.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.cancel()
	})
}
