// internal/domain/websocket/types.go
package websocket

import (
	"encoding/json"
	"time"

	"github.com/oklog/ulid/v2"
)

// EventType represents different real-time event types
type EventType string

const (
	// Connection events
	EventTypePing         EventType = "ping"
	EventTypePong         EventType = "pong"
	EventTypeConnected    EventType = "connected"
	EventTypeDisconnected EventType = "disconnected"
	EventTypeError        EventType = "error"

	// Record change events (server -> client). Payloads are invalidation
	// hints only; receivers re-fetch the authoritative record set.
	EventTypeClientAdded      EventType = "client:added"
	EventTypeClientUpdated    EventType = "client:updated"
	EventTypeClientDeleted    EventType = "client:deleted"
	EventTypeInsuranceAdded   EventType = "insurance:added"
	EventTypeInsuranceUpdated EventType = "insurance:updated"
	EventTypeInsuranceDeleted EventType = "insurance:deleted"

	// Reminder events
	EventTypeReminderDue EventType = "reminder:due"

	// Snapshot sync events
	EventTypeSyncCompleted EventType = "sync:completed"

	// Subscription events
	EventTypeSubscribe   EventType = "subscribe"
	EventTypeUnsubscribe EventType = "unsubscribe"
)

// WSMessage is the universal message format
type WSMessage struct {
	Type      EventType   `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	ID        string      `json:"id,omitempty"`
}

// Subscription channels that clients can subscribe to
type ChannelType string

const (
	ChannelClients   ChannelType = "clients"
	ChannelInsurance ChannelType = "insurance"
	ChannelReminders ChannelType = "reminders"
	ChannelSystem    ChannelType = "system"
)

// SubscribeRequest sent by a session to subscribe to specific channels
type SubscribeRequest struct {
	Channels []ChannelType `json:"channels"`
}

// UnsubscribeRequest sent by a session to unsubscribe from channels
type UnsubscribeRequest struct {
	Channels []ChannelType `json:"channels"`
}

// ErrorData for error events
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// RecordEventData identifies the record a change event refers to. AddedBy is
// set only on creation events.
type RecordEventData struct {
	ID      int64  `json:"id"`
	AddedBy string `json:"addedBy,omitempty"`
}

// ReminderDueData is pushed when a client reminder enters its trigger window.
type ReminderDueData struct {
	ClientID   int64     `json:"clientId"`
	FullName   string    `json:"fullName"`
	Phone      string    `json:"phone"`
	ReminderAt time.Time `json:"reminderAt"`
}

// SyncCompletedData summarizes a snapshot merge.
type SyncCompletedData struct {
	NewClients       int `json:"newClients"`
	UpdatedClients   int `json:"updatedClients"`
	NewInsurance     int `json:"newInsurance"`
	UpdatedInsurance int `json:"updatedInsurance"`
}

// Helper to create messages
func NewMessage(eventType EventType, data interface{}) *WSMessage {
	return &WSMessage{
		Type:      eventType,
		Data:      data,
		Timestamp: time.Now(),
		ID:        ulid.Make().String(),
	}
}

func (m *WSMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ParseMessage(data []byte) (*WSMessage, error) {
	var msg WSMessage
	err := json.Unmarshal(data, &msg)
	return &msg, err
}
