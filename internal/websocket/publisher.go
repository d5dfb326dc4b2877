// internal/websocket/publisher.go
package websocket

import (
	"alamin-service/internal/domain/user"
	wstypes "alamin-service/internal/domain/websocket"
)

// Publisher is the narrow surface services use to announce record changes.
// Every method is fire-and-forget; a slow or absent hub never blocks a write
// path.
type Publisher interface {
	ClientAdded(id int64, addedBy string)
	ClientUpdated(id int64)
	ClientDeleted(id int64)
	InsuranceAdded(id int64)
	InsuranceUpdated(id int64)
	InsuranceDeleted(id int64)
	ReminderDue(data wstypes.ReminderDueData, owner string)
	SyncCompleted(data wstypes.SyncCompletedData)
}

// HubPublisher publishes events to every subscribed session on the hub.
// Change events carry only identifiers; receivers re-fetch through the HTTP
// surface, where access control applies.
type HubPublisher struct {
	hub *Hub
}

func NewPublisher(hub *Hub) *HubPublisher {
	return &HubPublisher{hub: hub}
}

func (p *HubPublisher) ClientAdded(id int64, addedBy string) {
	p.publish(wstypes.ChannelClients, wstypes.EventTypeClientAdded, wstypes.RecordEventData{ID: id, AddedBy: addedBy})
}

func (p *HubPublisher) ClientUpdated(id int64) {
	p.publish(wstypes.ChannelClients, wstypes.EventTypeClientUpdated, wstypes.RecordEventData{ID: id})
}

func (p *HubPublisher) ClientDeleted(id int64) {
	p.publish(wstypes.ChannelClients, wstypes.EventTypeClientDeleted, wstypes.RecordEventData{ID: id})
}

func (p *HubPublisher) InsuranceAdded(id int64) {
	p.publish(wstypes.ChannelInsurance, wstypes.EventTypeInsuranceAdded, wstypes.RecordEventData{ID: id})
}

func (p *HubPublisher) InsuranceUpdated(id int64) {
	p.publish(wstypes.ChannelInsurance, wstypes.EventTypeInsuranceUpdated, wstypes.RecordEventData{ID: id})
}

func (p *HubPublisher) InsuranceDeleted(id int64) {
	p.publish(wstypes.ChannelInsurance, wstypes.EventTypeInsuranceDeleted, wstypes.RecordEventData{ID: id})
}

// ReminderDue carries client details, so unlike the invalidation hints it is
// delivered only to the record's owner and to managers.
func (p *HubPublisher) ReminderDue(data wstypes.ReminderDueData, owner string) {
	msg := &BroadcastMessage{
		Roles:   []user.Role{user.RoleManager},
		Channel: wstypes.ChannelReminders,
		Message: wstypes.NewMessage(wstypes.EventTypeReminderDue, data),
	}
	if owner != "" {
		msg.Usernames = []string{owner}
	}
	p.hub.Broadcast(msg)
}

func (p *HubPublisher) SyncCompleted(data wstypes.SyncCompletedData) {
	p.publish(wstypes.ChannelSystem, wstypes.EventTypeSyncCompleted, data)
}

func (p *HubPublisher) publish(channel wstypes.ChannelType, eventType wstypes.EventType, data interface{}) {
	p.hub.Broadcast(&BroadcastMessage{
		Channel: channel,
		Message: wstypes.NewMessage(eventType, data),
	})
}

// NopPublisher discards every event. Used in tests and when the hub is
// disabled.
type NopPublisher struct{}

func (NopPublisher) ClientAdded(int64, string)                   {}
func (NopPublisher) ClientUpdated(int64)                         {}
func (NopPublisher) ClientDeleted(int64)                         {}
func (NopPublisher) InsuranceAdded(int64)                        {}
func (NopPublisher) InsuranceUpdated(int64)                      {}
func (NopPublisher) InsuranceDeleted(int64)                      {}
func (NopPublisher) ReminderDue(wstypes.ReminderDueData, string) {}
func (NopPublisher) SyncCompleted(wstypes.SyncCompletedData)     {}
