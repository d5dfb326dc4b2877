package websocket

import (
	"testing"

	"alamin-service/internal/domain/user"
	wstypes "alamin-service/internal/domain/websocket"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func drain(t *testing.T, hub *Hub) *BroadcastMessage {
	t.Helper()
	select {
	case msg := <-hub.broadcast:
		return msg
	default:
		t.Fatal("expected a queued broadcast")
		return nil
	}
}

func TestPublisher_RoutesEventsToChannels(t *testing.T) {
	hub := NewHub(nil, nil, zap.NewNop())
	pub := NewPublisher(hub)

	pub.ClientAdded(7, "alice")
	msg := drain(t, hub)
	require.Equal(t, wstypes.ChannelClients, msg.Channel)
	require.Equal(t, wstypes.EventTypeClientAdded, msg.Message.Type)
	data, ok := msg.Message.Data.(wstypes.RecordEventData)
	require.True(t, ok)
	require.Equal(t, int64(7), data.ID)
	require.Equal(t, "alice", data.AddedBy)

	pub.ClientDeleted(7)
	msg = drain(t, hub)
	require.Equal(t, wstypes.EventTypeClientDeleted, msg.Message.Type)

	pub.InsuranceUpdated(9)
	msg = drain(t, hub)
	require.Equal(t, wstypes.ChannelInsurance, msg.Channel)
	require.Equal(t, wstypes.EventTypeInsuranceUpdated, msg.Message.Type)

	pub.SyncCompleted(wstypes.SyncCompletedData{NewClients: 2})
	msg = drain(t, hub)
	require.Equal(t, wstypes.ChannelSystem, msg.Channel)
}

func TestReminderDue_TargetsOwnerAndManagers(t *testing.T) {
	hub := NewHub(nil, nil, zap.NewNop())
	pub := NewPublisher(hub)

	pub.ReminderDue(wstypes.ReminderDueData{ClientID: 7}, "alice")
	msg := drain(t, hub)
	require.Equal(t, wstypes.ChannelReminders, msg.Channel)
	require.Equal(t, []string{"alice"}, msg.Usernames)
	require.Equal(t, []user.Role{user.RoleManager}, msg.Roles)
}

func TestReminderDue_UnownedRecordReachesManagersOnly(t *testing.T) {
	hub := NewHub(nil, nil, zap.NewNop())
	pub := NewPublisher(hub)

	pub.ReminderDue(wstypes.ReminderDueData{ClientID: 7}, "")
	msg := drain(t, hub)
	require.Nil(t, msg.Usernames)
	require.Equal(t, []user.Role{user.RoleManager}, msg.Roles)
}

func TestPublisher_UpdateEventsCarryNoOwner(t *testing.T) {
	hub := NewHub(nil, nil, zap.NewNop())
	pub := NewPublisher(hub)

	pub.ClientUpdated(3)
	msg := drain(t, hub)
	data, ok := msg.Message.Data.(wstypes.RecordEventData)
	require.True(t, ok)
	require.Empty(t, data.AddedBy)
}

func TestBroadcast_DropsWhenQueueFull(t *testing.T) {
	hub := NewHub(nil, nil, zap.NewNop())

	for i := 0; i < 300; i++ {
		hub.Broadcast(&BroadcastMessage{
			Channel: wstypes.ChannelSystem,
			Message: wstypes.NewMessage(wstypes.EventTypePing, nil),
		})
	}
	// The queue holds its capacity; the rest were dropped, not blocked on.
	require.Len(t, hub.broadcast, 256)
}
