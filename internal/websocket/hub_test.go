package websocket

import (
	"context"
	"testing"
	"time"

	"alamin-service/internal/domain/user"
	wstypes "alamin-service/internal/domain/websocket"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newIdleSession(hub *Hub, username string, role user.Role) *Session {
	// No pumps: the session only accumulates queued messages.
	return NewSession(hub, nil, &SessionAuth{
		Username:  username,
		Name:      username,
		Role:      role,
		SessionID: username + "-1",
	})
}

func TestDeliver_TargetsUsernamesAndRoles(t *testing.T) {
	hub := NewHub(nil, nil, zap.NewNop())

	owner := newIdleSession(hub, "alice", user.RoleStaff)
	other := newIdleSession(hub, "bob", user.RoleStaff)
	manager := newIdleSession(hub, "maria", user.RoleManager)
	for _, s := range []*Session{owner, other, manager} {
		hub.registerSession(s)
	}

	// Each session holds one queued "connected" message from registration.
	hub.deliver(&BroadcastMessage{
		Usernames: []string{"Alice"},
		Roles:     []user.Role{user.RoleManager},
		Channel:   wstypes.ChannelReminders,
		Message:   wstypes.NewMessage(wstypes.EventTypeReminderDue, nil),
	})

	require.Len(t, owner.send, 2)
	require.Len(t, manager.send, 2)
	require.Len(t, other.send, 1, "unrelated staff must not receive targeted events")
}

func TestDeliver_TargetedMessageSentOncePerSession(t *testing.T) {
	hub := NewHub(nil, nil, zap.NewNop())

	manager := newIdleSession(hub, "maria", user.RoleManager)
	hub.registerSession(manager)

	// Named both ways; still one delivery.
	hub.deliver(&BroadcastMessage{
		Usernames: []string{"maria"},
		Roles:     []user.Role{user.RoleManager},
		Channel:   wstypes.ChannelReminders,
		Message:   wstypes.NewMessage(wstypes.EventTypeReminderDue, nil),
	})

	require.Len(t, manager.send, 2)
}

func TestRun_SlowConsumerDoesNotStallHub(t *testing.T) {
	hub := NewHub(nil, nil, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	stalled := newIdleSession(hub, "alice", user.RoleStaff)
	hub.Register <- stalled

	// Keep feeding until the session's send buffer overflows and the hub
	// cuts it loose.
	require.Eventually(t, func() bool {
		hub.Broadcast(&BroadcastMessage{
			Channel: wstypes.ChannelSystem,
			Message: wstypes.NewMessage(wstypes.EventTypePing, nil),
		})
		return !hub.IsUserConnected("alice")
	}, 2*time.Second, time.Millisecond)

	// The hub loop must still accept registrations afterwards.
	registered := make(chan struct{})
	go func() {
		hub.Register <- newIdleSession(hub, "bob", user.RoleStaff)
		close(registered)
	}()
	select {
	case <-registered:
	case <-time.After(2 * time.Second):
		t.Fatal("registration blocked after a consumer overflowed its queue")
	}

	require.True(t, hub.IsUserConnected("bob"))
}
