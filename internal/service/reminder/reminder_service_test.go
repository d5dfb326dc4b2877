package reminder

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"alamin-service/internal/domain/client"
	"alamin-service/internal/domain/user"
	wstypes "alamin-service/internal/domain/websocket"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSource struct {
	clients []client.Client
	err     error
}

func (f *fakeSource) AllUnfiltered(context.Context) ([]client.Client, error) {
	return f.clients, f.err
}

type fakeStore struct {
	seen map[string]bool
	err  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{seen: make(map[string]bool)}
}

func (f *fakeStore) MarkNotified(_ context.Context, clientID int64, at time.Time) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	key := fmt.Sprintf("%d:%d", clientID, at.UnixMilli())
	if f.seen[key] {
		return false, nil
	}
	f.seen[key] = true
	return true, nil
}

type fakePublisher struct {
	events []wstypes.ReminderDueData
	owners []string
}

func (f *fakePublisher) ReminderDue(data wstypes.ReminderDueData, owner string) {
	f.events = append(f.events, data)
	f.owners = append(f.owners, owner)
}

func newScheduler(src *fakeSource, store *fakeStore, pub *fakePublisher, now time.Time) *Scheduler {
	s := NewScheduler(src, store, pub, time.Minute, zap.NewNop())
	s.now = func() time.Time { return now }
	return s
}

func withReminder(id int64, name, owner string, at time.Time) client.Client {
	return client.Client{ID: id, FullName: name, Phone: "555", AddedBy: owner, ReminderDate: &at}
}

func TestScan_AnnouncesRemindersInsideWindow(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	src := &fakeSource{clients: []client.Client{
		withReminder(1, "due in 3 min", "a", now.Add(3*time.Minute)),
		withReminder(2, "30 min overdue", "a", now.Add(-30*time.Minute)),
		withReminder(3, "too far out", "a", now.Add(10*time.Minute)),
		withReminder(4, "long missed", "a", now.Add(-2*time.Hour)),
		{ID: 5, FullName: "no reminder", AddedBy: "a"},
	}}
	pub := &fakePublisher{}

	newScheduler(src, newFakeStore(), pub, now).Scan(context.Background())

	require.Len(t, pub.events, 2)
	require.Equal(t, int64(1), pub.events[0].ClientID)
	require.Equal(t, int64(2), pub.events[1].ClientID)
	require.Equal(t, []string{"a", "a"}, pub.owners)
}

func TestScan_WindowBoundaries(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	src := &fakeSource{clients: []client.Client{
		withReminder(1, "exactly 5 min out", "a", now.Add(5*time.Minute)),
		withReminder(2, "exactly 60 min past", "a", now.Add(-60*time.Minute)),
	}}
	pub := &fakePublisher{}

	newScheduler(src, newFakeStore(), pub, now).Scan(context.Background())
	require.Len(t, pub.events, 2)
}

func TestScan_AnnouncesEachReminderOnce(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	at := now.Add(2 * time.Minute)

	src := &fakeSource{clients: []client.Client{withReminder(1, "c", "a", at)}}
	store := newFakeStore()
	pub := &fakePublisher{}

	sched := newScheduler(src, store, pub, now)
	sched.Scan(context.Background())
	sched.Scan(context.Background())
	require.Len(t, pub.events, 1)

	// Rescheduling to a new instant announces again.
	later := at.Add(time.Minute)
	src.clients[0].ReminderDate = &later
	sched.Scan(context.Background())
	require.Len(t, pub.events, 2)
}

func TestScan_SourceErrorSkipsCycle(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	src := &fakeSource{err: errors.New("db down")}
	pub := &fakePublisher{}

	newScheduler(src, newFakeStore(), pub, now).Scan(context.Background())
	require.Empty(t, pub.events)
}

func TestScan_StoreErrorStaysSilent(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	src := &fakeSource{clients: []client.Client{
		withReminder(1, "c", "a", now),
	}}
	store := newFakeStore()
	store.err = errors.New("db down")
	pub := &fakePublisher{}

	newScheduler(src, store, pub, now).Scan(context.Background())
	require.Empty(t, pub.events)
}

func TestListUpcoming_SevenDayHorizonAndOrder(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	manager := user.Actor{Username: "m", Role: user.RoleManager}

	src := &fakeSource{clients: []client.Client{
		withReminder(1, "in five days", "a", now.Add(5*24*time.Hour)),
		withReminder(2, "tomorrow", "a", now.Add(24*time.Hour)),
		withReminder(3, "next month", "a", now.Add(30*24*time.Hour)),
		withReminder(4, "already past", "a", now.Add(-time.Hour)),
		withReminder(5, "later today", "a", now.Add(2*time.Hour)),
		withReminder(6, "day after tomorrow", "a", now.Add(2*24*time.Hour)),
	}}

	sched := newScheduler(src, newFakeStore(), &fakePublisher{}, now)
	upcoming, err := sched.ListUpcoming(context.Background(), manager)
	require.NoError(t, err)

	require.Len(t, upcoming, 4)
	require.Equal(t, int64(5), upcoming[0].ClientID)
	require.Equal(t, int64(2), upcoming[1].ClientID)
	require.Equal(t, int64(6), upcoming[2].ClientID)
	require.Equal(t, int64(1), upcoming[3].ClientID)

	// Only the next calendar day is "soon"; two days out is already spelled.
	require.Equal(t, "today", upcoming[0].Urgency)
	require.Equal(t, "soon", upcoming[1].Urgency)
	require.Equal(t, "in 2 days", upcoming[2].Urgency)
	require.Equal(t, "in 5 days", upcoming[3].Urgency)
}

func TestListUpcoming_FiltersByOwnership(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	staff := user.Actor{Username: "alice", Role: user.RoleStaff}

	src := &fakeSource{clients: []client.Client{
		withReminder(1, "mine", "Alice", now.Add(time.Hour)),
		withReminder(2, "not mine", "bob", now.Add(time.Hour)),
	}}

	sched := newScheduler(src, newFakeStore(), &fakePublisher{}, now)
	upcoming, err := sched.ListUpcoming(context.Background(), staff)
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	require.Equal(t, int64(1), upcoming[0].ClientID)
}

func TestListAll_ReturnsFutureRemindersOnly(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	manager := user.Actor{Username: "m", Role: user.RoleManager}

	src := &fakeSource{clients: []client.Client{
		withReminder(1, "next month", "a", now.Add(30*24*time.Hour)),
		withReminder(2, "past", "a", now.Add(-time.Hour)),
		withReminder(3, "tomorrow", "a", now.Add(24*time.Hour)),
	}}

	sched := newScheduler(src, newFakeStore(), &fakePublisher{}, now)
	all, err := sched.ListAll(context.Background(), manager)
	require.NoError(t, err)

	require.Len(t, all, 2)
	require.Equal(t, int64(3), all[0].ClientID)
	require.Equal(t, int64(1), all[1].ClientID)
}
