// internal/service/reminder/reminder_service.go
package reminder

import (
	"context"
	"fmt"
	"sort"
	"time"

	"alamin-service/internal/access"
	"alamin-service/internal/domain/client"
	"alamin-service/internal/domain/user"
	wstypes "alamin-service/internal/domain/websocket"

	"go.uber.org/zap"
)

const (
	// A reminder is announced from 5 minutes before its instant until an
	// hour after it. Outside that window it is either not yet due or
	// considered missed.
	announceBefore = 5 * time.Minute
	announceAfter  = 60 * time.Minute

	upcomingHorizon = 7 * 24 * time.Hour
)

// ClientSource yields every client regardless of ownership; the scanner runs
// on behalf of the whole system.
type ClientSource interface {
	AllUnfiltered(ctx context.Context) ([]client.Client, error)
}

// NotificationStore remembers which (client, instant) pairs were already
// announced, across restarts.
type NotificationStore interface {
	MarkNotified(ctx context.Context, clientID int64, reminderAt time.Time) (bool, error)
}

// Publisher receives due-reminder events. The owner scopes delivery: the
// event carries client details, so only the owner and managers may see it.
type Publisher interface {
	ReminderDue(data wstypes.ReminderDueData, owner string)
}

// Scheduler periodically scans for reminders entering their announce window
// and pushes one event per reminder instant.
type Scheduler struct {
	clients   ClientSource
	store     NotificationStore
	publisher Publisher
	logger    *zap.Logger
	interval  time.Duration
	now       func() time.Time
}

func NewScheduler(
	clients ClientSource,
	store NotificationStore,
	publisher Publisher,
	interval time.Duration,
	logger *zap.Logger,
) *Scheduler {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Scheduler{
		clients:   clients,
		store:     store,
		publisher: publisher,
		logger:    logger,
		interval:  interval,
		now:       time.Now,
	}
}

// Run scans immediately and then on every tick until the context ends.
func (s *Scheduler) Run(ctx context.Context) {
	s.logger.Info("reminder scheduler started", zap.Duration("interval", s.interval))

	s.Scan(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("reminder scheduler stopped")
			return
		case <-ticker.C:
			s.Scan(ctx)
		}
	}
}

// Scan announces every reminder currently inside its window that has not
// been announced before. A store error skips the cycle; the next tick
// retries.
func (s *Scheduler) Scan(ctx context.Context) {
	clients, err := s.clients.AllUnfiltered(ctx)
	if err != nil {
		s.logger.Error("reminder scan failed to load clients", zap.Error(err))
		return
	}

	now := s.now()
	for _, c := range clients {
		if c.ReminderDate == nil {
			continue
		}
		at := *c.ReminderDate
		if !inWindow(now, at) {
			continue
		}

		fresh, err := s.store.MarkNotified(ctx, c.ID, at)
		if err != nil {
			s.logger.Error("failed to record reminder notification",
				zap.Int64("client_id", c.ID),
				zap.Error(err))
			continue
		}
		if !fresh {
			continue
		}

		s.publisher.ReminderDue(wstypes.ReminderDueData{
			ClientID:   c.ID,
			FullName:   c.FullName,
			Phone:      c.Phone,
			ReminderAt: at,
		}, c.AddedBy)

		s.logger.Info("reminder announced",
			zap.Int64("client_id", c.ID),
			zap.Time("reminder_at", at))
	}
}

// inWindow reports whether the reminder at the given instant should be
// announced now.
func inWindow(now, at time.Time) bool {
	return !now.Before(at.Add(-announceBefore)) && !now.After(at.Add(announceAfter))
}

// Upcoming is one reminder inside the seven-day lookahead.
type Upcoming struct {
	ClientID   int64     `json:"clientId"`
	FullName   string    `json:"fullName"`
	Phone      string    `json:"phone"`
	ReminderAt time.Time `json:"reminderAt"`
	DaysUntil  int       `json:"daysUntil"`
	Urgency    string    `json:"urgency"`
}

// ListUpcoming returns the actor's visible reminders due within the next
// seven days, soonest first.
func (s *Scheduler) ListUpcoming(ctx context.Context, actor user.Actor) ([]Upcoming, error) {
	all, err := s.clients.AllUnfiltered(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	horizon := now.Add(upcomingHorizon)

	upcoming := make([]Upcoming, 0)
	for _, c := range access.Filter(actor, all) {
		if c.ReminderDate == nil {
			continue
		}
		at := *c.ReminderDate
		if at.Before(now) || at.After(horizon) {
			continue
		}
		upcoming = append(upcoming, buildUpcoming(c, at, now))
	}

	sort.Slice(upcoming, func(i, j int) bool {
		return upcoming[i].ReminderAt.Before(upcoming[j].ReminderAt)
	})
	return upcoming, nil
}

// ListAll returns every future reminder the actor may see, soonest first.
func (s *Scheduler) ListAll(ctx context.Context, actor user.Actor) ([]Upcoming, error) {
	all, err := s.clients.AllUnfiltered(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	reminders := make([]Upcoming, 0)
	for _, c := range access.Filter(actor, all) {
		if c.ReminderDate == nil {
			continue
		}
		at := *c.ReminderDate
		if at.Before(now) {
			continue
		}
		reminders = append(reminders, buildUpcoming(c, at, now))
	}

	sort.Slice(reminders, func(i, j int) bool {
		return reminders[i].ReminderAt.Before(reminders[j].ReminderAt)
	})
	return reminders, nil
}

func buildUpcoming(c client.Client, at, now time.Time) Upcoming {
	days := daysBetween(now, at)
	return Upcoming{
		ClientID:   c.ID,
		FullName:   c.FullName,
		Phone:      c.Phone,
		ReminderAt: at,
		DaysUntil:  days,
		Urgency:    urgency(days),
	}
}

// daysBetween counts calendar-day boundaries, so a reminder later today is 0
// days away even if it is 23 hours out.
func daysBetween(now, at time.Time) int {
	nowDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	atDay := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, at.Location())
	return int(atDay.Sub(nowDay) / (24 * time.Hour))
}

func urgency(days int) string {
	switch {
	case days <= 0:
		return "today"
	case days == 1:
		return "soon"
	default:
		return fmt.Sprintf("in %d days", days)
	}
}
