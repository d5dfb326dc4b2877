// internal/repository/postgres/reminder_repo.go
package postgres

import (
	"context"
	"fmt"
	"time"
)

// ReminderRepository tracks which reminders have already been announced so a
// restart never replays them.
type ReminderRepository struct {
	db *DB
}

func NewReminderRepository(db *DB) *ReminderRepository {
	return &ReminderRepository{db: db}
}

// MarkNotified records that the reminder at this exact instant was announced
// for this client. Returns false when it was already recorded, which is the
// signal to stay silent.
func (r *ReminderRepository) MarkNotified(ctx context.Context, clientID int64, reminderAt time.Time) (bool, error) {
	tag, err := r.db.Pool().Exec(ctx, `
		INSERT INTO notified_reminders (client_id, reminder_at)
		VALUES ($1, $2)
		ON CONFLICT (client_id, reminder_at) DO NOTHING
	`, clientID, reminderAt)
	if err != nil {
		return false, fmt.Errorf("failed to mark reminder notified: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
