// internal/repository/postgres/client_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"alamin-service/internal/domain/client"
	xerrors "alamin-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// querier is satisfied by both the pool and a transaction.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type ClientRepository struct {
	db *DB
}

func NewClientRepository(db *DB) *ClientRepository {
	return &ClientRepository{db: db}
}

const clientColumns = `
	id, full_name, nationality, passport_number, phone, email, address,
	notes, added_by, reminder_date, last_updated, created_at
`

// GetAll returns every client with transactions and files attached, newest
// change first.
func (r *ClientRepository) GetAll(ctx context.Context) ([]client.Client, error) {
	query := `
		SELECT ` + clientColumns + `
		FROM clients
		ORDER BY last_updated DESC NULLS LAST, id DESC
	`

	rows, err := r.db.Pool().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	clients := make([]client.Client, 0)
	ids := make([]int64, 0)
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, *c)
		ids = append(ids, c.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read clients: %w", err)
	}

	if err := r.attachChildren(ctx, clients, ids); err != nil {
		return nil, err
	}
	return clients, nil
}

// GetByID returns one client with its transactions and files.
func (r *ClientRepository) GetByID(ctx context.Context, id int64) (*client.Client, error) {
	query := `
		SELECT ` + clientColumns + `
		FROM clients
		WHERE id = $1
	`

	c, err := scanClient(r.db.Pool().QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: client %d", xerrors.ErrNotFound, id)
		}
		return nil, err
	}

	clients := []client.Client{*c}
	if err := r.attachChildren(ctx, clients, []int64{id}); err != nil {
		return nil, err
	}
	return &clients[0], nil
}

// Create inserts the client and its owned records in one transaction.
func (r *ClientRepository) Create(ctx context.Context, c *client.Client) error {
	return r.db.WithTx(ctx, func(tx pgx.Tx) error {
		return upsertClient(ctx, tx, c, false)
	})
}

// UpdateBase saves the client's own fields. Transactions and files have
// their own operations.
func (r *ClientRepository) UpdateBase(ctx context.Context, c *client.Client) error {
	query := `
		UPDATE clients
		SET full_name = $2, nationality = $3, passport_number = $4, phone = $5,
		    email = $6, address = $7, notes = $8, reminder_date = $9,
		    last_updated = $10
		WHERE id = $1
	`

	tag, err := r.db.Pool().Exec(ctx, query,
		c.ID, c.FullName, c.Nationality, c.Passport, c.Phone,
		c.Email, c.Address, c.Notes, c.ReminderDate, nullableTime(c.LastUpdated),
	)
	if err != nil {
		return fmt.Errorf("failed to update client: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: client %d", xerrors.ErrNotFound, c.ID)
	}
	return nil
}

// Delete removes the client; owned transactions and files cascade.
func (r *ClientRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Pool().Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: client %d", xerrors.ErrNotFound, id)
	}
	return nil
}

// AddTransaction inserts one transaction and bumps the owner's last_updated
// in the same transaction.
func (r *ClientRepository) AddTransaction(ctx context.Context, clientID int64, t client.Transaction, lastUpdated time.Time) error {
	return r.db.WithTx(ctx, func(tx pgx.Tx) error {
		query := `
			INSERT INTO transactions (id, client_id, type, status, notes, appointment_date, due, paid, currency, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`
		if _, err := tx.Exec(ctx, query,
			t.ID, clientID, t.Type, t.Status, t.Notes, t.AppointmentDate,
			t.Financial.Due, t.Financial.Paid, t.Financial.Currency, t.CreatedAt,
		); err != nil {
			return fmt.Errorf("failed to insert transaction: %w", err)
		}
		return touchClient(ctx, tx, clientID, lastUpdated)
	})
}

// UpdateTransaction replaces the stored transaction and bumps the owner's
// last_updated.
func (r *ClientRepository) UpdateTransaction(ctx context.Context, clientID int64, t client.Transaction, lastUpdated time.Time) error {
	return r.db.WithTx(ctx, func(tx pgx.Tx) error {
		query := `
			UPDATE transactions
			SET type = $3, status = $4, notes = $5, appointment_date = $6,
			    due = $7, paid = $8, currency = $9
			WHERE client_id = $1 AND id = $2
		`
		tag, err := tx.Exec(ctx, query,
			clientID, t.ID, t.Type, t.Status, t.Notes, t.AppointmentDate,
			t.Financial.Due, t.Financial.Paid, t.Financial.Currency,
		)
		if err != nil {
			return fmt.Errorf("failed to update transaction: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: transaction %d", xerrors.ErrNotFound, t.ID)
		}
		return touchClient(ctx, tx, clientID, lastUpdated)
	})
}

// DeleteTransaction removes one transaction and bumps the owner's
// last_updated.
func (r *ClientRepository) DeleteTransaction(ctx context.Context, clientID, transactionID int64, lastUpdated time.Time) error {
	return r.db.WithTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`DELETE FROM transactions WHERE client_id = $1 AND id = $2`,
			clientID, transactionID,
		)
		if err != nil {
			return fmt.Errorf("failed to delete transaction: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: transaction %d", xerrors.ErrNotFound, transactionID)
		}
		return touchClient(ctx, tx, clientID, lastUpdated)
	})
}

// AddFile stores one uploaded file and bumps the owner's last_updated.
func (r *ClientRepository) AddFile(ctx context.Context, clientID int64, f client.File, lastUpdated time.Time) error {
	return r.db.WithTx(ctx, func(tx pgx.Tx) error {
		query := `
			INSERT INTO files (id, client_id, name, type, size, data, upload_date)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`
		if _, err := tx.Exec(ctx, query,
			f.ID, clientID, f.Name, f.Type, f.Size, f.Data, f.UploadDate,
		); err != nil {
			return fmt.Errorf("failed to insert file: %w", err)
		}
		return touchClient(ctx, tx, clientID, lastUpdated)
	})
}

// GetFile returns one stored file including its payload.
func (r *ClientRepository) GetFile(ctx context.Context, clientID, fileID int64) (*client.File, error) {
	query := `
		SELECT id, name, type, size, data, upload_date
		FROM files
		WHERE client_id = $1 AND id = $2
	`

	var f client.File
	err := r.db.Pool().QueryRow(ctx, query, clientID, fileID).Scan(
		&f.ID, &f.Name, &f.Type, &f.Size, &f.Data, &f.UploadDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: file %d", xerrors.ErrNotFound, fileID)
		}
		return nil, fmt.Errorf("failed to get file: %w", err)
	}
	return &f, nil
}

// DeleteFile removes one file and bumps the owner's last_updated.
func (r *ClientRepository) DeleteFile(ctx context.Context, clientID, fileID int64, lastUpdated time.Time) error {
	return r.db.WithTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`DELETE FROM files WHERE client_id = $1 AND id = $2`,
			clientID, fileID,
		)
		if err != nil {
			return fmt.Errorf("failed to delete file: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: file %d", xerrors.ErrNotFound, fileID)
		}
		return touchClient(ctx, tx, clientID, lastUpdated)
	})
}

// SetReminder sets or clears the reminder and bumps last_updated.
func (r *ClientRepository) SetReminder(ctx context.Context, clientID int64, at *time.Time, lastUpdated time.Time) error {
	tag, err := r.db.Pool().Exec(ctx,
		`UPDATE clients SET reminder_date = $2, last_updated = $3 WHERE id = $1`,
		clientID, at, lastUpdated,
	)
	if err != nil {
		return fmt.Errorf("failed to set reminder: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: client %d", xerrors.ErrNotFound, clientID)
	}
	return nil
}

// UpsertInTx writes a full client record, replacing owned records. Used by
// snapshot imports, which run many of these inside one transaction.
func (r *ClientRepository) UpsertInTx(ctx context.Context, tx pgx.Tx, c *client.Client) error {
	return upsertClient(ctx, tx, c, true)
}

// --- internals ---

func upsertClient(ctx context.Context, tx pgx.Tx, c *client.Client, replace bool) error {
	query := `
		INSERT INTO clients (id, full_name, nationality, passport_number, phone,
		                     email, address, notes, added_by, reminder_date,
		                     last_updated, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	if replace {
		query += `
		ON CONFLICT (id) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			nationality = EXCLUDED.nationality,
			passport_number = EXCLUDED.passport_number,
			phone = EXCLUDED.phone,
			email = EXCLUDED.email,
			address = EXCLUDED.address,
			notes = EXCLUDED.notes,
			added_by = EXCLUDED.added_by,
			reminder_date = EXCLUDED.reminder_date,
			last_updated = EXCLUDED.last_updated
		`
	}

	createdAt := c.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	if _, err := tx.Exec(ctx, query,
		c.ID, c.FullName, c.Nationality, c.Passport, c.Phone,
		c.Email, c.Address, c.Notes, c.AddedBy, c.ReminderDate,
		nullableTime(c.LastUpdated), createdAt,
	); err != nil {
		return fmt.Errorf("failed to upsert client: %w", err)
	}

	if replace {
		if _, err := tx.Exec(ctx, `DELETE FROM transactions WHERE client_id = $1`, c.ID); err != nil {
			return fmt.Errorf("failed to clear transactions: %w", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM files WHERE client_id = $1`, c.ID); err != nil {
			return fmt.Errorf("failed to clear files: %w", err)
		}
	}

	for _, t := range c.Transactions {
		createdAt := t.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now()
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO transactions (id, client_id, type, status, notes, appointment_date, due, paid, currency, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`,
			t.ID, c.ID, t.Type, t.Status, t.Notes, t.AppointmentDate,
			t.Financial.Due, t.Financial.Paid, t.Financial.Currency, createdAt,
		); err != nil {
			return fmt.Errorf("failed to insert transaction: %w", err)
		}
	}

	for _, f := range c.Files {
		uploadDate := f.UploadDate
		if uploadDate.IsZero() {
			uploadDate = time.Now()
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO files (id, client_id, name, type, size, data, upload_date)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`,
			f.ID, c.ID, f.Name, f.Type, f.Size, f.Data, uploadDate,
		); err != nil {
			return fmt.Errorf("failed to insert file: %w", err)
		}
	}
	return nil
}

func touchClient(ctx context.Context, q querier, clientID int64, lastUpdated time.Time) error {
	tag, err := q.Exec(ctx,
		`UPDATE clients SET last_updated = $2 WHERE id = $1`,
		clientID, lastUpdated,
	)
	if err != nil {
		return fmt.Errorf("failed to touch client: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: client %d", xerrors.ErrNotFound, clientID)
	}
	return nil
}

func scanClient(row pgx.Row) (*client.Client, error) {
	var c client.Client
	var lastUpdated *time.Time

	err := row.Scan(
		&c.ID, &c.FullName, &c.Nationality, &c.Passport, &c.Phone,
		&c.Email, &c.Address, &c.Notes, &c.AddedBy, &c.ReminderDate,
		&lastUpdated, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan client: %w", err)
	}

	if lastUpdated != nil {
		c.LastUpdated = *lastUpdated
	}
	c.Transactions = make([]client.Transaction, 0)
	c.Files = make([]client.File, 0)
	return &c, nil
}

// attachChildren loads transactions and files for the given clients in two
// batched queries.
func (r *ClientRepository) attachChildren(ctx context.Context, clients []client.Client, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	index := make(map[int64]*client.Client, len(clients))
	for i := range clients {
		index[clients[i].ID] = &clients[i]
	}

	rows, err := r.db.Pool().Query(ctx, `
		SELECT client_id, id, type, status, notes, appointment_date, due, paid, currency, created_at
		FROM transactions
		WHERE client_id = ANY($1)
		ORDER BY created_at, id
	`, ids)
	if err != nil {
		return fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var clientID int64
		var t client.Transaction
		if err := rows.Scan(
			&clientID, &t.ID, &t.Type, &t.Status, &t.Notes, &t.AppointmentDate,
			&t.Financial.Due, &t.Financial.Paid, &t.Financial.Currency, &t.CreatedAt,
		); err != nil {
			return fmt.Errorf("failed to scan transaction: %w", err)
		}
		if c, ok := index[clientID]; ok {
			c.Transactions = append(c.Transactions, t)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read transactions: %w", err)
	}

	fileRows, err := r.db.Pool().Query(ctx, `
		SELECT client_id, id, name, type, size, data, upload_date
		FROM files
		WHERE client_id = ANY($1)
		ORDER BY upload_date, id
	`, ids)
	if err != nil {
		return fmt.Errorf("failed to list files: %w", err)
	}
	defer fileRows.Close()

	for fileRows.Next() {
		var clientID int64
		var f client.File
		if err := fileRows.Scan(
			&clientID, &f.ID, &f.Name, &f.Type, &f.Size, &f.Data, &f.UploadDate,
		); err != nil {
			return fmt.Errorf("failed to scan file: %w", err)
		}
		if c, ok := index[clientID]; ok {
			c.Files = append(c.Files, f)
		}
	}
	if err := fileRows.Err(); err != nil {
		return fmt.Errorf("failed to read files: %w", err)
	}
	return nil
}

func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
