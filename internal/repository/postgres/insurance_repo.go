// internal/repository/postgres/insurance_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"alamin-service/internal/domain/insurance"
	xerrors "alamin-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
)

type InsuranceRepository struct {
	db *DB
}

func NewInsuranceRepository(db *DB) *InsuranceRepository {
	return &InsuranceRepository{db: db}
}

const companyColumns = `id, name, phone, status, due, paid, currency, last_updated, created_at`

// GetAll returns every insurance company, newest change first.
func (r *InsuranceRepository) GetAll(ctx context.Context) ([]insurance.Company, error) {
	query := `
		SELECT ` + companyColumns + `
		FROM insurance_companies
		ORDER BY last_updated DESC NULLS LAST, id DESC
	`

	rows, err := r.db.Pool().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list insurance companies: %w", err)
	}
	defer rows.Close()

	companies := make([]insurance.Company, 0)
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		companies = append(companies, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read insurance companies: %w", err)
	}
	return companies, nil
}

func (r *InsuranceRepository) GetByID(ctx context.Context, id int64) (*insurance.Company, error) {
	query := `
		SELECT ` + companyColumns + `
		FROM insurance_companies
		WHERE id = $1
	`

	c, err := scanCompany(r.db.Pool().QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: insurance company %d", xerrors.ErrNotFound, id)
		}
		return nil, err
	}
	return c, nil
}

func (r *InsuranceRepository) Create(ctx context.Context, c *insurance.Company) error {
	createdAt := c.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	query := `
		INSERT INTO insurance_companies (id, name, phone, status, due, paid, currency, last_updated, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	if _, err := r.db.Pool().Exec(ctx, query,
		c.ID, c.Name, c.Phone, c.Status, c.Due, c.Paid, c.Currency,
		nullableTime(c.LastUpdated), createdAt,
	); err != nil {
		return fmt.Errorf("failed to create insurance company: %w", err)
	}
	return nil
}

func (r *InsuranceRepository) Update(ctx context.Context, c *insurance.Company) error {
	query := `
		UPDATE insurance_companies
		SET name = $2, phone = $3, status = $4, due = $5, paid = $6,
		    currency = $7, last_updated = $8
		WHERE id = $1
	`

	tag, err := r.db.Pool().Exec(ctx, query,
		c.ID, c.Name, c.Phone, c.Status, c.Due, c.Paid, c.Currency,
		nullableTime(c.LastUpdated),
	)
	if err != nil {
		return fmt.Errorf("failed to update insurance company: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: insurance company %d", xerrors.ErrNotFound, c.ID)
	}
	return nil
}

func (r *InsuranceRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Pool().Exec(ctx, `DELETE FROM insurance_companies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete insurance company: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: insurance company %d", xerrors.ErrNotFound, id)
	}
	return nil
}

// UpsertInTx writes a full company record. Used by snapshot imports.
func (r *InsuranceRepository) UpsertInTx(ctx context.Context, tx pgx.Tx, c *insurance.Company) error {
	createdAt := c.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	query := `
		INSERT INTO insurance_companies (id, name, phone, status, due, paid, currency, last_updated, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			phone = EXCLUDED.phone,
			status = EXCLUDED.status,
			due = EXCLUDED.due,
			paid = EXCLUDED.paid,
			currency = EXCLUDED.currency,
			last_updated = EXCLUDED.last_updated
	`
	if _, err := tx.Exec(ctx, query,
		c.ID, c.Name, c.Phone, c.Status, c.Due, c.Paid, c.Currency,
		nullableTime(c.LastUpdated), createdAt,
	); err != nil {
		return fmt.Errorf("failed to upsert insurance company: %w", err)
	}
	return nil
}

func scanCompany(row pgx.Row) (*insurance.Company, error) {
	var c insurance.Company
	var lastUpdated *time.Time

	err := row.Scan(
		&c.ID, &c.Name, &c.Phone, &c.Status, &c.Due, &c.Paid, &c.Currency,
		&lastUpdated, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan insurance company: %w", err)
	}

	if lastUpdated != nil {
		c.LastUpdated = *lastUpdated
	}
	return &c, nil
}
