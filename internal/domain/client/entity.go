// internal/domain/client/entity.go
package client

import (
	"fmt"
	"time"

	xerrors "alamin-service/internal/pkg/errors"

	"github.com/shopspring/decimal"
)

// Currencies accepted on financial records.
const (
	CurrencyUSD = "USD"
	CurrencyTRY = "TRY"
	CurrencyEUR = "EUR"
)

// Financial is the money state of a single transaction. The remaining amount
// is always derived, never stored.
type Financial struct {
	Due      decimal.Decimal `json:"due"`
	Paid     decimal.Decimal `json:"paid"`
	Currency string          `json:"currency"`
}

func (f Financial) Remaining() decimal.Decimal {
	return f.Due.Sub(f.Paid)
}

func (f Financial) Validate() error {
	if f.Due.IsNegative() {
		return fmt.Errorf("%w: due amount must not be negative", xerrors.ErrInvalidInput)
	}
	if f.Paid.IsNegative() {
		return fmt.Errorf("%w: paid amount must not be negative", xerrors.ErrInvalidInput)
	}
	switch f.Currency {
	case CurrencyUSD, CurrencyTRY, CurrencyEUR:
		return nil
	default:
		return fmt.Errorf("%w: unsupported currency %q", xerrors.ErrInvalidInput, f.Currency)
	}
}

// Transaction is owned by exactly one client and deleted with it.
type Transaction struct {
	ID              int64     `json:"id"`
	Type            string    `json:"type"`
	Status          string    `json:"status"`
	Notes           string    `json:"notes,omitempty"`
	AppointmentDate string    `json:"appointmentDate,omitempty"`
	Financial       Financial `json:"financial"`
	CreatedAt       time.Time `json:"createdAt"`
}

func (t Transaction) Validate() error {
	if t.ID == 0 {
		return fmt.Errorf("%w: transaction id is required", xerrors.ErrInvalidInput)
	}
	return t.Financial.Validate()
}

// File is an uploaded document. The payload is base64 text; files are
// immutable after upload.
type File struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Type       string    `json:"type"`
	Size       int64     `json:"size"`
	Data       string    `json:"data"`
	UploadDate time.Time `json:"uploadDate"`
}

// Client is the central record: identity fields, owned transactions and
// files, an optional reminder, and the username that created it.
type Client struct {
	ID           int64         `json:"id"`
	FullName     string        `json:"fullName"`
	Nationality  string        `json:"nationality"`
	Passport     string        `json:"passport"`
	Phone        string        `json:"phone"`
	Email        string        `json:"email,omitempty"`
	Address      string        `json:"address,omitempty"`
	Notes        string        `json:"notes,omitempty"`
	AddedBy      string        `json:"addedBy"`
	ReminderDate *time.Time    `json:"reminderDate,omitempty"`
	CreatedAt    time.Time     `json:"createdAt"`
	LastUpdated  time.Time     `json:"lastUpdated"`
	Transactions []Transaction `json:"transactions"`
	Files        []File        `json:"files"`
}

// Validate enforces the always-required identity fields.
func (c Client) Validate() error {
	if c.FullName == "" {
		return fmt.Errorf("%w: full name is required", xerrors.ErrInvalidInput)
	}
	if c.Nationality == "" {
		return fmt.Errorf("%w: nationality is required", xerrors.ErrInvalidInput)
	}
	if c.Passport == "" {
		return fmt.Errorf("%w: passport number is required", xerrors.ErrInvalidInput)
	}
	if c.Phone == "" {
		return fmt.Errorf("%w: phone is required", xerrors.ErrInvalidInput)
	}
	for _, t := range c.Transactions {
		if err := t.Financial.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// RecordID implements merge.Record.
func (c Client) RecordID() int64 {
	return c.ID
}

// EffectiveTimestamp implements merge.Record. Records written by this store
// always carry LastUpdated; the identifier fallback exists only for legacy
// imports where the field was never set.
func (c Client) EffectiveTimestamp() int64 {
	if !c.LastUpdated.IsZero() {
		return c.LastUpdated.UnixMilli()
	}
	return c.ID
}
