// internal/domain/insurance/entity.go
package insurance

import (
	"fmt"
	"time"

	"alamin-service/internal/domain/client"
	xerrors "alamin-service/internal/pkg/errors"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusTrial    Status = "trial"
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Company is an insurance-company partner. Independent of clients.
type Company struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Phone       string          `json:"phone,omitempty"`
	Status      Status          `json:"status"`
	Due         decimal.Decimal `json:"due"`
	Paid        decimal.Decimal `json:"paid"`
	Currency    string          `json:"currency,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	LastUpdated time.Time       `json:"lastUpdated"`
}

func (c Company) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("%w: company name is required", xerrors.ErrInvalidInput)
	}
	switch c.Status {
	case StatusTrial, StatusActive, StatusInactive:
	default:
		return fmt.Errorf("%w: unknown company status %q", xerrors.ErrInvalidInput, c.Status)
	}
	if c.Due.IsNegative() || c.Paid.IsNegative() {
		return fmt.Errorf("%w: amounts must not be negative", xerrors.ErrInvalidInput)
	}
	if c.Currency != "" {
		switch c.Currency {
		case client.CurrencyUSD, client.CurrencyTRY, client.CurrencyEUR:
		default:
			return fmt.Errorf("%w: unsupported currency %q", xerrors.ErrInvalidInput, c.Currency)
		}
	}
	return nil
}

// RecordID implements merge.Record.
func (c Company) RecordID() int64 {
	return c.ID
}

// EffectiveTimestamp implements merge.Record; identifier fallback is for
// legacy imports only.
func (c Company) EffectiveTimestamp() int64 {
	if !c.LastUpdated.IsZero() {
		return c.LastUpdated.UnixMilli()
	}
	return c.ID
}
