// internal/domain/snapshot/snapshot.go
package snapshot

import (
	"fmt"
	"time"

	"alamin-service/internal/domain/client"
	"alamin-service/internal/domain/insurance"
	xerrors "alamin-service/internal/pkg/errors"
)

// Snapshot is the full export of both collections at a point in time. This is
// the backup/import wire format and must stay stable.
type Snapshot struct {
	Clients            []client.Client     `json:"clients"`
	InsuranceCompanies []insurance.Company `json:"insuranceCompanies"`
	ExportDate         time.Time           `json:"exportDate"`
}

// ImportDocument mirrors Snapshot with pointer slices so an absent array can
// be told apart from an empty one. Documents missing either array are
// rejected outright.
type ImportDocument struct {
	Clients            *[]client.Client     `json:"clients"`
	InsuranceCompanies *[]insurance.Company `json:"insuranceCompanies"`
	ExportDate         time.Time            `json:"exportDate"`
}

func (d *ImportDocument) Validate() error {
	if d.Clients == nil {
		return fmt.Errorf("%w: import document has no clients array", xerrors.ErrInvalidInput)
	}
	if d.InsuranceCompanies == nil {
		return fmt.Errorf("%w: import document has no insuranceCompanies array", xerrors.ErrInvalidInput)
	}
	return nil
}
