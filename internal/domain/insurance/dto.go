// internal/domain/insurance/dto.go
package insurance

import "github.com/shopspring/decimal"

type CreateCompanyRequest struct {
	Name     string          `json:"name" binding:"required,max=255"`
	Phone    string          `json:"phone" binding:"max=30"`
	Status   Status          `json:"status"`
	Due      decimal.Decimal `json:"due"`
	Paid     decimal.Decimal `json:"paid"`
	Currency string          `json:"currency"`
}

type UpdateCompanyRequest struct {
	Name     *string          `json:"name" binding:"omitempty,max=255"`
	Phone    *string          `json:"phone" binding:"omitempty,max=30"`
	Status   *Status          `json:"status"`
	Due      *decimal.Decimal `json:"due"`
	Paid     *decimal.Decimal `json:"paid"`
	Currency *string          `json:"currency"`
}
