// internal/domain/client/dto.go
package client

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateClientRequest struct {
	FullName     string        `json:"fullName" binding:"required,max=255"`
	Nationality  string        `json:"nationality" binding:"required,max=100"`
	Passport     string        `json:"passport" binding:"required,max=50"`
	Phone        string        `json:"phone" binding:"required,max=30"`
	Email        string        `json:"email" binding:"omitempty,email,max=255"`
	Address      string        `json:"address"`
	Notes        string        `json:"notes"`
	ReminderDate *time.Time    `json:"reminderDate"`
	Transactions []Transaction `json:"transactions"`
	Files        []File        `json:"files"`
}

type UpdateClientRequest struct {
	FullName     *string    `json:"fullName" binding:"omitempty,max=255"`
	Nationality  *string    `json:"nationality" binding:"omitempty,max=100"`
	Passport     *string    `json:"passport" binding:"omitempty,max=50"`
	Phone        *string    `json:"phone" binding:"omitempty,max=30"`
	Email        *string    `json:"email" binding:"omitempty,max=255"`
	Address      *string    `json:"address"`
	Notes        *string    `json:"notes"`
	ReminderDate *time.Time `json:"reminderDate"`
}

type TransactionRequest struct {
	Type            string          `json:"type" binding:"required,max=100"`
	Status          string          `json:"status" binding:"max=100"`
	Notes           string          `json:"notes"`
	AppointmentDate string          `json:"appointmentDate"`
	Due             decimal.Decimal `json:"due"`
	Paid            decimal.Decimal `json:"paid"`
	Currency        string          `json:"currency"`
}

type UploadFileRequest struct {
	Name string `json:"name" binding:"required,max=255"`
	Type string `json:"type" binding:"max=100"`
	Size int64  `json:"size" binding:"min=0"`
	Data string `json:"data" binding:"required"`
}

type SetReminderRequest struct {
	// Null clears the reminder.
	ReminderDate *time.Time `json:"reminderDate"`
}
