package receipt

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	MethodCash         PaymentMethod = "cash"
	MethodCard         PaymentMethod = "card"
	MethodBankTransfer PaymentMethod = "bank_transfer"
	MethodCheck        PaymentMethod = "check"
	MethodOnline       PaymentMethod = "online"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodCash, MethodCard, MethodBankTransfer, MethodCheck, MethodOnline:
		return true
	}
	return false
}

type Receipt struct {
	ID              int64           `json:"id"`
	Number          string          `json:"number"`
	InvoiceID       int64           `json:"invoice_id"`
	InvoiceNumber   string          `json:"invoice_number,omitempty"`
	CustomerID      int64           `json:"customer_id"`
	CustomerName    string          `json:"customer_name,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
	PaymentMethod   PaymentMethod   `json:"payment_method"`
	PaymentDate     time.Time       `json:"payment_date"`
	ReferenceNumber string          `json:"reference_number,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func (r Receipt) Validate() error {
	if r.InvoiceID == 0 {
		return errors.New("invoice_id is required")
	}
	if !r.Amount.IsPositive() {
		return errors.New("amount must be > 0")
	}
	if !r.PaymentMethod.Valid() {
		return errors.New("invalid payment_method")
	}
	if r.PaymentDate.IsZero() {
		return errors.New("payment_date is required")
	}
	return nil
}
