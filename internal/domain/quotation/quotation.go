package quotation

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusDraft    Status = "draft"
	StatusSent     Status = "sent"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
	StatusExpired  Status = "expired"
)

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusSent, StatusAccepted, StatusRejected, StatusExpired:
		return true
	}
	return false
}

type Item struct {
	ID          int64           `json:"id,omitempty"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

type Quotation struct {
	ID            int64           `json:"id"`
	Number        string          `json:"number"`
	CustomerID    int64           `json:"customer_id"`
	CustomerName  string          `json:"customer_name,omitempty"`
	Status        Status          `json:"status"`
	QuotationDate time.Time       `json:"quotation_date"`
	ValidUntil    time.Time       `json:"valid_until"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	TaxRate       decimal.Decimal `json:"tax_rate"`
	TaxAmount     decimal.Decimal `json:"tax_amount"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Notes         string          `json:"notes,omitempty"`
	Items         []Item          `json:"items,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

var hundred = decimal.NewFromInt(100)

// CalculateTotals recomputes every line total, the subtotal and the tax
// from the items. Amounts are kept at 2 decimal places.
func (q *Quotation) CalculateTotals() {
	subtotal := decimal.Zero
	for i := range q.Items {
		q.Items[i].LineTotal = q.Items[i].Quantity.Mul(q.Items[i].UnitPrice).Round(2)
		subtotal = subtotal.Add(q.Items[i].LineTotal)
	}
	q.Subtotal = subtotal
	q.TaxAmount = subtotal.Mul(q.TaxRate).Div(hundred).Round(2)
	q.TotalAmount = subtotal.Add(q.TaxAmount)
}

func (q Quotation) Validate() error {
	if q.CustomerID == 0 {
		return errors.New("customer_id is required")
	}
	if !q.Status.Valid() {
		return errors.New("invalid status")
	}
	if q.ValidUntil.Before(q.QuotationDate) {
		return errors.New("valid_until must not precede quotation_date")
	}
	if q.TaxRate.IsNegative() {
		return errors.New("tax_rate must be >= 0")
	}
	if len(q.Items) == 0 {
		return errors.New("at least one item is required")
	}
	for _, it := range q.Items {
		if strings.TrimSpace(it.Description) == "" {
			return errors.New("item description is required")
		}
		if !it.Quantity.IsPositive() {
			return errors.New("item quantity must be > 0")
		}
		if it.UnitPrice.IsNegative() {
			return errors.New("item unit_price must be >= 0")
		}
	}
	return nil
}
