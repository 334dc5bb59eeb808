package invoice

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusSent      Status = "sent"
	StatusPaid      Status = "paid"
	StatusOverdue   Status = "overdue"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusSent, StatusPaid, StatusOverdue, StatusCancelled:
		return true
	}
	return false
}

// PaymentStatus is derived from paid_amount vs total_amount, it is never
// stored.
type PaymentStatus string

const (
	PaymentUnpaid  PaymentStatus = "unpaid"
	PaymentPartial PaymentStatus = "partial"
	PaymentPaid    PaymentStatus = "paid"
)

type Item struct {
	ID          int64           `json:"id,omitempty"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

type Invoice struct {
	ID                 int64           `json:"id"`
	Number             string          `json:"number"`
	CustomerID         int64           `json:"customer_id"`
	CustomerName       string          `json:"customer_name,omitempty"`
	QuotationID        *int64          `json:"quotation_id,omitempty"`
	Status             Status          `json:"status"`
	InvoiceDate        time.Time       `json:"invoice_date"`
	DueDate            time.Time       `json:"due_date"`
	TaxRate            decimal.Decimal `json:"tax_rate"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	DiscountAmount     decimal.Decimal `json:"discount_amount"`
	Subtotal           decimal.Decimal `json:"subtotal"`
	TaxAmount          decimal.Decimal `json:"tax_amount"`
	TotalAmount        decimal.Decimal `json:"total_amount"`
	PaidAmount         decimal.Decimal `json:"paid_amount"`
	PaymentMethod      string          `json:"payment_method,omitempty"`
	Notes              string          `json:"notes,omitempty"`
	Items              []Item          `json:"items,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

var hundred = decimal.NewFromInt(100)

// CalculateTotals recomputes line totals, subtotal, discount and tax. The
// discount is taken off the subtotal first and tax applies to the
// discounted amount. A positive DiscountPercentage wins over a fixed
// DiscountAmount; a fixed amount is kept as given.
func (inv *Invoice) CalculateTotals() {
	subtotal := decimal.Zero
	for i := range inv.Items {
		inv.Items[i].LineTotal = inv.Items[i].Quantity.Mul(inv.Items[i].UnitPrice).Round(2)
		subtotal = subtotal.Add(inv.Items[i].LineTotal)
	}
	inv.Subtotal = subtotal
	if inv.DiscountPercentage.IsPositive() {
		inv.DiscountAmount = subtotal.Mul(inv.DiscountPercentage).Div(hundred).Round(2)
	}
	discounted := subtotal.Sub(inv.DiscountAmount)
	inv.TaxAmount = discounted.Mul(inv.TaxRate).Div(hundred).Round(2)
	inv.TotalAmount = discounted.Add(inv.TaxAmount)
}

func (inv Invoice) BalanceDue() decimal.Decimal {
	return inv.TotalAmount.Sub(inv.PaidAmount)
}

func (inv Invoice) PaymentStatus() PaymentStatus {
	switch {
	case !inv.PaidAmount.IsPositive():
		return PaymentUnpaid
	case inv.PaidAmount.GreaterThanOrEqual(inv.TotalAmount):
		return PaymentPaid
	default:
		return PaymentPartial
	}
}

// SettlePayment records the invoice's total recorded payments and moves the
// status accordingly: a fully covered invoice becomes paid, and a formerly
// paid invoice whose payments no longer cover it drops back to sent.
func (inv *Invoice) SettlePayment(paid decimal.Decimal) {
	inv.PaidAmount = paid
	if paid.GreaterThanOrEqual(inv.TotalAmount) && inv.TotalAmount.IsPositive() {
		inv.Status = StatusPaid
	} else if inv.Status == StatusPaid {
		inv.Status = StatusSent
	}
}

func (inv Invoice) Validate() error {
	if inv.CustomerID == 0 {
		return errors.New("customer_id is required")
	}
	if !inv.Status.Valid() {
		return errors.New("invalid status")
	}
	if inv.DueDate.Before(inv.InvoiceDate) {
		return errors.New("due_date must not precede invoice_date")
	}
	if inv.TaxRate.IsNegative() {
		return errors.New("tax_rate must be >= 0")
	}
	if inv.DiscountPercentage.IsNegative() || inv.DiscountAmount.IsNegative() {
		return errors.New("discount must be >= 0")
	}
	if len(inv.Items) == 0 {
		return errors.New("at least one item is required")
	}
	for _, it := range inv.Items {
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
