// Package report holds the aggregate shapes behind the dashboard and
// analytics endpoints and the receivables aging math.
package report

import (
	"time"

	"github.com/shopspring/decimal"

	"invsys/go_backend/internal/domain/customer"
	"invsys/go_backend/internal/domain/invoice"
	"invsys/go_backend/internal/domain/quotation"
	"invsys/go_backend/internal/domain/receipt"
)

// Aging bucket labels, by elapsed time since the due date.
const (
	BucketCurrent       = "current"
	BucketOverdue1to30  = "overdue_1_30"
	BucketOverdue31to60 = "overdue_31_60"
	BucketOverdue60Plus = "overdue_60_plus"
)

// AgeBucket classifies an unpaid invoice's due date against today.
func AgeBucket(due, today time.Time) string {
	switch {
	case !due.Before(today):
		return BucketCurrent
	case !due.Before(today.AddDate(0, 0, -30)):
		return BucketOverdue1to30
	case !due.Before(today.AddDate(0, 0, -60)):
		return BucketOverdue31to60
	default:
		return BucketOverdue60Plus
	}
}

type AgingBucket struct {
	Count  int             `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

type Aging struct {
	Current       AgingBucket `json:"current"`
	Overdue1to30  AgingBucket `json:"overdue_1_30"`
	Overdue31to60 AgingBucket `json:"overdue_31_60"`
	Overdue60Plus AgingBucket `json:"overdue_60_plus"`
}

// Add accumulates an unpaid balance into the bucket named by AgeBucket.
func (a *Aging) Add(bucket string, balance decimal.Decimal) {
	var b *AgingBucket
	switch bucket {
	case BucketCurrent:
		b = &a.Current
	case BucketOverdue1to30:
		b = &a.Overdue1to30
	case BucketOverdue31to60:
		b = &a.Overdue31to60
	default:
		b = &a.Overdue60Plus
	}
	b.Count++
	b.Amount = b.Amount.Add(balance)
}

type CustomerBalance struct {
	CustomerID   int64           `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	Outstanding  decimal.Decimal `json:"outstanding"`
	InvoiceCount int             `json:"invoice_count"`
}

type PaymentMethodStat struct {
	Method      receipt.PaymentMethod `json:"method"`
	TotalAmount decimal.Decimal       `json:"total_amount"`
	Count       int                   `json:"count"`
	AvgAmount   decimal.Decimal       `json:"avg_amount"`
}

type MonthlyPoint struct {
	Month          string          `json:"month"` // YYYY-MM
	InvoicedAmount decimal.Decimal `json:"invoiced_amount"`
	InvoiceCount   int             `json:"invoice_count"`
	PaidAmount     decimal.Decimal `json:"paid_amount"`
	PaymentCount   int             `json:"payment_count"`
}

type Dashboard struct {
	TotalCustomers  int `json:"total_customers"`
	TotalInvoices   int `json:"total_invoices"`
	TotalQuotations int `json:"total_quotations"`
	TotalReceipts   int `json:"total_receipts"`
	PendingInvoices int `json:"pending_invoices"`
	OverdueInvoices int `json:"overdue_invoices"`

	TotalInvoiced    decimal.Decimal `json:"total_invoiced"`
	TotalPaid        decimal.Decimal `json:"total_paid"`
	TotalOutstanding decimal.Decimal `json:"total_outstanding"`
	Overdue30Days    decimal.Decimal `json:"overdue_30_days"`
	CollectionRate   decimal.Decimal `json:"collection_rate"`

	RecentInvoices   []invoice.Invoice     `json:"recent_invoices"`
	RecentQuotations []quotation.Quotation `json:"recent_quotations"`
	TopOutstanding   []CustomerBalance     `json:"top_outstanding_customers"`
}

type Analytics struct {
	TotalInvoiced    decimal.Decimal `json:"total_invoiced"`
	TotalPaid        decimal.Decimal `json:"total_paid"`
	TotalOutstanding decimal.Decimal `json:"total_outstanding"`
	CollectionRate   decimal.Decimal `json:"collection_rate"`

	Aging          Aging               `json:"aging"`
	PaymentMethods []PaymentMethodStat `json:"payment_methods"`
	Monthly        []MonthlyPoint      `json:"monthly"`
	TopCustomers   []CustomerBalance   `json:"top_customers"`

	TotalCustomers  int `json:"total_customers"`
	TotalInvoices   int `json:"total_invoices"`
	TotalQuotations int `json:"total_quotations"`
	TotalReceipts   int `json:"total_receipts"`
}

type CustomerDetails struct {
	Customer         customer.Customer     `json:"customer"`
	TotalInvoiced    decimal.Decimal       `json:"total_invoiced"`
	TotalPaid        decimal.Decimal       `json:"total_paid"`
	Outstanding      decimal.Decimal       `json:"outstanding_balance"`
	RecentInvoices   []invoice.Invoice     `json:"recent_invoices"`
	RecentQuotations []quotation.Quotation `json:"recent_quotations"`
	RecentReceipts   []receipt.Receipt     `json:"recent_receipts"`
}

type ItemSuggestion struct {
	Description string          `json:"description"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	UsageCount  int             `json:"usage_count"`
}

var hundred = decimal.NewFromInt(100)

// CollectionRate is paid/invoiced as a percentage, zero when nothing has
// been invoiced.
func CollectionRate(invoiced, paid decimal.Decimal) decimal.Decimal {
	if !invoiced.IsPositive() {
		return decimal.Zero
	}
	return paid.Div(invoiced).Mul(hundred).Round(2)
}
