package quotation

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func validQuotation() Quotation {
	return Quotation{
		CustomerID:    1,
		Status:        StatusDraft,
		QuotationDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		ValidUntil:    time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		TaxRate:       d("5"),
		Items: []Item{
			{Description: "Consulting", Quantity: d("2"), UnitPrice: d("150.00")},
			{Description: "Installation", Quantity: d("1.5"), UnitPrice: d("99.99")},
		},
	}
}

func TestCalculateTotals(t *testing.T) {
	q := validQuotation()
	q.CalculateTotals()

	if got := q.Items[0].LineTotal; !got.Equal(d("300.00")) {
		t.Errorf("line 0 total = %s, want 300.00", got)
	}
	if got := q.Items[1].LineTotal; !got.Equal(d("149.99")) {
		t.Errorf("line 1 total = %s, want 149.99 (rounded)", got)
	}
	if !q.Subtotal.Equal(d("449.99")) {
		t.Errorf("subtotal = %s, want 449.99", q.Subtotal)
	}
	if !q.TaxAmount.Equal(d("22.50")) {
		t.Errorf("tax = %s, want 22.50", q.TaxAmount)
	}
	if !q.TotalAmount.Equal(d("472.49")) {
		t.Errorf("total = %s, want 472.49", q.TotalAmount)
	}
}

func TestCalculateTotalsZeroTax(t *testing.T) {
	q := validQuotation()
	q.TaxRate = decimal.Zero
	q.CalculateTotals()
	if !q.TaxAmount.IsZero() {
		t.Errorf("tax = %s, want 0", q.TaxAmount)
	}
	if !q.TotalAmount.Equal(q.Subtotal) {
		t.Errorf("total = %s, want subtotal %s", q.TotalAmount, q.Subtotal)
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusDraft, StatusSent, StatusAccepted, StatusRejected, StatusExpired} {
		if !s.Valid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if Status("open").Valid() {
		t.Error("unknown status accepted")
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Quotation)
		ok     bool
	}{
		{"valid", func(q *Quotation) {}, true},
		{"missing customer", func(q *Quotation) { q.CustomerID = 0 }, false},
		{"bad status", func(q *Quotation) { q.Status = "open" }, false},
		{"valid_until before date", func(q *Quotation) { q.ValidUntil = q.QuotationDate.AddDate(0, 0, -1) }, false},
		{"negative tax", func(q *Quotation) { q.TaxRate = d("-1") }, false},
		{"no items", func(q *Quotation) { q.Items = nil }, false},
		{"blank description", func(q *Quotation) { q.Items[0].Description = "  " }, false},
		{"zero quantity", func(q *Quotation) { q.Items[0].Quantity = decimal.Zero }, false},
		{"negative price", func(q *Quotation) { q.Items[0].UnitPrice = d("-5") }, false},
		{"free item", func(q *Quotation) { q.Items[0].UnitPrice = decimal.Zero }, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q := validQuotation()
			tc.mutate(&q)
			err := q.Validate()
			if tc.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tc.ok && err == nil {
				t.Error("expected error")
			}
		})
	}
}
