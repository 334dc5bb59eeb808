package http

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"invsys/go_backend/internal/domain/customer"
	"invsys/go_backend/internal/domain/document"
	"invsys/go_backend/internal/domain/invoice"
	"invsys/go_backend/internal/domain/quotation"
	"invsys/go_backend/internal/domain/receipt"
	"invsys/go_backend/internal/domain/report"
	"invsys/go_backend/internal/infra/db/postgres"
)

// fakeStore is an in-memory handlers.Store that mirrors the database's
// numbering and settlement behavior closely enough for handler tests.
type fakeStore struct {
	mu         sync.Mutex
	customers  []customer.Customer
	quotations []quotation.Quotation
	invoices   []invoice.Invoice
	receipts   []receipt.Receipt
	nextID     int64
	seq        map[document.Kind]int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{seq: map[document.Kind]int64{}}
}

func (s *fakeStore) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *fakeStore) number(k document.Kind) string {
	s.seq[k]++
	return document.FormatNumber(k, s.seq[k])
}

func paginate[T any](list []T, page, pageSize int) []T {
	start := (page - 1) * pageSize
	if start >= len(list) {
		return nil
	}
	end := start + pageSize
	if end > len(list) {
		end = len(list)
	}
	return list[start:end]
}

func contains(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func (s *fakeStore) ListCustomers(_ context.Context, search string, page, pageSize int) ([]customer.Customer, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []customer.Customer
	for _, c := range s.customers {
		if search == "" || contains(c.Name, search) || contains(c.Email, search) || contains(c.Company, search) {
			out = append(out, c)
		}
	}
	return paginate(out, page, pageSize), len(out), nil
}

func (s *fakeStore) GetCustomer(_ context.Context, id int64) (customer.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.customers {
		if c.ID == id {
			return c, nil
		}
	}
	return customer.Customer{}, postgres.ErrNotFound
}

func (s *fakeStore) CreateCustomer(_ context.Context, c *customer.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = s.id()
	c.CreatedAt = time.Now().UTC()
	c.UpdatedAt = c.CreatedAt
	s.customers = append(s.customers, *c)
	return nil
}

func (s *fakeStore) UpdateCustomer(_ context.Context, c *customer.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.customers {
		if s.customers[i].ID == c.ID {
			c.CreatedAt = s.customers[i].CreatedAt
			c.UpdatedAt = time.Now().UTC()
			s.customers[i] = *c
			return nil
		}
	}
	return postgres.ErrNotFound
}

func (s *fakeStore) DeleteCustomer(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.customers {
		if s.customers[i].ID == id {
			s.customers = append(s.customers[:i], s.customers[i+1:]...)
			return nil
		}
	}
	return postgres.ErrNotFound
}

func (s *fakeStore) SearchCustomers(_ context.Context, query string, limit int) ([]customer.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []customer.Customer
	for _, c := range s.customers {
		if query == "" || contains(c.Name, query) || contains(c.Email, query) || contains(c.Company, query) {
			out = append(out, c)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *fakeStore) CustomerDetails(ctx context.Context, id int64) (report.CustomerDetails, error) {
	c, err := s.GetCustomer(ctx, id)
	if err != nil {
		return report.CustomerDetails{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	d := report.CustomerDetails{Customer: c}
	for _, inv := range s.invoices {
		if inv.CustomerID == id {
			d.TotalInvoiced = d.TotalInvoiced.Add(inv.TotalAmount)
			d.TotalPaid = d.TotalPaid.Add(inv.PaidAmount)
			d.RecentInvoices = append(d.RecentInvoices, inv)
		}
	}
	d.Outstanding = d.TotalInvoiced.Sub(d.TotalPaid)
	return d, nil
}

func (s *fakeStore) ListQuotations(_ context.Context, search, status string, page, pageSize int) ([]quotation.Quotation, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []quotation.Quotation
	for _, q := range s.quotations {
		if status != "" && string(q.Status) != status {
			continue
		}
		if search != "" && !contains(q.Number, search) && !contains(q.CustomerName, search) {
			continue
		}
		out = append(out, q)
	}
	return paginate(out, page, pageSize), len(out), nil
}

func (s *fakeStore) GetQuotation(_ context.Context, id int64) (quotation.Quotation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, q := range s.quotations {
		if q.ID == id {
			return q, nil
		}
	}
	return quotation.Quotation{}, postgres.ErrNotFound
}

func (s *fakeStore) CreateQuotation(_ context.Context, q *quotation.Quotation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	q.ID = s.id()
	q.Number = s.number(document.KindQuotation)
	for _, c := range s.customers {
		if c.ID == q.CustomerID {
			q.CustomerName = c.Name
		}
	}
	q.CreatedAt = time.Now().UTC()
	q.UpdatedAt = q.CreatedAt
	s.quotations = append(s.quotations, *q)
	return nil
}

func (s *fakeStore) UpdateQuotation(_ context.Context, q *quotation.Quotation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.quotations {
		if s.quotations[i].ID == q.ID {
			q.Number = s.quotations[i].Number
			q.CreatedAt = s.quotations[i].CreatedAt
			q.UpdatedAt = time.Now().UTC()
			s.quotations[i] = *q
			return nil
		}
	}
	return postgres.ErrNotFound
}

func (s *fakeStore) DeleteQuotation(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.quotations {
		if s.quotations[i].ID == id {
			s.quotations = append(s.quotations[:i], s.quotations[i+1:]...)
			return nil
		}
	}
	return postgres.ErrNotFound
}

func (s *fakeStore) ConvertQuotation(_ context.Context, id int64, dueDate time.Time) (invoice.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.quotations {
		q := &s.quotations[i]
		if q.ID != id {
			continue
		}
		inv := invoice.Invoice{
			ID:           s.id(),
			Number:       s.number(document.KindInvoice),
			CustomerID:   q.CustomerID,
			CustomerName: q.CustomerName,
			QuotationID:  &q.ID,
			Status:       invoice.StatusDraft,
			InvoiceDate:  time.Now().UTC().Truncate(24 * time.Hour),
			DueDate:      dueDate,
			TaxRate:      q.TaxRate,
			Subtotal:     q.Subtotal,
			TaxAmount:    q.TaxAmount,
			TotalAmount:  q.TotalAmount,
			Notes:        q.Notes,
		}
		for _, it := range q.Items {
			inv.Items = append(inv.Items, invoice.Item{
				Description: it.Description,
				Quantity:    it.Quantity,
				UnitPrice:   it.UnitPrice,
				LineTotal:   it.LineTotal,
			})
		}
		s.invoices = append(s.invoices, inv)
		q.Status = quotation.StatusAccepted
		return inv, nil
	}
	return invoice.Invoice{}, postgres.ErrNotFound
}

func (s *fakeStore) ListInvoices(_ context.Context, search, status string, page, pageSize int) ([]invoice.Invoice, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []invoice.Invoice
	for _, inv := range s.invoices {
		if status != "" && string(inv.Status) != status {
			continue
		}
		if search != "" && !contains(inv.Number, search) && !contains(inv.CustomerName, search) {
			continue
		}
		out = append(out, inv)
	}
	return paginate(out, page, pageSize), len(out), nil
}

func (s *fakeStore) GetInvoice(_ context.Context, id int64) (invoice.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, inv := range s.invoices {
		if inv.ID == id {
			return inv, nil
		}
	}
	return invoice.Invoice{}, postgres.ErrNotFound
}

func (s *fakeStore) CreateInvoice(_ context.Context, inv *invoice.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	inv.ID = s.id()
	inv.Number = s.number(document.KindInvoice)
	for _, c := range s.customers {
		if c.ID == inv.CustomerID {
			inv.CustomerName = c.Name
		}
	}
	inv.CreatedAt = time.Now().UTC()
	inv.UpdatedAt = inv.CreatedAt
	s.invoices = append(s.invoices, *inv)
	return nil
}

func (s *fakeStore) UpdateInvoice(_ context.Context, inv *invoice.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.invoices {
		if s.invoices[i].ID == inv.ID {
			inv.Number = s.invoices[i].Number
			inv.PaidAmount = s.invoices[i].PaidAmount
			inv.CreatedAt = s.invoices[i].CreatedAt
			inv.UpdatedAt = time.Now().UTC()
			s.invoices[i] = *inv
			return nil
		}
	}
	return postgres.ErrNotFound
}

func (s *fakeStore) DeleteInvoice(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.invoices {
		if s.invoices[i].ID == id {
			s.invoices = append(s.invoices[:i], s.invoices[i+1:]...)
			return nil
		}
	}
	return postgres.ErrNotFound
}

func (s *fakeStore) ListReceipts(_ context.Context, search string, page, pageSize int) ([]receipt.Receipt, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []receipt.Receipt
	for _, rc := range s.receipts {
		if search == "" || contains(rc.Number, search) || contains(rc.InvoiceNumber, search) || contains(rc.CustomerName, search) {
			out = append(out, rc)
		}
	}
	return paginate(out, page, pageSize), len(out), nil
}

func (s *fakeStore) GetReceipt(_ context.Context, id int64) (receipt.Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rc := range s.receipts {
		if rc.ID == id {
			return rc, nil
		}
	}
	return receipt.Receipt{}, postgres.ErrNotFound
}

// settle recomputes the invoice's paid amount from its receipts, same as
// the database does inside the receipt transaction.
func (s *fakeStore) settle(invoiceID int64) {
	total := decimal.Zero
	for _, rc := range s.receipts {
		if rc.InvoiceID == invoiceID {
			total = total.Add(rc.Amount)
		}
	}
	for i := range s.invoices {
		if s.invoices[i].ID == invoiceID {
			s.invoices[i].SettlePayment(total)
		}
	}
}

func (s *fakeStore) CreateReceipt(_ context.Context, rc *receipt.Receipt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var inv *invoice.Invoice
	for i := range s.invoices {
		if s.invoices[i].ID == rc.InvoiceID {
			inv = &s.invoices[i]
		}
	}
	if inv == nil {
		return postgres.ErrNotFound
	}
	rc.ID = s.id()
	rc.Number = s.number(document.KindReceipt)
	rc.InvoiceNumber = inv.Number
	rc.CustomerID = inv.CustomerID
	rc.CustomerName = inv.CustomerName
	rc.CreatedAt = time.Now().UTC()
	rc.UpdatedAt = rc.CreatedAt
	s.receipts = append(s.receipts, *rc)
	s.settle(rc.InvoiceID)
	return nil
}

func (s *fakeStore) UpdateReceipt(_ context.Context, rc *receipt.Receipt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.receipts {
		if s.receipts[i].ID == rc.ID {
			rc.Number = s.receipts[i].Number
			rc.InvoiceID = s.receipts[i].InvoiceID
			rc.InvoiceNumber = s.receipts[i].InvoiceNumber
			rc.CustomerID = s.receipts[i].CustomerID
			rc.CustomerName = s.receipts[i].CustomerName
			rc.CreatedAt = s.receipts[i].CreatedAt
			rc.UpdatedAt = time.Now().UTC()
			s.receipts[i] = *rc
			s.settle(rc.InvoiceID)
			return nil
		}
	}
	return postgres.ErrNotFound
}

func (s *fakeStore) DeleteReceipt(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.receipts {
		if s.receipts[i].ID == id {
			invoiceID := s.receipts[i].InvoiceID
			s.receipts = append(s.receipts[:i], s.receipts[i+1:]...)
			s.settle(invoiceID)
			return nil
		}
	}
	return postgres.ErrNotFound
}

func (s *fakeStore) Dashboard(_ context.Context, today time.Time) (report.Dashboard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := report.Dashboard{
		TotalCustomers:   len(s.customers),
		TotalInvoices:    len(s.invoices),
		TotalQuotations:  len(s.quotations),
		TotalReceipts:    len(s.receipts),
		RecentInvoices:   []invoice.Invoice{},
		RecentQuotations: []quotation.Quotation{},
		TopOutstanding:   []report.CustomerBalance{},
	}
	for _, inv := range s.invoices {
		if inv.Status == invoice.StatusCancelled {
			continue
		}
		d.TotalInvoiced = d.TotalInvoiced.Add(inv.TotalAmount)
		d.TotalPaid = d.TotalPaid.Add(inv.PaidAmount)
	}
	d.TotalOutstanding = d.TotalInvoiced.Sub(d.TotalPaid)
	d.CollectionRate = report.CollectionRate(d.TotalInvoiced, d.TotalPaid)
	return d, nil
}

func (s *fakeStore) Analytics(_ context.Context, today time.Time) (report.Analytics, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := report.Analytics{
		TotalCustomers:  len(s.customers),
		TotalInvoices:   len(s.invoices),
		TotalQuotations: len(s.quotations),
		TotalReceipts:   len(s.receipts),
		PaymentMethods:  []report.PaymentMethodStat{},
		Monthly:         []report.MonthlyPoint{},
		TopCustomers:    []report.CustomerBalance{},
	}
	for _, inv := range s.invoices {
		if inv.Status == invoice.StatusCancelled {
			continue
		}
		a.TotalInvoiced = a.TotalInvoiced.Add(inv.TotalAmount)
		a.TotalPaid = a.TotalPaid.Add(inv.PaidAmount)
		if balance := inv.BalanceDue(); balance.IsPositive() {
			a.Aging.Add(report.AgeBucket(inv.DueDate, today), balance)
		}
	}
	a.TotalOutstanding = a.TotalInvoiced.Sub(a.TotalPaid)
	a.CollectionRate = report.CollectionRate(a.TotalInvoiced, a.TotalPaid)
	return a, nil
}

func (s *fakeStore) RecentItems(_ context.Context, limit int) ([]report.ItemSuggestion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	index := map[string]int{}
	var out []report.ItemSuggestion
	for _, inv := range s.invoices {
		for _, it := range inv.Items {
			if i, ok := index[it.Description]; ok {
				out[i].UsageCount++
				continue
			}
			index[it.Description] = len(out)
			out = append(out, report.ItemSuggestion{Description: it.Description, UnitPrice: it.UnitPrice, UsageCount: 1})
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
