package handlers

import (
	"context"
	"time"

	"invsys/go_backend/internal/domain/customer"
	"invsys/go_backend/internal/domain/invoice"
	"invsys/go_backend/internal/domain/quotation"
	"invsys/go_backend/internal/domain/receipt"
	"invsys/go_backend/internal/domain/report"
)

// Store is everything the handlers need from persistence. The postgres
// package implements it; tests use an in-memory fake.
type Store interface {
	ListCustomers(ctx context.Context, search string, page, pageSize int) ([]customer.Customer, int, error)
	GetCustomer(ctx context.Context, id int64) (customer.Customer, error)
	CreateCustomer(ctx context.Context, c *customer.Customer) error
	UpdateCustomer(ctx context.Context, c *customer.Customer) error
	DeleteCustomer(ctx context.Context, id int64) error
	SearchCustomers(ctx context.Context, query string, limit int) ([]customer.Customer, error)
	CustomerDetails(ctx context.Context, id int64) (report.CustomerDetails, error)

	ListQuotations(ctx context.Context, search, status string, page, pageSize int) ([]quotation.Quotation, int, error)
	GetQuotation(ctx context.Context, id int64) (quotation.Quotation, error)
	CreateQuotation(ctx context.Context, q *quotation.Quotation) error
	UpdateQuotation(ctx context.Context, q *quotation.Quotation) error
	DeleteQuotation(ctx context.Context, id int64) error
	ConvertQuotation(ctx context.Context, id int64, dueDate time.Time) (invoice.Invoice, error)

	ListInvoices(ctx context.Context, search, status string, page, pageSize int) ([]invoice.Invoice, int, error)
	GetInvoice(ctx context.Context, id int64) (invoice.Invoice, error)
	CreateInvoice(ctx context.Context, inv *invoice.Invoice) error
	UpdateInvoice(ctx context.Context, inv *invoice.Invoice) error
	DeleteInvoice(ctx context.Context, id int64) error

	ListReceipts(ctx context.Context, search string, page, pageSize int) ([]receipt.Receipt, int, error)
	GetReceipt(ctx context.Context, id int64) (receipt.Receipt, error)
	CreateReceipt(ctx context.Context, rc *receipt.Receipt) error
	UpdateReceipt(ctx context.Context, rc *receipt.Receipt) error
	DeleteReceipt(ctx context.Context, id int64) error

	Dashboard(ctx context.Context, today time.Time) (report.Dashboard, error)
	Analytics(ctx context.Context, today time.Time) (report.Analytics, error)
	RecentItems(ctx context.Context, limit int) ([]report.ItemSuggestion, error)
}
