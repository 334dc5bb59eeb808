package pdf

import (
	"invsys/go_backend/internal/domain/customer"
	"invsys/go_backend/internal/domain/invoice"
	"invsys/go_backend/internal/domain/quotation"
	"invsys/go_backend/internal/domain/receipt"
)

type Generator interface {
	Invoice(inv invoice.Invoice, c customer.Customer) ([]byte, error)
	Quotation(q quotation.Quotation, c customer.Customer) ([]byte, error)
	Receipt(rc receipt.Receipt, inv invoice.Invoice) ([]byte, error)
}
