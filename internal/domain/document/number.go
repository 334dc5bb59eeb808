// Package document covers what quotations, invoices and receipts share:
// their numbering scheme and their printable rendition.
package document

import "fmt"

type Kind string

const (
	KindQuotation Kind = "quotation"
	KindInvoice   Kind = "invoice"
	KindReceipt   Kind = "receipt"
)

func (k Kind) Prefix() string {
	switch k {
	case KindQuotation:
		return "QT"
	case KindInvoice:
		return "INV"
	case KindReceipt:
		return "REC"
	}
	return "DOC"
}

// FormatNumber renders a sequence value as a document number, e.g.
// FormatNumber(KindInvoice, 12) == "INV-00012".
func FormatNumber(k Kind, n int64) string {
	return fmt.Sprintf("%s-%05d", k.Prefix(), n)
}
