package gofpdf

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"invsys/go_backend/internal/domain/customer"
	"invsys/go_backend/internal/domain/invoice"
	"invsys/go_backend/internal/domain/quotation"
	"invsys/go_backend/internal/domain/receipt"
)

type Generator struct {
	FontDir string
}

func New(fontDir string) *Generator { return &Generator{FontDir: fontDir} }

// setup creates an A4 portrait document and registers the DejaVu UTF-8
// fonts when present, so customer names and notes in Arabic or any other
// non-Latin script render. Without the font files the built-in Helvetica
// is used and generation still succeeds.
func (g *Generator) setup(title string) (*gofpdf.Fpdf, string) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)

	family := "Helvetica"
	regular := filepath.Join(g.FontDir, "DejaVuSans.ttf")
	bold := filepath.Join(g.FontDir, "DejaVuSans-Bold.ttf")
	if _, err := os.Stat(regular); err == nil {
		pdf.AddUTF8Font("DejaVu", "", regular)
		pdf.AddUTF8Font("DejaVu", "B", bold)
		if err := pdf.Error(); err == nil {
			family = "DejaVu"
		} else {
			log.Printf("document pdf: font load failed, using core font: %v", err)
			pdf = gofpdf.New("P", "mm", "A4", "")
			pdf.SetTitle(title, true)
		}
	}

	pdf.AddPage()
	return pdf, family
}

func (g *Generator) Invoice(inv invoice.Invoice, c customer.Customer) ([]byte, error) {
	pdf, font := g.setup("Invoice " + inv.Number)

	writeTitle(pdf, font, "INVOICE")
	writeDetails(pdf, font, [][2]string{
		{"Invoice Number:", inv.Number},
		{"Invoice Date:", inv.InvoiceDate.Format("2006-01-02")},
		{"Due Date:", inv.DueDate.Format("2006-01-02")},
		{"Status:", string(inv.Status)},
	})
	writeBillTo(pdf, font, "Bill To:", c)
	writeItems(pdf, font, invoiceRows(inv.Items))

	totals := [][2]string{
		{"Subtotal:", money(inv.Subtotal)},
	}
	if inv.DiscountAmount.IsPositive() {
		totals = append(totals, [2]string{"Discount:", "-" + money(inv.DiscountAmount)})
	}
	totals = append(totals,
		[2]string{"Tax:", money(inv.TaxAmount)},
		[2]string{"Total Amount:", money(inv.TotalAmount)},
		[2]string{"Paid Amount:", money(inv.PaidAmount)},
		[2]string{"Outstanding:", money(inv.BalanceDue())},
	)
	writeTotals(pdf, font, totals)
	writeNotes(pdf, font, inv.Notes)
	writeFooter(pdf, font)

	return output(pdf, "invoice", inv.Number)
}

func (g *Generator) Quotation(q quotation.Quotation, c customer.Customer) ([]byte, error) {
	pdf, font := g.setup("Quotation " + q.Number)

	writeTitle(pdf, font, "QUOTATION")
	writeDetails(pdf, font, [][2]string{
		{"Quotation Number:", q.Number},
		{"Quotation Date:", q.QuotationDate.Format("2006-01-02")},
		{"Valid Until:", q.ValidUntil.Format("2006-01-02")},
		{"Status:", string(q.Status)},
	})
	writeBillTo(pdf, font, "Quote For:", c)
	writeItems(pdf, font, quotationRows(q.Items))
	writeTotals(pdf, font, [][2]string{
		{"Subtotal:", money(q.Subtotal)},
		{"Tax:", money(q.TaxAmount)},
		{"Total Amount:", money(q.TotalAmount)},
	})
	writeNotes(pdf, font, q.Notes)
	writeFooter(pdf, font)

	return output(pdf, "quotation", q.Number)
}

func (g *Generator) Receipt(rc receipt.Receipt, inv invoice.Invoice) ([]byte, error) {
	pdf, font := g.setup("Receipt " + rc.Number)

	writeTitle(pdf, font, "PAYMENT RECEIPT")
	ref := rc.ReferenceNumber
	if ref == "" {
		ref = "N/A"
	}
	writeDetails(pdf, font, [][2]string{
		{"Receipt Number:", rc.Number},
		{"Payment Date:", rc.PaymentDate.Format("2006-01-02")},
		{"Payment Method:", string(rc.PaymentMethod)},
		{"Reference Number:", ref},
		{"Amount Paid:", money(rc.Amount)},
	})

	pdf.Ln(4)
	pdf.SetFont(font, "B", 12)
	pdf.Cell(0, 7, "Payment For:")
	pdf.Ln(8)
	pdf.SetFont(font, "", 10)
	previous := inv.PaidAmount.Sub(rc.Amount)
	if previous.IsNegative() {
		previous = decimal.Zero
	}
	for _, line := range []string{
		fmt.Sprintf("Invoice Number: %s", inv.Number),
		fmt.Sprintf("Customer: %s", rc.CustomerName),
		fmt.Sprintf("Invoice Total: %s", money(inv.TotalAmount)),
		fmt.Sprintf("Previous Payments: %s", money(previous)),
		fmt.Sprintf("This Payment: %s", money(rc.Amount)),
		fmt.Sprintf("Remaining Balance: %s", money(inv.BalanceDue())),
	} {
		pdf.Cell(0, 6, line)
		pdf.Ln(6)
	}

	writeNotes(pdf, font, rc.Notes)
	writeFooter(pdf, font)

	return output(pdf, "receipt", rc.Number)
}

func invoiceRows(items []invoice.Item) [][4]string {
	rows := make([][4]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, [4]string{it.Description, it.Quantity.String(), money(it.UnitPrice), money(it.LineTotal)})
	}
	return rows
}

func quotationRows(items []quotation.Item) [][4]string {
	rows := make([][4]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, [4]string{it.Description, it.Quantity.String(), money(it.UnitPrice), money(it.LineTotal)})
	}
	return rows
}

func writeTitle(pdf *gofpdf.Fpdf, font, title string) {
	pdf.SetFont(font, "B", 18)
	pdf.Cell(0, 10, title)
	pdf.Ln(12)
}

func writeDetails(pdf *gofpdf.Fpdf, font string, rows [][2]string) {
	for _, row := range rows {
		pdf.SetFont(font, "B", 10)
		pdf.Cell(45, 6, row[0])
		pdf.SetFont(font, "", 10)
		pdf.Cell(0, 6, row[1])
		pdf.Ln(6)
	}
}

func writeBillTo(pdf *gofpdf.Fpdf, font, heading string, c customer.Customer) {
	pdf.Ln(4)
	pdf.SetFont(font, "B", 12)
	pdf.Cell(0, 7, heading)
	pdf.Ln(8)
	pdf.SetFont(font, "", 10)
	for _, line := range []string{c.Name, c.Company, c.Email, c.Phone, c.Address} {
		if line == "" {
			continue
		}
		pdf.Cell(0, 6, line)
		pdf.Ln(6)
	}
}

func writeItems(pdf *gofpdf.Fpdf, font string, rows [][4]string) {
	pdf.Ln(4)
	pdf.SetFont(font, "B", 10)
	pdf.Cell(95, 7, "Description")
	pdf.Cell(25, 7, "Qty")
	pdf.Cell(35, 7, "Unit Price")
	pdf.Cell(35, 7, "Total")
	pdf.Ln(8)

	pdf.SetFont(font, "", 10)
	for _, row := range rows {
		pdf.Cell(95, 6, trim(row[0], 55))
		pdf.Cell(25, 6, row[1])
		pdf.Cell(35, 6, row[2])
		pdf.Cell(35, 6, row[3])
		pdf.Ln(6)
	}
}

func writeTotals(pdf *gofpdf.Fpdf, font string, rows [][2]string) {
	pdf.Ln(4)
	for _, row := range rows {
		pdf.SetFont(font, "B", 10)
		pdf.Cell(120, 6, "")
		pdf.Cell(35, 6, row[0])
		pdf.SetFont(font, "", 10)
		pdf.Cell(35, 6, row[1])
		pdf.Ln(6)
	}
}

func writeNotes(pdf *gofpdf.Fpdf, font, notes string) {
	if notes == "" {
		return
	}
	pdf.Ln(4)
	pdf.SetFont(font, "B", 11)
	pdf.Cell(0, 7, "Notes:")
	pdf.Ln(7)
	pdf.SetFont(font, "", 10)
	pdf.MultiCell(0, 5, notes, "", "L", false)
}

func writeFooter(pdf *gofpdf.Fpdf, font string) {
	pdf.Ln(6)
	pdf.SetFont(font, "", 8)
	pdf.Cell(0, 5, fmt.Sprintf("Generated: %s", time.Now().Format(time.RFC3339)))
}

func output(pdf *gofpdf.Fpdf, kind, number string) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		log.Printf("%s pdf: output failed for %s: %v", kind, number, err)
		return nil, err
	}
	return buf.Bytes(), nil
}

func money(d decimal.Decimal) string { return d.StringFixed(2) }

func trim(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
