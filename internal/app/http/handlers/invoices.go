package handlers

import (
	"log"
	"net/http"

	"github.com/shopspring/decimal"

	"invsys/go_backend/internal/domain/invoice"
	"invsys/go_backend/internal/domain/receipt"
	"invsys/go_backend/internal/infra/events"
)

type invoiceRequest struct {
	CustomerID    int64           `json:"customer_id"`
	QuotationID   *int64          `json:"quotation_id"`
	Status        string          `json:"status"`
	InvoiceDate   string          `json:"invoice_date"`
	DueDate       string          `json:"due_date"`
	TaxRate       decimal.Decimal `json:"tax_rate"`
	DiscountType  string          `json:"discount_type"` // none, percentage, fixed
	DiscountValue decimal.Decimal `json:"discount_value"`
	PaymentMethod string          `json:"payment_method"`
	Notes         string          `json:"notes"`
	Items         []itemRequest   `json:"items"`
}

func (req invoiceRequest) toInvoice() (invoice.Invoice, error) {
	inv := invoice.Invoice{
		CustomerID:    req.CustomerID,
		QuotationID:   req.QuotationID,
		Status:        invoice.Status(req.Status),
		TaxRate:       req.TaxRate,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
	}
	if req.Status == "" {
		inv.Status = invoice.StatusDraft
	}

	switch req.DiscountType {
	case "percentage":
		inv.DiscountPercentage = req.DiscountValue
	case "fixed":
		inv.DiscountAmount = req.DiscountValue
	}

	var err error
	if inv.InvoiceDate, err = parseDate(req.InvoiceDate); err != nil {
		return inv, err
	}
	if inv.DueDate, err = parseDate(req.DueDate); err != nil {
		return inv, err
	}

	for _, it := range req.Items {
		inv.Items = append(inv.Items, invoice.Item{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		})
	}
	inv.CalculateTotals()
	return inv, nil
}

func (req invoiceRequest) validateExtra() string {
	switch req.DiscountType {
	case "", "none", "percentage", "fixed":
	default:
		return "discount_type must be none, percentage or fixed"
	}
	if req.PaymentMethod != "" && !receipt.PaymentMethod(req.PaymentMethod).Valid() {
		return "invalid payment_method"
	}
	return ""
}

// invoiceView adds the derived fields list and detail responses carry.
type invoiceView struct {
	invoice.Invoice
	BalanceDue    decimal.Decimal       `json:"balance_due"`
	PaymentStatus invoice.PaymentStatus `json:"payment_status"`
}

func viewInvoice(inv invoice.Invoice) invoiceView {
	return invoiceView{Invoice: inv, BalanceDue: inv.BalanceDue(), PaymentStatus: inv.PaymentStatus()}
}

func viewInvoices(list []invoice.Invoice) []invoiceView {
	out := make([]invoiceView, 0, len(list))
	for _, inv := range list {
		out = append(out, viewInvoice(inv))
	}
	return out
}

func (h *Handlers) ListInvoices(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePage(r)
	qv := r.URL.Query()
	if s := qv.Get("status"); s != "" && !invoice.Status(s).Valid() {
		writeError(w, http.StatusBadRequest, "validation_error", "unknown status")
		return
	}
	list, total, err := h.Store.ListInvoices(r.Context(), qv.Get("search"), qv.Get("status"), page, pageSize)
	if err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listEnvelope{Items: viewInvoices(list), Total: total, Page: page, PageSize: pageSize})
}

func (h *Handlers) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	var req invoiceRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if msg := req.validateExtra(); msg != "" {
		writeError(w, http.StatusBadRequest, "validation_error", msg)
		return
	}
	inv, err := req.toInvoice()
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", "dates must be YYYY-MM-DD")
		return
	}
	if err := inv.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	if err := h.Store.CreateInvoice(r.Context(), &inv); err != nil {
		storeError(w, err)
		return
	}

	h.publish(r.Context(), events.TypeInvoiceCreated, inv)

	writeJSON(w, http.StatusCreated, viewInvoice(inv))
}

func (h *Handlers) GetInvoice(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", "")
		return
	}
	inv, err := h.Store.GetInvoice(r.Context(), id)
	if err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, viewInvoice(inv))
}

func (h *Handlers) UpdateInvoice(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", "")
		return
	}
	var req invoiceRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if msg := req.validateExtra(); msg != "" {
		writeError(w, http.StatusBadRequest, "validation_error", msg)
		return
	}
	inv, err := req.toInvoice()
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", "dates must be YYYY-MM-DD")
		return
	}
	inv.ID = id
	if err := inv.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	if err := h.Store.UpdateInvoice(r.Context(), &inv); err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, viewInvoice(inv))
}

func (h *Handlers) DeleteInvoice(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", "")
		return
	}
	if err := h.Store.DeleteInvoice(r.Context(), id); err != nil {
		storeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) InvoicePDF(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", "")
		return
	}
	inv, err := h.Store.GetInvoice(r.Context(), id)
	if err != nil {
		storeError(w, err)
		return
	}
	c, err := h.Store.GetCustomer(r.Context(), inv.CustomerID)
	if err != nil {
		storeError(w, err)
		return
	}
	data, err := h.PDF.Invoice(inv, c)
	if err != nil {
		log.Printf("invoice pdf: generate failed for %s: %v", inv.Number, err)
		writeError(w, http.StatusInternalServerError, "pdf_error", "")
		return
	}
	writePDF(w, "invoice_"+inv.Number+".pdf", data)
}
