package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/shopspring/decimal"

	"invsys/go_backend/internal/domain/quotation"
	"invsys/go_backend/internal/infra/events"
)

type itemRequest struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

type quotationRequest struct {
	CustomerID    int64           `json:"customer_id"`
	Status        string          `json:"status"`
	QuotationDate string          `json:"quotation_date"`
	ValidUntil    string          `json:"valid_until"`
	TaxRate       decimal.Decimal `json:"tax_rate"`
	Notes         string          `json:"notes"`
	Items         []itemRequest   `json:"items"`
}

func (req quotationRequest) toQuotation() (quotation.Quotation, error) {
	q := quotation.Quotation{
		CustomerID: req.CustomerID,
		Status:     quotation.Status(req.Status),
		TaxRate:    req.TaxRate,
		Notes:      req.Notes,
	}
	if req.Status == "" {
		q.Status = quotation.StatusDraft
	}

	var err error
	if q.QuotationDate, err = parseDate(req.QuotationDate); err != nil {
		return q, err
	}
	if q.ValidUntil, err = parseDate(req.ValidUntil); err != nil {
		return q, err
	}

	for _, it := range req.Items {
		q.Items = append(q.Items, quotation.Item{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		})
	}
	q.CalculateTotals()
	return q, nil
}

func (h *Handlers) ListQuotations(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePage(r)
	qv := r.URL.Query()
	if s := qv.Get("status"); s != "" && !quotation.Status(s).Valid() {
		writeError(w, http.StatusBadRequest, "validation_error", "unknown status")
		return
	}
	list, total, err := h.Store.ListQuotations(r.Context(), qv.Get("search"), qv.Get("status"), page, pageSize)
	if err != nil {
		storeError(w, err)
		return
	}
	if list == nil {
		list = []quotation.Quotation{}
	}
	writeJSON(w, http.StatusOK, listEnvelope{Items: list, Total: total, Page: page, PageSize: pageSize})
}

func (h *Handlers) CreateQuotation(w http.ResponseWriter, r *http.Request) {
	var req quotationRequest
	if !decodeBody(w, r, &req) {
		return
	}
	q, err := req.toQuotation()
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", "dates must be YYYY-MM-DD")
		return
	}
	if err := q.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	if err := h.Store.CreateQuotation(r.Context(), &q); err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, q)
}

func (h *Handlers) GetQuotation(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", "")
		return
	}
	q, err := h.Store.GetQuotation(r.Context(), id)
	if err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

func (h *Handlers) UpdateQuotation(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", "")
		return
	}
	var req quotationRequest
	if !decodeBody(w, r, &req) {
		return
	}
	q, err := req.toQuotation()
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", "dates must be YYYY-MM-DD")
		return
	}
	q.ID = id
	if err := q.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	if err := h.Store.UpdateQuotation(r.Context(), &q); err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

func (h *Handlers) DeleteQuotation(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", "")
		return
	}
	if err := h.Store.DeleteQuotation(r.Context(), id); err != nil {
		storeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ConvertQuotation turns an accepted proposal into an invoice, copying
// items and totals.
func (h *Handlers) ConvertQuotation(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", "")
		return
	}
	var req struct {
		DueDate string `json:"due_date"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	dueDate, err := parseDate(req.DueDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", "due_date must be YYYY-MM-DD")
		return
	}

	inv, err := h.Store.ConvertQuotation(r.Context(), id, dueDate)
	if err != nil {
		storeError(w, err)
		return
	}

	h.publish(r.Context(), events.TypeQuotationAccepted, map[string]any{"quotation_id": id})
	h.publish(r.Context(), events.TypeInvoiceCreated, inv)

	writeJSON(w, http.StatusCreated, inv)
}

func (h *Handlers) QuotationPDF(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", "")
		return
	}
	q, err := h.Store.GetQuotation(r.Context(), id)
	if err != nil {
		storeError(w, err)
		return
	}
	c, err := h.Store.GetCustomer(r.Context(), q.CustomerID)
	if err != nil {
		storeError(w, err)
		return
	}
	data, err := h.PDF.Quotation(q, c)
	if err != nil {
		log.Printf("quotation pdf: generate failed for %s: %v", q.Number, err)
		writeError(w, http.StatusInternalServerError, "pdf_error", "")
		return
	}
	writePDF(w, "quotation_"+q.Number+".pdf", data)
}

// publish is fire-and-forget: losing an event must not fail the request.
func (h *Handlers) publish(ctx context.Context, eventType string, payload any) {
	if err := h.Events.Publish(ctx, eventType, payload); err != nil {
		log.Printf("events: publish %s failed: %v", eventType, err)
	}
}
