package handlers

import (
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"invsys/go_backend/internal/domain/receipt"
	"invsys/go_backend/internal/infra/events"
)

type receiptRequest struct {
	InvoiceID       int64           `json:"invoice_id"`
	Amount          decimal.Decimal `json:"amount"`
	PaymentMethod   string          `json:"payment_method"`
	PaymentDate     string          `json:"payment_date"`
	ReferenceNumber string          `json:"reference_number"`
	Notes           string          `json:"notes"`
}

func (req receiptRequest) toReceipt() (receipt.Receipt, error) {
	rc := receipt.Receipt{
		InvoiceID:       req.InvoiceID,
		Amount:          req.Amount,
		PaymentMethod:   receipt.PaymentMethod(req.PaymentMethod),
		ReferenceNumber: req.ReferenceNumber,
		Notes:           req.Notes,
	}
	var err error
	rc.PaymentDate, err = parseDate(req.PaymentDate)
	return rc, err
}

func (h *Handlers) ListReceipts(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePage(r)
	list, total, err := h.Store.ListReceipts(r.Context(), r.URL.Query().Get("search"), page, pageSize)
	if err != nil {
		storeError(w, err)
		return
	}
	if list == nil {
		list = []receipt.Receipt{}
	}
	writeJSON(w, http.StatusOK, listEnvelope{Items: list, Total: total, Page: page, PageSize: pageSize})
}

func (h *Handlers) CreateReceipt(w http.ResponseWriter, r *http.Request) {
	var req receiptRequest
	if !decodeBody(w, r, &req) {
		return
	}
	rc, err := req.toReceipt()
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", "payment_date must be YYYY-MM-DD")
		return
	}
	if rc.ReferenceNumber == "" {
		rc.ReferenceNumber = uuid.NewString()
	}
	if err := rc.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	if err := h.Store.CreateReceipt(r.Context(), &rc); err != nil {
		storeError(w, err)
		return
	}

	h.publish(r.Context(), events.TypePaymentRecorded, rc)

	writeJSON(w, http.StatusCreated, rc)
}

func (h *Handlers) GetReceipt(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", "")
		return
	}
	rc, err := h.Store.GetReceipt(r.Context(), id)
	if err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rc)
}

func (h *Handlers) UpdateReceipt(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", "")
		return
	}
	var req receiptRequest
	if !decodeBody(w, r, &req) {
		return
	}
	rc, err := req.toReceipt()
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", "payment_date must be YYYY-MM-DD")
		return
	}
	rc.ID = id
	if err := validateReceiptUpdate(rc); err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	if err := h.Store.UpdateReceipt(r.Context(), &rc); err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rc)
}

// validateReceiptUpdate skips the invoice_id check: the binding is
// immutable and the store keeps the stored one.
func validateReceiptUpdate(rc receipt.Receipt) error {
	probe := rc
	probe.InvoiceID = 1
	return probe.Validate()
}

func (h *Handlers) DeleteReceipt(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", "")
		return
	}
	if err := h.Store.DeleteReceipt(r.Context(), id); err != nil {
		storeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) ReceiptPDF(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", "")
		return
	}
	rc, err := h.Store.GetReceipt(r.Context(), id)
	if err != nil {
		storeError(w, err)
		return
	}
	inv, err := h.Store.GetInvoice(r.Context(), rc.InvoiceID)
	if err != nil {
		storeError(w, err)
		return
	}
	data, err := h.PDF.Receipt(rc, inv)
	if err != nil {
		log.Printf("receipt pdf: generate failed for %s: %v", rc.Number, err)
		writeError(w, http.StatusInternalServerError, "pdf_error", "")
		return
	}
	writePDF(w, "receipt_"+rc.Number+".pdf", data)
}
