package handlers

import (
	"net/http"
	"strconv"

	"invsys/go_backend/internal/domain/customer"
)

type customerRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Company string `json:"company"`
}

func (h *Handlers) ListCustomers(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePage(r)
	list, total, err := h.Store.ListCustomers(r.Context(), r.URL.Query().Get("search"), page, pageSize)
	if err != nil {
		storeError(w, err)
		return
	}
	if list == nil {
		list = []customer.Customer{}
	}
	writeJSON(w, http.StatusOK, listEnvelope{Items: list, Total: total, Page: page, PageSize: pageSize})
}

func (h *Handlers) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req customerRequest
	if !decodeBody(w, r, &req) {
		return
	}
	c := customer.Customer{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		Company: req.Company,
	}
	if err := c.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	if err := h.Store.CreateCustomer(r.Context(), &c); err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *Handlers) GetCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", "")
		return
	}
	c, err := h.Store.GetCustomer(r.Context(), id)
	if err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *Handlers) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", "")
		return
	}
	var req customerRequest
	if !decodeBody(w, r, &req) {
		return
	}
	c := customer.Customer{
		ID:      id,
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		Company: req.Company,
	}
	if err := c.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	if err := h.Store.UpdateCustomer(r.Context(), &c); err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *Handlers) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", "")
		return
	}
	if err := h.Store.DeleteCustomer(r.Context(), id); err != nil {
		storeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SearchCustomers backs the autocomplete picker.
func (h *Handlers) SearchCustomers(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 50 {
		limit = 10
	}
	list, err := h.Store.SearchCustomers(r.Context(), r.URL.Query().Get("q"), limit)
	if err != nil {
		storeError(w, err)
		return
	}

	type match struct {
		ID          int64  `json:"id"`
		Name        string `json:"name"`
		Company     string `json:"company,omitempty"`
		Email       string `json:"email"`
		DisplayName string `json:"display_name"`
	}
	out := make([]match, 0, len(list))
	for _, c := range list {
		out = append(out, match{ID: c.ID, Name: c.Name, Company: c.Company, Email: c.Email, DisplayName: c.DisplayName()})
	}
	writeJSON(w, http.StatusOK, map[string]any{"customers": out})
}

// CustomerDetails returns the balance summary and recent documents shown
// on the customer page and in the invoice form.
func (h *Handlers) CustomerDetails(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", "")
		return
	}
	d, err := h.Store.CustomerDetails(r.Context(), id)
	if err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}
