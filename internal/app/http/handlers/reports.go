package handlers

import (
	"net/http"
	"strconv"
)

func (h *Handlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.Store.Dashboard(r.Context(), h.today())
	if err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (h *Handlers) Analytics(w http.ResponseWriter, r *http.Request) {
	a, err := h.Store.Analytics(r.Context(), h.today())
	if err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// RecentItems suggests the most used invoice line items for the form's
// autocomplete.
func (h *Handlers) RecentItems(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 50 {
		limit = 20
	}
	items, err := h.Store.RecentItems(r.Context(), limit)
	if err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}
