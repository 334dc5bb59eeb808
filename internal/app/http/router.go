package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"invsys/go_backend/internal/app/config"
	"invsys/go_backend/internal/app/http/handlers"
	"invsys/go_backend/internal/app/http/middleware"
	"invsys/go_backend/internal/domain/document/pdf"
	"invsys/go_backend/internal/infra/events"
)

func NewRouter(cfg config.Config, store handlers.Store, gen pdf.Generator, pub events.Publisher) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSAllowOrigin))

	h := handlers.New(store, cfg, gen, pub)

	r.Get("/health", h.Health)

	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.InternalAuth(cfg.InternalToken))

		r.Route("/customers", func(r chi.Router) {
			r.Get("/", h.ListCustomers)
			r.Post("/", h.CreateCustomer)
			r.Get("/search", h.SearchCustomers)
			r.Get("/{id}", h.GetCustomer)
			r.Put("/{id}", h.UpdateCustomer)
			r.Delete("/{id}", h.DeleteCustomer)
			r.Get("/{id}/details", h.CustomerDetails)
		})

		r.Route("/quotations", func(r chi.Router) {
			r.Get("/", h.ListQuotations)
			r.Post("/", h.CreateQuotation)
			r.Get("/{id}", h.GetQuotation)
			r.Put("/{id}", h.UpdateQuotation)
			r.Delete("/{id}", h.DeleteQuotation)
			r.Post("/{id}/convert", h.ConvertQuotation)
			r.Get("/{id}/pdf", h.QuotationPDF)
		})

		r.Route("/invoices", func(r chi.Router) {
			r.Get("/", h.ListInvoices)
			r.Post("/", h.CreateInvoice)
			r.Get("/{id}", h.GetInvoice)
			r.Put("/{id}", h.UpdateInvoice)
			r.Delete("/{id}", h.DeleteInvoice)
			r.Get("/{id}/pdf", h.InvoicePDF)
		})

		r.Route("/receipts", func(r chi.Router) {
			r.Get("/", h.ListReceipts)
			r.Post("/", h.CreateReceipt)
			r.Get("/{id}", h.GetReceipt)
			r.Put("/{id}", h.UpdateReceipt)
			r.Delete("/{id}", h.DeleteReceipt)
			r.Get("/{id}/pdf", h.ReceiptPDF)
		})

		r.Get("/dashboard", h.Dashboard)
		r.Get("/analytics", h.Analytics)
		r.Get("/items/recent", h.RecentItems)
	})

	return r
}
