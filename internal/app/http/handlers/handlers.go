package handlers

import (
	"time"

	"invsys/go_backend/internal/app/config"
	"invsys/go_backend/internal/domain/document/pdf"
	"invsys/go_backend/internal/infra/events"
)

type Handlers struct {
	Store  Store
	Cfg    config.Config
	PDF    pdf.Generator
	Events events.Publisher

	// now is swappable in tests; dashboards and aging depend on it.
	now func() time.Time
}

func New(store Store, cfg config.Config, gen pdf.Generator, pub events.Publisher) *Handlers {
	return &Handlers{
		Store:  store,
		Cfg:    cfg,
		PDF:    gen,
		Events: pub,
		now:    time.Now,
	}
}

func (h *Handlers) today() time.Time {
	t := h.now().UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
