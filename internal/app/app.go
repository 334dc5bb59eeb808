package app

import (
	"log"
	"net/http"
	"time"

	"invsys/go_backend/internal/app/config"
	apphttp "invsys/go_backend/internal/app/http"
	pdfgen "invsys/go_backend/internal/domain/document/pdf/gofpdf"
	"invsys/go_backend/internal/infra/db/postgres"
	"invsys/go_backend/internal/infra/events"
)

func Run() {
	cfg := config.MustLoad()

	db, err := postgres.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close()

	var pub events.Publisher = events.Nop{}
	if cfg.AMQPURL != "" {
		amqpPub, err := events.DialAMQP(cfg.AMQPURL, cfg.AMQPQueue)
		if err != nil {
			log.Fatalf("amqp: %v", err)
		}
		defer amqpPub.Close()
		pub = amqpPub
		log.Printf("events: publishing to queue %s", cfg.AMQPQueue)
	}

	router := apphttp.NewRouter(cfg, db, pdfgen.New(cfg.PDFFontDir), pub)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("listening on %s", cfg.HTTPAddr)
	log.Fatal(srv.ListenAndServe())
}
