package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"batitender/db"
	"batitender/db/migrations"
	"batitender/internal/handlers"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	connString := os.Getenv("POSTGRES_CONN")
	if connString == "" {
		log.Fatal("POSTGRES_CONN env variable is not set")
	}

	tzName := os.Getenv("TIMEZONE")
	if tzName == "" {
		tzName = "Europe/Paris"
	}
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		log.Fatalf("Invalid TIMEZONE %q: %v", tzName, err)
	}

	dbConn, err := sqlx.Connect("postgres", connString)
	if err != nil {
		log.Fatalf("Cannot connect to DB: %v", err)
	}
	defer dbConn.Close()

	migrations.Run(connString)

	store := db.NewStorage(dbConn)
	h := handlers.NewHandler(store, handlers.LogNotifier{}, loc)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/ping", h.PingHandler)
		// projects
		r.Post("/projects/new", h.CreateProjectHandler)
		r.Get("/projects", h.GetProjectsHandler)
		r.Get("/projects/{projectId}/summary", h.GetProjectSummaryHandler)
		r.Post("/projects/{projectId}/import", h.ImportLegacyTendersHandler)
		// tenders (appels d'offres)
		r.Post("/tenders/new", h.CreateTenderHandler)
		r.Get("/tenders", h.GetTendersHandler)
		r.Get("/tenders/{tenderId}/summary", h.GetTenderSummaryHandler)
		r.Put("/tenders/{tenderId}/close", h.CloseTenderHandler)
		r.Put("/tenders/{tenderId}/relaunch", h.RelaunchTenderHandler)
		// lots
		r.Post("/lots/new", h.CreateLotHandler)
		r.Get("/lots/{lotId}/summary", h.GetLotSummaryHandler)
		r.Get("/lots/{lotId}/bids", h.GetLotBidsHandler)
		r.Put("/lots/{lotId}/work", h.UpdateLotWorkHandler)
		// bids (devis)
		r.Post("/bids/new", h.CreateBidHandler)
		r.Patch("/bids/{bidId}/amount", h.ReviseBidAmountHandler)
		r.Get("/bids/{bidId}/versions", h.GetQuoteVersionsHandler)
		r.Put("/bids/{bidId}/select", h.SelectBidHandler)
		r.Put("/bids/{bidId}/unselect", h.UnselectBidHandler)
		r.Put("/bids/{bidId}/withdraw", h.WithdrawBidHandler)
	})

	serverAddr := os.Getenv("SERVER_ADDRESS")
	if serverAddr == "" {
		serverAddr = "0.0.0.0:8080"
	}

	srv := &http.Server{Addr: serverAddr, Handler: r}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	log.Printf("Starting server on %s (timezone %s)", serverAddr, loc)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		log.Printf("Shutting down on %s", sig)
	case err := <-errCh:
		log.Fatalf("Server error: %v", err)
	}
}
