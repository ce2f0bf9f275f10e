// Command txprocd exposes the engine package over HTTP: POST /transactions
// submits one wire record, GET /accounts returns a full snapshot.
package main

import (
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/txproc/engine/engine"
	"github.com/txproc/engine/record"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	addr := os.Getenv("TXPROCD_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	ledger := engine.NewLedger(engine.WithLogger(logger))
	defer ledger.Close()

	srv := &server{ledger: ledger, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(5 * time.Second))
	r.Post("/transactions", srv.postTransaction)
	r.Get("/accounts", srv.getAccounts)

	logger.Info("listening", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, r); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

type server struct {
	ledger *engine.Ledger
	logger *zap.Logger
}

func (s *server) postTransaction(w http.ResponseWriter, r *http.Request) {
	var rec record.WireRecord
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		http.Error(w, "malformed request body", http.StatusBadRequest)
		return
	}

	if err := s.ledger.Submit(r.Context(), rec); err != nil {
		s.logger.Warn("submit failed", zap.Error(err))
		http.Error(w, "ledger unavailable", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (s *server) getAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := s.ledger.Snapshot(r.Context())
	if err != nil {
		s.logger.Warn("snapshot failed", zap.Error(err))
		http.Error(w, "ledger unavailable", http.StatusServiceUnavailable)
		return
	}

	out := make([]record.WireAccount, len(accounts))
	for i, a := range accounts {
		out[i] = record.FormatAccount(a)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(out); err != nil {
		s.logger.Error("encoding response", zap.Error(err))
	}
}
