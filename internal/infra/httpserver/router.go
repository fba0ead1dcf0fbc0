package httpserver

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/amaru-ids/flowsink/internal/application/ingest"
	domain "github.com/amaru-ids/flowsink/internal/domain/batch"
	"github.com/amaru-ids/flowsink/internal/middleware"
)

type Router struct {
	ingestSvc *ingest.Service
}

func NewRouter(ingestSvc *ingest.Service) http.Handler {
	r := &Router{ingestSvc: ingestSvc}
	mux := chi.NewRouter()

	mux.Post("/", r.wrap(r.handleIngest))
	mux.Get("/health", r.handleHealth)
	mux.Get("/metrics", middleware.MetricsHandler)

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// wrap collapses every handler failure into the single error envelope.
// Decode errors, formatting errors and file I/O errors are not told
// apart; the client only ever sees one failure shape.
func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			log.Printf("error processing batch: %v", err)
			middleware.IncrementBatchesFailed()
			writeJSON(w, http.StatusInternalServerError, map[string]any{
				"status":  domain.StatusError,
				"message": err.Error(),
			})
		}
	}
}

// POST /
// Body: one Batch document. Everything but a valid JSON object is
// optional.
func (r *Router) handleIngest(w http.ResponseWriter, req *http.Request) error {
	dec := json.NewDecoder(req.Body)
	var doc domain.Document
	if err := dec.Decode(&doc); err != nil {
		return err
	}
	// a literal null decodes into a nil map without error
	if doc == nil {
		return errors.New("request body must be a JSON object")
	}
	if dec.More() {
		return errors.New("unexpected trailing data after JSON object")
	}

	receipt, err := r.ingestSvc.Ingest(req.Context(), doc)
	if err != nil {
		return err
	}

	middleware.IncrementBatches()
	middleware.AddFlows(receipt.RecordsReceived)

	writeJSON(w, http.StatusOK, receipt)
	return nil
}

// GET /health — fixed shape, no failure path.
func (r *Router) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": r.ingestSvc.Clock.Now().Format(time.RFC3339),
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
