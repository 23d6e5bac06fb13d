package allocate

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"steelestim/internal/service/sequence"
	"steelestim/internal/storage"
)

type NumberAllocator interface {
	Allocate(ctx context.Context, companyID int64, entityType string) (string, error)
}

type Request struct {
	CompanyID  int64  `json:"company_id"`
	EntityType string `json:"entity_type"`
}

type Response struct {
	Number string `json:"number"`
	Error  string `json:"error,omitempty"`
}

// AllocateNumber advances the series counter and returns the formatted
// identifier. Contention inside the generator is retried; if it still loses
// every round the client gets a 503 and simply tries again.
func AllocateNumber(log *slog.Logger, gen NumberAllocator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.sequence.AllocateNumber"

		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if req.EntityType == "" {
			http.Error(w, "missing entity_type", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		number, err := gen.Allocate(ctx, req.CompanyID, req.EntityType)
		if err != nil {
			switch {
			case errors.Is(err, storage.ErrSeriesNotFound):
				log.Warn("series not found", slog.String("op", op), slog.String("entity_type", req.EntityType))
				http.Error(w, "number series not found", http.StatusNotFound)
			case errors.Is(err, sequence.ErrSeriesInactive):
				log.Warn("series inactive", slog.String("op", op), slog.String("entity_type", req.EntityType))
				http.Error(w, "number series is not active", http.StatusUnprocessableEntity)
			case errors.Is(err, storage.ErrConflict):
				log.Warn("allocation contention", slog.String("op", op), slog.String("entity_type", req.EntityType))
				http.Error(w, "allocation conflict, retry", http.StatusServiceUnavailable)
			default:
				log.Error("failed to allocate number",
					slog.String("op", op), slog.String("entity_type", req.EntityType), slog.String("error", err.Error()))
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		render.JSON(w, r, Response{Number: number})
	}
}
