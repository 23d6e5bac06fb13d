package preview

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/render"

	"steelestim/internal/storage"
)

type NumberPreviewer interface {
	Preview(ctx context.Context, companyID int64, entityType string) (string, error)
}

type Response struct {
	Number string `json:"number"`
}

// PreviewNumber shows the identifier the next allocation would produce.
// Read-only: the counter is not advanced.
func PreviewNumber(log *slog.Logger, gen NumberPreviewer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.sequence.PreviewNumber"

		companyID, err := strconv.ParseInt(r.URL.Query().Get("company_id"), 10, 64)
		if err != nil {
			http.Error(w, "invalid company_id", http.StatusBadRequest)
			return
		}
		entityType := r.URL.Query().Get("entity_type")
		if entityType == "" {
			http.Error(w, "missing required query parameter 'entity_type'", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		number, err := gen.Preview(ctx, companyID, entityType)
		if err != nil {
			if errors.Is(err, storage.ErrSeriesNotFound) {
				log.Warn("series not found", slog.String("op", op), slog.String("entity_type", entityType))
				http.Error(w, "number series not found", http.StatusNotFound)
				return
			}
			log.Error("failed to preview number",
				slog.String("op", op), slog.String("entity_type", entityType), slog.String("error", err.Error()))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, Response{Number: number})
	}
}
