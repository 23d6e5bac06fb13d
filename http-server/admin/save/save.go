package save

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/render"

	"steelestim/internal/storage"
)

type AdminWriter interface {
	ConfigureSeries(ctx context.Context, series storage.NumberSeries) error
	InitDefaultSeries(ctx context.Context, companyID int64) error
}

type Response struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// ConfigureSeriesAdmin creates or updates the formatting configuration of a
// number series. Counter state is untouched on update.
func ConfigureSeriesAdmin(log *slog.Logger, store AdminWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.admin.ConfigureSeriesAdmin"

		var series storage.NumberSeries
		if err := json.NewDecoder(r.Body).Decode(&series); err != nil {
			log.Error("invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if series.EntityType == "" {
			http.Error(w, "missing entity_type", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := store.ConfigureSeries(ctx, series); err != nil {
			log.Error("failed to configure series",
				slog.String("op", op), slog.String("entity_type", series.EntityType), slog.String("error", err.Error()))
			render.JSON(w, r, Response{Error: "could not save series configuration"})
			return
		}

		render.JSON(w, r, Response{Status: strconv.Itoa(http.StatusOK)})
	}
}

// InitSeriesAdmin seeds the default series set for a company.
func InitSeriesAdmin(log *slog.Logger, store AdminWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.admin.InitSeriesAdmin"

		var req struct {
			CompanyID int64 `json:"company_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := store.InitDefaultSeries(ctx, req.CompanyID); err != nil {
			log.Error("failed to init default series",
				slog.String("op", op), slog.Int64("company_id", req.CompanyID), slog.String("error", err.Error()))
			render.JSON(w, r, Response{Error: "could not initialize default series"})
			return
		}

		render.JSON(w, r, Response{Status: strconv.Itoa(http.StatusOK)})
	}
}
