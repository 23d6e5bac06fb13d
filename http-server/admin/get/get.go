package get

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/render"

	"steelestim/internal/storage"
)

type AdminReader interface {
	ListSeries(ctx context.Context, companyID int64) ([]storage.NumberSeries, error)
	GetWorkCenters(ctx context.Context, companyID int64) ([]storage.WorkCenter, error)
}

type SeriesResponse struct {
	Series []storage.NumberSeries `json:"series"`
	Error  string                 `json:"error,omitempty"`
}

// GetSeriesAdmin lists all number series of a company.
func GetSeriesAdmin(log *slog.Logger, store AdminReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.admin.GetSeriesAdmin"

		companyID, err := strconv.ParseInt(r.URL.Query().Get("company_id"), 10, 64)
		if err != nil {
			http.Error(w, "invalid company_id", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		series, err := store.ListSeries(ctx, companyID)
		if err != nil {
			log.Error("failed to list series", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, SeriesResponse{Series: series})
	}
}

type WorkCentersResponse struct {
	WorkCenters []storage.WorkCenter `json:"work_centers"`
	Error       string               `json:"error,omitempty"`
}

// GetWorkCentersAdmin lists a company's work centers with their rates.
func GetWorkCentersAdmin(log *slog.Logger, store AdminReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.admin.GetWorkCentersAdmin"

		companyID, err := strconv.ParseInt(r.URL.Query().Get("company_id"), 10, 64)
		if err != nil {
			http.Error(w, "invalid company_id", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		centers, err := store.GetWorkCenters(ctx, companyID)
		if err != nil {
			log.Error("failed to list work centers", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, WorkCentersResponse{WorkCenters: centers})
	}
}
