package update

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/render"

	"steelestim/internal/storage"
)

type AdminUpdater interface {
	ResetSeries(ctx context.Context, companyID int64, entityType string, newStart int) error
	UpdateWorkCenterRate(ctx context.Context, workCenterID int64, hourlyRate, efficiencyPct float64) error
}

type Response struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// ResetSeriesAdmin rewinds a number series to a new starting number.
func ResetSeriesAdmin(log *slog.Logger, store AdminUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.admin.ResetSeriesAdmin"

		var req struct {
			CompanyID  int64  `json:"company_id"`
			EntityType string `json:"entity_type"`
			NewStart   int    `json:"new_start"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := store.ResetSeries(ctx, req.CompanyID, req.EntityType, req.NewStart); err != nil {
			if errors.Is(err, storage.ErrSeriesNotFound) {
				http.Error(w, "number series not found", http.StatusNotFound)
				return
			}
			log.Error("failed to reset series",
				slog.String("op", op), slog.String("entity_type", req.EntityType), slog.String("error", err.Error()))
			render.JSON(w, r, Response{Error: "could not reset series"})
			return
		}

		render.JSON(w, r, Response{Status: strconv.Itoa(http.StatusOK)})
	}
}

// UpdateWorkCenterAdmin updates a work center's hourly rate and efficiency.
func UpdateWorkCenterAdmin(log *slog.Logger, store AdminUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.admin.UpdateWorkCenterAdmin"

		var req struct {
			WorkCenterID  int64   `json:"work_center_id"`
			HourlyRate    float64 `json:"hourly_rate"`
			EfficiencyPct float64 `json:"efficiency_percentage"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if req.HourlyRate < 0 || req.EfficiencyPct < 0 {
			http.Error(w, "rate and efficiency must not be negative", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := store.UpdateWorkCenterRate(ctx, req.WorkCenterID, req.HourlyRate, req.EfficiencyPct); err != nil {
			log.Error("failed to update work center",
				slog.String("op", op), slog.Int64("work_center_id", req.WorkCenterID), slog.String("error", err.Error()))
			render.JSON(w, r, Response{Error: "could not update work center"})
			return
		}

		render.JSON(w, r, Response{Status: strconv.Itoa(http.StatusOK)})
	}
}
