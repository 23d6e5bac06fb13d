package recalc

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"steelestim/internal/service/estimate"
)

type Recalculator interface {
	RecalculateWorksheet(ctx context.Context, worksheetID int64) (estimate.WorksheetTotals, error)
	RecalculatePackage(ctx context.Context, packageID int64) (hours, cost float64, err error)
	RecalculateWorkCenterTimes(ctx context.Context, processingItemID int64) error
}

type PackageResponse struct {
	TotalHours float64 `json:"total_hours"`
	TotalCost  float64 `json:"total_cost"`
}

// RecalculateWorksheet recomputes and persists one worksheet's totals.
func RecalculateWorksheet(log *slog.Logger, svc Recalculator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.recalc.RecalculateWorksheet"

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "invalid worksheet id", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		totals, err := svc.RecalculateWorksheet(ctx, id)
		if err != nil {
			log.Error("failed to recalculate worksheet",
				slog.String("op", op), slog.Int64("worksheet_id", id), slog.String("error", err.Error()))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, totals)
	}
}

// RecalculatePackage recomputes and persists package totals from its
// worksheets.
func RecalculatePackage(log *slog.Logger, svc Recalculator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.recalc.RecalculatePackage"

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "invalid package id", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		hours, cost, err := svc.RecalculatePackage(ctx, id)
		if err != nil {
			log.Error("failed to recalculate package",
				slog.String("op", op), slog.Int64("package_id", id), slog.String("error", err.Error()))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, PackageResponse{TotalHours: hours, TotalCost: cost})
	}
}

// RecalculateWorkCenterTimes refreshes the stored effective time and cost of
// a processing item's work center entries.
func RecalculateWorkCenterTimes(log *slog.Logger, svc Recalculator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.recalc.RecalculateWorkCenterTimes"

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "invalid item id", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := svc.RecalculateWorkCenterTimes(ctx, id); err != nil {
			log.Error("failed to recalculate work center times",
				slog.String("op", op), slog.Int64("item_id", id), slog.String("error", err.Error()))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, map[string]string{"status": "ok"})
	}
}
