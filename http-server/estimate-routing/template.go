package estimate_routing

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"steelestim/internal/service/estimate"
	"steelestim/internal/storage"
)

type TemplateStorage interface {
	GetRoutingOperations(ctx context.Context, templateID int64) ([]storage.RoutingOperation, error)
	GetWorkCenter(ctx context.Context, workCenterID int64) (*storage.WorkCenter, error)
	GetDependencies(ctx context.Context, dependentWorkCenterID int64, routingID *int64) ([]storage.WorkCenterDependency, error)
}

type TemplateResponse struct {
	Operations   []estimate.OperationEstimate `json:"operations"`
	TotalMinutes float64                      `json:"total_minutes"`
	TotalCost    float64                      `json:"total_cost"`
	Warnings     []estimate.GapViolation      `json:"warnings,omitempty"`
	Error        string                       `json:"error,omitempty"`
}

// EstimateTemplate estimates a stored routing template end to end: its
// operations are ordered by their previous-operation links and each one is
// estimated at the requested quantity and weight, with the work-center
// dependencies of the template applied on top. Scheduling gaps are not known
// at template level, so each dependency is assumed to run at its declared
// minimum gap and conditional dependencies are left out.
func EstimateTemplate(log *slog.Logger, store TemplateStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.estimate_routing.EstimateTemplate"

		templateID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "invalid template id", http.StatusBadRequest)
			return
		}

		quantity := 1
		if q := r.URL.Query().Get("quantity"); q != "" {
			quantity, err = strconv.Atoi(q)
			if err != nil || quantity < 0 {
				http.Error(w, "invalid quantity", http.StatusBadRequest)
				return
			}
		}

		var totalWeight float64
		if tw := r.URL.Query().Get("total_weight"); tw != "" {
			totalWeight, err = strconv.ParseFloat(tw, 64)
			if err != nil || totalWeight < 0 {
				http.Error(w, "invalid total_weight", http.StatusBadRequest)
				return
			}
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		ops, err := store.GetRoutingOperations(ctx, templateID)
		if err != nil {
			log.Error("failed to load template operations",
				slog.String("op", op), slog.Int64("template_id", templateID), slog.String("error", err.Error()))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if len(ops) == 0 {
			http.Error(w, "routing template not found or empty", http.StatusNotFound)
			return
		}

		ordered, err := estimate.ChainOperations(ops)
		if err != nil {
			log.Warn("chain rejected", slog.String("op", op), slog.String("error", err.Error()))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, TemplateResponse{Error: err.Error()})
			return
		}

		workCenters := make(map[int64]*storage.WorkCenter)
		var resp TemplateResponse

		for _, operation := range ordered {
			wc, cached := workCenters[operation.WorkCenterID]
			if !cached && operation.WorkCenterID != 0 {
				wc, err = store.GetWorkCenter(ctx, operation.WorkCenterID)
				if err != nil {
					log.Warn("work center lookup failed, using zero rate",
						slog.String("op", op),
						slog.Int64("work_center_id", operation.WorkCenterID),
						slog.String("error", err.Error()))
					wc = nil
				}
				workCenters[operation.WorkCenterID] = wc
			}

			est, err := estimate.EstimateOperation(operation, wc, quantity, totalWeight)
			if err != nil {
				log.Warn("operation rejected", slog.String("op", op), slog.String("error", err.Error()))
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}

			deps, err := store.GetDependencies(ctx, operation.WorkCenterID, &templateID)
			if err != nil {
				log.Error("failed to load dependencies",
					slog.String("op", op),
					slog.Int64("work_center_id", operation.WorkCenterID),
					slog.String("error", err.Error()))
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}

			minutes := est.TotalMinutes
			for _, dep := range deps {
				result := estimate.ApplyDependency(minutes, 1, dep, dep.MinimumGapMinutes, false)
				minutes = result.Minutes
				resp.Warnings = append(resp.Warnings, result.Warnings...)
			}
			if minutes != est.TotalMinutes {
				// Material and tooling costs do not scale with time.
				est.Cost += (minutes - est.TotalMinutes) / 60 * est.HourlyRate
				est.TotalMinutes = minutes
			}

			resp.Operations = append(resp.Operations, est)
			resp.TotalMinutes += est.TotalMinutes
			resp.TotalCost += est.Cost
		}

		render.JSON(w, r, resp)
	}
}
