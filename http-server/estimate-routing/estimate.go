package estimate_routing

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"steelestim/internal/service/estimate"
	"steelestim/internal/storage"
)

type WorkCenterGetter interface {
	GetWorkCenter(ctx context.Context, workCenterID int64) (*storage.WorkCenter, error)
}

type OperationRequest struct {
	Operation   storage.RoutingOperation `json:"operation"`
	Quantity    int                      `json:"quantity"`
	TotalWeight float64                  `json:"total_weight"`
}

// EstimateOperation computes time and cost for one routing operation,
// resolving the hourly rate against the operation's work center.
func EstimateOperation(log *slog.Logger, workCenters WorkCenterGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.estimate_routing.EstimateOperation"

		var req OperationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		// The work center is optional; the rate falls back to 0 without it.
		var wc *storage.WorkCenter
		if req.Operation.WorkCenterID != 0 {
			var err error
			wc, err = workCenters.GetWorkCenter(ctx, req.Operation.WorkCenterID)
			if err != nil {
				log.Warn("work center lookup failed, using zero rate",
					slog.String("op", op),
					slog.Int64("work_center_id", req.Operation.WorkCenterID),
					slog.String("error", err.Error()))
				wc = nil
			}
		}

		result, err := estimate.EstimateOperation(req.Operation, wc, req.Quantity, req.TotalWeight)
		if err != nil {
			log.Warn("operation rejected", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		render.JSON(w, r, result)
	}
}

type DependencyRequest struct {
	Minutes      float64                      `json:"minutes"`
	Quality      float64                      `json:"quality"`
	Dependency   storage.WorkCenterDependency `json:"dependency"`
	GapMinutes   float64                      `json:"gap_minutes"`
	ConditionMet bool                         `json:"condition_met"`
}

// ApplyDependency adjusts an operation's figures for one declared
// work-center dependency. Pure computation.
func ApplyDependency(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.estimate_routing.ApplyDependency"

		var req DependencyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		result := estimate.ApplyDependency(req.Minutes, req.Quality, req.Dependency, req.GapMinutes, req.ConditionMet)

		if result.Violation != nil {
			log.Warn("mandatory gap violation", slog.String("op", op), slog.String("violation", result.Violation.Error()))
		}

		render.JSON(w, r, result)
	}
}

type ChainRequest struct {
	Operations []storage.RoutingOperation `json:"operations"`
}

type ChainResponse struct {
	Operations []storage.RoutingOperation `json:"operations"`
	Error      string                     `json:"error,omitempty"`
}

// ValidateChain orders a template's operations by their previous-operation
// links, rejecting cycles and dangling references.
func ValidateChain(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.estimate_routing.ValidateChain"

		var req ChainRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		ordered, err := estimate.ChainOperations(req.Operations)
		if err != nil {
			log.Warn("chain rejected", slog.String("op", op), slog.String("error", err.Error()))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, ChainResponse{Error: err.Error()})
			return
		}

		render.JSON(w, r, ChainResponse{Operations: ordered})
	}
}
