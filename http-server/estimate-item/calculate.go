package estimate_item

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"steelestim/internal/service/estimate"
	"steelestim/internal/storage"
)

type ProcessingResponse struct {
	TotalMinutes    float64 `json:"total_minutes"`
	DeliveryBundles int     `json:"delivery_bundles"`
	PackBundles     int     `json:"pack_bundles"`
	TotalWeight     float64 `json:"total_weight"`
}

// CalculateProcessingItem estimates one processing line from the request
// body. Pure computation, nothing is persisted.
func CalculateProcessingItem(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.estimate_item.CalculateProcessingItem"

		var item storage.ProcessingItem
		if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
			log.Error("invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		if item.Quantity < 0 {
			log.Warn("negative quantity rejected", slog.String("op", op), slog.Int("quantity", item.Quantity))
			http.Error(w, "quantity must not be negative", http.StatusBadRequest)
			return
		}

		render.JSON(w, r, ProcessingResponse{
			TotalMinutes:    estimate.ProcessingItemMinutes(item),
			DeliveryBundles: estimate.DeliveryBundles(item),
			PackBundles:     estimate.PackBundles(item),
			TotalWeight:     item.TotalWeight(),
		})
	}
}

type WeldingRequest struct {
	Item        storage.WeldingItem         `json:"item"`
	Connections []storage.WeldingConnection `json:"connections"`
}

type WeldingResponse struct {
	TotalMinutes float64                    `json:"total_minutes"`
	Resolved     []estimate.ConnectionTimes `json:"resolved"`
}

// CalculateWeldingItem estimates one welding line from the request body: the
// item with its connection assignments plus the connection type defaults
// they reference.
func CalculateWeldingItem(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.estimate_item.CalculateWeldingItem"

		var req WeldingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		for _, ic := range req.Item.Connections {
			if ic.Quantity < 0 {
				log.Warn("negative connection quantity rejected", slog.String("op", op))
				http.Error(w, "connection quantity must not be negative", http.StatusBadRequest)
				return
			}
		}

		defaults := make(map[int64]storage.WeldingConnection, len(req.Connections))
		for _, c := range req.Connections {
			defaults[c.ID] = c
		}

		resolved := make([]estimate.ConnectionTimes, 0, len(req.Item.Connections))
		for _, ic := range req.Item.Connections {
			var def *storage.WeldingConnection
			if c, ok := defaults[ic.WeldingConnectionID]; ok {
				def = &c
			}
			resolved = append(resolved, estimate.ResolveConnection(ic, def))
		}

		render.JSON(w, r, WeldingResponse{
			TotalMinutes: estimate.WeldingItemMinutes(req.Item, defaults),
			Resolved:     resolved,
		})
	}
}
