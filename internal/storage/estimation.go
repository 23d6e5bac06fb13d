package storage

import "time"

// ProcessingItem is one cut/process line of a worksheet. Minute fields are
// per unit or per bundle as their name says; the engine decides which.
type ProcessingItem struct {
	ID            int64   `json:"id"`
	ProjectID     int64   `json:"project_id"`
	WorksheetID   *int64  `json:"worksheet_id"`
	DrawingNumber string  `json:"drawing_number"`
	Description   string  `json:"description"`
	MaterialID    string  `json:"material_id"`
	Quantity      int     `json:"quantity"`
	Length        float64 `json:"length"`
	Weight        float64 `json:"weight"`

	DeliveryBundleQty int `json:"delivery_bundle_qty"`
	PackBundleQty     int `json:"pack_bundle_qty"`

	UnloadTimePerBundle  float64 `json:"unload_time_per_bundle"`
	MarkMeasureCut       float64 `json:"mark_measure_cut"`
	QualityCheckClean    float64 `json:"quality_check_clean"`
	MoveToAssembly       float64 `json:"move_to_assembly"`
	MoveAfterWeld        float64 `json:"move_after_weld"`
	LoadingTimePerBundle float64 `json:"loading_time_per_bundle"`

	DeliveryBundleID     *int64 `json:"delivery_bundle_id"`
	IsParentInBundle     bool   `json:"is_parent_in_bundle"`
	PackBundleID         *int64 `json:"pack_bundle_id"`
	IsParentInPackBundle bool   `json:"is_parent_in_pack_bundle"`

	RoutingOperationID *int64 `json:"routing_operation_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TotalWeight is per-unit weight times quantity.
func (p ProcessingItem) TotalWeight() float64 {
	return p.Weight * float64(p.Quantity)
}

// WeldingConnection is a connection type with default minute values.
type WeldingConnection struct {
	ID       int64  `json:"id"`
	Category string `json:"category"`
	Size     string `json:"size"`

	DefaultAssembleFitTack float64 `json:"default_assemble_fit_tack"`
	DefaultWeld            float64 `json:"default_weld"`
	DefaultWeldCheck       float64 `json:"default_weld_check"`
	DefaultWeldTest        float64 `json:"default_weld_test"`
}

// WeldingItemConnection assigns a connection type to a welding item.
// Nil override fields fall back to the connection type defaults.
type WeldingItemConnection struct {
	ID                  int64 `json:"id"`
	WeldingItemID       int64 `json:"welding_item_id"`
	WeldingConnectionID int64 `json:"welding_connection_id"`
	Quantity            int   `json:"quantity"`

	AssembleFitTack *float64 `json:"assemble_fit_tack"`
	Weld            *float64 `json:"weld"`
	WeldCheck       *float64 `json:"weld_check"`
	WeldTest        *float64 `json:"weld_test"`
}

// WeldingItem is one weld line of a worksheet. ConnectionID/ConnectionQty are
// the legacy single-connection fields kept for old rows; time always comes
// from Connections.
type WeldingItem struct {
	ID            int64   `json:"id"`
	ProjectID     int64   `json:"project_id"`
	WorksheetID   *int64  `json:"worksheet_id"`
	DrawingNumber string  `json:"drawing_number"`
	Description   string  `json:"description"`
	WeldType      string  `json:"weld_type"`
	WeldLength    float64 `json:"weld_length"`
	Weight        float64 `json:"weight"`

	ConnectionID  *int64 `json:"connection_id"`
	ConnectionQty int    `json:"connection_qty"`

	Connections []WeldingItemConnection `json:"connections"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WorkCenterTimeEntry is a per item/work center time row. CalculatedCost and
// EffectiveTimeMinutes are the engine's write-back fields.
type WorkCenterTimeEntry struct {
	ID               int64 `json:"id"`
	ProcessingItemID int64 `json:"processing_item_id"`
	WorkCenterID     int64 `json:"work_center_id"`

	ManualTimeMinutes  float64  `json:"manual_time_minutes"`
	OverrideHourlyRate *float64 `json:"override_hourly_rate"`
	DependencyFactor   float64  `json:"dependency_factor"`

	CalculatedCost       float64 `json:"calculated_cost"`
	EffectiveTimeMinutes float64 `json:"effective_time_minutes"`
}
