package estimate

import "steelestim/internal/storage"

// WorksheetTotals is a worksheet-level rollup. Every item and operation of
// the worksheet contributes exactly once; the component sums are kept so the
// report can break hours down by path.
type WorksheetTotals struct {
	ProcessingMinutes float64 `json:"processing_minutes"`
	WeldingMinutes    float64 `json:"welding_minutes"`
	RoutingMinutes    float64 `json:"routing_minutes"`

	TotalHours float64 `json:"total_hours"`
	TotalCost  float64 `json:"total_cost"`
}

// RollupWorksheet sums item minutes and operation estimates into worksheet
// totals. Item labor is costed at laborRate; routing operations carry their
// own work center rates inside their estimates.
func RollupWorksheet(items []storage.ProcessingItem, weldItems []storage.WeldingItem, connections map[int64]storage.WeldingConnection, operations []OperationEstimate, laborRate float64) WorksheetTotals {
	var t WorksheetTotals

	for _, item := range items {
		t.ProcessingMinutes += ProcessingItemMinutes(item)
	}
	for _, item := range weldItems {
		t.WeldingMinutes += WeldingItemMinutes(item, connections)
	}
	for _, op := range operations {
		t.RoutingMinutes += op.TotalMinutes
		t.TotalCost += op.Cost
	}

	itemMinutes := t.ProcessingMinutes + t.WeldingMinutes
	t.TotalHours = (itemMinutes + t.RoutingMinutes) / 60
	t.TotalCost += itemMinutes / 60 * laborRate

	return t
}

// RollupPackage sums worksheet totals into package hours and cost, scaled by
// the package processing efficiency when present (percentage, 100 = nominal).
func RollupPackage(worksheets []storage.PackageWorksheet, efficiency *float64) (hours, cost float64) {
	for _, ws := range worksheets {
		hours += ws.TotalHours
		cost += ws.TotalCost
	}

	if efficiency != nil && *efficiency > 0 {
		factor := 100 / *efficiency
		hours *= factor
		cost *= factor
	}

	return hours, cost
}

// RollupProject sums package figures into project totals.
func RollupProject(packages []storage.Package) (hours, cost float64) {
	for _, p := range packages {
		hours += p.EstimatedHours
		cost += p.EstimatedCost
	}
	return hours, cost
}
