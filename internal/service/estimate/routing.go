package estimate

import (
	"fmt"

	"steelestim/internal/storage"
)

// OperationEstimate is the time/cost result for one routing operation at a
// given quantity and weight.
type OperationEstimate struct {
	OperationID int64 `json:"operation_id"`

	// Minutes per unit before efficiency scaling; 0 for PerWeight, whose
	// time depends on a weight figure the operation does not carry.
	TimePerUnit float64 `json:"time_per_unit"`

	// Minutes for the whole line after efficiency scaling.
	TotalMinutes float64 `json:"total_minutes"`

	HourlyRate float64 `json:"hourly_rate"`
	Cost       float64 `json:"cost"`
}

// EstimatedTimePerUnit is the per-unit minute figure of an operation.
// PerUnit amortizes setup over a nominal batch of 100 units; the original
// cost model hardcodes that batch, there is no live batch size input.
// Fixed is a flat per-job time. PerWeight yields 0 here, the caller computes
// it from the line weight.
func EstimatedTimePerUnit(op storage.RoutingOperation) (float64, error) {
	switch op.CalculationMethod {
	case storage.MethodPerUnit:
		return op.ProcessingTimePerUnit + op.SetupTimeMinutes/100, nil
	case storage.MethodFixed:
		return op.SetupTimeMinutes + op.MovementTimeMinutes + op.WaitingTimeMinutes, nil
	case storage.MethodPerWeight:
		return 0, nil
	default:
		return 0, fmt.Errorf("unknown calculation method %q", op.CalculationMethod)
	}
}

// HourlyRate resolves the operation rate: the operation override when set,
// else the owning work center rate, else 0.
func HourlyRate(op storage.RoutingOperation, wc *storage.WorkCenter) float64 {
	if op.OverrideHourlyRate != nil {
		return *op.OverrideHourlyRate
	}
	if wc != nil {
		return wc.HourlyRate
	}
	return 0
}

// EstimateOperation computes time and cost for one routing operation.
// totalWeight is the line weight in kg, used only by PerWeight operations.
func EstimateOperation(op storage.RoutingOperation, wc *storage.WorkCenter, quantity int, totalWeight float64) (OperationEstimate, error) {
	const fn = "estimate.EstimateOperation"

	if quantity < 0 {
		return OperationEstimate{}, fmt.Errorf("%s: negative quantity %d", fn, quantity)
	}
	if op.EfficiencyFactor < 0 {
		return OperationEstimate{}, fmt.Errorf("%s: negative efficiency factor %v", fn, op.EfficiencyFactor)
	}

	perUnit, err := EstimatedTimePerUnit(op)
	if err != nil {
		return OperationEstimate{}, fmt.Errorf("%s: %w", fn, err)
	}

	var minutes float64
	switch op.CalculationMethod {
	case storage.MethodPerUnit:
		minutes = perUnit * float64(quantity)
	case storage.MethodPerWeight:
		minutes = op.ProcessingTimePerKg * totalWeight
	case storage.MethodFixed:
		minutes = perUnit
	}

	// 100 = nominal, below 100 = slower. 0 keeps nominal time.
	if op.EfficiencyFactor > 0 {
		minutes *= 100 / op.EfficiencyFactor
	}

	rate := HourlyRate(op, wc)

	est := OperationEstimate{
		OperationID:  op.ID,
		TimePerUnit:  perUnit,
		TotalMinutes: minutes,
		HourlyRate:   rate,
		Cost:         minutes/60*rate + op.MaterialCostPerUnit*float64(quantity) + op.ToolingCost,
	}

	return est, nil
}

// ChainOperations orders a template's operations by their previous-operation
// links. Operations without a previous link start the chain. A reference to
// a missing operation or a loop in the links is a validation error; a
// malformed import must not send the estimator around a cycle.
func ChainOperations(ops []storage.RoutingOperation) ([]storage.RoutingOperation, error) {
	const fn = "estimate.ChainOperations"

	byID := make(map[int64]storage.RoutingOperation, len(ops))
	followers := make(map[int64][]storage.RoutingOperation)

	var heads []storage.RoutingOperation
	for _, op := range ops {
		byID[op.ID] = op
		if op.PreviousOperationID == nil {
			heads = append(heads, op)
			continue
		}
		followers[*op.PreviousOperationID] = append(followers[*op.PreviousOperationID], op)
	}

	for _, op := range ops {
		if op.PreviousOperationID != nil {
			if _, ok := byID[*op.PreviousOperationID]; !ok {
				return nil, fmt.Errorf("%s: operation %d references missing operation %d", fn, op.ID, *op.PreviousOperationID)
			}
		}
	}

	ordered := make([]storage.RoutingOperation, 0, len(ops))
	queue := heads
	for len(queue) > 0 {
		op := queue[0]
		queue = queue[1:]
		ordered = append(ordered, op)
		queue = append(queue, followers[op.ID]...)
	}

	if len(ordered) != len(ops) {
		return nil, fmt.Errorf("%s: cycle in previous-operation links", fn)
	}

	return ordered, nil
}
