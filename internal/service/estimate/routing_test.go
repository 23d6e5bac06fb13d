package estimate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"steelestim/internal/storage"
)

func TestEstimatedTimePerUnit(t *testing.T) {
	tests := []struct {
		name string
		op   storage.RoutingOperation
		want float64
	}{
		{
			name: "per unit amortizes setup over 100",
			op: storage.RoutingOperation{
				CalculationMethod:     storage.MethodPerUnit,
				ProcessingTimePerUnit: 2.0,
				SetupTimeMinutes:      50,
			},
			want: 2.5,
		},
		{
			name: "fixed is flat setup plus movement plus waiting",
			op: storage.RoutingOperation{
				CalculationMethod:   storage.MethodFixed,
				SetupTimeMinutes:    30,
				MovementTimeMinutes: 10,
				WaitingTimeMinutes:  5,
			},
			want: 45,
		},
		{
			name: "per weight yields zero on this path",
			op: storage.RoutingOperation{
				CalculationMethod:   storage.MethodPerWeight,
				ProcessingTimePerKg: 0.8,
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EstimatedTimePerUnit(tt.op)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEstimatedTimePerUnit_UnknownMethod(t *testing.T) {
	_, err := EstimatedTimePerUnit(storage.RoutingOperation{CalculationMethod: "PerVolume"})
	assert.Error(t, err)
}

func TestHourlyRate(t *testing.T) {
	wc := &storage.WorkCenter{HourlyRate: 80}

	assert.Equal(t, 95.0, HourlyRate(storage.RoutingOperation{OverrideHourlyRate: fptr(95)}, wc))
	assert.Equal(t, 80.0, HourlyRate(storage.RoutingOperation{}, wc))
	assert.Equal(t, 0.0, HourlyRate(storage.RoutingOperation{}, nil))
}

func TestEstimateOperation_PerUnit(t *testing.T) {
	op := storage.RoutingOperation{
		ID:                    1,
		CalculationMethod:     storage.MethodPerUnit,
		ProcessingTimePerUnit: 2.0,
		SetupTimeMinutes:      50,
		EfficiencyFactor:      100,
	}
	wc := &storage.WorkCenter{HourlyRate: 60}

	est, err := EstimateOperation(op, wc, 10, 0)
	require.NoError(t, err)

	assert.Equal(t, 2.5, est.TimePerUnit)
	assert.Equal(t, 25.0, est.TotalMinutes)
	// 25 minutes at 60/h
	assert.Equal(t, 25.0, est.Cost)
}

func TestEstimateOperation_PerWeight(t *testing.T) {
	op := storage.RoutingOperation{
		CalculationMethod:   storage.MethodPerWeight,
		ProcessingTimePerKg: 0.5,
		EfficiencyFactor:    100,
	}

	est, err := EstimateOperation(op, &storage.WorkCenter{HourlyRate: 120}, 4, 200)
	require.NoError(t, err)

	assert.Equal(t, 0.0, est.TimePerUnit)
	assert.Equal(t, 100.0, est.TotalMinutes)
	assert.Equal(t, 200.0, est.Cost)
}

func TestEstimateOperation_EfficiencyScaling(t *testing.T) {
	op := storage.RoutingOperation{
		CalculationMethod:     storage.MethodPerUnit,
		ProcessingTimePerUnit: 1.0,
		EfficiencyFactor:      50, // half speed doubles the time
	}

	est, err := EstimateOperation(op, nil, 10, 0)
	require.NoError(t, err)

	assert.Equal(t, 20.0, est.TotalMinutes)

	op.EfficiencyFactor = 200 // double speed halves it
	est, err = EstimateOperation(op, nil, 10, 0)
	require.NoError(t, err)

	assert.Equal(t, 5.0, est.TotalMinutes)
}

func TestEstimateOperation_ZeroEfficiencyKeepsNominalTime(t *testing.T) {
	op := storage.RoutingOperation{
		CalculationMethod:     storage.MethodPerUnit,
		ProcessingTimePerUnit: 1.0,
	}

	est, err := EstimateOperation(op, nil, 10, 0)
	require.NoError(t, err)

	assert.Equal(t, 10.0, est.TotalMinutes)
}

func TestEstimateOperation_MaterialAndToolingCost(t *testing.T) {
	op := storage.RoutingOperation{
		CalculationMethod:   storage.MethodFixed,
		SetupTimeMinutes:    60,
		EfficiencyFactor:    100,
		MaterialCostPerUnit: 2.5,
		ToolingCost:         15,
	}
	wc := &storage.WorkCenter{HourlyRate: 100}

	est, err := EstimateOperation(op, wc, 4, 0)
	require.NoError(t, err)

	// 60 min at 100/h + 4*2.5 material + 15 tooling
	assert.Equal(t, 125.0, est.Cost)
}

func TestEstimateOperation_RejectsCallerInputErrors(t *testing.T) {
	op := storage.RoutingOperation{CalculationMethod: storage.MethodPerUnit, EfficiencyFactor: 100}

	_, err := EstimateOperation(op, nil, -1, 0)
	assert.Error(t, err)

	op.EfficiencyFactor = -10
	_, err = EstimateOperation(op, nil, 1, 0)
	assert.Error(t, err)

	op.EfficiencyFactor = 100
	op.CalculationMethod = "bogus"
	_, err = EstimateOperation(op, nil, 1, 0)
	assert.Error(t, err)
}

func TestChainOperations_OrdersByPreviousLinks(t *testing.T) {
	ops := []storage.RoutingOperation{
		{ID: 3, PreviousOperationID: i64ptr(2)},
		{ID: 1},
		{ID: 2, PreviousOperationID: i64ptr(1)},
	}

	ordered, err := ChainOperations(ops)
	require.NoError(t, err)

	require.Len(t, ordered, 3)
	assert.Equal(t, int64(1), ordered[0].ID)
	assert.Equal(t, int64(2), ordered[1].ID)
	assert.Equal(t, int64(3), ordered[2].ID)
}

func TestChainOperations_RejectsCycle(t *testing.T) {
	ops := []storage.RoutingOperation{
		{ID: 1, PreviousOperationID: i64ptr(2)},
		{ID: 2, PreviousOperationID: i64ptr(1)},
	}

	_, err := ChainOperations(ops)
	assert.ErrorContains(t, err, "cycle")
}

func TestChainOperations_RejectsMissingReference(t *testing.T) {
	ops := []storage.RoutingOperation{
		{ID: 1, PreviousOperationID: i64ptr(42)},
	}

	_, err := ChainOperations(ops)
	assert.ErrorContains(t, err, "missing")
}
