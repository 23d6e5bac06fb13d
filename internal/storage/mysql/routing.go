package mysql

import (
	"context"
	"fmt"

	"steelestim/internal/storage"
)

func (s *Storage) GetRoutingOperations(ctx context.Context, templateID int64) ([]storage.RoutingOperation, error) {
	const op = "storage.mysql.GetRoutingOperations"

	query := `
		SELECT id, routing_template_id, work_center_id, machine_center_id,
		       operation_code, operation_name, sequence_number,
		       setup_time_minutes, processing_time_per_unit, processing_time_per_kg,
		       movement_time_minutes, waiting_time_minutes,
		       calculation_method, override_hourly_rate, material_cost_per_unit, tooling_cost,
		       efficiency_factor, previous_operation_id, can_run_in_parallel
		FROM routing_operations
		WHERE routing_template_id = ? AND is_active = 1
		ORDER BY sequence_number`

	rows, err := s.db.QueryContext(ctx, query, templateID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var ops []storage.RoutingOperation
	for rows.Next() {
		var o storage.RoutingOperation
		err := rows.Scan(&o.ID, &o.RoutingTemplateID, &o.WorkCenterID, &o.MachineCenterID,
			&o.OperationCode, &o.OperationName, &o.SequenceNumber,
			&o.SetupTimeMinutes, &o.ProcessingTimePerUnit, &o.ProcessingTimePerKg,
			&o.MovementTimeMinutes, &o.WaitingTimeMinutes,
			&o.CalculationMethod, &o.OverrideHourlyRate, &o.MaterialCostPerUnit, &o.ToolingCost,
			&o.EfficiencyFactor, &o.PreviousOperationID, &o.CanRunInParallel)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		ops = append(ops, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}

	return ops, nil
}
