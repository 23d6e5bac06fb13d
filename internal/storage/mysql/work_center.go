package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"steelestim/internal/storage"
)

func (s *Storage) GetWorkCenter(ctx context.Context, workCenterID int64) (*storage.WorkCenter, error) {
	const op = "storage.mysql.GetWorkCenter"

	query := `
		SELECT id, company_id, code, name, hourly_rate, efficiency_percentage, is_active
		FROM work_centers
		WHERE id = ?`

	var wc storage.WorkCenter
	err := s.db.QueryRowContext(ctx, query, workCenterID).Scan(
		&wc.ID, &wc.CompanyID, &wc.Code, &wc.Name, &wc.HourlyRate, &wc.EfficiencyPercentage, &wc.IsActive,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: work center %d not found: %w", op, workCenterID, err)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &wc, nil
}

func (s *Storage) GetWorkCenters(ctx context.Context, companyID int64) ([]storage.WorkCenter, error) {
	const op = "storage.mysql.GetWorkCenters"

	query := `
		SELECT id, company_id, code, name, hourly_rate, efficiency_percentage, is_active
		FROM work_centers
		WHERE company_id = ?
		ORDER BY code`

	rows, err := s.db.QueryContext(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var centers []storage.WorkCenter
	for rows.Next() {
		var wc storage.WorkCenter
		err := rows.Scan(&wc.ID, &wc.CompanyID, &wc.Code, &wc.Name,
			&wc.HourlyRate, &wc.EfficiencyPercentage, &wc.IsActive)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		centers = append(centers, wc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}

	return centers, nil
}

func (s *Storage) UpdateWorkCenterRate(ctx context.Context, workCenterID int64, hourlyRate, efficiencyPct float64) error {
	const op = "storage.mysql.UpdateWorkCenterRate"

	stmt := `UPDATE work_centers SET hourly_rate = ?, efficiency_percentage = ? WHERE id = ?`

	if _, err := s.db.ExecContext(ctx, stmt, hourlyRate, efficiencyPct, workCenterID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Storage) GetDependencies(ctx context.Context, dependentWorkCenterID int64, routingID *int64) ([]storage.WorkCenterDependency, error) {
	const op = "storage.mysql.GetDependencies"

	// Dependencies scoped to a routing apply only there; unscoped rows apply
	// everywhere.
	query := `
		SELECT id, company_id, dependent_work_center_id, required_work_center_id, routing_id,
		       dependency_type, time_multiplier, quality_factor,
		       minimum_gap_minutes, maximum_gap_minutes,
		       condition_expression, is_mandatory, is_active
		FROM work_center_dependencies
		WHERE dependent_work_center_id = ? AND (routing_id IS NULL OR routing_id <=> ?)`

	rows, err := s.db.QueryContext(ctx, query, dependentWorkCenterID, routingID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var deps []storage.WorkCenterDependency
	for rows.Next() {
		var d storage.WorkCenterDependency
		err := rows.Scan(&d.ID, &d.CompanyID, &d.DependentWorkCenterID, &d.RequiredWorkCenterID, &d.RoutingID,
			&d.DependencyType, &d.TimeMultiplier, &d.QualityFactor,
			&d.MinimumGapMinutes, &d.MaximumGapMinutes,
			&d.ConditionExpression, &d.IsMandatory, &d.IsActive)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		deps = append(deps, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}

	return deps, nil
}

func (s *Storage) GetWorkCenterTimes(ctx context.Context, processingItemID int64) ([]storage.WorkCenterTimeEntry, error) {
	const op = "storage.mysql.GetWorkCenterTimes"

	query := `
		SELECT id, processing_item_id, work_center_id, manual_time_minutes,
		       override_hourly_rate, dependency_factor, calculated_cost, effective_time_minutes
		FROM work_center_times
		WHERE processing_item_id = ?
		ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, processingItemID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var entries []storage.WorkCenterTimeEntry
	for rows.Next() {
		var e storage.WorkCenterTimeEntry
		err := rows.Scan(&e.ID, &e.ProcessingItemID, &e.WorkCenterID, &e.ManualTimeMinutes,
			&e.OverrideHourlyRate, &e.DependencyFactor, &e.CalculatedCost, &e.EffectiveTimeMinutes)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}

	return entries, nil
}

func (s *Storage) SaveWorkCenterTime(ctx context.Context, entry storage.WorkCenterTimeEntry) error {
	const op = "storage.mysql.SaveWorkCenterTime"

	stmt := `UPDATE work_center_times SET calculated_cost = ?, effective_time_minutes = ? WHERE id = ?`

	if _, err := s.db.ExecContext(ctx, stmt, entry.CalculatedCost, entry.EffectiveTimeMinutes, entry.ID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
