package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"steelestim/internal/storage"
)

func (s *Storage) GetWorksheet(ctx context.Context, worksheetID int64) (*storage.PackageWorksheet, error) {
	const op = "storage.mysql.GetWorksheet"

	query := `
		SELECT id, package_id, name, worksheet_type, total_hours, total_cost, updated_at
		FROM package_worksheets
		WHERE id = ?`

	var ws storage.PackageWorksheet
	err := s.db.QueryRowContext(ctx, query, worksheetID).Scan(
		&ws.ID, &ws.PackageID, &ws.Name, &ws.WorksheetType, &ws.TotalHours, &ws.TotalCost, &ws.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: worksheet %d not found: %w", op, worksheetID, err)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &ws, nil
}

func (s *Storage) GetProcessingItems(ctx context.Context, worksheetID int64) ([]storage.ProcessingItem, error) {
	const op = "storage.mysql.GetProcessingItems"

	query := `
		SELECT id, project_id, worksheet_id, drawing_number, description, material_id,
		       quantity, length, weight,
		       delivery_bundle_qty, pack_bundle_qty,
		       unload_time_per_bundle, mark_measure_cut, quality_check_clean,
		       move_to_assembly, move_after_weld, loading_time_per_bundle,
		       delivery_bundle_id, is_parent_in_bundle,
		       pack_bundle_id, is_parent_in_pack_bundle,
		       routing_operation_id, created_at, updated_at
		FROM processing_items
		WHERE worksheet_id = ? AND is_deleted = 0
		ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, worksheetID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var items []storage.ProcessingItem
	for rows.Next() {
		var it storage.ProcessingItem
		err := rows.Scan(
			&it.ID, &it.ProjectID, &it.WorksheetID, &it.DrawingNumber, &it.Description, &it.MaterialID,
			&it.Quantity, &it.Length, &it.Weight,
			&it.DeliveryBundleQty, &it.PackBundleQty,
			&it.UnloadTimePerBundle, &it.MarkMeasureCut, &it.QualityCheckClean,
			&it.MoveToAssembly, &it.MoveAfterWeld, &it.LoadingTimePerBundle,
			&it.DeliveryBundleID, &it.IsParentInBundle,
			&it.PackBundleID, &it.IsParentInPackBundle,
			&it.RoutingOperationID, &it.CreatedAt, &it.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}

	return items, nil
}

func (s *Storage) GetWeldingItems(ctx context.Context, worksheetID int64) ([]storage.WeldingItem, error) {
	const op = "storage.mysql.GetWeldingItems"

	query := `
		SELECT id, project_id, worksheet_id, drawing_number, description, weld_type,
		       weld_length, weight, connection_id, connection_qty, created_at, updated_at
		FROM welding_items
		WHERE worksheet_id = ? AND is_deleted = 0
		ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, worksheetID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	byID := make(map[int64]int)
	var items []storage.WeldingItem
	for rows.Next() {
		var it storage.WeldingItem
		err := rows.Scan(
			&it.ID, &it.ProjectID, &it.WorksheetID, &it.DrawingNumber, &it.Description, &it.WeldType,
			&it.WeldLength, &it.Weight, &it.ConnectionID, &it.ConnectionQty, &it.CreatedAt, &it.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: scan item: %w", op, err)
		}
		byID[it.ID] = len(items)
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}

	if len(items) == 0 {
		return items, nil
	}

	connQuery := `
		SELECT ic.id, ic.welding_item_id, ic.welding_connection_id, ic.quantity,
		       ic.assemble_fit_tack, ic.weld, ic.weld_check, ic.weld_test
		FROM welding_item_connections ic
		JOIN welding_items wi ON wi.id = ic.welding_item_id
		WHERE wi.worksheet_id = ? AND wi.is_deleted = 0
		ORDER BY ic.welding_item_id, ic.id`

	connRows, err := s.db.QueryContext(ctx, connQuery, worksheetID)
	if err != nil {
		return nil, fmt.Errorf("%s: connections: %w", op, err)
	}
	defer connRows.Close()

	for connRows.Next() {
		var ic storage.WeldingItemConnection
		err := connRows.Scan(
			&ic.ID, &ic.WeldingItemID, &ic.WeldingConnectionID, &ic.Quantity,
			&ic.AssembleFitTack, &ic.Weld, &ic.WeldCheck, &ic.WeldTest,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: scan connection: %w", op, err)
		}
		if idx, ok := byID[ic.WeldingItemID]; ok {
			items[idx].Connections = append(items[idx].Connections, ic)
		}
	}
	if err := connRows.Err(); err != nil {
		return nil, fmt.Errorf("%s: connection rows: %w", op, err)
	}

	return items, nil
}

func (s *Storage) GetConnectionDefaults(ctx context.Context) (map[int64]storage.WeldingConnection, error) {
	const op = "storage.mysql.GetConnectionDefaults"

	query := `
		SELECT id, category, size, default_assemble_fit_tack, default_weld,
		       default_weld_check, default_weld_test
		FROM welding_connections`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	defaults := make(map[int64]storage.WeldingConnection)
	for rows.Next() {
		var c storage.WeldingConnection
		err := rows.Scan(&c.ID, &c.Category, &c.Size,
			&c.DefaultAssembleFitTack, &c.DefaultWeld, &c.DefaultWeldCheck, &c.DefaultWeldTest)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		defaults[c.ID] = c
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}

	return defaults, nil
}

func (s *Storage) GetPackage(ctx context.Context, packageID int64) (*storage.Package, error) {
	const op = "storage.mysql.GetPackage"

	query := `
		SELECT id, project_id, package_number, name, estimated_hours, estimated_cost,
		       processing_efficiency, labor_rate
		FROM packages
		WHERE id = ?`

	var p storage.Package
	err := s.db.QueryRowContext(ctx, query, packageID).Scan(
		&p.ID, &p.ProjectID, &p.PackageNumber, &p.Name, &p.EstimatedHours, &p.EstimatedCost,
		&p.ProcessingEfficiency, &p.LaborRate,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: package %d not found: %w", op, packageID, err)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &p, nil
}

func (s *Storage) GetPackageWorksheets(ctx context.Context, packageID int64) ([]storage.PackageWorksheet, error) {
	const op = "storage.mysql.GetPackageWorksheets"

	query := `
		SELECT id, package_id, name, worksheet_type, total_hours, total_cost, updated_at
		FROM package_worksheets
		WHERE package_id = ?
		ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, packageID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var worksheets []storage.PackageWorksheet
	for rows.Next() {
		var ws storage.PackageWorksheet
		err := rows.Scan(&ws.ID, &ws.PackageID, &ws.Name, &ws.WorksheetType,
			&ws.TotalHours, &ws.TotalCost, &ws.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		worksheets = append(worksheets, ws)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}

	return worksheets, nil
}

func (s *Storage) UpdateWorksheetTotals(ctx context.Context, worksheetID int64, hours, cost float64) error {
	const op = "storage.mysql.UpdateWorksheetTotals"

	stmt := `UPDATE package_worksheets SET total_hours = ?, total_cost = ?, updated_at = NOW() WHERE id = ?`

	if _, err := s.db.ExecContext(ctx, stmt, hours, cost, worksheetID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Storage) UpdatePackageTotals(ctx context.Context, packageID int64, hours, cost float64) error {
	const op = "storage.mysql.UpdatePackageTotals"

	stmt := `UPDATE packages SET estimated_hours = ?, estimated_cost = ? WHERE id = ?`

	if _, err := s.db.ExecContext(ctx, stmt, hours, cost, packageID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
