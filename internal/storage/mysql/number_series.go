package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"steelestim/internal/storage"
)

const seriesColumns = `
	ns.id, ns.company_id, COALESCE(c.code, ''), ns.entity_type,
	ns.prefix, ns.suffix,
	ns.current_number, ns.starting_number, ns.increment_by,
	ns.min_digits, ns.format,
	ns.include_year, ns.include_month, ns.include_company_code,
	ns.reset_yearly, ns.reset_monthly, ns.last_reset_year, ns.last_reset_month,
	ns.is_active, ns.allow_manual_entry, ns.description,
	ns.last_used, ns.version`

func scanSeries(row interface{ Scan(...any) error }) (*storage.NumberSeries, error) {
	var ns storage.NumberSeries
	err := row.Scan(
		&ns.ID, &ns.CompanyID, &ns.CompanyCode, &ns.EntityType,
		&ns.Prefix, &ns.Suffix,
		&ns.CurrentNumber, &ns.StartingNumber, &ns.IncrementBy,
		&ns.MinDigits, &ns.Format,
		&ns.IncludeYear, &ns.IncludeMonth, &ns.IncludeCompanyCode,
		&ns.ResetYearly, &ns.ResetMonthly, &ns.LastResetYear, &ns.LastResetMonth,
		&ns.IsActive, &ns.AllowManualEntry, &ns.Description,
		&ns.LastUsed, &ns.Version,
	)
	if err != nil {
		return nil, err
	}
	return &ns, nil
}

func (s *Storage) GetSeries(ctx context.Context, companyID int64, entityType string) (*storage.NumberSeries, error) {
	const op = "storage.mysql.GetSeries"

	query := `
		SELECT ` + seriesColumns + `
		FROM number_series ns
		LEFT JOIN companies c ON c.id = ns.company_id
		WHERE ns.company_id = ? AND ns.entity_type = ?`

	ns, err := scanSeries(s.db.QueryRowContext(ctx, query, companyID, entityType))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %s/%d: %w", op, entityType, companyID, storage.ErrSeriesNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return ns, nil
}

// SaveSeries persists the counter state of an allocation. The version column
// makes the read-modify-write optimistic: another writer in between bumps
// the version and this update matches nothing, which surfaces as
// storage.ErrConflict for the generator to retry.
func (s *Storage) SaveSeries(ctx context.Context, series *storage.NumberSeries) error {
	const op = "storage.mysql.SaveSeries"

	stmt := `
		UPDATE number_series
		SET current_number = ?, last_reset_year = ?, last_reset_month = ?,
		    last_used = ?, version = version + 1
		WHERE id = ? AND version = ?`

	res, err := s.db.ExecContext(ctx, stmt,
		series.CurrentNumber, series.LastResetYear, series.LastResetMonth,
		series.LastUsed, series.ID, series.Version)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: series %d: %w", op, series.ID, storage.ErrConflict)
	}

	series.Version++
	return nil
}

func (s *Storage) ListSeries(ctx context.Context, companyID int64) ([]storage.NumberSeries, error) {
	const op = "storage.mysql.ListSeries"

	query := `
		SELECT ` + seriesColumns + `
		FROM number_series ns
		LEFT JOIN companies c ON c.id = ns.company_id
		WHERE ns.company_id = ?
		ORDER BY ns.entity_type`

	rows, err := s.db.QueryContext(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var list []storage.NumberSeries
	for rows.Next() {
		ns, err := scanSeries(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		list = append(list, *ns)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}

	return list, nil
}

// ConfigureSeries upserts the configuration fields of a series. Counter
// state (current_number, version, reset bookkeeping) is owned by SaveSeries
// and ResetSeries and is only written here on first insert.
func (s *Storage) ConfigureSeries(ctx context.Context, series storage.NumberSeries) error {
	const op = "storage.mysql.ConfigureSeries"

	stmt := `
		INSERT INTO number_series
			(company_id, entity_type, prefix, suffix,
			 current_number, starting_number, increment_by, min_digits, format,
			 include_year, include_month, include_company_code,
			 reset_yearly, reset_monthly,
			 is_active, allow_manual_entry, description, last_used, version)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW(), 0)
		ON DUPLICATE KEY UPDATE
			prefix = VALUES(prefix),
			suffix = VALUES(suffix),
			starting_number = VALUES(starting_number),
			increment_by = VALUES(increment_by),
			min_digits = VALUES(min_digits),
			format = VALUES(format),
			include_year = VALUES(include_year),
			include_month = VALUES(include_month),
			include_company_code = VALUES(include_company_code),
			reset_yearly = VALUES(reset_yearly),
			reset_monthly = VALUES(reset_monthly),
			is_active = VALUES(is_active),
			allow_manual_entry = VALUES(allow_manual_entry),
			description = VALUES(description)`

	startCounter := series.StartingNumber - series.IncrementBy

	_, err := s.db.ExecContext(ctx, stmt,
		series.CompanyID, series.EntityType, series.Prefix, series.Suffix,
		startCounter, series.StartingNumber, series.IncrementBy, series.MinDigits, series.Format,
		series.IncludeYear, series.IncludeMonth, series.IncludeCompanyCode,
		series.ResetYearly, series.ResetMonthly,
		series.IsActive, series.AllowManualEntry, series.Description)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// ResetSeries rewinds a series to a new starting number, so the next
// allocation yields exactly newStart.
func (s *Storage) ResetSeries(ctx context.Context, companyID int64, entityType string, newStart int) error {
	const op = "storage.mysql.ResetSeries"

	stmt := `
		UPDATE number_series
		SET current_number = ? - increment_by, starting_number = ?, version = version + 1
		WHERE company_id = ? AND entity_type = ?`

	res, err := s.db.ExecContext(ctx, stmt, newStart, newStart, companyID, entityType)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %s/%d: %w", op, entityType, companyID, storage.ErrSeriesNotFound)
	}

	return nil
}

// InitDefaultSeries seeds the standard entity series for a company. Existing
// rows are left alone.
func (s *Storage) InitDefaultSeries(ctx context.Context, companyID int64) error {
	const op = "storage.mysql.InitDefaultSeries"

	defaults := []struct {
		entityType string
		prefix     string
	}{
		{storage.EntityCustomer, "CUST-"},
		{storage.EntityProject, "PRJ-"},
		{storage.EntityPackage, "PKG-"},
		{storage.EntityWorkCenter, "WC-"},
		{storage.EntityMachineCenter, "MC-"},
		{storage.EntityRoutingTemplate, "RT-"},
		{storage.EntityEstimation, "EST-"},
		{storage.EntityProcessingItem, "PI-"},
		{storage.EntityWeldingItem, "WI-"},
	}

	stmt := `
		INSERT IGNORE INTO number_series
			(company_id, entity_type, prefix, suffix,
			 current_number, starting_number, increment_by, min_digits, format,
			 include_year, include_month, include_company_code,
			 reset_yearly, reset_monthly,
			 is_active, allow_manual_entry, description, last_used, version)
		VALUES (?, ?, ?, '', 0, 1, 1, 5, '', 0, 0, 0, 0, 0, 1, 1, '', NOW(), 0)`

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin transaction: %w", op, err)
	}
	defer tx.Rollback()

	for _, d := range defaults {
		if _, err := tx.ExecContext(ctx, stmt, companyID, d.entityType, d.prefix); err != nil {
			return fmt.Errorf("%s: seed %s: %w", op, d.entityType, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit: %w", op, err)
	}

	return nil
}
