package estimate

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"steelestim/internal/storage"
)

type EstimateStorage interface {
	GetWorksheet(ctx context.Context, worksheetID int64) (*storage.PackageWorksheet, error)
	GetProcessingItems(ctx context.Context, worksheetID int64) ([]storage.ProcessingItem, error)
	GetWeldingItems(ctx context.Context, worksheetID int64) ([]storage.WeldingItem, error)
	GetConnectionDefaults(ctx context.Context) (map[int64]storage.WeldingConnection, error)
	GetPackage(ctx context.Context, packageID int64) (*storage.Package, error)
	GetPackageWorksheets(ctx context.Context, packageID int64) ([]storage.PackageWorksheet, error)
	UpdateWorksheetTotals(ctx context.Context, worksheetID int64, hours, cost float64) error
	UpdatePackageTotals(ctx context.Context, packageID int64, hours, cost float64) error

	GetWorkCenterTimes(ctx context.Context, processingItemID int64) ([]storage.WorkCenterTimeEntry, error)
	GetWorkCenter(ctx context.Context, workCenterID int64) (*storage.WorkCenter, error)
	SaveWorkCenterTime(ctx context.Context, entry storage.WorkCenterTimeEntry) error
}

// EstimateService rolls worksheets and packages up against storage and
// writes the totals back. The computation itself is the pure functions in
// this package; the service only fetches a consistent input set and persists
// the result.
type EstimateService struct {
	storage EstimateStorage
}

func NewEstimateService(storage EstimateStorage) *EstimateService {
	return &EstimateService{storage: storage}
}

// RecalculateWorksheet recomputes one worksheet's totals from its items and
// persists them. Item labor is costed at the owning package's labor rate.
func (s *EstimateService) RecalculateWorksheet(ctx context.Context, worksheetID int64) (WorksheetTotals, error) {
	const op = "service.estimate.RecalculateWorksheet"

	ws, err := s.storage.GetWorksheet(ctx, worksheetID)
	if err != nil {
		return WorksheetTotals{}, fmt.Errorf("%s: worksheet: %w", op, err)
	}

	var (
		items       []storage.ProcessingItem
		weldItems   []storage.WeldingItem
		connections map[int64]storage.WeldingConnection
		pkg         *storage.Package
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = s.storage.GetProcessingItems(gCtx, worksheetID)
		if err != nil {
			return fmt.Errorf("processing items: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		weldItems, err = s.storage.GetWeldingItems(gCtx, worksheetID)
		if err != nil {
			return fmt.Errorf("welding items: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		connections, err = s.storage.GetConnectionDefaults(gCtx)
		if err != nil {
			return fmt.Errorf("connection defaults: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		pkg, err = s.storage.GetPackage(gCtx, ws.PackageID)
		if err != nil {
			return fmt.Errorf("package: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return WorksheetTotals{}, fmt.Errorf("%s: %w", op, err)
	}

	totals := RollupWorksheet(items, weldItems, connections, nil, pkg.LaborRate)

	if err := s.storage.UpdateWorksheetTotals(ctx, worksheetID, totals.TotalHours, totals.TotalCost); err != nil {
		return WorksheetTotals{}, fmt.Errorf("%s: save totals: %w", op, err)
	}

	return totals, nil
}

// RecalculatePackage sums the package's worksheet totals, applies the
// package processing efficiency and persists the result.
func (s *EstimateService) RecalculatePackage(ctx context.Context, packageID int64) (hours, cost float64, err error) {
	const op = "service.estimate.RecalculatePackage"

	var (
		pkg        *storage.Package
		worksheets []storage.PackageWorksheet
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		pkg, err = s.storage.GetPackage(gCtx, packageID)
		if err != nil {
			return fmt.Errorf("package: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		worksheets, err = s.storage.GetPackageWorksheets(gCtx, packageID)
		if err != nil {
			return fmt.Errorf("worksheets: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return 0, 0, fmt.Errorf("%s: %w", op, err)
	}

	hours, cost = RollupPackage(worksheets, pkg.ProcessingEfficiency)

	if err := s.storage.UpdatePackageTotals(ctx, packageID, hours, cost); err != nil {
		return 0, 0, fmt.Errorf("%s: save totals: %w", op, err)
	}

	return hours, cost, nil
}

// RecalculateWorkCenterTimes refreshes the stored effective time and cost of
// every work center time entry of a processing item. Effective time is the
// manual entry scaled by the stored dependency factor; the rate falls back
// from the entry override to the work center rate.
func (s *EstimateService) RecalculateWorkCenterTimes(ctx context.Context, processingItemID int64) error {
	const op = "service.estimate.RecalculateWorkCenterTimes"

	entries, err := s.storage.GetWorkCenterTimes(ctx, processingItemID)
	if err != nil {
		return fmt.Errorf("%s: entries: %w", op, err)
	}

	for _, entry := range entries {
		factor := entry.DependencyFactor
		if factor == 0 {
			factor = 1
		}
		entry.EffectiveTimeMinutes = entry.ManualTimeMinutes * factor

		var rate float64
		if entry.OverrideHourlyRate != nil {
			rate = *entry.OverrideHourlyRate
		} else {
			wc, err := s.storage.GetWorkCenter(ctx, entry.WorkCenterID)
			if err != nil {
				return fmt.Errorf("%s: work center %d: %w", op, entry.WorkCenterID, err)
			}
			if wc != nil {
				rate = wc.HourlyRate
			}
		}
		entry.CalculatedCost = entry.EffectiveTimeMinutes / 60 * rate

		if err := s.storage.SaveWorkCenterTime(ctx, entry); err != nil {
			return fmt.Errorf("%s: save entry %d: %w", op, entry.ID, err)
		}
	}

	return nil
}
