package estimate

import (
	"fmt"

	"steelestim/internal/storage"
)

// GapViolation reports a scheduling gap outside the declared bounds.
type GapViolation struct {
	DependencyID int64   `json:"dependency_id"`
	GapMinutes   float64 `json:"gap_minutes"`
	MinMinutes   float64 `json:"min_minutes"`
	MaxMinutes   float64 `json:"max_minutes"`
	Mandatory    bool    `json:"mandatory"`
	Reason       string  `json:"reason"`
}

func (v GapViolation) Error() string {
	return fmt.Sprintf("dependency %d: %s (gap=%.2f min=%.2f max=%.2f)",
		v.DependencyID, v.Reason, v.GapMinutes, v.MinMinutes, v.MaxMinutes)
}

// DependencyResult carries the adjusted figures of one operation after a
// work-center dependency is applied. On a gap violation the figures stay
// unadjusted: a mandatory violation is returned in Violation for the caller
// to reject, a non-mandatory one lands in Warnings and the caller proceeds.
type DependencyResult struct {
	Minutes   float64        `json:"minutes"`
	Quality   float64        `json:"quality"`
	Violation *GapViolation  `json:"violation,omitempty"`
	Warnings  []GapViolation `json:"warnings,omitempty"`
}

// ApplyDependency adjusts an operation's minutes and quality contribution
// for one declared dependency. gapMinutes is the scheduled gap between the
// end of the required operation and the start of the dependent one.
// conditionMet is the caller-evaluated condition for Conditional
// dependencies; a false condition deactivates the dependency entirely.
func ApplyDependency(minutes, quality float64, dep storage.WorkCenterDependency, gapMinutes float64, conditionMet bool) DependencyResult {
	unchanged := DependencyResult{Minutes: minutes, Quality: quality}

	if !dep.IsActive {
		return unchanged
	}

	switch dep.DependencyType {
	case storage.DependencyParallel:
		// No gap constraint; the multiplier defaults to 1.0 and only an
		// explicit override changes the time.
		return DependencyResult{
			Minutes: minutes * multiplierOr(dep.TimeMultiplier, 1),
			Quality: quality * multiplierOr(dep.QualityFactor, 1),
		}
	case storage.DependencyConditional:
		if !conditionMet {
			return unchanged
		}
	case storage.DependencySequential:
	default:
		return unchanged
	}

	if v := checkGap(dep, gapMinutes); v != nil {
		if v.Mandatory {
			unchanged.Violation = v
		} else {
			unchanged.Warnings = append(unchanged.Warnings, *v)
		}
		return unchanged
	}

	return DependencyResult{
		Minutes: minutes * multiplierOr(dep.TimeMultiplier, 1),
		Quality: quality * multiplierOr(dep.QualityFactor, 1),
	}
}

func checkGap(dep storage.WorkCenterDependency, gapMinutes float64) *GapViolation {
	v := &GapViolation{
		DependencyID: dep.ID,
		GapMinutes:   gapMinutes,
		MinMinutes:   dep.MinimumGapMinutes,
		MaxMinutes:   dep.MaximumGapMinutes,
		Mandatory:    dep.IsMandatory,
	}

	if gapMinutes < dep.MinimumGapMinutes {
		v.Reason = "gap below minimum"
		return v
	}
	if dep.MaximumGapMinutes > 0 && gapMinutes > dep.MaximumGapMinutes {
		v.Reason = "gap above maximum"
		return v
	}
	return nil
}

func multiplierOr(m, def float64) float64 {
	if m == 0 {
		return def
	}
	return m
}
