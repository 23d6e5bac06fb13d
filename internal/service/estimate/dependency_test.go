package estimate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"steelestim/internal/storage"
)

func sequentialDep() storage.WorkCenterDependency {
	return storage.WorkCenterDependency{
		ID:                1,
		DependencyType:    storage.DependencySequential,
		TimeMultiplier:    1.5,
		QualityFactor:     0.9,
		MinimumGapMinutes: 10,
		MaximumGapMinutes: 60,
		IsMandatory:       true,
		IsActive:          true,
	}
}

func TestApplyDependency_SequentialScalesTimeAndQuality(t *testing.T) {
	result := ApplyDependency(100, 1.0, sequentialDep(), 30, false)

	assert.Equal(t, 150.0, result.Minutes)
	assert.Equal(t, 0.9, result.Quality)
	assert.Nil(t, result.Violation)
	assert.Empty(t, result.Warnings)
}

func TestApplyDependency_MandatoryGapViolation(t *testing.T) {
	result := ApplyDependency(100, 1.0, sequentialDep(), 5, false)

	// Violation reported, figures left unadjusted.
	require.NotNil(t, result.Violation)
	assert.True(t, result.Violation.Mandatory)
	assert.Equal(t, 100.0, result.Minutes)
	assert.Equal(t, 1.0, result.Quality)
}

func TestApplyDependency_SoftGapViolationIsWarning(t *testing.T) {
	dep := sequentialDep()
	dep.IsMandatory = false

	result := ApplyDependency(100, 1.0, dep, 120, false)

	assert.Nil(t, result.Violation)
	require.Len(t, result.Warnings, 1)
	assert.False(t, result.Warnings[0].Mandatory)
	assert.Equal(t, 100.0, result.Minutes)
}

func TestApplyDependency_ZeroMaxGapIsUnbounded(t *testing.T) {
	dep := sequentialDep()
	dep.MaximumGapMinutes = 0

	result := ApplyDependency(100, 1.0, dep, 100000, false)

	assert.Nil(t, result.Violation)
	assert.Equal(t, 150.0, result.Minutes)
}

func TestApplyDependency_ParallelIgnoresGap(t *testing.T) {
	dep := storage.WorkCenterDependency{
		DependencyType:    storage.DependencyParallel,
		MinimumGapMinutes: 10,
		IsMandatory:       true,
		IsActive:          true,
	}

	// Gap below minimum, but parallel has no gap constraint and the
	// unset multiplier defaults to 1.0.
	result := ApplyDependency(100, 1.0, dep, 0, false)

	assert.Nil(t, result.Violation)
	assert.Equal(t, 100.0, result.Minutes)
	assert.Equal(t, 1.0, result.Quality)
}

func TestApplyDependency_ParallelExplicitMultiplier(t *testing.T) {
	dep := storage.WorkCenterDependency{
		DependencyType: storage.DependencyParallel,
		TimeMultiplier: 1.2,
		IsActive:       true,
	}

	result := ApplyDependency(100, 1.0, dep, 0, false)

	assert.Equal(t, 120.0, result.Minutes)
}

func TestApplyDependency_ConditionalInactiveWhenFalse(t *testing.T) {
	dep := sequentialDep()
	dep.DependencyType = storage.DependencyConditional
	dep.ConditionExpression = `{"material":"stainless"}`

	result := ApplyDependency(100, 1.0, dep, 5, false)

	// Condition false: no multiplier, no gap check.
	assert.Nil(t, result.Violation)
	assert.Equal(t, 100.0, result.Minutes)
	assert.Equal(t, 1.0, result.Quality)
}

func TestApplyDependency_ConditionalActsAsSequentialWhenTrue(t *testing.T) {
	dep := sequentialDep()
	dep.DependencyType = storage.DependencyConditional

	result := ApplyDependency(100, 1.0, dep, 30, true)

	assert.Equal(t, 150.0, result.Minutes)

	violated := ApplyDependency(100, 1.0, dep, 5, true)
	require.NotNil(t, violated.Violation)
	assert.Equal(t, 100.0, violated.Minutes)
}

func TestApplyDependency_InactiveDependency(t *testing.T) {
	dep := sequentialDep()
	dep.IsActive = false

	result := ApplyDependency(100, 1.0, dep, 5, false)

	assert.Nil(t, result.Violation)
	assert.Equal(t, 100.0, result.Minutes)
}
