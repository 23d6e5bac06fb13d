package storage

// Calculation methods for a routing operation.
const (
	MethodPerUnit   = "PerUnit"
	MethodPerWeight = "PerWeight"
	MethodFixed     = "Fixed"
)

// Dependency types between two work centers.
const (
	DependencySequential  = "Sequential"
	DependencyParallel    = "Parallel"
	DependencyConditional = "Conditional"
)

type WorkCenter struct {
	ID                   int64   `json:"id"`
	CompanyID            int64   `json:"company_id"`
	Code                 string  `json:"code"`
	Name                 string  `json:"name"`
	HourlyRate           float64 `json:"hourly_rate"`
	EfficiencyPercentage float64 `json:"efficiency_percentage"`
	IsActive             bool    `json:"is_active"`
}

type MachineCenter struct {
	ID           int64   `json:"id"`
	WorkCenterID int64   `json:"work_center_id"`
	Code         string  `json:"code"`
	Name         string  `json:"name"`
	HourlyRate   float64 `json:"hourly_rate"`
}

// RoutingOperation is one step of a routing template. PreviousOperationID
// links the steps into an ordered chain.
type RoutingOperation struct {
	ID                int64  `json:"id"`
	RoutingTemplateID int64  `json:"routing_template_id"`
	WorkCenterID      int64  `json:"work_center_id"`
	MachineCenterID   *int64 `json:"machine_center_id"`

	OperationCode  string `json:"operation_code"`
	OperationName  string `json:"operation_name"`
	SequenceNumber int    `json:"sequence_number"`

	SetupTimeMinutes      float64 `json:"setup_time_minutes"`
	ProcessingTimePerUnit float64 `json:"processing_time_per_unit"`
	ProcessingTimePerKg   float64 `json:"processing_time_per_kg"`
	MovementTimeMinutes   float64 `json:"movement_time_minutes"`
	WaitingTimeMinutes    float64 `json:"waiting_time_minutes"`

	CalculationMethod string `json:"calculation_method"`

	OverrideHourlyRate  *float64 `json:"override_hourly_rate"`
	MaterialCostPerUnit float64  `json:"material_cost_per_unit"`
	ToolingCost         float64  `json:"tooling_cost"`

	// Percentage, 100 = nominal, below 100 = slower.
	EfficiencyFactor float64 `json:"efficiency_factor"`

	PreviousOperationID *int64 `json:"previous_operation_id"`
	CanRunInParallel    bool   `json:"can_run_in_parallel"`
}

// WorkCenterDependency declares an ordering/timing constraint between two
// work centers, optionally scoped to one routing.
type WorkCenterDependency struct {
	ID                    int64  `json:"id"`
	CompanyID             int64  `json:"company_id"`
	DependentWorkCenterID int64  `json:"dependent_work_center_id"`
	RequiredWorkCenterID  int64  `json:"required_work_center_id"`
	RoutingID             *int64 `json:"routing_id"`

	DependencyType string `json:"dependency_type"`

	TimeMultiplier float64 `json:"time_multiplier"`
	QualityFactor  float64 `json:"quality_factor"`

	MinimumGapMinutes float64 `json:"minimum_gap_minutes"`
	// 0 = unbounded.
	MaximumGapMinutes float64 `json:"maximum_gap_minutes"`

	ConditionExpression string `json:"condition_expression"`
	IsMandatory         bool   `json:"is_mandatory"`
	IsActive            bool   `json:"is_active"`
}
