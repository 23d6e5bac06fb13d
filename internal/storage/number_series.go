package storage

import (
	"errors"
	"time"
)

var (
	// ErrSeriesNotFound is returned when no series row exists for the key.
	ErrSeriesNotFound = errors.New("number series not found")
	// ErrConflict is returned when an optimistic update lost the race and
	// must be retried against fresh state.
	ErrConflict = errors.New("number series version conflict")
)

// Entity types that carry their own number series per company.
const (
	EntityCustomer        = "Customer"
	EntityProject         = "Project"
	EntityPackage         = "Package"
	EntityWorkCenter      = "WorkCenter"
	EntityMachineCenter   = "MachineCenter"
	EntityRoutingTemplate = "RoutingTemplate"
	EntityEstimation      = "Estimation"
	EntityProcessingItem  = "ProcessingItem"
	EntityWeldingItem     = "WeldingItem"
)

// NumberSeries is the per (company, entity type) counter state plus its
// formatting configuration. Version backs the optimistic update in mysql.
type NumberSeries struct {
	ID          int64  `json:"id"`
	CompanyID   int64  `json:"company_id"`
	CompanyCode string `json:"company_code"`
	EntityType  string `json:"entity_type"`

	Prefix string `json:"prefix"`
	Suffix string `json:"suffix"`

	CurrentNumber  int `json:"current_number"`
	StartingNumber int `json:"starting_number"`
	IncrementBy    int `json:"increment_by"`

	MinDigits int    `json:"min_digits"`
	Format    string `json:"format"`

	IncludeYear        bool `json:"include_year"`
	IncludeMonth       bool `json:"include_month"`
	IncludeCompanyCode bool `json:"include_company_code"`

	ResetYearly    bool `json:"reset_yearly"`
	ResetMonthly   bool `json:"reset_monthly"`
	LastResetYear  *int `json:"last_reset_year"`
	LastResetMonth *int `json:"last_reset_month"`

	IsActive         bool   `json:"is_active"`
	AllowManualEntry bool   `json:"allow_manual_entry"`
	Description      string `json:"description"`

	LastUsed time.Time `json:"last_used"`
	Version  int64     `json:"version"`
}
