package storage

import "time"

type Project struct {
	ID             int64    `json:"id"`
	CompanyID      int64    `json:"company_id"`
	JobNumber      string   `json:"job_number"`
	Name           string   `json:"name"`
	EstimatedHours float64  `json:"estimated_hours"`
	EstimatedCost  float64  `json:"estimated_cost"`
	LaborRate      float64  `json:"labor_rate"`
	ContingencyPct *float64 `json:"contingency_pct"`
}

type Package struct {
	ID            int64  `json:"id"`
	ProjectID     int64  `json:"project_id"`
	PackageNumber string `json:"package_number"`
	Name          string `json:"name"`

	EstimatedHours float64 `json:"estimated_hours"`
	EstimatedCost  float64 `json:"estimated_cost"`

	// Percentage, 100 = nominal; nil = no scaling.
	ProcessingEfficiency *float64 `json:"processing_efficiency"`

	LaborRate float64 `json:"labor_rate"`
}

type PackageWorksheet struct {
	ID        int64  `json:"id"`
	PackageID int64  `json:"package_id"`
	Name      string `json:"name"`
	// Processing, Welding or Routing.
	WorksheetType string `json:"worksheet_type"`

	TotalHours float64 `json:"total_hours"`
	TotalCost  float64 `json:"total_cost"`

	UpdatedAt time.Time `json:"updated_at"`
}
