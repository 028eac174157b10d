// backend/models/api_models.go
package models

// HealthResponse is returned by GET /api/health.
type HealthResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Catalog CatalogInfo `json:"catalog"`
}

// PlanResponse is one plan as served by GET /api/plans.
type PlanResponse struct {
	InsurancePlan
	PriceLabel string `json:"price_label"`
}

// NewPlanResponse wraps a plan with its display price.
func NewPlanResponse(p InsurancePlan) PlanResponse {
	return PlanResponse{InsurancePlan: p.Clone(), PriceLabel: p.PriceLabel()}
}
