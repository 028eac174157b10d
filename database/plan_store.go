// backend/database/plan_store.go
package database

import (
	"fmt"

	"github.com/gewnthar/tripcover/backend/models"
	"go.uber.org/zap"
)

// planRow mirrors the insurance_plans table. Perks are stored pipe-joined.
type planRow struct {
	ID            string  `db:"id"`
	Provider      string  `db:"provider"`
	Price         float64 `db:"price"`
	CoverageLimit string  `db:"coverage_limit"`
	Perks         string  `db:"perks"`
}

const selectPlansQuery = `
	SELECT id, provider, price, coverage_limit, perks
	FROM insurance_plans
	ORDER BY sort_order, id
`

// GetInsurancePlans reads the plan catalog. It is called once at startup; the
// application never writes to this table.
func GetInsurancePlans() ([]models.InsurancePlan, error) {
	if DB == nil {
		return nil, fmt.Errorf("database connection is not initialized")
	}

	var rows []planRow
	if err := DB.Select(&rows, selectPlansQuery); err != nil {
		return nil, fmt.Errorf("failed to query insurance_plans: %w", err)
	}

	plans := make([]models.InsurancePlan, 0, len(rows))
	for _, r := range rows {
		plans = append(plans, models.InsurancePlan{
			ID:            r.ID,
			Provider:      r.Provider,
			Price:         r.Price,
			CoverageLimit: r.CoverageLimit,
			Perks:         models.ParsePerks(r.Perks),
		})
	}
	zap.L().Info("Retrieved insurance plans from database", zap.Int("plans", len(plans)))
	return plans, nil
}
