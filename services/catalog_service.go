// backend/services/catalog_service.go
package services

import (
	"fmt"

	"github.com/gewnthar/tripcover/backend/catalog"
	"github.com/gewnthar/tripcover/backend/config"
	"github.com/gewnthar/tripcover/backend/database"
	"go.uber.org/zap"
)

// LoadCatalog builds the fixed plan catalog from the configured source.
// For the mysql source the caller must have run database.InitDB first.
func LoadCatalog(cfg config.CatalogConfig) (*catalog.Catalog, error) {
	var (
		c   *catalog.Catalog
		err error
	)
	switch cfg.Source {
	case config.CatalogSourceCSV:
		c, err = catalog.FromCSVFile(cfg.CSVPath)
	case config.CatalogSourceMySQL:
		plans, qerr := database.GetInsurancePlans()
		if qerr != nil {
			return nil, fmt.Errorf("failed to read catalog from database: %w", qerr)
		}
		c, err = catalog.New(plans, config.CatalogSourceMySQL)
	case config.CatalogSourceEmbedded, "":
		c, err = catalog.Default()
	default:
		return nil, fmt.Errorf("unknown catalog source: %s", cfg.Source)
	}
	if err != nil {
		return nil, err
	}

	info := c.Info()
	zap.L().Info("Plan catalog loaded", zap.String("source", info.Source), zap.Int("plans", info.PlanCount))
	return c, nil
}
