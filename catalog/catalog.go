// backend/catalog/catalog.go
package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gewnthar/tripcover/backend/models"
)

//go:embed plans.csv
var defaultPlansCSV []byte

// Catalog is the fixed list of insurance plans. It is built once at process start
// and never changes; every accessor hands out copies.
type Catalog struct {
	plans []models.InsurancePlan
	index map[string]int
	info  models.CatalogInfo
}

// New validates plans and freezes them into a Catalog.
// Ids are trimmed and must be non-empty and unique.
func New(plans []models.InsurancePlan, source string) (*Catalog, error) {
	if len(plans) == 0 {
		return nil, fmt.Errorf("catalog from %s has no plans", source)
	}
	c := &Catalog{
		plans: make([]models.InsurancePlan, 0, len(plans)),
		index: make(map[string]int, len(plans)),
	}
	for i, p := range plans {
		p = p.Clone()
		p.ID = strings.TrimSpace(p.ID)
		p.Provider = strings.TrimSpace(p.Provider)
		if p.ID == "" {
			return nil, fmt.Errorf("catalog from %s: plan #%d has an empty id", source, i+1)
		}
		if _, dup := c.index[p.ID]; dup {
			return nil, fmt.Errorf("catalog from %s: duplicate plan id %q", source, p.ID)
		}
		if p.Price < 0 {
			return nil, fmt.Errorf("catalog from %s: plan %q has a negative price", source, p.ID)
		}
		c.index[p.ID] = len(c.plans)
		c.plans = append(c.plans, p)
	}
	c.info = models.CatalogInfo{Source: source, PlanCount: len(c.plans), LoadedAt: time.Now().UTC()}
	return c, nil
}

// Default returns the built-in three-plan catalog.
func Default() (*Catalog, error) {
	plans, err := ParsePlansCsv(bytes.NewReader(defaultPlansCSV))
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded catalog: %w", err)
	}
	return New(plans, "embedded")
}

// FromCSVFile loads a catalog from a CSV file on disk.
func FromCSVFile(path string) (*Catalog, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file %s: %w", path, err)
	}
	defer file.Close()

	plans, err := ParsePlansCsv(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog file %s: %w", path, err)
	}
	return New(plans, "csv:"+path)
}

// Plans returns every plan in catalog order.
func (c *Catalog) Plans() []models.InsurancePlan {
	out := make([]models.InsurancePlan, len(c.plans))
	for i, p := range c.plans {
		out[i] = p.Clone()
	}
	return out
}

// Lookup returns the plan with the given id.
func (c *Catalog) Lookup(id string) (models.InsurancePlan, bool) {
	i, ok := c.index[id]
	if !ok {
		return models.InsurancePlan{}, false
	}
	return c.plans[i].Clone(), true
}

func (c *Catalog) Contains(id string) bool {
	_, ok := c.index[id]
	return ok
}

func (c *Catalog) Len() int { return len(c.plans) }

func (c *Catalog) Info() models.CatalogInfo { return c.info }
