// backend/models/meta.go
package models

import "time"

// CatalogInfo describes where the plan catalog was loaded from at process start.
type CatalogInfo struct {
	Source    string    `json:"source"` // "embedded", "csv:<path>" or "mysql"
	PlanCount int       `json:"plan_count"`
	LoadedAt  time.Time `json:"loaded_at"`
}
