// backend/catalog/csv_parser.go
package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gewnthar/tripcover/backend/models"
	"github.com/jszwec/csvutil"
	"go.uber.org/zap"
)

// ParsePlansCsv takes an io.Reader containing the plan catalog CSV
// and returns a slice of InsurancePlan structs.
// Headers must match the csv tags on models.InsurancePlan once surrounding spaces are
// trimmed; extra columns are ignored.
func ParsePlansCsv(reader io.Reader) ([]models.InsurancePlan, error) {
	var plans []models.InsurancePlan

	csvReader := csv.NewReader(reader)
	header, err := csvReader.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("plan CSV is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read plan CSV header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	if missing := missingHeaders(header); len(missing) > 0 {
		return nil, fmt.Errorf("plan CSV is missing columns: %s", strings.Join(missing, ", "))
	}

	decoder, err := csvutil.NewDecoder(csvReader, header...)
	if err != nil {
		return nil, fmt.Errorf("failed to create CSV decoder for plans: %w", err)
	}

	if err := decoder.Decode(&plans); err != nil {
		return nil, fmt.Errorf("failed to decode plan CSV data: %w", err)
	}

	zap.L().Debug("Parsed plan catalog CSV", zap.Int("plans", len(plans)))
	return plans, nil
}

func missingHeaders(header []string) []string {
	seen := make(map[string]bool, len(header))
	for _, h := range header {
		seen[h] = true
	}
	var missing []string
	for _, want := range []string{"id", "provider", "price", "coverage_limit", "perks"} {
		if !seen[want] {
			missing = append(missing, want)
		}
	}
	return missing
}
