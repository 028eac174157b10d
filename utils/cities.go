// backend/utils/cities.go
package utils

import "strings"

// KnownCities is the fixed city list offered as suggestions on the trip screen.
// Travelers may still type any other city.
var KnownCities = []string{
	"Bogotá",
	"Medellín",
	"Cali",
	"Cartagena",
	"Barranquilla",
	"Lima",
	"Quito",
	"Ciudad de México",
	"Buenos Aires",
	"Santiago",
	"Miami",
	"New York",
	"Madrid",
	"Paris",
}

// NormalizeCity trims the name and collapses inner whitespace.
// A case-insensitive match against KnownCities returns the canonical spelling.
func NormalizeCity(name string) string {
	cleaned := strings.Join(strings.Fields(name), " ")
	for _, city := range KnownCities {
		if strings.EqualFold(city, cleaned) {
			return city
		}
	}
	return cleaned
}
