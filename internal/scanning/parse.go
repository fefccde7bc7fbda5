package scanning

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// expenseTypes are the categories the expense form understands. Scan output
// outside this set falls back to the first category.
var expenseTypes = []string{
	"Transports",
	"Restaurants et bars",
	"Hôtel et logement",
	"Services en ligne",
	"IT et électronique",
	"Equipement et matériel",
	"Fournitures de bureau",
}

// parseBillJSON parses the JSON response from a scanning provider
func parseBillJSON(text string) (*BillData, error) {
	text = strings.TrimSpace(text)

	// Remove markdown code blocks if present
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSpace(text)

	// Find the JSON object boundaries - look for first { and last }
	startIdx := strings.Index(text, "{")
	if startIdx == -1 {
		return nil, fmt.Errorf("no JSON object found in response")
	}

	endIdx := strings.LastIndex(text, "}")
	if endIdx == -1 || endIdx < startIdx {
		return nil, fmt.Errorf("invalid JSON object in response")
	}

	text = text[startIdx : endIdx+1]

	var data BillData
	if err := json.Unmarshal([]byte(text), &data); err != nil {
		return nil, fmt.Errorf("unmarshaling json: %w", err)
	}

	data.Date = normalizeDate(data.Date)

	data.Name = strings.TrimSpace(data.Name)
	if data.Name == "" {
		data.Name = "Dépense"
	}

	data.Type = strings.TrimSpace(data.Type)
	if !validExpenseType(data.Type) {
		data.Type = expenseTypes[0]
	}

	return &data, nil
}

// normalizeDate coerces provider output to YYYY-MM-DD, falling back to
// today when nothing parses.
func normalizeDate(raw string) string {
	if raw == "" {
		return time.Now().Format("2006-01-02")
	}

	if d, err := time.Parse("2006-01-02", raw); err == nil {
		return d.Format("2006-01-02")
	}

	formats := []string{
		"2006/01/02",
		"01/02/2006",
		"02-01-2006",
	}
	for _, format := range formats {
		if d, err := time.Parse(format, raw); err == nil {
			return d.Format("2006-01-02")
		}
	}

	return time.Now().Format("2006-01-02")
}

func validExpenseType(t string) bool {
	for _, known := range expenseTypes {
		if t == known {
			return true
		}
	}
	return false
}
