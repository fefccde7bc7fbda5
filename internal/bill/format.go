package bill

import (
	"fmt"
	"time"
)

// frMonths are the capitalized 3-letter French month abbreviations the
// original interface shows ("4 Avr. 04"). Juin and juillet collapse to the
// same abbreviation, matching the fr locale short form truncated to three
// characters.
var frMonths = [12]string{
	"Jan", "Fév", "Mar", "Avr", "Mai", "Jui",
	"Jui", "Aoû", "Sep", "Oct", "Nov", "Déc",
}

// FormatDate converts a stored YYYY-MM-DD date into its French display form.
func FormatDate(raw string) (string, error) {
	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return "", fmt.Errorf("parsing date %q: %w", raw, err)
	}
	return fmt.Sprintf("%d %s. %02d", date.Day(), frMonths[date.Month()-1], date.Year()%100), nil
}

// FormatStatus maps a stored status to its display label. Anything outside
// the enumerated set is an error the caller must handle, never a default.
func FormatStatus(raw string) (string, error) {
	switch raw {
	case StatusPending:
		return "En attente", nil
	case StatusAccepted:
		return "Accepté", nil
	case StatusRefused:
		return "Refused", nil
	}
	return "", fmt.Errorf("unknown bill status %q", raw)
}
