package bill

import (
	"context"
	"fmt"
	"log/slog"
)

// CollectionService fetches the bill list for the current user and prepares
// it for display.
type CollectionService struct {
	store Store
}

// NewCollectionService creates a CollectionService backed by the given store.
func NewCollectionService(store Store) *CollectionService {
	return &CollectionService{store: store}
}

// GetBills retrieves the raw bill collection and maps each record to its
// display form. A record whose date cannot be formatted keeps its raw date
// instead of failing the whole fetch. An unmapped status fails the fetch:
// it means the record is corrupt in a way the interface cannot present.
// Store errors propagate unchanged; retry policy belongs to the caller.
// The result is not sorted here; views order by RawDate.
func (s *CollectionService) GetBills(ctx context.Context) ([]DisplayBill, error) {
	raw, err := s.store.Bills().List(ctx)
	if err != nil {
		return nil, err
	}

	bills := make([]DisplayBill, 0, len(raw))
	for _, b := range raw {
		status, err := FormatStatus(b.Status)
		if err != nil {
			return nil, fmt.Errorf("bill %s: %w", b.ID, err)
		}

		date, err := FormatDate(b.Date)
		if err != nil {
			slog.Warn("Failed to format bill date, keeping raw value", "id", b.ID, "date", b.Date, "error", err)
			date = b.Date
		}

		bills = append(bills, DisplayBill{
			ID:         b.ID,
			Email:      b.Email,
			Type:       b.Type,
			Name:       b.Name,
			Amount:     b.Amount,
			Date:       date,
			RawDate:    b.Date,
			Vat:        b.Vat,
			Pct:        b.Pct,
			Commentary: b.Commentary,
			FileURL:    b.FileURL,
			FileName:   b.FileName,
			Status:     status,
		})
	}

	return bills, nil
}
