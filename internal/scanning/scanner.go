package scanning

// BillData contains expense information extracted from a receipt image,
// used to pre-fill the new-bill form.
type BillData struct {
	Type   string  `json:"type"`
	Name   string  `json:"name"`
	Date   string  `json:"date"` // ISO 8601 format
	Amount float64 `json:"amount"`
	Vat    string  `json:"vat"`
}

// Scanner defines the interface for receipt scanning operations.
type Scanner interface {
	// ScanBill analyzes a receipt image and extracts expense fields
	ScanBill(imageData []byte, contentType string) (*BillData, error)
	// Close closes the scanner and releases resources
	Close() error
}
