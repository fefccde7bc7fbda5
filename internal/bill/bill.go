package bill

import "context"

// Bill statuses as stored by the remote store. New bills are always created
// as pending; transitions to accepted/refused happen server-side.
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusRefused  = "refused"
)

// Bill represents one expense submission as stored by the remote store.
// Date keeps the raw YYYY-MM-DD form; display formatting is computed on read
// and never written back.
type Bill struct {
	ID         string `json:"id,omitempty"`
	Email      string `json:"email"`
	Type       string `json:"type"`
	Name       string `json:"name"`
	Amount     int    `json:"amount"`
	Date       string `json:"date"`
	Vat        string `json:"vat"`
	Pct        int    `json:"pct"`
	Commentary string `json:"commentary"`
	FileURL    string `json:"fileUrl,omitempty"`
	FileName   string `json:"fileName,omitempty"`
	Status     string `json:"status"`
}

// DisplayBill is a Bill prepared for presentation: Date and Status hold the
// human-readable forms. RawDate keeps the stored date so views can order
// bills chronologically by comparing it lexicographically. Never persisted.
type DisplayBill struct {
	ID         string
	Email      string
	Type       string
	Name       string
	Amount     int
	Date       string
	RawDate    string
	Vat        string
	Pct        int
	Commentary string
	FileURL    string
	FileName   string
	Status     string
}

// CreateFilePayload carries a receipt attachment and its owner to the store.
// It is sent as a multipart form by HTTP implementations.
type CreateFilePayload struct {
	Email    string
	FileName string
	File     []byte
}

// FileCreation is the store's answer to a file upload: where the file lives
// and the key of the bill record the store registered for it.
type FileCreation struct {
	FileURL string `json:"fileUrl"`
	Key     string `json:"key"`
}

// UpdatePayload upserts the full bill record identified by Selector.
type UpdatePayload struct {
	Data     *Bill
	Selector string
}

// BillsResource is the bills endpoint of the remote store.
type BillsResource interface {
	// List returns all bill records for the current user.
	List(ctx context.Context) ([]Bill, error)

	// Create registers a receipt file and returns its URL and the key of
	// the bill record it was attached to.
	Create(ctx context.Context, payload CreateFilePayload) (*FileCreation, error)

	// Update persists the full bill record under the given selector.
	Update(ctx context.Context, payload UpdatePayload) (*Bill, error)
}

// Store is the opaque remote persistence collaborator.
type Store interface {
	Bills() BillsResource
}
