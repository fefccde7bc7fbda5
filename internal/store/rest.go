package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/billed/expense-client/internal/bill"
)

// RestStore talks to the remote expense API over HTTP. Failures carry the
// literal "Erreur <code>" message the views display.
type RestStore struct {
	baseURL string
	client  *http.Client
}

// NewRestStore creates a RestStore for the given API base URL.
func NewRestStore(baseURL string) *RestStore {
	return &RestStore{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Bills returns the bills endpoint of the API.
func (s *RestStore) Bills() bill.BillsResource {
	return &restBills{store: s}
}

type restBills struct {
	store *RestStore
}

// storeError is the opaque rejection reason propagated for display.
func storeError(statusCode int) error {
	return fmt.Errorf("Erreur %d", statusCode)
}

// List fetches all bill records for the current user.
func (r *restBills) List(ctx context.Context) ([]bill.Bill, error) {
	url := fmt.Sprintf("%s/bills", r.store.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := r.store.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("listing bills: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, storeError(resp.StatusCode)
	}

	var bills []bill.Bill
	if err := json.NewDecoder(resp.Body).Decode(&bills); err != nil {
		return nil, fmt.Errorf("decoding bill list: %w", err)
	}
	return bills, nil
}

// Create registers a receipt file with the store as a multipart form
// carrying the file and the owner's email.
func (r *restBills) Create(ctx context.Context, payload bill.CreateFilePayload) (*bill.FileCreation, error) {
	var body bytes.Buffer
	form := multipart.NewWriter(&body)

	part, err := form.CreateFormFile("file", payload.FileName)
	if err != nil {
		return nil, fmt.Errorf("building multipart form: %w", err)
	}
	if _, err := part.Write(payload.File); err != nil {
		return nil, fmt.Errorf("writing file part: %w", err)
	}
	if err := form.WriteField("email", payload.Email); err != nil {
		return nil, fmt.Errorf("writing email field: %w", err)
	}
	if err := form.Close(); err != nil {
		return nil, fmt.Errorf("closing multipart form: %w", err)
	}

	url := fmt.Sprintf("%s/bills", r.store.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := r.store.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("uploading file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, storeError(resp.StatusCode)
	}

	var created bill.FileCreation
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, fmt.Errorf("decoding file creation: %w", err)
	}
	return &created, nil
}

// Update persists the full bill record under the given selector.
func (r *restBills) Update(ctx context.Context, payload bill.UpdatePayload) (*bill.Bill, error) {
	data, err := json.Marshal(payload.Data)
	if err != nil {
		return nil, fmt.Errorf("marshaling bill: %w", err)
	}

	url := fmt.Sprintf("%s/bills/%s", r.store.baseURL, payload.Selector)
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.store.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("updating bill: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, storeError(resp.StatusCode)
	}

	var updated bill.Bill
	if err := json.NewDecoder(resp.Body).Decode(&updated); err != nil {
		return nil, fmt.Errorf("decoding updated bill: %w", err)
	}
	return &updated, nil
}
