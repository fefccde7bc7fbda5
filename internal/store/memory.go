package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/billed/expense-client/internal/bill"
)

// MemoryStore is an in-process store used in offline mode and in tests.
// Attachments go through a FileStorage; record keys are generated locally.
type MemoryStore struct {
	mu      sync.Mutex
	bills   map[string]bill.Bill
	storage FileStorage
}

// NewMemoryStore creates an empty MemoryStore. The storage may be nil, in
// which case attachment bytes are discarded after key assignment.
func NewMemoryStore(storage FileStorage) *MemoryStore {
	return &MemoryStore{
		bills:   make(map[string]bill.Bill),
		storage: storage,
	}
}

// Bills returns the bills resource of the store.
func (m *MemoryStore) Bills() bill.BillsResource {
	return &memoryBills{store: m}
}

type memoryBills struct {
	store *MemoryStore
}

// List returns all records ordered by date so offline mode behaves like the
// remote API.
func (b *memoryBills) List(ctx context.Context) ([]bill.Bill, error) {
	b.store.mu.Lock()
	defer b.store.mu.Unlock()

	bills := make([]bill.Bill, 0, len(b.store.bills))
	for _, record := range b.store.bills {
		bills = append(bills, record)
	}
	sort.Slice(bills, func(i, j int) bool { return bills[i].Date < bills[j].Date })
	return bills, nil
}

// Create registers the receipt file under a generated key and opens an
// empty record for it.
func (b *memoryBills) Create(ctx context.Context, payload bill.CreateFilePayload) (*bill.FileCreation, error) {
	key := uuid.NewString()
	fileName := fmt.Sprintf("%s_%s", key, payload.FileName)

	fileURL := "memory://" + fileName
	if b.store.storage != nil {
		saved, err := b.store.storage.Save(fileName, payload.File)
		if err != nil {
			return nil, fmt.Errorf("saving receipt file: %w", err)
		}
		fileURL = saved
	}

	b.store.mu.Lock()
	b.store.bills[key] = bill.Bill{
		ID:       key,
		Email:    payload.Email,
		FileURL:  fileURL,
		FileName: payload.FileName,
		Status:   bill.StatusPending,
	}
	b.store.mu.Unlock()

	return &bill.FileCreation{FileURL: fileURL, Key: key}, nil
}

// Update upserts the full record under the selector. An empty selector
// creates a fresh record, mirroring the remote API's upsert semantics.
func (b *memoryBills) Update(ctx context.Context, payload bill.UpdatePayload) (*bill.Bill, error) {
	if payload.Data == nil {
		return nil, fmt.Errorf("no bill data provided")
	}

	key := payload.Selector
	if key == "" {
		key = uuid.NewString()
	}

	record := *payload.Data
	record.ID = key

	b.store.mu.Lock()
	b.store.bills[key] = record
	b.store.mu.Unlock()

	return &record, nil
}
