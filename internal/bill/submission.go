package bill

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/billed/expense-client/internal/identity"
	"github.com/billed/expense-client/internal/routes"
)

// ErrExtensionNotAllowed is returned when a selected receipt file is not a
// jpg, jpeg or png. The view warns the user and clears the file input.
var ErrExtensionNotAllowed = errors.New("file extension not allowed: choose a jpg, jpeg or png file")

// ErrInvalidAmount is returned when the amount form field does not parse as
// an integer. The original interface silently persisted the failed parse;
// here the submission is rejected instead.
var ErrInvalidAmount = errors.New("amount must be a whole number")

// defaultPct is applied when the pct field is absent or unparsable.
const defaultPct = 20

// StagedUpload identifies a receipt file already registered with the store
// but not yet linked to a submitted bill.
type StagedUpload struct {
	FileURL  string
	FileName string
	BillID   string
}

// BillForm carries the new-bill form fields as entered, before parsing.
type BillForm struct {
	Type       string
	Name       string
	Amount     string
	Date       string
	Vat        string
	Pct        string
	Commentary string
}

// SubmissionService drives new bill creation: it stages the receipt file
// when one is selected, then builds and persists the bill record on submit.
type SubmissionService struct {
	store      Store // nil when no store is configured; submit then skips persistence
	users      identity.Provider
	onNavigate func(path string)

	mu     sync.Mutex
	staged *StagedUpload
}

// NewSubmissionService creates a SubmissionService. The store may be nil;
// onNavigate is invoked with the bills route after each submission.
func NewSubmissionService(store Store, users identity.Provider, onNavigate func(path string)) *SubmissionService {
	return &SubmissionService{
		store:      store,
		users:      users,
		onNavigate: onNavigate,
	}
}

// HandleFileSelected validates the selected receipt file and registers it
// with the store. On success the returned StagedUpload is also kept in a
// single guarded slot that Submit reads; a later selection overwrites it.
// Validation failure returns ErrExtensionNotAllowed without touching the
// store. Upload failure is logged and returned; staged state stays unset so
// a subsequent submit proceeds without an attachment reference.
func (s *SubmissionService) HandleFileSelected(ctx context.Context, fileName string, file []byte) (*StagedUpload, error) {
	if !AllowedExtension(fileName) {
		return nil, ErrExtensionNotAllowed
	}

	if s.store == nil {
		return nil, nil
	}

	user, err := s.users.CurrentUser()
	if err != nil {
		return nil, fmt.Errorf("reading current user: %w", err)
	}

	created, err := s.store.Bills().Create(ctx, CreateFilePayload{
		Email:    user.Email,
		FileName: fileName,
		File:     file,
	})
	if err != nil {
		slog.Error("Failed to upload receipt file", "filename", fileName, "error", err)
		return nil, err
	}

	staged := &StagedUpload{
		FileURL:  created.FileURL,
		FileName: fileName,
		BillID:   created.Key,
	}

	s.mu.Lock()
	s.staged = staged
	s.mu.Unlock()

	return staged, nil
}

// Staged returns the currently staged upload, or nil when no file upload
// has completed.
func (s *SubmissionService) Staged() *StagedUpload {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.staged
}

// Submit builds the bill record from the form fields and persists it under
// the staged identifier. Persistence failure is logged but the flow still
// completes: the user is navigated to the bills list exactly once either
// way. Only precondition failures (identity, amount) abort the submission.
func (s *SubmissionService) Submit(ctx context.Context, form BillForm) error {
	user, err := s.users.CurrentUser()
	if err != nil {
		return fmt.Errorf("reading current user: %w", err)
	}

	amount, err := strconv.Atoi(strings.TrimSpace(form.Amount))
	if err != nil {
		return ErrInvalidAmount
	}

	pct, err := strconv.Atoi(strings.TrimSpace(form.Pct))
	if err != nil || pct == 0 {
		pct = defaultPct
	}

	staged := s.Staged()
	b := &Bill{
		Email:      user.Email,
		Type:       form.Type,
		Name:       form.Name,
		Amount:     amount,
		Date:       form.Date,
		Vat:        form.Vat,
		Pct:        pct,
		Commentary: form.Commentary,
		Status:     StatusPending,
	}

	var selector string
	if staged != nil {
		b.FileURL = staged.FileURL
		b.FileName = staged.FileName
		selector = staged.BillID
	}

	if s.store != nil {
		if _, err := s.store.Bills().Update(ctx, UpdatePayload{Data: b, Selector: selector}); err != nil {
			slog.Error("Failed to persist bill", "selector", selector, "error", err)
		}
	}

	s.onNavigate(routes.Bills)
	return nil
}
