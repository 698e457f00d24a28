package console

// Package console implements the one CRUD screen pattern every management
// screen follows: a read-through list cache, a client-side search filter, a
// modal-scoped form draft, a confirmation-gated delete, and a transient
// alert banner. All seven screens are instances of Screen with a different
// schema; none of them mutates the cache locally — the authoritative list is
// always re-fetched after a successful mutation.

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/hrsystem/hr-console/internal/api"
	"github.com/hrsystem/hr-console/internal/domain/resource"
)

// Screen misuse errors. Operation failures never surface as returned errors;
// they surface on the banner and, for validation, on FieldErrors.
var (
	ErrBusy            = errors.New("a mutation is already in flight")
	ErrModalClosed     = errors.New("no form modal is open")
	ErrModalOpen       = errors.New("a form modal is already open")
	ErrNoPendingDelete = errors.New("no delete confirmation is pending")
	ErrRecordNotFound  = errors.New("record not found in the cached list")
)

// State is the screen's interaction state.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateModalCreate
	StateModalEdit
	StateConfirmPending
)

// CollectionClient is the slice of the resource client a screen needs.
type CollectionClient[T any] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, draft T) (api.MutationResult[T], error)
	Update(ctx context.Context, id int64, draft T) (api.MutationResult[T], error)
	Remove(ctx context.Context, id int64) (string, error)
}

// Screen is one management screen instance.
type Screen[T any] struct {
	schema resource.Schema[T]
	coll   CollectionClient[T]
	banner *BannerSlot
	logger *slog.Logger

	mu          sync.Mutex
	state       State
	records     []T
	search      string
	draft       T
	editID      int64
	fieldErrors map[string][]string
	confirmID   int64
	busy        bool
	gen         uint64
}

// ScreenOptions groups dependencies for Screen.
type ScreenOptions[T any] struct {
	Schema     resource.Schema[T]
	Collection CollectionClient[T]
	// Banner is optional; a fresh slot with the default TTL is created
	// when absent.
	Banner *BannerSlot
	Logger *slog.Logger
}

// NewScreen constructs a screen in the Idle state with an empty cache.
func NewScreen[T any](opts ScreenOptions[T]) (*Screen[T], error) {
	if opts.Collection == nil {
		return nil, errors.New("collection client is required")
	}
	if opts.Schema.Collection == "" {
		return nil, errors.New("schema is required")
	}
	banner := opts.Banner
	if banner == nil {
		banner = NewBannerSlot(0)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Screen[T]{
		schema: opts.Schema,
		coll:   opts.Collection,
		banner: banner,
		logger: logger,
	}, nil
}

// Schema returns the screen's schema descriptor.
func (s *Screen[T]) Schema() resource.Schema[T] { return s.schema }

// Banner returns the screen's alert banner slot.
func (s *Screen[T]) Banner() *BannerSlot { return s.banner }

// State returns the current interaction state.
func (s *Screen[T]) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Refresh re-fetches the collection into the cache. On failure the previous
// cache is left untouched and the failure surfaces on the banner; a result
// arriving after Reset is discarded silently.
func (s *Screen[T]) Refresh(ctx context.Context) {
	s.mu.Lock()
	gen := s.gen
	if s.state == StateIdle {
		s.state = StateLoading
	}
	s.mu.Unlock()

	records, err := s.coll.List(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return
	}
	if s.state == StateLoading {
		s.state = StateIdle
	}
	if err != nil {
		s.logger.Warn("list failed",
			slog.String("collection", s.schema.Collection),
			slog.Any("error", err),
		)
		s.banner.Show(BannerError, failureMessage(err, "could not load the "+s.schema.Title+" list"))
		return
	}
	s.records = records
}

// SetSearch updates the search term applied by Visible.
func (s *Screen[T]) SetSearch(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.search = term
}

// Visible returns the cached records filtered by the current search term.
func (s *Screen[T]) Visible() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Match(s.records, s.search, s.schema.SearchText)
}

// OpenCreate opens the form modal with the schema's default draft.
func (s *Screen[T]) OpenCreate() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateModalCreate || s.state == StateModalEdit {
		return ErrModalOpen
	}
	s.state = StateModalCreate
	s.draft = s.schema.DefaultDraft()
	s.editID = 0
	s.fieldErrors = nil
	return nil
}

// OpenEdit opens the form modal pre-populated with a copy of the cached
// record's fields.
func (s *Screen[T]) OpenEdit(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateModalCreate || s.state == StateModalEdit {
		return ErrModalOpen
	}
	for _, rec := range s.records {
		if s.schema.ID(rec) == id {
			s.state = StateModalEdit
			s.draft = rec
			s.editID = id
			s.fieldErrors = nil
			return nil
		}
	}
	return fmt.Errorf("%w: id %d", ErrRecordNotFound, id)
}

// Draft returns the pending form draft.
func (s *Screen[T]) Draft() (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateModalCreate && s.state != StateModalEdit {
		var zero T
		return zero, ErrModalClosed
	}
	return s.draft, nil
}

// SetDraft replaces the pending form draft.
func (s *Screen[T]) SetDraft(draft T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateModalCreate && s.state != StateModalEdit {
		return ErrModalClosed
	}
	s.draft = draft
	return nil
}

// CloseModal discards the pending draft.
func (s *Screen[T]) CloseModal() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateModalCreate && s.state != StateModalEdit {
		return
	}
	s.closeModalLocked()
}

// FieldErrors returns the per-field validation messages from the last
// rejected submit, keyed by wire field name.
func (s *Screen[T]) FieldErrors() map[string][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fieldErrors
}

// Submit sends the pending draft as a create or update, chosen by how the
// modal was opened. On success the modal closes, the list is re-fetched
// (exactly once, and only after the mutation's success response), and the
// server message lands on the banner. A validation rejection keeps the modal
// open with its field errors; any other failure keeps the modal open and
// surfaces on the banner. No refresh happens on any failure.
func (s *Screen[T]) Submit(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateModalCreate && s.state != StateModalEdit {
		s.mu.Unlock()
		return ErrModalClosed
	}
	if s.busy {
		s.mu.Unlock()
		return ErrBusy
	}
	s.busy = true
	gen := s.gen
	draft := s.draft
	editing := s.state == StateModalEdit
	editID := s.editID
	s.mu.Unlock()

	var res api.MutationResult[T]
	var err error
	if editing {
		res, err = s.coll.Update(ctx, editID, draft)
	} else {
		res, err = s.coll.Create(ctx, draft)
	}

	s.mu.Lock()
	if s.gen != gen {
		s.mu.Unlock()
		return nil
	}
	s.busy = false
	if err != nil {
		var verr *api.ValidationError
		if errors.As(err, &verr) && len(verr.Fields) > 0 {
			s.fieldErrors = verr.Fields
		} else {
			s.banner.Show(BannerError, failureMessage(err, "could not save the "+s.schema.Title))
		}
		s.mu.Unlock()
		return nil
	}
	s.closeModalLocked()
	s.mu.Unlock()

	s.banner.Show(BannerSuccess, successMessage(res.Message, s.schema.Title+" saved"))
	s.Refresh(ctx)
	return nil
}

// RequestDelete opens the confirmation prompt for id. The destructive call
// is only reachable through ConfirmDelete.
func (s *Screen[T]) RequestDelete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateIdle && s.state != StateLoading {
		return errors.New("cannot request delete while a modal or confirmation is open")
	}
	s.state = StateConfirmPending
	s.confirmID = id
	return nil
}

// PendingDelete returns the id held by the confirmation prompt, or zero.
func (s *Screen[T]) PendingDelete() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.confirmID
}

// CancelDelete discards the pending id with no side effect.
func (s *Screen[T]) CancelDelete() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateConfirmPending {
		return
	}
	s.state = StateIdle
	s.confirmID = 0
}

// ConfirmDelete performs the pending delete. The confirmation prompt closes
// regardless of outcome; success re-fetches the list, failure surfaces on
// the banner.
func (s *Screen[T]) ConfirmDelete(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateConfirmPending {
		s.mu.Unlock()
		return ErrNoPendingDelete
	}
	if s.busy {
		s.mu.Unlock()
		return ErrBusy
	}
	s.busy = true
	gen := s.gen
	id := s.confirmID
	s.mu.Unlock()

	msg, err := s.coll.Remove(ctx, id)

	s.mu.Lock()
	if s.gen != gen {
		s.mu.Unlock()
		return nil
	}
	s.busy = false
	s.state = StateIdle
	s.confirmID = 0
	s.mu.Unlock()

	if err != nil {
		s.banner.Show(BannerError, failureMessage(err, "could not delete the "+s.schema.Title))
		return nil
	}
	s.banner.Show(BannerSuccess, successMessage(msg, s.schema.Title+" deleted"))
	s.Refresh(ctx)
	return nil
}

// Reset returns the screen to its initial state, typically on navigation
// away. Results of requests still in flight are discarded on arrival.
func (s *Screen[T]) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.state = StateIdle
	s.records = nil
	s.search = ""
	var zero T
	s.draft = zero
	s.editID = 0
	s.fieldErrors = nil
	s.confirmID = 0
	s.busy = false
}

func (s *Screen[T]) closeModalLocked() {
	s.state = StateIdle
	var zero T
	s.draft = zero
	s.editID = 0
	s.fieldErrors = nil
}

// failureMessage prefers the server's human-readable message and falls back
// to a generic one for transport-level failures.
func failureMessage(err error, fallback string) string {
	var terr *api.TransportError
	if errors.As(err, &terr) {
		return fallback
	}
	var derr *api.DomainError
	if errors.As(err, &derr) && derr.Message != "" {
		return derr.Message
	}
	var aerr *api.AuthError
	if errors.As(err, &aerr) && aerr.Message != "" {
		return aerr.Message
	}
	var verr *api.ValidationError
	if errors.As(err, &verr) && verr.Message != "" {
		return verr.Message
	}
	return fallback
}

func successMessage(msg, fallback string) string {
	if msg != "" {
		return msg
	}
	return fallback
}
