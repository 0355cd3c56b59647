package checkout

import (
	"context"
	"errors"
	"sync"

	"github.com/shopbee/backend/internal/cart"
	"github.com/shopbee/backend/internal/models"
)

var (
	ErrEmptyCart          = errors.New("no items in cart")
	ErrSubmissionInFlight = errors.New("a submission is already in flight")
)

type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateSubmitting:
		return "submitting"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Placer persists an assembled order. Implemented by orders.Service.
type Placer interface {
	PlaceOrder(ctx context.Context, userID uint, req OrderRequest) (*models.Order, error)
}

// Submitter runs the checkout attempt for a session: validate, assemble,
// place, and only on success clear the cart. A failed attempt leaves the cart
// and form untouched so the user can resubmit; a second submission while one
// is outstanding is rejected.
type Submitter struct {
	placer Placer

	mu       sync.Mutex
	inflight map[uint]bool
	state    map[uint]State
}

func NewSubmitter(p Placer) *Submitter {
	return &Submitter{
		placer:   p,
		inflight: make(map[uint]bool),
		state:    make(map[uint]State),
	}
}

// State reports the last observed submission state for the session.
func (s *Submitter) State(userID uint) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state[userID]
}

// Reset forgets a session's submission state, e.g. on sign-out.
func (s *Submitter) Reset(userID uint) {
	s.mu.Lock()
	delete(s.inflight, userID)
	delete(s.state, userID)
	s.mu.Unlock()
}

func (s *Submitter) Submit(ctx context.Context, userID uint, form Form, store *cart.Store) (*models.Order, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}

	lines := store.Lines()
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	s.mu.Lock()
	if s.inflight[userID] {
		s.mu.Unlock()
		return nil, ErrSubmissionInFlight
	}
	s.inflight[userID] = true
	s.state[userID] = StateSubmitting
	s.mu.Unlock()

	req := BuildOrder(form, lines)
	order, err := s.placer.PlaceOrder(ctx, userID, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight[userID] = false
	if err != nil {
		s.state[userID] = StateFailed
		return nil, err
	}

	store.Clear()
	s.state[userID] = StateSucceeded
	return order, nil
}
