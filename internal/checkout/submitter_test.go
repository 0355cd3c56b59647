package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/shopbee/backend/internal/cart"
	"github.com/shopbee/backend/internal/models"
)

type fakePlacer struct {
	err     error
	placed  []OrderRequest
	release chan struct{}
}

func (f *fakePlacer) PlaceOrder(ctx context.Context, userID uint, req OrderRequest) (*models.Order, error) {
	if f.release != nil {
		<-f.release
	}
	f.placed = append(f.placed, req)
	if f.err != nil {
		return nil, f.err
	}
	return &models.Order{ID: 1, UserID: userID, Status: req.Status}, nil
}

func twoLineStore() *cart.Store {
	s := cart.NewStore()
	s.Add(cart.Line{ProductID: 1, UnitPrice: 10, QuantitySelected: 2})
	s.Add(cart.Line{ProductID: 2, UnitPrice: 5, QuantitySelected: 1})
	return s
}

func validForm() Form {
	return Form{ShippingAddress: "12 Main St", PaymentMethod: "visa"}
}

func TestSubmitSuccessClearsCart(t *testing.T) {
	placer := &fakePlacer{}
	sub := NewSubmitter(placer)
	store := twoLineStore()

	order, err := sub.Submit(context.Background(), 1, validForm(), store)
	require.NoError(t, err)
	require.Equal(t, uint(1), order.ID)
	require.Equal(t, 0, store.Len())
	require.Equal(t, StateSucceeded, sub.State(1))
}

func TestSubmitFailureLeavesCartIntact(t *testing.T) {
	placer := &fakePlacer{err: errors.New("backend down")}
	sub := NewSubmitter(placer)
	store := twoLineStore()

	_, err := sub.Submit(context.Background(), 1, validForm(), store)
	require.Error(t, err)
	require.Equal(t, 2, store.Len())
	require.Equal(t, StateFailed, sub.State(1))
}

func TestResubmissionAfterFailureSucceeds(t *testing.T) {
	placer := &fakePlacer{err: errors.New("backend down")}
	sub := NewSubmitter(placer)
	store := twoLineStore()

	_, err := sub.Submit(context.Background(), 1, validForm(), store)
	require.Error(t, err)

	placer.err = nil
	_, err = sub.Submit(context.Background(), 1, validForm(), store)
	require.NoError(t, err)
	require.Equal(t, 0, store.Len())
}

func TestSubmitEmptyCart(t *testing.T) {
	sub := NewSubmitter(&fakePlacer{})
	_, err := sub.Submit(context.Background(), 1, validForm(), cart.NewStore())
	require.ErrorIs(t, err, ErrEmptyCart)
	require.Equal(t, StateIdle, sub.State(1))
}

func TestSubmitInvalidFormDoesNotPlace(t *testing.T) {
	placer := &fakePlacer{}
	sub := NewSubmitter(placer)
	store := twoLineStore()

	_, err := sub.Submit(context.Background(), 1, Form{}, store)
	require.ErrorIs(t, err, ErrMissingAddress)
	require.Empty(t, placer.placed)
	require.Equal(t, 2, store.Len())
}

func TestSubmitRejectsConcurrentAttempt(t *testing.T) {
	placer := &fakePlacer{release: make(chan struct{})}
	sub := NewSubmitter(placer)
	store := twoLineStore()

	done := make(chan error, 1)
	go func() {
		_, err := sub.Submit(context.Background(), 1, validForm(), store)
		done <- err
	}()

	require.Eventually(t, func() bool {
		return sub.State(1) == StateSubmitting
	}, time.Second, time.Millisecond)

	_, err := sub.Submit(context.Background(), 1, validForm(), store)
	require.ErrorIs(t, err, ErrSubmissionInFlight)

	close(placer.release)
	require.NoError(t, <-done)
	require.Equal(t, 0, store.Len())
}

func TestResetForgetsSessionState(t *testing.T) {
	placer := &fakePlacer{err: errors.New("backend down")}
	sub := NewSubmitter(placer)

	_, err := sub.Submit(context.Background(), 1, validForm(), twoLineStore())
	require.Error(t, err)
	require.Equal(t, StateFailed, sub.State(1))

	sub.Reset(1)
	require.Equal(t, StateIdle, sub.State(1))
}

func TestStateStrings(t *testing.T) {
	require.Equal(t, "idle", StateIdle.String())
	require.Equal(t, "submitting", StateSubmitting.String())
	require.Equal(t, "succeeded", StateSucceeded.String())
	require.Equal(t, "failed", StateFailed.String())
}
