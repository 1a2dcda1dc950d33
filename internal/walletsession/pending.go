package walletsession

import (
	"context"
	"errors"
	"fmt"

	"github.com/stackboard/walletd/internal/pkg/validator"
)

// ErrIncompleteTransfer is returned when a transfer request is missing one of
// its required fields. Requests are only ever built from fully resolved
// intents, so hitting this indicates a caller bug.
var ErrIncompleteTransfer = errors.New("transfer request is incomplete")

// TransferRequest is the minimal, fully specified data needed to attempt a
// native-asset transfer. All three fields are required.
type TransferRequest struct {
	Asset     Asset   `validate:"required"`
	Amount    float64 `validate:"required,gt=0"` // display units
	Recipient string  `validate:"required"`
}

// validateTransferRequest checks that a request carries all three transfer
// fields.
func validateTransferRequest(req TransferRequest) error {
	if err := validator.Validate(req); err != nil {
		return fmt.Errorf("%w: %w", ErrIncompleteTransfer, err)
	}
	return nil
}

// OfferTransfer places a transfer request into the pending slot, silently
// replacing any previous one. There is no queue: only the most recently
// offered transfer is tracked, since a replaced request was never dispatched.
func (s *service) OfferTransfer(ctx context.Context, req TransferRequest) error {
	if err := validateTransferRequest(req); err != nil {
		return err
	}

	s.mu.Lock()
	if s.identity == nil {
		s.mu.Unlock()
		return ErrNotConnected
	}
	s.pending = &req
	net := s.activeNetworkLocked()
	s.mu.Unlock()

	s.emit(ctx, Event{
		Kind:     EventTransferOffered,
		Network:  net,
		Transfer: &req,
	})
	return nil
}

// PendingTransfer returns the transfer currently awaiting confirmation, if
// any.
func (s *service) PendingTransfer() (TransferRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending == nil {
		return TransferRequest{}, false
	}
	return *s.pending, true
}

// CancelPending clears the pending slot without dispatching.
func (s *service) CancelPending() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending = nil
}

// TakePending atomically removes and returns the pending transfer. The
// dispatcher calls it when entering a dispatch attempt, so the slot is empty
// for the whole attempt regardless of its outcome.
func (s *service) TakePending() (TransferRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending == nil {
		return TransferRequest{}, false
	}
	req := *s.pending
	s.pending = nil
	return req, true
}
