// Package txdispatch turns the wallet session's pending transfer into a
// signed, broadcast transaction. A dispatch attempt consumes the pending slot
// up front, hands a fully resolved order to the wallet provider, and reports
// the outcome. User rejection is a first-class outcome, recognized by a typed
// error rather than by inspecting provider message text; it clears nothing
// beyond the already consumed slot and triggers no refresh. A successful
// broadcast is followed, after a settling delay, by a best-effort resync of
// balances and history.
package txdispatch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/stackboard/walletd/internal/network"
	"github.com/stackboard/walletd/internal/pkg/logger"
	"github.com/stackboard/walletd/internal/pkg/resilience/retry"
	"github.com/stackboard/walletd/internal/pkg/units"
	"github.com/stackboard/walletd/internal/walletsession"
)

var (
	// ErrNoPendingTransfer is returned by Dispatch when the session holds no
	// transfer awaiting confirmation.
	ErrNoPendingTransfer = errors.New("no pending transfer to dispatch")

	// ErrNoSenderAddress is returned by Dispatch when the connected identity
	// has no address on the active network to send from.
	ErrNoSenderAddress = errors.New("no sender address on the active network")

	// ErrUnsupportedAsset is returned when the pending transfer names an
	// asset the dispatcher cannot sign. Only the ledger-native asset is
	// dispatchable.
	ErrUnsupportedAsset = errors.New("asset not supported for dispatch")

	// ErrCancelledByUser is returned when the wallet provider reports that
	// the user rejected the signing request. Cancellation is an expected
	// outcome, not a failure.
	ErrCancelledByUser = errors.New("transfer cancelled by user")

	// ErrDispatchFailed wraps any signing or broadcast error other than user
	// cancellation.
	ErrDispatchFailed = errors.New("transfer dispatch failed")
)

// defaultSettlingDelay is how long a broadcast transaction is given to reach
// the indexer before the post-dispatch resync runs.
const defaultSettlingDelay = 3 * time.Second

// defaultTransferMemo is attached to every dispatched transfer.
const defaultTransferMemo = "Sent from Stackboard Wallet"

// Receipt describes a successfully broadcast transfer.
type Receipt struct {
	TxID      string
	Network   network.Descriptor
	Sender    string
	Recipient string
	Amount    float64 // display units
}

// SessionStore is the slice of the wallet session the dispatcher needs: the
// active selection, the pending slot, and the resync operations.
type SessionStore interface {
	ActiveSelection() (walletsession.Selection, bool)
	TakePending() (walletsession.TransferRequest, bool)
	RefreshBalances(ctx context.Context) error
	RefreshHistory(ctx context.Context) error
}

// Service dispatches the session's pending transfer.
type Service interface {
	// Dispatch consumes the pending transfer, signs and broadcasts it, and
	// schedules the post-dispatch resync.
	//
	// Returns:
	//   - walletsession.ErrNotConnected when no identity is connected.
	//   - ErrNoPendingTransfer when the pending slot is empty.
	//   - ErrUnsupportedAsset when the transfer is not for the native asset.
	//   - ErrCancelledByUser when the user rejected the signing request.
	//   - ErrDispatchFailed wrapping any other signing or broadcast error.
	//
	// The pending slot is consumed on entry in every case except the
	// not-connected and empty-slot ones; a failed or cancelled dispatch is
	// re-offered by the caller, never retried automatically.
	Dispatch(ctx context.Context) (Receipt, error)
}

// service is the internal implementation of the Service interface.
type service struct {
	sessions SessionStore
	signer   TransferSigner
	notifier DispatchNotifier
	retry    retry.Retry

	settlingDelay time.Duration
	memo          string
}

// Compile-time check to ensure *service implements the Service interface.
var _ Service = (*service)(nil)

// config holds construction options for the dispatch service.
type config struct {
	notifier      DispatchNotifier
	retry         retry.Retry
	settlingDelay time.Duration
	memo          string
}

// Option configures the dispatch service before construction.
type Option func(*config)

// WithNotifier replaces the default log-only outcome notifier.
func WithNotifier(n DispatchNotifier) Option {
	return func(c *config) {
		c.notifier = n
	}
}

// WithRetry replaces the retry policy used by the post-dispatch resync.
func WithRetry(r retry.Retry) Option {
	return func(c *config) {
		c.retry = r
	}
}

// WithSettlingDelay overrides how long to wait before the post-dispatch
// resync. Zero disables the wait.
func WithSettlingDelay(d time.Duration) Option {
	return func(c *config) {
		c.settlingDelay = d
	}
}

// WithMemo overrides the memo attached to dispatched transfers.
func WithMemo(memo string) Option {
	return func(c *config) {
		c.memo = memo
	}
}

// New creates a transfer dispatch service on top of the given session store
// and signer.
func New(sessions SessionStore, signer TransferSigner, opts ...Option) *service {
	cfg := config{
		notifier:      logNotifier{},
		retry:         retry.New(),
		settlingDelay: defaultSettlingDelay,
		memo:          defaultTransferMemo,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &service{
		sessions:      sessions,
		signer:        signer,
		notifier:      cfg.notifier,
		retry:         cfg.retry,
		settlingDelay: cfg.settlingDelay,
		memo:          cfg.memo,
	}
}

// Dispatch consumes and broadcasts the pending transfer.
func (s *service) Dispatch(ctx context.Context) (Receipt, error) {
	sel, ok := s.sessions.ActiveSelection()
	if !ok {
		return Receipt{}, walletsession.ErrNotConnected
	}
	if sel.STXAddress == "" {
		return Receipt{}, ErrNoSenderAddress
	}

	// The slot is consumed before any provider interaction so the same
	// request can never be dispatched twice.
	req, ok := s.sessions.TakePending()
	if !ok {
		return Receipt{}, ErrNoPendingTransfer
	}

	ctx = logger.Derive(ctx,
		"network.id", sel.Network.ID,
		"recipient", req.Recipient,
		"asset", req.Asset,
	)

	if req.Asset != walletsession.AssetSTX {
		logger.Warn(ctx, "pending transfer names an undispatchable asset")
		return Receipt{}, fmt.Errorf("%w: %s", ErrUnsupportedAsset, req.Asset)
	}

	order := TransferOrder{
		Network:        sel.Network,
		Sender:         sel.STXAddress,
		Recipient:      req.Recipient,
		AmountMicroSTX: units.STXToMicroSTX(req.Amount),
		Memo:           s.memo,
	}

	txID, err := s.signer.SignAndBroadcast(ctx, order)
	switch {
	case errors.Is(err, ErrCancelledByUser):
		// Expected outcome: nothing was broadcast, so nothing to resync.
		if nerr := s.notifier.NotifyCancelled(ctx, order); nerr != nil {
			logger.Warn(ctx, "cancellation notice failed", "error", nerr)
		}
		return Receipt{}, err
	case err != nil:
		if nerr := s.notifier.NotifyFailed(ctx, order, err); nerr != nil {
			logger.Warn(ctx, "failure notice failed", "error", nerr)
		}
		return Receipt{}, fmt.Errorf("%w: %w", ErrDispatchFailed, err)
	}

	receipt := Receipt{
		TxID:      txID,
		Network:   sel.Network,
		Sender:    sel.STXAddress,
		Recipient: req.Recipient,
		Amount:    req.Amount,
	}

	logger.Info(ctx, "transfer broadcast", "tx.id", txID)
	if nerr := s.notifier.NotifyDispatched(ctx, receipt); nerr != nil {
		logger.Warn(ctx, "dispatch notice failed", "error", nerr)
	}

	s.settleAndResync(ctx, receipt)
	return receipt, nil
}

// settleAndResync waits for the broadcast transaction to reach the indexer
// and then refreshes balances and history. The resync is best effort: a
// broadcast transfer is a success regardless of whether the follow-up fetches
// land, so failures here are logged and never surfaced to the caller.
func (s *service) settleAndResync(ctx context.Context, receipt Receipt) {
	if s.settlingDelay > 0 {
		timer := time.NewTimer(s.settlingDelay)
		defer timer.Stop()

		select {
		case <-timer.C:
		case <-ctx.Done():
			logger.Warn(ctx, "post-dispatch resync abandoned", "tx.id", receipt.TxID, "error", ctx.Err())
			return
		}
	}

	if err := s.retry.Execute(ctx, func() error { return s.sessions.RefreshBalances(ctx) }); err != nil {
		logger.Warn(ctx, "post-dispatch balance resync failed", "tx.id", receipt.TxID, "error", err)
	}
	if err := s.retry.Execute(ctx, func() error { return s.sessions.RefreshHistory(ctx) }); err != nil {
		logger.Warn(ctx, "post-dispatch history resync failed", "tx.id", receipt.TxID, "error", err)
	}
}
