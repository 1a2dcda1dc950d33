// Package walletsession owns the wallet's client-side state: the connected
// identity, its per-network addresses, last known balances, the fully
// paginated transaction history, and the single transfer awaiting user
// confirmation. All mutation goes through the service's named operations;
// network switches and disconnects invalidate the whole session, and
// generation tags make sure results from a superseded selection are discarded
// instead of applied.
package walletsession

import (
	"context"
	"errors"
	"sync"

	"github.com/stackboard/walletd/internal/network"
)

// ErrServiceAlreadyStarted is returned if Start is called more than once.
//
// The service must be started only once per lifecycle.
var ErrServiceAlreadyStarted = errors.New("service already started")

// ErrNotConnected is returned by operations that require an authenticated
// identity when none is connected.
var ErrNotConnected = errors.New("no wallet connected")

// defaultMaxHistoryPages bounds history pagination regardless of what the
// indexer reports.
const defaultMaxHistoryPages = 100

// eventChannelBufferSize is the capacity of the session event channel.
const eventChannelBufferSize = 10

// Service is the single writer of wallet session state.
type Service interface {
	// Start opens the session event stream. Returns ErrServiceAlreadyStarted
	// if called more than once. Call Close to release it.
	Start(ctx context.Context) (<-chan Event, error)

	// Close shuts the event stream down. It is safe to call Close even if the
	// service was never started.
	Close()

	// Connect installs an authenticated identity, resolves its addresses for
	// the active network, and synchronizes balances and history. Fetch
	// failures degrade to last-known values and do not fail the connect.
	Connect(ctx context.Context, identity Identity) error

	// Disconnect atomically clears the identity, addresses, balances,
	// history, and the pending transfer. In-flight fetch results issued
	// before the disconnect are discarded when they complete.
	Disconnect(ctx context.Context)

	// SwitchNetwork changes the active network. Addresses, balances, and
	// history are network-scoped, so the session is fully reset, identity
	// included; the user must reconnect on the new network.
	SwitchNetwork(ctx context.Context, id network.ID) error

	// RefreshBalances re-fetches both asset balances for the current
	// selection. Returns ErrNotConnected when no identity is connected; fetch
	// failures keep previous values and are returned joined.
	RefreshBalances(ctx context.Context) error

	// RefreshHistory re-runs the full history aggregation for the current
	// selection. Returns ErrNotConnected when no identity is connected.
	RefreshHistory(ctx context.Context) error

	// ActiveSelection returns the resolved addresses and network of the
	// connected identity. ok is false when no identity is connected.
	ActiveSelection() (sel Selection, ok bool)

	// Snapshot returns a read-only copy of the current session state.
	Snapshot() Session

	// OfferTransfer places a transfer request into the pending slot,
	// replacing any previous one. Returns ErrIncompleteTransfer when a field
	// is missing and ErrNotConnected when no identity is connected.
	OfferTransfer(ctx context.Context, req TransferRequest) error

	// PendingTransfer returns the transfer awaiting confirmation, if any.
	PendingTransfer() (TransferRequest, bool)

	// CancelPending clears the pending slot without dispatching.
	CancelPending()

	// TakePending atomically removes and returns the pending transfer.
	TakePending() (TransferRequest, bool)
}

// closeFunc defines a cleanup routine releasing the event stream.
type closeFunc func()

// service is the internal implementation of the Service interface.
type service struct {
	mu        sync.Mutex // protects lifecycle and session state
	isStarted bool
	closeFunc closeFunc
	events    chan Event

	registry     network.Registry
	stxBalances  BalanceFetcher
	btcBalances  ChainBalanceFetcher
	transactions TransactionLister

	maxHistoryPages int

	// session state, guarded by mu
	generation        uint64
	identity          *Identity
	stxAddress        string
	btcAddress        string
	balances          map[Asset]Balance
	history           []TransactionRecord
	historyLoading    bool
	historyIncomplete bool
	pending           *TransferRequest
}

// Compile-time check to ensure *service implements the Service interface.
var _ Service = (*service)(nil)

// Start opens the session event stream.
func (s *service) Start(ctx context.Context) (<-chan Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isStarted {
		return nil, ErrServiceAlreadyStarted
	}

	events := make(chan Event, eventChannelBufferSize)
	s.events = events

	s.closeFunc = func() {
		ch := s.events
		s.events = nil
		close(ch)
	}
	s.isStarted = true
	return events, nil
}

// Close shuts the event stream down.
func (s *service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closeFunc != nil {
		s.closeFunc()
	}
	s.closeFunc = nil
	s.isStarted = false
}

// config holds construction options for the session service.
type config struct {
	maxHistoryPages int
}

// Option configures the session service before construction.
type Option func(*config)

// WithMaxHistoryPages overrides the defensive bound on history pagination.
func WithMaxHistoryPages(n int) Option {
	return func(c *config) {
		c.maxHistoryPages = n
	}
}

// New creates a wallet session service on top of the given network registry,
// balance fetchers, and transaction lister.
func New(registry network.Registry, stx BalanceFetcher, btc ChainBalanceFetcher, txs TransactionLister, opts ...Option) *service {
	cfg := config{
		maxHistoryPages: defaultMaxHistoryPages,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &service{
		registry:        registry,
		stxBalances:     stx,
		btcBalances:     btc,
		transactions:    txs,
		maxHistoryPages: cfg.maxHistoryPages,
		balances:        make(map[Asset]Balance),
	}
}
