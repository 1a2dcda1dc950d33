package walletsession

import (
	"context"

	"github.com/stackboard/walletd/internal/network"
	"github.com/stackboard/walletd/internal/pkg/logger"
)

// selection ties an in-flight fetch to the session state it was issued for.
// The generation counter is bumped on every connect, disconnect, and network
// switch; results are applied only while their generation still matches.
type selection struct {
	generation uint64
	network    network.Descriptor
	stxAddress string
	btcAddress string
}

// Selection is the externally visible part of the current selection: the
// addresses the connected identity resolves to on the active network.
type Selection struct {
	Network    network.Descriptor
	STXAddress string
	BTCAddress string
}

// Session is a read-only snapshot of the wallet session state.
type Session struct {
	Connected         bool
	SessionID         string
	Network           network.Descriptor
	STXAddress        string
	BTCAddress        string
	Balances          []Balance
	History           []TransactionRecord
	HistoryLoading    bool
	HistoryIncomplete bool
	Pending           *TransferRequest
}

// activeNetworkLocked returns the active network descriptor. Callers must hold
// s.mu; the registry has its own lock, but reading it here keeps the session
// and the descriptor it reports consistent.
func (s *service) activeNetworkLocked() network.Descriptor {
	return s.registry.Active()
}

// selectionLocked snapshots the current selection. Callers must hold s.mu.
func (s *service) selectionLocked() selection {
	return selection{
		generation: s.generation,
		network:    s.activeNetworkLocked(),
		stxAddress: s.stxAddress,
		btcAddress: s.btcAddress,
	}
}

// resetLocked wipes all network-scoped session state and bumps the generation
// so in-flight results for the previous selection are discarded on arrival.
// Callers must hold s.mu.
func (s *service) resetLocked() {
	s.generation++
	s.identity = nil
	s.stxAddress = ""
	s.btcAddress = ""
	s.balances = make(map[Asset]Balance)
	s.history = nil
	s.historyLoading = false
	s.historyIncomplete = false
	s.pending = nil
}

// Connect installs an authenticated identity and synchronizes the session
// with the active network: address resolution, then both balances, then the
// full history, in that order. Fetch failures are logged and the session
// degrades to last-known values; they never fail the connect itself.
func (s *service) Connect(ctx context.Context, identity Identity) error {
	s.mu.Lock()
	s.resetLocked()
	s.identity = &identity
	s.stxAddress, s.btcAddress = ResolveAddresses(identity.Profile, s.activeNetworkLocked())
	sel := s.selectionLocked()
	s.mu.Unlock()

	ctx = logger.Derive(ctx, "session.id", identity.SessionID, "network.id", sel.network.ID)
	logger.Info(ctx, "wallet connected",
		"stx.address", sel.stxAddress,
		"btc.address", sel.btcAddress,
	)

	s.emit(ctx, Event{Kind: EventConnected, Network: sel.network})

	if err := s.refreshBalances(ctx, sel); err != nil {
		logger.Warn(ctx, "balance sync degraded after connect", "error", err)
	}
	if err := s.refreshHistory(ctx, sel); err != nil {
		logger.Warn(ctx, "history sync incomplete after connect", "error", err)
	}

	return nil
}

// Disconnect resets the session to its empty state.
func (s *service) Disconnect(ctx context.Context) {
	s.mu.Lock()
	net := s.activeNetworkLocked()
	s.resetLocked()
	s.mu.Unlock()

	logger.Info(ctx, "wallet disconnected", "network.id", net.ID)
	s.emit(ctx, Event{Kind: EventDisconnected, Network: net})
}

// SwitchNetwork changes the active network and invalidates the whole session.
// Everything the session holds is scoped to a network, so balances and history
// must never survive a switch; the identity is cleared as well and the user
// reconnects on the new network.
func (s *service) SwitchNetwork(ctx context.Context, id network.ID) error {
	d, err := s.registry.SetActive(ctx, id)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.resetLocked()
	s.mu.Unlock()

	logger.Info(ctx, "network switched, session invalidated", "network.id", d.ID)
	s.emit(ctx, Event{Kind: EventNetworkSwitched, Network: d})
	return nil
}

// RefreshBalances re-fetches both asset balances for the current selection.
func (s *service) RefreshBalances(ctx context.Context) error {
	s.mu.Lock()
	if s.identity == nil {
		s.mu.Unlock()
		return ErrNotConnected
	}
	sel := s.selectionLocked()
	s.mu.Unlock()

	return s.refreshBalances(ctx, sel)
}

// RefreshHistory re-runs the full history aggregation for the current
// selection.
func (s *service) RefreshHistory(ctx context.Context) error {
	s.mu.Lock()
	if s.identity == nil {
		s.mu.Unlock()
		return ErrNotConnected
	}
	sel := s.selectionLocked()
	s.mu.Unlock()

	return s.refreshHistory(ctx, sel)
}

// ActiveSelection returns the resolved addresses and network of the connected
// identity.
func (s *service) ActiveSelection() (Selection, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.identity == nil {
		return Selection{}, false
	}
	return Selection{
		Network:    s.activeNetworkLocked(),
		STXAddress: s.stxAddress,
		BTCAddress: s.btcAddress,
	}, true
}

// Snapshot returns a read-only copy of the session state. Slices are copied;
// mutating the snapshot does not affect the session.
func (s *service) Snapshot() Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Session{
		Connected:         s.identity != nil,
		Network:           s.activeNetworkLocked(),
		STXAddress:        s.stxAddress,
		BTCAddress:        s.btcAddress,
		HistoryLoading:    s.historyLoading,
		HistoryIncomplete: s.historyIncomplete,
	}
	if s.identity != nil {
		snap.SessionID = s.identity.SessionID
	}

	for _, asset := range []Asset{AssetSTX, AssetBTC} {
		if b, ok := s.balances[asset]; ok {
			snap.Balances = append(snap.Balances, b)
		}
	}

	if len(s.history) > 0 {
		snap.History = make([]TransactionRecord, len(s.history))
		copy(snap.History, s.history)
	}

	if s.pending != nil {
		pending := *s.pending
		snap.Pending = &pending
	}

	return snap
}
