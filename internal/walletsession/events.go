package walletsession

import (
	"context"

	"github.com/stackboard/walletd/internal/network"
	"github.com/stackboard/walletd/internal/pkg/logger"
)

// EventKind labels a session event.
type EventKind string

const (
	// EventConnected is emitted after an identity connects and its addresses
	// are resolved for the active network.
	EventConnected EventKind = "connected"

	// EventDisconnected is emitted after the session is reset by an explicit
	// disconnect.
	EventDisconnected EventKind = "disconnected"

	// EventNetworkSwitched is emitted after the active network changes and
	// the session is invalidated.
	EventNetworkSwitched EventKind = "network_switched"

	// EventBalanceUpdated is emitted whenever a balance fetch result is
	// applied to the session.
	EventBalanceUpdated EventKind = "balance_updated"

	// EventHistorySynced is emitted when a history aggregation finishes,
	// successfully or with partial results.
	EventHistorySynced EventKind = "history_synced"

	// EventTransferOffered is emitted when a transfer request enters the
	// pending slot.
	EventTransferOffered EventKind = "transfer_offered"
)

// Event describes a change to the wallet session. Fields beyond Kind and
// Network are populated depending on the kind.
type Event struct {
	Kind    EventKind
	Network network.Descriptor

	Asset   Asset   // EventBalanceUpdated
	Balance float64 // EventBalanceUpdated

	HistoryCount      int  // EventHistorySynced
	HistoryIncomplete bool // EventHistorySynced

	Transfer *TransferRequest // EventTransferOffered
}

// emit publishes an event to the session's event channel. Events are advisory:
// when the service has not been started, or the subscriber is not keeping up,
// the event is dropped rather than blocking a session operation. The send
// happens under the session lock so it can never race with Close closing the
// channel.
func (s *service) emit(ctx context.Context, ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.events == nil {
		return
	}

	select {
	case s.events <- ev:
	default:
		logger.Debug(ctx, "session event dropped, subscriber not keeping up", "event.kind", ev.Kind)
	}
}
