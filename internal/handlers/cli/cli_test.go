package cli

import (
	"context"
	"sync"

	"github.com/stackboard/walletd/internal/intent"
	"github.com/stackboard/walletd/internal/network"
	"github.com/stackboard/walletd/internal/pkg/logger"
	"github.com/stackboard/walletd/internal/txdispatch"
	"github.com/stackboard/walletd/internal/walletsession"
)

func init() {
	// Initialize logger for tests to prevent nil pointer dereference
	_ = logger.Init("error")
}

func testIdentity() walletsession.Identity {
	return walletsession.Identity{
		SessionID: "cli-test",
		Profile: walletsession.Profile{
			STX: walletsession.AddressSet{Testnet: "ST2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKPVKG2CE"},
		},
	}
}

// sessionServiceFake is a hand-rolled walletsession.Service double recording
// the operations the CLI invokes.
type sessionServiceFake struct {
	mu sync.Mutex

	connectErr    error
	connected     []walletsession.Identity
	disconnects   int
	switchedTo    []network.ID
	switchErr     error
	offered       []walletsession.TransferRequest
	offerErr      error
	snapshot      walletsession.Session
	startedEvents chan walletsession.Event
}

var _ walletsession.Service = (*sessionServiceFake)(nil)

func (f *sessionServiceFake) Start(context.Context) (<-chan walletsession.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.startedEvents = make(chan walletsession.Event, 1)
	return f.startedEvents, nil
}

func (f *sessionServiceFake) Close() {}

func (f *sessionServiceFake) Connect(_ context.Context, identity walletsession.Identity) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.connectErr != nil {
		return f.connectErr
	}
	f.connected = append(f.connected, identity)
	return nil
}

func (f *sessionServiceFake) Disconnect(context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.disconnects++
}

func (f *sessionServiceFake) SwitchNetwork(_ context.Context, id network.ID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.switchErr != nil {
		return f.switchErr
	}
	f.switchedTo = append(f.switchedTo, id)
	return nil
}

func (f *sessionServiceFake) RefreshBalances(context.Context) error { return nil }
func (f *sessionServiceFake) RefreshHistory(context.Context) error  { return nil }

func (f *sessionServiceFake) ActiveSelection() (walletsession.Selection, bool) {
	return walletsession.Selection{}, false
}

func (f *sessionServiceFake) Snapshot() walletsession.Session {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshot
}

func (f *sessionServiceFake) OfferTransfer(_ context.Context, req walletsession.TransferRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.offerErr != nil {
		return f.offerErr
	}
	f.offered = append(f.offered, req)
	return nil
}

func (f *sessionServiceFake) PendingTransfer() (walletsession.TransferRequest, bool) {
	return walletsession.TransferRequest{}, false
}

func (f *sessionServiceFake) CancelPending() {}

func (f *sessionServiceFake) TakePending() (walletsession.TransferRequest, bool) {
	return walletsession.TransferRequest{}, false
}

// dispatcherFake is a hand-rolled txdispatch.Service double.
type dispatcherFake struct {
	mu      sync.Mutex
	calls   int
	receipt txdispatch.Receipt
	err     error
}

var _ txdispatch.Service = (*dispatcherFake)(nil)

func (f *dispatcherFake) Dispatch(context.Context) (txdispatch.Receipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return txdispatch.Receipt{}, f.err
	}
	return f.receipt, nil
}

func (f *dispatcherFake) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// intentServiceFake is a hand-rolled intent.Service double.
type intentServiceFake struct {
	prompts []string
	reply   intent.Reply
	err     error
}

var _ intent.Service = (*intentServiceFake)(nil)

func (f *intentServiceFake) HandlePrompt(_ context.Context, prompt string) (intent.Reply, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return intent.Reply{}, f.err
	}
	return f.reply, nil
}
