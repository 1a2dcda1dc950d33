package network

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/stackboard/walletd/internal/pkg/logger"
)

// ErrUnknownNetwork is returned when a network id is not part of the catalog.
var ErrUnknownNetwork = errors.New("unknown network")

// Registry exposes the catalog of known networks and the currently active one.
//
// Changing the active network invalidates every piece of network-scoped
// session state, so all switches must go through the wallet session's
// SwitchNetwork operation rather than calling SetActive directly.
type Registry interface {
	// Networks returns the catalog of known networks in display order.
	Networks() []Descriptor

	// Active returns the descriptor of the currently selected network.
	Active() Descriptor

	// SetActive selects the network with the given id and persists the choice.
	//
	// A persistence failure is logged but does not fail the switch; the
	// in-memory selection is authoritative for the running process.
	//
	// Returns ErrUnknownNetwork if the id is not part of the catalog.
	SetActive(ctx context.Context, id ID) (Descriptor, error)
}

// registry is the concrete implementation of the Registry interface.
type registry struct {
	mu     sync.RWMutex
	active Descriptor

	selectionStorage SelectionStorage
}

var _ Registry = (*registry)(nil)

// config holds construction options for the registry.
type config struct {
	selectionStorage SelectionStorage
}

// Option configures the registry before construction.
type Option func(*config)

// WithSelectionStorage sets the backend used to persist the active network
// across restarts. Without it, the selection only lives for the process.
func WithSelectionStorage(ss SelectionStorage) Option {
	return func(c *config) {
		c.selectionStorage = ss
	}
}

// New creates a network registry. The active network is restored from the
// configured SelectionStorage; when nothing usable is persisted, the registry
// falls back to DefaultID.
func New(ctx context.Context, opts ...Option) *registry {
	cfg := config{
		selectionStorage: nopSelection{},
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	active, _ := ByID(DefaultID)

	saved, err := cfg.selectionStorage.LoadSelectedNetwork(ctx)
	switch {
	case errors.Is(err, ErrNoSelectionFound):
		// first run, keep the default
	case err != nil:
		logger.Warn(ctx, "failed to load persisted network selection", "error", err)
	default:
		if d, ok := ByID(saved); ok {
			active = d
		} else {
			logger.Warn(ctx, "persisted network selection not recognized", "network.id", saved)
		}
	}

	return &registry{
		active:           active,
		selectionStorage: cfg.selectionStorage,
	}
}

// Networks returns the catalog of known networks.
func (r *registry) Networks() []Descriptor {
	return All()
}

// Active returns the currently selected network descriptor.
func (r *registry) Active() Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.active
}

// SetActive selects and persists a new active network.
func (r *registry) SetActive(ctx context.Context, id ID) (Descriptor, error) {
	d, ok := ByID(id)
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %s", ErrUnknownNetwork, id)
	}

	r.mu.Lock()
	r.active = d
	r.mu.Unlock()

	if err := r.selectionStorage.SaveSelectedNetwork(ctx, id); err != nil {
		logger.Warn(ctx, "failed to persist network selection",
			"network.id", id,
			"error", err,
		)
	}

	return d, nil
}
