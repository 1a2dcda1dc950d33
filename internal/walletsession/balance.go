package walletsession

import (
	"context"
	"errors"
	"fmt"

	"github.com/stackboard/walletd/internal/network"
	"github.com/stackboard/walletd/internal/pkg/logger"
	"github.com/stackboard/walletd/internal/pkg/units"
)

// Asset identifies one of the asset kinds the session tracks.
type Asset string

const (
	// AssetSTX is the ledger-native asset.
	AssetSTX Asset = "STX"

	// AssetBTC is the secondary chain asset.
	AssetBTC Asset = "BTC"
)

// Balance is the last known holding of one asset for one address on one
// network. Balances are replaced whole on every successful fetch and never
// partially updated.
type Balance struct {
	Asset   Asset
	Amount  float64 // display units
	Address string
	Network network.ID
}

// BalanceFetcher retrieves the native-asset balance of an address from the
// indexing service of the given network.
type BalanceFetcher interface {
	// FetchBalance returns the balance in micro-STX, the smallest indivisible
	// unit of the native asset.
	//
	// Parameters:
	//   - ctx: controls cancellation and timeout.
	//   - net: the network whose indexing service to query.
	//   - address: the ledger-native address to look up.
	//
	// Returns:
	//   - The balance in micro-STX.
	//   - An error if the indexer cannot be reached or responds non-2xx.
	FetchBalance(ctx context.Context, net network.Descriptor, address string) (uint64, error)
}

// ChainBalanceFetcher retrieves the secondary-chain balance of an address
// from a chain-specific balance service.
type ChainBalanceFetcher interface {
	// FetchChainBalance returns the balance in satoshis for the given chain
	// segment (e.g. "main", "test3").
	//
	// Parameters:
	//   - ctx: controls cancellation and timeout.
	//   - chain: the balance service chain segment from the network descriptor.
	//   - address: the secondary-chain address to look up.
	//
	// Returns:
	//   - The balance in satoshis.
	//   - An error if the service cannot be reached or responds non-2xx.
	FetchChainBalance(ctx context.Context, chain, address string) (uint64, error)
}

// refreshBalances fetches both asset balances for the given selection and
// applies whatever succeeded. A fetch failure never unwinds the session: the
// previous value is retained (or an explicit zero is recorded when no prior
// value exists) and the failure is logged and returned for caller awareness.
func (s *service) refreshBalances(ctx context.Context, sel selection) error {
	var errs []error

	if sel.stxAddress != "" {
		micro, err := s.stxBalances.FetchBalance(ctx, sel.network, sel.stxAddress)
		if err != nil {
			s.recordBalanceFailure(ctx, sel, AssetSTX, sel.stxAddress, err)
			errs = append(errs, fmt.Errorf("stx balance: %w", err))
		} else {
			s.applyBalance(ctx, sel, Balance{
				Asset:   AssetSTX,
				Amount:  units.MicroSTXToSTX(micro),
				Address: sel.stxAddress,
				Network: sel.network.ID,
			})
		}
	}

	if sel.btcAddress != "" {
		switch {
		case !sel.network.SupportsBTC():
			// No balance service covers this environment; report a fixed zero
			// without making a network call.
			s.applyBalance(ctx, sel, Balance{
				Asset:   AssetBTC,
				Address: sel.btcAddress,
				Network: sel.network.ID,
			})
		default:
			sats, err := s.btcBalances.FetchChainBalance(ctx, sel.network.BTCChain, sel.btcAddress)
			if err != nil {
				s.recordBalanceFailure(ctx, sel, AssetBTC, sel.btcAddress, err)
				errs = append(errs, fmt.Errorf("btc balance: %w", err))
			} else {
				s.applyBalance(ctx, sel, Balance{
					Asset:   AssetBTC,
					Amount:  units.SatoshisToBTC(sats),
					Address: sel.btcAddress,
					Network: sel.network.ID,
				})
			}
		}
	}

	return errors.Join(errs...)
}

// applyBalance stores a freshly fetched balance, unless the session selection
// changed while the fetch was in flight, in which case the result is silently
// discarded.
func (s *service) applyBalance(ctx context.Context, sel selection, b Balance) {
	s.mu.Lock()
	if sel.generation != s.generation {
		s.mu.Unlock()
		logger.Debug(ctx, "discarding stale balance result",
			"asset", b.Asset,
			"network.id", sel.network.ID,
		)
		return
	}
	s.balances[b.Asset] = b
	s.mu.Unlock()

	s.emit(ctx, Event{
		Kind:    EventBalanceUpdated,
		Network: sel.network,
		Asset:   b.Asset,
		Balance: b.Amount,
	})
}

// recordBalanceFailure logs a non-fatal fetch failure. The previous balance is
// kept so the user is not shown a false zero; only when no prior value exists
// is an explicit zero recorded.
func (s *service) recordBalanceFailure(ctx context.Context, sel selection, asset Asset, address string, err error) {
	logger.Warn(ctx, "balance fetch failed, keeping last known value",
		"asset", asset,
		"network.id", sel.network.ID,
		"error", err,
	)

	s.mu.Lock()
	defer s.mu.Unlock()

	if sel.generation != s.generation {
		return
	}
	if _, ok := s.balances[asset]; !ok {
		s.balances[asset] = Balance{
			Asset:   asset,
			Address: address,
			Network: sel.network.ID,
		}
	}
}
