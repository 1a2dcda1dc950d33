package walletsession

import (
	"context"
	"time"

	"github.com/stackboard/walletd/internal/network"
	"github.com/stackboard/walletd/internal/pkg/logger"
)

// TransactionStatus is the indexer-reported status of a transaction.
type TransactionStatus string

const (
	TransactionStatusSuccess TransactionStatus = "success"
	TransactionStatusPending TransactionStatus = "pending"
	TransactionStatusFailed  TransactionStatus = "failed"
)

// TransactionTypeTokenTransfer tags native transfers; only records of this
// type carry a recipient and amount.
const TransactionTypeTokenTransfer = "token_transfer"

// TransactionRecord is one entry of an address's history as reported by the
// indexer. Records are immutable once retrieved; the session never mutates a
// fetched record.
type TransactionRecord struct {
	ID             string
	Sender         string
	Status         TransactionStatus
	Type           string
	Timestamp      time.Time
	Recipient      string // set for native transfers only
	AmountMicroSTX uint64 // set for native transfers only
}

// TransactionPage is one page of a paginated history listing.
type TransactionPage struct {
	Results []TransactionRecord
	Total   int // total record count reported by the service
	Limit   int // page size reported by the service
}

// TransactionLister retrieves pages of transaction history for one address on
// one network.
type TransactionLister interface {
	// ListTransactions fetches a single page.
	//
	// Parameters:
	//   - ctx: controls cancellation and timeout.
	//   - net: the network whose indexing service to query.
	//   - address: the ledger-native address whose history to list.
	//   - limit: requested page size; 0 lets the service pick its default.
	//   - offset: number of records to skip.
	//
	// Returns:
	//   - The page, including the service's reported total and page size.
	//   - An error if the indexer cannot be reached or responds non-2xx.
	ListTransactions(ctx context.Context, net network.Descriptor, address string, limit, offset int) (TransactionPage, error)
}

// refreshHistory fetches the complete transaction history for the given
// selection, paging until the service's reported total is reached. Partial
// results are applied when a page fails; the loading flag is cleared on every
// exit path.
func (s *service) refreshHistory(ctx context.Context, sel selection) error {
	if sel.stxAddress == "" {
		return nil
	}

	if !s.beginHistoryLoad(sel) {
		return nil
	}

	var (
		records    []TransactionRecord
		incomplete bool
		fetchErr   error
		limit      int // carried from the service's reported page size
	)

	for page := 0; ; page++ {
		if page >= s.maxHistoryPages {
			// Defensive bound: a service reporting an inflated total must not
			// keep the loop alive forever.
			logger.Warn(ctx, "history pagination cap reached",
				"address", sel.stxAddress,
				"network.id", sel.network.ID,
				"records", len(records),
			)
			incomplete = true
			break
		}

		p, err := s.transactions.ListTransactions(ctx, sel.network, sel.stxAddress, limit, len(records))
		if err != nil {
			logger.Warn(ctx, "history page fetch failed, keeping partial results",
				"address", sel.stxAddress,
				"network.id", sel.network.ID,
				"records", len(records),
				"error", err,
			)
			incomplete = true
			fetchErr = err
			break
		}

		records = append(records, p.Results...)
		limit = p.Limit

		if p.Total <= len(records) {
			break
		}

		// The service claims more records exist. An empty page here means a
		// stale or inflated total; looping again would never terminate, so
		// stop with what was accumulated and flag the listing.
		if len(p.Results) == 0 {
			logger.Warn(ctx, "indexer reported more records than it returned",
				"address", sel.stxAddress,
				"network.id", sel.network.ID,
				"reported_total", p.Total,
				"records", len(records),
			)
			incomplete = true
			break
		}
	}

	s.finishHistoryLoad(ctx, sel, records, incomplete)
	return fetchErr
}

// beginHistoryLoad marks the session as loading history and clears the
// previous listing, unless the selection already changed.
func (s *service) beginHistoryLoad(sel selection) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sel.generation != s.generation {
		return false
	}

	s.historyLoading = true
	s.historyIncomplete = false
	s.history = nil
	return true
}

// finishHistoryLoad stores the aggregation outcome and clears the loading
// flag. Results arriving after the selection changed are discarded; the reset
// that bumped the generation already cleared the loading flag.
func (s *service) finishHistoryLoad(ctx context.Context, sel selection, records []TransactionRecord, incomplete bool) {
	s.mu.Lock()
	if sel.generation != s.generation {
		s.mu.Unlock()
		logger.Debug(ctx, "discarding stale history result",
			"network.id", sel.network.ID,
			"records", len(records),
		)
		return
	}
	s.history = records
	s.historyLoading = false
	s.historyIncomplete = incomplete
	s.mu.Unlock()

	s.emit(ctx, Event{
		Kind:              EventHistorySynced,
		Network:           sel.network,
		HistoryCount:      len(records),
		HistoryIncomplete: incomplete,
	})
}
