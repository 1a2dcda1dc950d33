// Package hiro implements the wallet session's balance and transaction
// listing ports against a Hiro-style indexing API. The indexer base URL comes
// from the network descriptor, so one client serves every environment.
package hiro

import (
	"errors"

	"github.com/hashicorp/go-retryablehttp"

	httpx "github.com/stackboard/walletd/internal/pkg/transport/http"
	"github.com/stackboard/walletd/internal/walletsession"
)

// ErrUnexpectedStatusCode is returned when the indexer responds with a
// non-2xx status.
var ErrUnexpectedStatusCode = errors.New("unexpected status code")

// client talks to the indexer's extended address API.
type client struct {
	http *retryablehttp.Client
}

// Ensure client implements the session ports at compile time.
var (
	_ walletsession.BalanceFetcher    = (*client)(nil)
	_ walletsession.TransactionLister = (*client)(nil)
)

// NewClient creates an indexer client. Retry and timeout behavior follows the
// shared HTTP transport defaults unless overridden.
func NewClient(opts ...httpx.Option) *client {
	return &client{
		http: httpx.NewClient(opts...),
	}
}
