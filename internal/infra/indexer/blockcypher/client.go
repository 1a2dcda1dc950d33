// Package blockcypher implements the wallet session's secondary-chain
// balance port against the BlockCypher address balance API. The chain segment
// ("main", "test3") comes from the network descriptor; environments without
// one never reach this client.
package blockcypher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/hashicorp/go-retryablehttp"

	httpx "github.com/stackboard/walletd/internal/pkg/transport/http"
	"github.com/stackboard/walletd/internal/walletsession"
)

// ErrUnexpectedStatusCode is returned when the balance service responds with
// a non-2xx status.
var ErrUnexpectedStatusCode = errors.New("unexpected status code")

// defaultBaseURL is the public BlockCypher BTC API root.
const defaultBaseURL = "https://api.blockcypher.com/v1/btc"

// balanceResponse represents the address balance payload. Only the confirmed
// final balance is consumed.
type balanceResponse struct {
	FinalBalance uint64 `json:"final_balance"` // satoshis
}

// client talks to the BlockCypher address balance API.
type client struct {
	baseURL string
	http    *retryablehttp.Client
}

// Ensure client implements the session port at compile time.
var _ walletsession.ChainBalanceFetcher = (*client)(nil)

// config holds construction options for the client.
type config struct {
	baseURL  string
	httpOpts []httpx.Option
}

// Option configures the client before construction.
type Option func(*config)

// WithBaseURL overrides the API root, mainly for tests.
func WithBaseURL(u string) Option {
	return func(c *config) {
		c.baseURL = u
	}
}

// WithHTTPOptions forwards options to the underlying HTTP transport.
func WithHTTPOptions(opts ...httpx.Option) Option {
	return func(c *config) {
		c.httpOpts = opts
	}
}

// NewClient creates a BlockCypher balance client.
func NewClient(opts ...Option) *client {
	cfg := config{
		baseURL: defaultBaseURL,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &client{
		baseURL: cfg.baseURL,
		http:    httpx.NewClient(cfg.httpOpts...),
	}
}

// FetchChainBalance retrieves the confirmed balance of an address in
// satoshis for the given chain segment.
func (c *client) FetchChainBalance(ctx context.Context, chain, address string) (uint64, error) {
	url := fmt.Sprintf("%s/%s/addrs/%s/balance", c.baseURL, chain, address)

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}

	res, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("%w: %d", ErrUnexpectedStatusCode, res.StatusCode)
	}

	var body balanceResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return 0, err
	}

	return body.FinalBalance, nil
}
