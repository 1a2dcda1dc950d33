package hiro

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/stackboard/walletd/internal/network"
)

type (
	// stxBalanceResponse is the native-asset section of the balances payload.
	// The indexer serializes the amount as a decimal string of micro units.
	stxBalanceResponse struct {
		Balance string `json:"balance"`
	}

	// balancesResponse represents the indexer's address balances payload.
	balancesResponse struct {
		STX stxBalanceResponse `json:"stx"`
	}
)

// FetchBalance retrieves the native-asset balance of an address in micro
// units from the active network's indexer.
func (c *client) FetchBalance(ctx context.Context, net network.Descriptor, address string) (uint64, error) {
	url := fmt.Sprintf("%s/extended/v1/address/%s/balances", net.APIBaseURL, address)

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

	var body balancesResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return 0, err
	}

	return strconv.ParseUint(body.STX.Balance, 10, 64)
}
