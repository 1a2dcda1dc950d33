// Package connectrpc implements the transfer signing port against a wallet
// provider speaking JSON-RPC. The provider holds the keys and the user
// interaction; this client only carries the transfer order over the wire and
// classifies the provider's answer. User rejection is recognized by the
// provider's error code, never by matching message text.
package connectrpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/stackboard/walletd/internal/pkg/transport/jsonrpc"
	"github.com/stackboard/walletd/internal/txdispatch"
)

// ErrMissingTransactionID is returned when the provider acknowledges the
// transfer without reporting a transaction id.
var ErrMissingTransactionID = errors.New("provider response missing transaction id")

// methodTransferSTX is the provider method that signs and broadcasts a
// native-asset transfer.
const methodTransferSTX = "stx_transferStx"

// userRejectionCode is the JSON-RPC error code providers use when the user
// declined the signing request.
const userRejectionCode = 4001

type (
	// transferParams is the wire form of a transfer order. The amount is a
	// decimal string of micro units.
	transferParams struct {
		Recipient string `json:"recipient"`
		Amount    string `json:"amount"`
		Memo      string `json:"memo,omitempty"`
		Network   string `json:"network"`
	}

	// transferResponse represents the provider's acknowledgment.
	transferResponse struct {
		TxID string `json:"txid"`
	}
)

// client implements the transfer signing port over a JSON-RPC connection.
type client struct {
	conn jsonrpc.Client
}

// Ensure client implements the signer port at compile time.
var _ txdispatch.TransferSigner = (*client)(nil)

// NewClient creates a signing client using the provided JSON-RPC connection.
func NewClient(conn jsonrpc.Client) *client {
	return &client{
		conn: conn,
	}
}

// SignAndBroadcast sends the transfer order to the wallet provider and
// returns the broadcast transaction id.
func (c *client) SignAndBroadcast(ctx context.Context, order txdispatch.TransferOrder) (string, error) {
	params := transferParams{
		Recipient: order.Recipient,
		Amount:    strconv.FormatUint(order.AmountMicroSTX, 10),
		Memo:      order.Memo,
		Network:   string(order.Network.ID),
	}

	data, err := c.conn.Fetch(ctx, methodTransferSTX, params)
	if err != nil {
		var providerErr *jsonrpc.ProviderError
		if errors.As(err, &providerErr) && providerErr.Code == userRejectionCode {
			return "", fmt.Errorf("%w: %s", txdispatch.ErrCancelledByUser, providerErr.Message)
		}
		return "", err
	}

	var res transferResponse
	if err := json.Unmarshal(data, &res); err != nil {
		return "", err
	}
	if res.TxID == "" {
		return "", ErrMissingTransactionID
	}

	return res.TxID, nil
}
