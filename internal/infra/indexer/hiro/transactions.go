package hiro

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/stackboard/walletd/internal/network"
	"github.com/stackboard/walletd/internal/walletsession"
)

type (
	// tokenTransferResponse carries the transfer-specific fields of a
	// transaction. Present only when the transaction is a native transfer.
	tokenTransferResponse struct {
		RecipientAddress string `json:"recipient_address"`
		Amount           string `json:"amount"` // micro units, decimal string
	}

	// transactionResponse represents one transaction as returned by the
	// indexer's address transactions endpoint.
	transactionResponse struct {
		TxID          string                `json:"tx_id"`
		SenderAddress string                `json:"sender_address"`
		TxStatus      string                `json:"tx_status"`
		TxType        string                `json:"tx_type"`
		BurnBlockTime int64                 `json:"burn_block_time"`
		TokenTransfer tokenTransferResponse `json:"token_transfer"`
	}

	// transactionListResponse represents one page of the paginated listing.
	transactionListResponse struct {
		Limit   int                   `json:"limit"`
		Offset  int                   `json:"offset"`
		Total   int                   `json:"total"`
		Results []transactionResponse `json:"results"`
	}
)

// toSessionTransaction converts a transactionResponse to the session's
// transaction record.
func (t transactionResponse) toSessionTransaction() walletsession.TransactionRecord {
	record := walletsession.TransactionRecord{
		ID:        t.TxID,
		Sender:    t.SenderAddress,
		Status:    toSessionStatus(t.TxStatus),
		Type:      t.TxType,
		Recipient: t.TokenTransfer.RecipientAddress,
	}

	if t.BurnBlockTime > 0 {
		record.Timestamp = time.Unix(t.BurnBlockTime, 0).UTC()
	}

	if amount, err := strconv.ParseUint(t.TokenTransfer.Amount, 10, 64); err == nil {
		record.AmountMicroSTX = amount
	}

	return record
}

// toSessionStatus maps the indexer's status strings onto the session's
// status set. Abort statuses and anything unrecognized count as failed.
func toSessionStatus(status string) walletsession.TransactionStatus {
	switch status {
	case "success":
		return walletsession.TransactionStatusSuccess
	case "pending":
		return walletsession.TransactionStatusPending
	default:
		return walletsession.TransactionStatusFailed
	}
}

// ListTransactions fetches a single page of an address's transaction history.
func (c *client) ListTransactions(ctx context.Context, net network.Descriptor, address string, limit, offset int) (walletsession.TransactionPage, error) {
	endpoint := fmt.Sprintf("%s/extended/v1/address/%s/transactions", net.APIBaseURL, address)

	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		query.Set("offset", strconv.Itoa(offset))
	}
	if encoded := query.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return walletsession.TransactionPage{}, err
	}

	res, err := c.http.Do(req)
	if err != nil {
		return walletsession.TransactionPage{}, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return walletsession.TransactionPage{}, fmt.Errorf("%w: %d", ErrUnexpectedStatusCode, res.StatusCode)
	}

	var body transactionListResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return walletsession.TransactionPage{}, err
	}

	page := walletsession.TransactionPage{
		Total: body.Total,
		Limit: body.Limit,
	}
	if len(body.Results) > 0 {
		page.Results = make([]walletsession.TransactionRecord, len(body.Results))
		for i, tx := range body.Results {
			page.Results[i] = tx.toSessionTransaction()
		}
	}

	return page, nil
}
