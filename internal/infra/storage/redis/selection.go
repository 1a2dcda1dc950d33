package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/stackboard/walletd/internal/network"

	"github.com/redis/go-redis/v9"
)

// networkKeyPrefix is the namespace prefix for all keys related to network
// selection.
const networkKeyPrefix = "network"

// selectedNetworkKey constructs the Redis key holding the persisted network
// selection. The format is:
//
//	"network:selected"
func selectedNetworkKey() string {
	return fmt.Sprintf("%s:selected", networkKeyPrefix)
}

// SaveSelectedNetwork persists the active network id so the selection
// survives restarts. The value is stored with no expiration.
//
// Parameters:
//   - ctx: context for timeout and cancellation.
//   - id: the network id to persist.
//
// Returns:
//   - An error if the Redis operation fails.
func (c *client) SaveSelectedNetwork(ctx context.Context, id network.ID) error {
	return c.conn.Set(ctx, selectedNetworkKey(), string(id), 0).Err()
}

// LoadSelectedNetwork retrieves the persisted network selection.
//
// If no selection has been saved yet, it returns
// network.ErrNoSelectionFound.
//
// Parameters:
//   - ctx: context for timeout and cancellation.
//
// Returns:
//   - The persisted network id, or an error if retrieval fails.
func (c *client) LoadSelectedNetwork(ctx context.Context) (network.ID, error) {
	val, err := c.conn.Get(ctx, selectedNetworkKey()).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			err = network.ErrNoSelectionFound
		}

		return "", err
	}

	return network.ID(val), nil
}

// Compile-time assertion to ensure client implements the SelectionStorage interface.
var _ network.SelectionStorage = new(client)
