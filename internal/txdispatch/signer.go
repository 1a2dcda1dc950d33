package txdispatch

import (
	"context"

	"github.com/stackboard/walletd/internal/network"
)

// TransferOrder is the fully resolved instruction handed to the signer: base
// units, resolved sender, and the memo to attach. Orders are built by the
// dispatcher; callers never construct one directly.
type TransferOrder struct {
	Network        network.Descriptor
	Sender         string
	Recipient      string
	AmountMicroSTX uint64
	Memo           string
}

// TransferSigner defines the boundary to the wallet provider that signs and
// broadcasts a native-asset transfer. The provider owns the keys; the
// dispatcher never sees key material.
type TransferSigner interface {
	// SignAndBroadcast asks the wallet provider to sign the order and
	// broadcast the resulting transaction.
	//
	// Parameters:
	//   - ctx: controls cancellation and timeout.
	//   - order: the fully resolved transfer instruction.
	//
	// Returns:
	//   - The broadcast transaction id.
	//   - An error wrapping ErrCancelledByUser when the user rejected the
	//     signing request, or any other error when broadcasting failed.
	SignAndBroadcast(ctx context.Context, order TransferOrder) (string, error)
}
