package txdispatch

import (
	"context"

	"github.com/stackboard/walletd/internal/pkg/logger"
)

// DispatchNotifier defines a mechanism for notifying external systems about
// the outcome of a dispatch attempt.
//
// This interface is useful for driving user-facing notices, audit trails, or
// publishing events based on dispatch activity.
type DispatchNotifier interface {
	// NotifyDispatched is invoked after a transfer was signed and broadcast.
	//
	// Parameters:
	//   - ctx: context for cancellation and timeout control.
	//   - receipt: the broadcast transaction and the request it fulfilled.
	//
	// Returns:
	//   - An error if the notification could not be delivered.
	NotifyDispatched(ctx context.Context, receipt Receipt) error

	// NotifyCancelled is invoked when the user rejected the signing request.
	NotifyCancelled(ctx context.Context, order TransferOrder) error

	// NotifyFailed is invoked when signing or broadcasting failed for any
	// reason other than user cancellation.
	NotifyFailed(ctx context.Context, order TransferOrder, cause error) error
}

// logNotifier is the default DispatchNotifier; it records every outcome on
// the structured log and never fails.
type logNotifier struct{}

var _ DispatchNotifier = (*logNotifier)(nil)

func (logNotifier) NotifyDispatched(ctx context.Context, receipt Receipt) error {
	logger.Info(ctx, "transfer dispatched",
		"tx.id", receipt.TxID,
		"network.id", receipt.Network.ID,
		"recipient", receipt.Recipient,
		"amount", receipt.Amount,
	)
	return nil
}

func (logNotifier) NotifyCancelled(ctx context.Context, order TransferOrder) error {
	logger.Info(ctx, "transfer cancelled by user",
		"network.id", order.Network.ID,
		"recipient", order.Recipient,
	)
	return nil
}

func (logNotifier) NotifyFailed(ctx context.Context, order TransferOrder, cause error) error {
	logger.Error(ctx, "transfer dispatch failed",
		"network.id", order.Network.ID,
		"recipient", order.Recipient,
		"error", cause,
	)
	return nil
}
