package cli

import (
	"testing"

	"github.com/stackboard/walletd/internal/intent"
	"github.com/stackboard/walletd/internal/txdispatch"
	"github.com/stackboard/walletd/internal/walletsession"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

func TestShowBalancesCommand(t *testing.T) {
	t.Run("connects the configured identity", func(t *testing.T) {
		sessions := &sessionServiceFake{}
		cmd := showBalancesCommand(sessions, testIdentity())
		app := &cli.Command{Commands: []*cli.Command{cmd}}

		err := app.Run(t.Context(), []string{"test", "balances"})

		require.NoError(t, err)
		require.Len(t, sessions.connected, 1)
		assert.Equal(t, "cli-test", sessions.connected[0].SessionID)
	})

	t.Run("propagates connect errors", func(t *testing.T) {
		sessions := &sessionServiceFake{connectErr: assert.AnError}
		cmd := showBalancesCommand(sessions, testIdentity())
		app := &cli.Command{Commands: []*cli.Command{cmd}}

		err := app.Run(t.Context(), []string{"test", "balances"})

		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestShowHistoryCommand(t *testing.T) {
	t.Run("connects and prints without error", func(t *testing.T) {
		sessions := &sessionServiceFake{snapshot: walletsession.Session{
			Connected: true,
			History: []walletsession.TransactionRecord{
				{ID: "0x1", Type: walletsession.TransactionTypeTokenTransfer, Status: walletsession.TransactionStatusSuccess},
			},
		}}
		cmd := showHistoryCommand(sessions, testIdentity())
		app := &cli.Command{Commands: []*cli.Command{cmd}}

		err := app.Run(t.Context(), []string{"test", "history"})

		require.NoError(t, err)
		assert.Len(t, sessions.connected, 1)
	})
}

func TestSendTransferCommand(t *testing.T) {
	t.Run("should create command with correct metadata", func(t *testing.T) {
		cmd := sendTransferCommand(&sessionServiceFake{}, &dispatcherFake{}, testIdentity())

		assert.Equal(t, "send", cmd.Name)
		assert.Len(t, cmd.Flags, 3)
	})

	t.Run("offers without dispatching by default", func(t *testing.T) {
		sessions := &sessionServiceFake{}
		dispatcher := &dispatcherFake{}
		cmd := sendTransferCommand(sessions, dispatcher, testIdentity())
		app := &cli.Command{Commands: []*cli.Command{cmd}}

		err := app.Run(t.Context(), []string{"test", "send", "--amount", "25", "--recipient", "ST3AM1A56AK2C1XAFJ4115ZSV26EB49BVQ10MGCS0"})

		require.NoError(t, err)
		require.Len(t, sessions.offered, 1)
		assert.Equal(t, walletsession.AssetSTX, sessions.offered[0].Asset)
		assert.Equal(t, 25.0, sessions.offered[0].Amount)
		assert.Zero(t, dispatcher.callCount())
	})

	t.Run("dispatches when confirmed", func(t *testing.T) {
		sessions := &sessionServiceFake{}
		dispatcher := &dispatcherFake{receipt: txdispatch.Receipt{TxID: "0xabc", Amount: 25, Recipient: "ST3AM1A56AK2C1XAFJ4115ZSV26EB49BVQ10MGCS0"}}
		cmd := sendTransferCommand(sessions, dispatcher, testIdentity())
		app := &cli.Command{Commands: []*cli.Command{cmd}}

		err := app.Run(t.Context(), []string{"test", "send", "--amount", "25", "--recipient", "ST3AM1A56AK2C1XAFJ4115ZSV26EB49BVQ10MGCS0", "--yes"})

		require.NoError(t, err)
		assert.Equal(t, 1, dispatcher.callCount())
	})

	t.Run("propagates dispatch errors", func(t *testing.T) {
		sessions := &sessionServiceFake{}
		dispatcher := &dispatcherFake{err: txdispatch.ErrCancelledByUser}
		cmd := sendTransferCommand(sessions, dispatcher, testIdentity())
		app := &cli.Command{Commands: []*cli.Command{cmd}}

		err := app.Run(t.Context(), []string{"test", "send", "--amount", "1", "--recipient", "ST3AM1A56AK2C1XAFJ4115ZSV26EB49BVQ10MGCS0", "--yes"})

		assert.ErrorIs(t, err, txdispatch.ErrCancelledByUser)
	})
}

func TestPromptCommand(t *testing.T) {
	t.Run("prints the reply without dispatching", func(t *testing.T) {
		intents := &intentServiceFake{reply: intent.Reply{Text: "Your current available balance is approximately 42 STX."}}
		dispatcher := &dispatcherFake{}
		cmd := promptCommand(&sessionServiceFake{}, intents, dispatcher, testIdentity())
		app := &cli.Command{Commands: []*cli.Command{cmd}}

		err := app.Run(t.Context(), []string{"test", "prompt", "--text", "what is my balance"})

		require.NoError(t, err)
		assert.Equal(t, []string{"what is my balance"}, intents.prompts)
		assert.Zero(t, dispatcher.callCount())
	})

	t.Run("dispatches an offered transfer when confirmed", func(t *testing.T) {
		transfer := &walletsession.TransferRequest{Asset: walletsession.AssetSTX, Amount: 5, Recipient: "ST3AM1A56AK2C1XAFJ4115ZSV26EB49BVQ10MGCS0"}
		intents := &intentServiceFake{reply: intent.Reply{Text: "ok", Transfer: transfer}}
		dispatcher := &dispatcherFake{receipt: txdispatch.Receipt{TxID: "0x1"}}
		cmd := promptCommand(&sessionServiceFake{}, intents, dispatcher, testIdentity())
		app := &cli.Command{Commands: []*cli.Command{cmd}}

		err := app.Run(t.Context(), []string{"test", "prompt", "--text", "send 5 stx", "--yes"})

		require.NoError(t, err)
		assert.Equal(t, 1, dispatcher.callCount())
	})

	t.Run("does not dispatch when no transfer was offered", func(t *testing.T) {
		intents := &intentServiceFake{reply: intent.Reply{Text: "rephrase please"}}
		dispatcher := &dispatcherFake{}
		cmd := promptCommand(&sessionServiceFake{}, intents, dispatcher, testIdentity())
		app := &cli.Command{Commands: []*cli.Command{cmd}}

		err := app.Run(t.Context(), []string{"test", "prompt", "--text", "hello", "--yes"})

		require.NoError(t, err)
		assert.Zero(t, dispatcher.callCount())
	})
}
