package cli

import (
	"context"
	"fmt"

	"github.com/stackboard/walletd/internal/intent"
	"github.com/stackboard/walletd/internal/txdispatch"
	"github.com/stackboard/walletd/internal/walletsession"

	"github.com/urfave/cli/v3"
)

// showBalancesCommand returns a CLI command that connects the configured
// identity and prints its balances on the active network.
//
// Usage example:
//
//	walletd balances
func showBalancesCommand(sessions walletsession.Service, identity walletsession.Identity) *cli.Command {
	return &cli.Command{
		Name:        "balances",
		Description: "Fetch and print the asset balances of the configured identity on the active network.",
		Usage:       "Prints the current balances.",
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := sessions.Connect(ctx, identity); err != nil {
				return err
			}

			snap := sessions.Snapshot()
			if len(snap.Balances) == 0 {
				fmt.Println("no balances available")
				return nil
			}
			for _, b := range snap.Balances {
				fmt.Printf("%f %s (%s)\n", b.Amount, b.Asset, b.Address)
			}
			return nil
		},
	}
}

// showHistoryCommand returns a CLI command that connects the configured
// identity and prints its aggregated transaction history.
//
// Usage example:
//
//	walletd history
func showHistoryCommand(sessions walletsession.Service, identity walletsession.Identity) *cli.Command {
	return &cli.Command{
		Name:        "history",
		Description: "Fetch and print the complete transaction history of the configured identity.",
		Usage:       "Prints the transaction history, most recent first.",
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := sessions.Connect(ctx, identity); err != nil {
				return err
			}

			snap := sessions.Snapshot()
			if len(snap.History) == 0 {
				fmt.Println("no transactions found")
				return nil
			}

			for _, tx := range snap.History {
				fmt.Printf("%s  %-14s %-8s %s\n", tx.ID, tx.Type, tx.Status, tx.Timestamp.Format("2006-01-02 15:04"))
			}
			if snap.HistoryIncomplete {
				fmt.Println("warning: the listing is incomplete")
			}
			return nil
		},
	}
}

// sendTransferCommand returns a CLI command that offers a transfer and, when
// confirmed, dispatches it through the wallet provider.
//
// Usage example:
//
//	walletd send --amount 25 --recipient ST3AM... --yes
func sendTransferCommand(sessions walletsession.Service, dispatcher txdispatch.Service, identity walletsession.Identity) *cli.Command {
	return &cli.Command{
		Name:        "send",
		Description: "Offer a native-asset transfer and dispatch it after confirmation.",
		Usage:       "Sends STX. Must provide amount and recipient; pass --yes to dispatch immediately.",
		Flags: []cli.Flag{
			&cli.FloatFlag{
				Name:     "amount",
				Usage:    "Amount to transfer, in STX",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "recipient",
				Usage:    "Recipient address",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "yes",
				Usage: "Dispatch without asking for confirmation",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := sessions.Connect(ctx, identity); err != nil {
				return err
			}

			req := walletsession.TransferRequest{
				Asset:     walletsession.AssetSTX,
				Amount:    c.Float("amount"),
				Recipient: c.String("recipient"),
			}
			if err := sessions.OfferTransfer(ctx, req); err != nil {
				return err
			}

			if !c.Bool("yes") {
				fmt.Printf("transfer of %f STX to %s is pending; re-run with --yes to dispatch\n", req.Amount, req.Recipient)
				return nil
			}

			receipt, err := dispatcher.Dispatch(ctx)
			if err != nil {
				return err
			}

			fmt.Printf("dispatched %f STX to %s: %s\n", receipt.Amount, receipt.Recipient, receipt.TxID)
			return nil
		},
	}
}

// promptCommand returns a CLI command that resolves a natural language
// command and acts on the resulting intent.
//
// Usage example:
//
//	walletd prompt --text "send 5 STX to ST3AM..."
func promptCommand(sessions walletsession.Service, intents intent.Service, dispatcher txdispatch.Service, identity walletsession.Identity) *cli.Command {
	return &cli.Command{
		Name:        "prompt",
		Description: "Resolve a natural language command. A fully specified transfer becomes a pending request.",
		Usage:       "Interprets a prompt. Pass --yes to dispatch an offered transfer immediately.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "text",
				Usage:    "The command to interpret",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "yes",
				Usage: "Dispatch an offered transfer without asking for confirmation",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := sessions.Connect(ctx, identity); err != nil {
				return err
			}

			reply, err := intents.HandlePrompt(ctx, c.String("text"))
			if err != nil {
				return err
			}

			fmt.Println(reply.Text)

			if reply.Transfer == nil || !c.Bool("yes") {
				return nil
			}

			receipt, err := dispatcher.Dispatch(ctx)
			if err != nil {
				return err
			}

			fmt.Printf("dispatched %f %s to %s: %s\n", receipt.Amount, reply.Transfer.Asset, receipt.Recipient, receipt.TxID)
			return nil
		},
	}
}
