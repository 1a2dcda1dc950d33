package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/stackboard/walletd/internal/pkg/x/chflow"
	"github.com/stackboard/walletd/internal/walletsession"

	"github.com/urfave/cli/v3"
)

// dashboardCommand returns a CLI command that connects the configured
// identity and streams session events until interrupted.
//
// Usage example:
//
//	walletd dashboard
//
// The process runs indefinitely until it receives an interrupt (SIGINT or SIGTERM).
func dashboardCommand(sessions walletsession.Service, identity walletsession.Identity) *cli.Command {
	return &cli.Command{
		Name:        "dashboard",
		Description: "Connects the wallet and streams balance, history, and transfer events as they happen.",
		Usage:       "Runs the live session dashboard. Terminates gracefully on Ctrl+C or termination signals.",
		Action: func(ctx context.Context, c *cli.Command) error {
			quit := make(chan os.Signal, 1)
			defer close(quit)

			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

			events, err := sessions.Start(ctx)
			if err != nil {
				return err
			}
			defer sessions.Close()

			if err := sessions.Connect(ctx, identity); err != nil {
				return err
			}
			defer sessions.Disconnect(ctx)

			printSession(sessions.Snapshot())

			watchCtx, cancel := context.WithCancel(ctx)
			defer cancel()
			go func() {
				for {
					ev, ok := chflow.Receive(watchCtx, events)
					if !ok {
						return
					}
					printEvent(ev)
				}
			}()

			<-quit
			return nil
		},
	}
}

// printSession renders a full session snapshot.
func printSession(snap walletsession.Session) {
	fmt.Printf("network: %s (%s)\n", snap.Network.Name, snap.Network.ID)
	if !snap.Connected {
		fmt.Println("wallet: not connected")
		return
	}

	fmt.Printf("stx address: %s\n", snap.STXAddress)
	if snap.BTCAddress != "" {
		fmt.Printf("btc address: %s\n", snap.BTCAddress)
	}
	for _, b := range snap.Balances {
		fmt.Printf("balance: %f %s\n", b.Amount, b.Asset)
	}

	suffix := ""
	if snap.HistoryIncomplete {
		suffix = " (incomplete)"
	}
	fmt.Printf("history: %d transactions%s\n", len(snap.History), suffix)
}

// printEvent renders one session event.
func printEvent(ev walletsession.Event) {
	switch ev.Kind {
	case walletsession.EventBalanceUpdated:
		fmt.Printf("[%s] %s balance on %s: %f\n", ev.Kind, ev.Asset, ev.Network.ID, ev.Balance)
	case walletsession.EventHistorySynced:
		suffix := ""
		if ev.HistoryIncomplete {
			suffix = " (incomplete)"
		}
		fmt.Printf("[%s] %d transactions on %s%s\n", ev.Kind, ev.HistoryCount, ev.Network.ID, suffix)
	case walletsession.EventTransferOffered:
		fmt.Printf("[%s] %f %s to %s awaiting confirmation\n", ev.Kind, ev.Transfer.Amount, ev.Transfer.Asset, ev.Transfer.Recipient)
	default:
		fmt.Printf("[%s] network %s\n", ev.Kind, ev.Network.ID)
	}
}
