package cli

import (
	"context"
	"os"

	"github.com/stackboard/walletd/internal/intent"
	"github.com/stackboard/walletd/internal/network"
	"github.com/stackboard/walletd/internal/txdispatch"
	"github.com/stackboard/walletd/internal/walletsession"

	"github.com/urfave/cli/v3"
)

// Run initializes and executes the walletd CLI application.
//
// It registers all available commands, including:
//
//   - `dashboard`: Connects the configured identity and streams session events.
//   - `networks`: Lists the known networks and marks the active one.
//   - `switch-network`: Changes the active network.
//   - `balances`: Prints the current asset balances.
//   - `history`: Prints the aggregated transaction history.
//   - `send`: Offers a transfer and optionally dispatches it.
//   - `prompt`: Resolves a natural language command.
//
// Parameters:
//   - ctx: Context used to control the lifecycle of the CLI application.
//   - reg: The network registry backing the network commands.
//   - sessions: The wallet session service used by every wallet command.
//   - dispatcher: The dispatch service used by the send command.
//   - intents: The intent service used by the prompt command.
//   - identity: The identity connected by commands that need session state.
//
// This function sets up shell completion and invokes the CLI framework to parse and run commands.
func Run(ctx context.Context, reg network.Registry, sessions walletsession.Service, dispatcher txdispatch.Service, intents intent.Service, identity walletsession.Identity) error {
	app := &cli.Command{
		EnableShellCompletion: true,
		Name:                  "walletd",
		Description:           "Command-line interface for the Stackboard wallet daemon.",
		Usage:                 "walletd [command] [flags]",
		Commands: []*cli.Command{
			dashboardCommand(sessions, identity),
			listNetworksCommand(reg),
			switchNetworkCommand(sessions),
			showBalancesCommand(sessions, identity),
			showHistoryCommand(sessions, identity),
			sendTransferCommand(sessions, dispatcher, identity),
			promptCommand(sessions, intents, dispatcher, identity),
		},
	}

	return app.Run(ctx, os.Args)
}
