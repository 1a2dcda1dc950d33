package cli

import (
	"context"
	"fmt"

	"github.com/stackboard/walletd/internal/network"
	"github.com/stackboard/walletd/internal/walletsession"

	"github.com/urfave/cli/v3"
)

// listNetworksCommand returns a CLI command that lists the known networks and
// marks the active one.
//
// Usage example:
//
//	walletd networks
func listNetworksCommand(reg network.Registry) *cli.Command {
	return &cli.Command{
		Name:        "networks",
		Description: "List the known networks and show which one is active.",
		Usage:       "Prints the network catalog.",
		Action: func(ctx context.Context, c *cli.Command) error {
			active := reg.Active()
			for _, d := range reg.Networks() {
				marker := " "
				if d.ID == active.ID {
					marker = "*"
				}
				fmt.Printf("%s %-8s %s\n", marker, d.ID, d.APIBaseURL)
			}
			return nil
		},
	}
}

// switchNetworkCommand returns a CLI command that changes the active network.
// The switch goes through the wallet session so every piece of network-scoped
// state is invalidated.
//
// Usage example:
//
//	walletd switch-network --network mainnet
func switchNetworkCommand(sessions walletsession.Service) *cli.Command {
	return &cli.Command{
		Name:        "switch-network",
		Description: "Change the active network. The wallet session is reset and must reconnect.",
		Usage:       "Switches the active network. Must provide the network id.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "network",
				Usage:    "Network id (mainnet, testnet, devnet)",
				Required: true,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			id := network.ID(c.String("network"))

			if err := sessions.SwitchNetwork(ctx, id); err != nil {
				return err
			}

			fmt.Printf("active network is now %s\n", id)
			return nil
		},
	}
}
