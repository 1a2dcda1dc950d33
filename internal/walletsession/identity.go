package walletsession

import "github.com/stackboard/walletd/internal/network"

// AddressSet holds the addresses a wallet profile carries for one asset
// family, keyed by the two address-bearing environments. Devnet reuses the
// testnet address space.
type AddressSet struct {
	Mainnet string
	Testnet string
}

// For returns the address to use on the given network, or the empty string
// when the profile lacks one. Every network other than mainnet resolves to the
// testnet address.
func (a AddressSet) For(id network.ID) string {
	if id == network.Mainnet {
		return a.Mainnet
	}
	return a.Testnet
}

// Profile carries the per-network addresses of an authenticated wallet, one
// set per asset family.
type Profile struct {
	STX AddressSet // ledger-native addresses
	BTC AddressSet // secondary-chain addresses
}

// Identity represents an authenticated wallet connection. It is created on
// connect, owned exclusively by the session store, and destroyed on
// disconnect.
type Identity struct {
	SessionID string // opaque session token
	Profile   Profile
}

// ResolveAddresses derives the (native, secondary) address pair for the given
// network from a wallet profile. It is a pure function: no I/O, no side
// effects. Missing addresses resolve to empty strings.
func ResolveAddresses(p Profile, d network.Descriptor) (stxAddress, btcAddress string) {
	return p.STX.For(d.ID), p.BTC.For(d.ID)
}
