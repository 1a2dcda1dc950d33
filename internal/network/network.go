// Package network holds the fixed catalog of ledger environments the wallet
// can operate against and tracks which one is currently active. Everything
// derived from an address (balances, history) is scoped to a network, so the
// active selection is the invalidation boundary for the whole session.
package network

// ID identifies one of the known network environments.
type ID string

const (
	// Mainnet is the production Stacks network.
	Mainnet ID = "mainnet"

	// Testnet is the public test network.
	Testnet ID = "testnet"

	// Devnet is a local development network.
	Devnet ID = "devnet"
)

// DefaultID is the network used when no persisted selection exists or the
// persisted value is not recognized.
const DefaultID = Testnet

// Descriptor describes a single network environment. Descriptors are immutable
// once constructed; only the active selection inside the registry changes.
type Descriptor struct {
	ID         ID     // stable identifier, also the persistence value
	Name       string // human-readable display name
	APIBaseURL string // base URL of the ledger-indexing service
	BTCChain   string // BTC balance service chain segment; empty means unsupported
}

// SupportsBTC reports whether secondary-chain balance lookups are available on
// this network. Only the two production-grade environments carry a BTC chain.
func (d Descriptor) SupportsBTC() bool {
	return d.BTCChain != ""
}

// networks is the fixed, ordered catalog of known environments.
var networks = []Descriptor{
	{ID: Mainnet, Name: "Mainnet", APIBaseURL: "https://api.hiro.so", BTCChain: "main"},
	{ID: Testnet, Name: "Testnet", APIBaseURL: "https://api.testnet.hiro.so", BTCChain: "test3"},
	{ID: Devnet, Name: "Devnet", APIBaseURL: "http://localhost:3999"},
}

// All returns the catalog of known networks in display order. The returned
// slice is a copy; mutating it does not affect the catalog.
func All() []Descriptor {
	out := make([]Descriptor, len(networks))
	copy(out, networks)
	return out
}

// ByID looks up a network descriptor by its identifier.
func ByID(id ID) (Descriptor, bool) {
	for _, d := range networks {
		if d.ID == id {
			return d, true
		}
	}
	return Descriptor{}, false
}
