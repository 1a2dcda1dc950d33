package intent

import "context"

// Action classifies what a prompt asks the wallet to do.
type Action string

const (
	ActionTransfer   Action = "TRANSFER"
	ActionInvest     Action = "INVEST"
	ActionWithdraw   Action = "WITHDRAW"
	ActionSwap       Action = "SWAP"
	ActionGetBalance Action = "GET_BALANCE"
	ActionUnknown    Action = "UNKNOWN"
)

// Intent is a structured reading of a natural language prompt. Only Action
// and Rationale are always present; the remaining fields are populated when
// the prompt carries them.
type Intent struct {
	Action        Action
	TargetAddress string
	Amount        float64
	AssetType     string

	InvestmentStrategy string
	StockTicker        string
	ConfidenceLevel    float64 // 0 when the resolver reported none

	Rationale string
}

// Resolver defines the boundary to the external model that turns free-form
// prompts into structured intents. Resolution quality is entirely the
// resolver's concern; the service only consumes its output.
type Resolver interface {
	// ResolveIntent parses a prompt into a structured intent.
	//
	// Parameters:
	//   - ctx: controls cancellation and timeout.
	//   - prompt: the raw user prompt.
	//   - availableBalance: the user's spendable native balance, given to the
	//     resolver as context for investment sizing.
	//
	// Returns:
	//   - The structured intent.
	//   - An error if the resolver is unreachable or produced no intent.
	ResolveIntent(ctx context.Context, prompt string, availableBalance float64) (Intent, error)
}
