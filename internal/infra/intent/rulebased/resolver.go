// Package rulebased implements the intent resolver port with keyword and
// pattern matching. It is the daemon's built-in fallback when no external
// model is configured: good enough for well-formed commands, and honest
// about everything else by reporting an unknown action.
package rulebased

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/stackboard/walletd/internal/intent"
)

var (
	// amountPattern matches a decimal amount optionally followed by an asset
	// symbol, e.g. "25", "0.5 BTC", "100 stx".
	amountPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(stx|btc|usdt)?`)

	// addressPattern matches ledger address shapes: the native S-prefixed
	// c32 form and bech32 btc addresses.
	addressPattern = regexp.MustCompile(`\b(S[PTM][0-9A-HJKMNP-Z]{20,}|(?:bc1|tb1)[0-9a-z]{20,})\b`)
)

// resolver parses prompts with fixed rules.
type resolver struct{}

// Ensure resolver implements the intent port at compile time.
var _ intent.Resolver = (*resolver)(nil)

// NewResolver creates a rule-based intent resolver.
func NewResolver() *resolver {
	return &resolver{}
}

// ResolveIntent classifies the prompt by keywords and extracts the transfer
// fields it can find. It never fails; prompts it cannot classify resolve to
// an unknown action.
func (resolver) ResolveIntent(_ context.Context, prompt string, _ float64) (intent.Intent, error) {
	lowered := strings.ToLower(prompt)

	switch {
	case containsAny(lowered, "balance", "how much"):
		return intent.Intent{
			Action:    intent.ActionGetBalance,
			Rationale: "The prompt asks about the wallet balance.",
		}, nil

	case containsAny(lowered, "send", "transfer", "pay"):
		in := intent.Intent{
			Action:        intent.ActionTransfer,
			TargetAddress: firstAddress(prompt),
			Rationale:     "The prompt asks to move funds to another address.",
		}
		in.Amount, in.AssetType = firstAmount(lowered)
		return in, nil

	case containsAny(lowered, "withdraw"):
		in := intent.Intent{
			Action:    intent.ActionWithdraw,
			Rationale: "The prompt asks to withdraw funds.",
		}
		in.Amount, in.AssetType = firstAmount(lowered)
		return in, nil

	case containsAny(lowered, "swap", "exchange"):
		return intent.Intent{
			Action:    intent.ActionSwap,
			Rationale: "The prompt asks to exchange one asset for another.",
		}, nil

	case containsAny(lowered, "invest", "stock", "buy shares"):
		in := intent.Intent{
			Action:    intent.ActionInvest,
			Rationale: "The prompt asks for an investment.",
		}
		if idx := strings.Index(lowered, "strategy"); idx >= 0 {
			in.InvestmentStrategy = strings.TrimSpace(prompt[idx+len("strategy"):])
		}
		return in, nil

	default:
		return intent.Intent{
			Action:    intent.ActionUnknown,
			Rationale: "The prompt does not match any supported wallet action.",
		}, nil
	}
}

// containsAny reports whether s contains one of the given substrings.
func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// firstAmount extracts the first amount and, when present, the asset symbol
// next to it. The asset comes back upper-cased.
func firstAmount(lowered string) (float64, string) {
	m := amountPattern.FindStringSubmatch(lowered)
	if m == nil {
		return 0, ""
	}

	amount, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, ""
	}
	return amount, strings.ToUpper(m[2])
}

// firstAddress extracts the first address-shaped token from the prompt.
func firstAddress(prompt string) string {
	return addressPattern.FindString(prompt)
}
