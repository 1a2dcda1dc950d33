// Package intent bridges free-form user prompts and concrete wallet actions.
// A Resolver turns the prompt into a structured intent; the service then
// answers in plain text and, for a fully specified transfer, places the
// corresponding request into the session's pending slot so the user can
// confirm it. The service never dispatches anything itself.
package intent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/stackboard/walletd/internal/pkg/logger"
	"github.com/stackboard/walletd/internal/walletsession"
)

// Reply is the service's answer to a prompt. Transfer is set only when a
// fully specified transfer request was offered to the session.
type Reply struct {
	Text     string
	Transfer *walletsession.TransferRequest
}

// SessionStore is the slice of the wallet session the intent service needs.
type SessionStore interface {
	Snapshot() walletsession.Session
	OfferTransfer(ctx context.Context, req walletsession.TransferRequest) error
}

// Service answers user prompts.
type Service interface {
	// HandlePrompt resolves a prompt into an intent and acts on it.
	//
	// A complete transfer intent is offered to the session's pending slot; an
	// incomplete one yields a reply asking for the missing fields. Resolver
	// failures degrade to an apologetic reply and are never returned as
	// errors; the only error paths are the session rejecting an offered
	// transfer.
	HandlePrompt(ctx context.Context, prompt string) (Reply, error)
}

// service is the internal implementation of the Service interface.
type service struct {
	resolver Resolver
	sessions SessionStore
}

// Compile-time check to ensure *service implements the Service interface.
var _ Service = (*service)(nil)

// New creates an intent service on top of the given resolver and session
// store.
func New(resolver Resolver, sessions SessionStore) *service {
	return &service{
		resolver: resolver,
		sessions: sessions,
	}
}

// HandlePrompt resolves a prompt and builds the reply.
func (s *service) HandlePrompt(ctx context.Context, prompt string) (Reply, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return Reply{Text: "Please enter a command."}, nil
	}

	snap := s.sessions.Snapshot()
	balance := availableSTX(snap)

	in, err := s.resolver.ResolveIntent(ctx, prompt, balance)
	if err != nil {
		logger.Error(ctx, "intent resolution failed", "error", err)
		return Reply{Text: "Sorry, I had trouble understanding that. Please try again."}, nil
	}

	logger.Debug(ctx, "intent resolved", "action", in.Action, "rationale", in.Rationale)

	switch in.Action {
	case ActionTransfer:
		return s.replyTransfer(ctx, in)
	case ActionInvest:
		return replyInvest(in, balance), nil
	case ActionGetBalance:
		return Reply{Text: fmt.Sprintf("Your current available balance is approximately %g STX.", balance)}, nil
	case ActionWithdraw:
		return replyWithdraw(in), nil
	case ActionSwap:
		return Reply{Text: fmt.Sprintf("Swap functionality is not yet implemented, but I understand you want to perform a swap. %s", in.Rationale)}, nil
	default:
		return Reply{Text: "I'm not quite sure how to handle that. I can help with transfers, simulated investments, and checking your balance. Could you please rephrase your request?"}, nil
	}
}

// replyTransfer offers a complete transfer to the session or asks for what is
// missing.
func (s *service) replyTransfer(ctx context.Context, in Intent) (Reply, error) {
	if in.Amount <= 0 || in.AssetType == "" || in.TargetAddress == "" {
		return Reply{Text: "I see you want to make a transfer. To proceed, please provide the amount, asset (BTC or STX), and the recipient's address."}, nil
	}

	req := walletsession.TransferRequest{
		Asset:     walletsession.Asset(strings.ToUpper(in.AssetType)),
		Amount:    in.Amount,
		Recipient: in.TargetAddress,
	}

	if err := s.sessions.OfferTransfer(ctx, req); err != nil {
		if errors.Is(err, walletsession.ErrNotConnected) {
			return Reply{Text: "Connect a wallet before making transfers."}, nil
		}
		return Reply{}, err
	}

	return Reply{
		Text:     fmt.Sprintf("I'm preparing to transfer %g %s to %s. Please confirm the transaction.", req.Amount, req.Asset, req.Recipient),
		Transfer: &req,
	}, nil
}

// replyInvest follows the recommendation, strategy, and generic branches of
// the investment flow.
func replyInvest(in Intent, balance float64) Reply {
	switch {
	case in.StockTicker != "":
		confidence := "N/A"
		if in.ConfidenceLevel > 0 {
			confidence = fmt.Sprintf("%.0f", in.ConfidenceLevel*100)
		}
		return Reply{Text: fmt.Sprintf("Based on my analysis, a good investment could be %s. The prediction is a price rise with a confidence level of %s%%. Shall I proceed with a simulated investment?", in.StockTicker, confidence)}
	case in.InvestmentStrategy != "":
		return Reply{Text: fmt.Sprintf("Okay, I will execute the investment strategy: %q. I will use a portion of your %g STX balance for a simulated trade.", in.InvestmentStrategy, balance)}
	default:
		return Reply{Text: "I understand you want to invest. You can ask me for a stock recommendation or specify an investment strategy."}
	}
}

func replyWithdraw(in Intent) Reply {
	if in.Amount > 0 && in.AssetType != "" {
		return Reply{Text: fmt.Sprintf("I am preparing to withdraw %g %s. Please confirm.", in.Amount, strings.ToUpper(in.AssetType))}
	}
	return Reply{Text: "I understand you want to withdraw. Please specify the amount and asset type (e.g. BTC or STX)."}
}

// availableSTX reads the native balance out of a session snapshot.
func availableSTX(snap walletsession.Session) float64 {
	for _, b := range snap.Balances {
		if b.Asset == walletsession.AssetSTX {
			return b.Amount
		}
	}
	return 0
}
