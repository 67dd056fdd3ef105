package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"spingate-backend/internal/metrics"
	"spingate-backend/internal/models"
)

// DefaultDrawMax bounds each drawn value; the engine reduces it modulo the
// reel strip length.
const DefaultDrawMax = int64(1) << 31

// WalletAPI is the outbound money-movement surface the orchestrator drives.
// Implemented by WalletClient in production and by fakes in tests.
type WalletAPI interface {
	Debit(ctx context.Context, txID, partnerID, playerID, gameID string, amount int64, currency string) (*models.WalletResponse, error)
	Credit(ctx context.Context, txID, relatedTxID, partnerID, playerID, gameID string, amount int64, currency string) (*models.WalletResponse, error)
}

// SpinOrchestrator runs the debit -> outcome -> conditional credit sequence
// for one wager and reports the result. Rounds are strictly serialized per
// session via the session's round slot; sessions are independent.
type SpinOrchestrator struct {
	wallet  WalletAPI
	rng     RandomSource
	outcome OutcomeService
	rounds  RoundStore

	// DrawMax bounds each randomness value requested per spin.
	DrawMax int64
	// MaxBet caps the wager; zero means no cap.
	MaxBet int64
}

func NewSpinOrchestrator(wallet WalletAPI, rng RandomSource, outcome OutcomeService, rounds RoundStore) *SpinOrchestrator {
	return &SpinOrchestrator{
		wallet:  wallet,
		rng:     rng,
		outcome: outcome,
		rounds:  rounds,
		DrawMax: DefaultDrawMax,
	}
}

// HandleSpin drives one spin round to a terminal state and returns the
// message to push back to the client: a SPIN_RESULT when the round settled,
// an ERROR otherwise. Every submitted wager yields exactly one of the two.
func (o *SpinOrchestrator) HandleSpin(ctx context.Context, session *models.Session, bet int64) *models.Message {
	if err := session.BeginRound(); err != nil {
		if errors.Is(err, models.ErrRoundInFlight) {
			slog.Warn("wager rejected, round already in flight", "session_id", session.ID)
		}
		return models.NewErrorMessage("A round is already in progress")
	}
	defer session.EndRound()

	record := models.NewRoundRecord(session, bet)

	if err := models.ValidateBet(bet, o.MaxBet); err != nil {
		o.fail(ctx, record, err.Error())
		return models.NewErrorMessage(err.Error())
	}

	// The draw is sized to the game before any money moves, so a session
	// bound to an unconfigured game fails without touching the wallet.
	drawCount, err := o.outcome.ReelCount(session.GameCode)
	if err != nil {
		slog.Error("wager for unconfigured game rejected",
			"session_id", session.ID,
			"game_code", session.GameCode,
			"error", err)
		o.fail(ctx, record, err.Error())
		return models.NewErrorMessage("Game round failed")
	}

	// DEBITING: move the stake out of the partner wallet. The transaction
	// id minted here is the idempotency key for this movement.
	record.State = models.RoundStateDebiting
	record.DebitTxID = models.GenerateBetTransactionID(session.ID)

	debitStart := time.Now()
	debitResp, err := o.wallet.Debit(ctx, record.DebitTxID, session.PartnerID, session.PlayerID, session.GameCode, bet, session.Currency)
	metrics.WalletCallDuration.WithLabelValues(string(models.TransactionTypeBet)).Observe(time.Since(debitStart).Seconds())
	if err != nil {
		metrics.WalletCallsTotal.WithLabelValues(string(models.TransactionTypeBet), metrics.OutcomeError).Inc()
		slog.Error("debit failed, no funds moved",
			"session_id", session.ID,
			"round_id", record.RoundID,
			"debit_tx_id", record.DebitTxID,
			"error", err)
		o.fail(ctx, record, err.Error())
		return models.NewErrorMessage("Game round failed")
	}
	metrics.WalletCallsTotal.WithLabelValues(string(models.TransactionTypeBet), metrics.OutcomeOK).Inc()

	record.State = models.RoundStateDebited
	record.FinalBalance = debitResp.Balance

	// OUTCOME_PENDING: fresh randomness, then outcome determination. A
	// failure from here on leaves the debit unmatched in the partner
	// wallet; there is no automatic refund path, so the transaction ids
	// are logged and stored for out-of-band reconciliation.
	record.State = models.RoundStateOutcomePending

	randomness, err := o.rng.Draw(ctx, drawCount, o.DrawMax)
	if err != nil {
		o.failAfterDebit(ctx, record, err)
		return models.NewErrorMessage("Game round failed")
	}

	spinOutcome, err := o.outcome.DetermineOutcome(session.GameCode, randomness, bet)
	if err != nil {
		o.failAfterDebit(ctx, record, err)
		return models.NewErrorMessage("Game round failed")
	}

	record.State = models.RoundStateOutcomeReady
	record.TotalWin = spinOutcome.TotalWin

	// CREDITING only when there is a win; a losing round settles on the
	// post-debit balance.
	if spinOutcome.TotalWin > 0 {
		record.State = models.RoundStateCrediting
		record.CreditTxID = models.GenerateWinTransactionID(session.ID)

		creditStart := time.Now()
		creditResp, err := o.wallet.Credit(ctx, record.CreditTxID, record.DebitTxID, session.PartnerID, session.PlayerID, session.GameCode, spinOutcome.TotalWin, session.Currency)
		metrics.WalletCallDuration.WithLabelValues(string(models.TransactionTypeWin)).Observe(time.Since(creditStart).Seconds())
		if err != nil {
			metrics.WalletCallsTotal.WithLabelValues(string(models.TransactionTypeWin), metrics.OutcomeError).Inc()
			o.failAfterDebit(ctx, record, err)
			return models.NewErrorMessage("Game round failed")
		}
		metrics.WalletCallsTotal.WithLabelValues(string(models.TransactionTypeWin), metrics.OutcomeOK).Inc()

		record.FinalBalance = creditResp.Balance
	}

	record.State = models.RoundStateSettled
	record.EndedAt = time.Now().Unix()
	o.saveRound(ctx, record)
	metrics.RoundsTotal.WithLabelValues(string(models.RoundStateSettled)).Inc()

	slog.Info("round settled",
		"session_id", session.ID,
		"round_id", record.RoundID,
		"debit_tx_id", record.DebitTxID,
		"credit_tx_id", record.CreditTxID,
		"bet", record.BetAmount,
		"total_win", record.TotalWin,
		"balance", record.FinalBalance)

	return models.NewSpinResultMessage(&models.SpinResultPayload{
		Matrix:   spinOutcome.Matrix,
		TotalWin: spinOutcome.TotalWin,
		Balance:  record.FinalBalance,
	})
}

// fail finalizes a round that died before any money moved.
func (o *SpinOrchestrator) fail(ctx context.Context, record *models.RoundRecord, reason string) {
	record.State = models.RoundStateFailed
	record.FailReason = reason
	record.EndedAt = time.Now().Unix()
	o.saveRound(ctx, record)
	metrics.RoundsTotal.WithLabelValues(string(models.RoundStateFailed)).Inc()
}

// failAfterDebit finalizes a round whose debit succeeded but whose outcome
// or credit did not. The partner-side balance no longer matches the round's
// intended result; both transaction ids are preserved for reconciliation.
func (o *SpinOrchestrator) failAfterDebit(ctx context.Context, record *models.RoundRecord, cause error) {
	slog.Error("round failed after debit, manual reconciliation required",
		"session_id", record.SessionID,
		"round_id", record.RoundID,
		"debit_tx_id", record.DebitTxID,
		"credit_tx_id", record.CreditTxID,
		"bet", record.BetAmount,
		"total_win", record.TotalWin,
		"state", string(record.State),
		"error", cause)
	o.fail(ctx, record, cause.Error())
}

func (o *SpinOrchestrator) saveRound(ctx context.Context, record *models.RoundRecord) {
	if o.rounds == nil {
		return
	}
	if err := o.rounds.SaveRound(ctx, record); err != nil {
		slog.Warn("failed to persist round record",
			"round_id", record.RoundID,
			"debit_tx_id", record.DebitTxID,
			"error", err)
	}
}
