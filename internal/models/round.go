package models

import "time"

type RoundState string

const (
	RoundStateReceived       RoundState = "RECEIVED"
	RoundStateDebiting       RoundState = "DEBITING"
	RoundStateDebited        RoundState = "DEBITED"
	RoundStateOutcomePending RoundState = "OUTCOME_PENDING"
	RoundStateOutcomeReady   RoundState = "OUTCOME_READY"
	RoundStateCrediting      RoundState = "CREDITING"
	RoundStateSettled        RoundState = "SETTLED"
	RoundStateFailed         RoundState = "FAILED"
)

// Terminal reports whether a round state is final for the round.
func (s RoundState) Terminal() bool {
	return s == RoundStateSettled || s == RoundStateFailed
}

// RoundRecord is the reconciliation record of one spin round. It is written
// to the round store when the round reaches a terminal state so an operator
// can match debits against outcomes and credits after a partial failure.
type RoundRecord struct {
	RoundID      string     `json:"round_id" redis:"round_id"`
	SessionID    string     `json:"session_id" redis:"session_id"`
	PartnerID    string     `json:"partner_id" redis:"partner_id"`
	PlayerID     string     `json:"player_id" redis:"player_id"`
	GameCode     string     `json:"game_code" redis:"game_code"`
	BetAmount    int64      `json:"bet_amount" redis:"bet_amount"`
	DebitTxID    string     `json:"debit_tx_id" redis:"debit_tx_id"`
	CreditTxID   string     `json:"credit_tx_id,omitempty" redis:"credit_tx_id"`
	TotalWin     int64      `json:"total_win" redis:"total_win"`
	FinalBalance int64      `json:"final_balance" redis:"final_balance"`
	State        RoundState `json:"state" redis:"state"`
	FailReason   string     `json:"fail_reason,omitempty" redis:"fail_reason"`
	StartedAt    int64      `json:"started_at" redis:"started_at"`
	EndedAt      int64      `json:"ended_at" redis:"ended_at"`
}

// SpinOutcome is what the outcome service returns for one wager: the visible
// symbol window in row-major order and the total win in cents.
type SpinOutcome struct {
	Matrix   [][]string `json:"matrix"`
	TotalWin int64      `json:"total_win"`
}

func NewRoundRecord(session *Session, bet int64) *RoundRecord {
	return &RoundRecord{
		RoundID:   GenerateRoundID(),
		SessionID: session.ID,
		PartnerID: session.PartnerID,
		PlayerID:  session.PlayerID,
		GameCode:  session.GameCode,
		BetAmount: bet,
		State:     RoundStateReceived,
		StartedAt: time.Now().Unix(),
	}
}
