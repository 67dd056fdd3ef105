package services

import "time"

const (
	KeyRound         = "round:%s"          // by debit transaction id
	KeySessionRounds = "session:%s:rounds" // round ids per session

	// Round records exist to support out-of-band reconciliation, so they
	// outlive the session by a comfortable margin.
	TTLRound = 30 * 24 * time.Hour
)
