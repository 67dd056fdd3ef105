package models

import "errors"

// Error taxonomy for the gateway. Callers classify with errors.Is; wrapped
// detail carries the collaborator's reported cause.
var (
	// ErrInvalidCredential covers missing, expired and tampered session
	// credentials. The connection is refused.
	ErrInvalidCredential = errors.New("invalid session credential")

	// ErrUnknownPartner means the partner id has no configuration record.
	// The round fails before any money moves.
	ErrUnknownPartner = errors.New("unknown partner")

	// ErrWalletCallFailed is a transport or partner-reported failure on a
	// debit or credit call.
	ErrWalletCallFailed = errors.New("wallet call failed")

	// ErrOutcomeServiceFailed means randomness or outcome determination was
	// unavailable for the round.
	ErrOutcomeServiceFailed = errors.New("outcome service failed")

	// ErrMalformedMessage is a protocol violation on an inbound message.
	// The message is dropped; the connection stays open.
	ErrMalformedMessage = errors.New("malformed message")

	// ErrRoundInFlight rejects a wager while the session's prior round is
	// not yet terminal.
	ErrRoundInFlight = errors.New("round already in flight")

	// ErrSessionActive rejects a connection whose session id is already
	// registered on a live connection.
	ErrSessionActive = errors.New("session already active")
)
