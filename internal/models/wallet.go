package models

type TransactionType string

const (
	TransactionTypeBet TransactionType = "BET"
	TransactionTypeWin TransactionType = "WIN"
)

// WalletRequest is the signed request body sent to a partner's wallet API.
// The transaction id is the idempotency key: resending the same id must
// never move money twice on the partner side. Nonce and timestamp feed the
// partner's replay window.
type WalletRequest struct {
	TransactionID        string          `json:"transaction_id"`
	RelatedTransactionID string          `json:"related_transaction_id,omitempty"`
	PartnerID            string          `json:"partner_id"`
	PlayerID             string          `json:"player_id"`
	GameID               string          `json:"game_id"`
	Amount               int64           `json:"amount"`
	Currency             string          `json:"currency"`
	TransactionType      TransactionType `json:"transaction_type"`
	Nonce                string          `json:"nonce"`
	Timestamp            int64           `json:"timestamp"`
}

const WalletStatusOK = "ok"

// WalletResponse is what the partner wallet returns for a debit or credit.
// The partner is the system of record for balance; the gateway never caches
// it beyond the most recent response.
type WalletResponse struct {
	Status  string `json:"status"`
	Balance int64  `json:"balance"`
	Error   string `json:"error,omitempty"`
}

// PartnerRecord is the static configuration for one partner: the shared
// secret used to sign wallet calls and the wallet endpoint base URL.
type PartnerRecord struct {
	ID        string `json:"id"`
	Secret    string `json:"secret"`
	WalletURL string `json:"wallet_url"`
}
