package services

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"spingate-backend/internal/models"
)

// SignatureHeader carries the HMAC-SHA256 of the exact request body, keyed
// with the partner's shared secret. The wallet recomputes it over the bytes
// it received and rejects on mismatch.
const SignatureHeader = "X-Gateway-Signature"

// WalletClient sends signed debit and credit requests to partner wallet
// endpoints. Each call is issued at most once; the transaction id is the
// idempotency key, so a caller retrying after an ambiguous failure must
// reuse the identical id.
type WalletClient struct {
	partners PartnerStore
	client   *http.Client
}

func NewWalletClient(partners PartnerStore, timeout time.Duration) *WalletClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &WalletClient{
		partners: partners,
		client:   &http.Client{Timeout: timeout},
	}
}

func (w *WalletClient) Debit(ctx context.Context, txID, partnerID, playerID, gameID string, amount int64, currency string) (*models.WalletResponse, error) {
	req := &models.WalletRequest{
		TransactionID:   txID,
		PartnerID:       partnerID,
		PlayerID:        playerID,
		GameID:          gameID,
		Amount:          amount,
		Currency:        currency,
		TransactionType: models.TransactionTypeBet,
	}
	return w.send(ctx, partnerID, "/debit", req)
}

func (w *WalletClient) Credit(ctx context.Context, txID, relatedTxID, partnerID, playerID, gameID string, amount int64, currency string) (*models.WalletResponse, error) {
	req := &models.WalletRequest{
		TransactionID:        txID,
		RelatedTransactionID: relatedTxID,
		PartnerID:            partnerID,
		PlayerID:             playerID,
		GameID:               gameID,
		Amount:               amount,
		Currency:             currency,
		TransactionType:      models.TransactionTypeWin,
	}
	return w.send(ctx, partnerID, "/credit", req)
}

func (w *WalletClient) send(ctx context.Context, partnerID, path string, req *models.WalletRequest) (*models.WalletResponse, error) {
	if req.Amount < 0 {
		return nil, fmt.Errorf("%w: negative amount %d", models.ErrWalletCallFailed, req.Amount)
	}

	partner, err := w.partners.GetPartner(partnerID)
	if err != nil {
		return nil, err
	}

	nonce, err := models.GenerateNonce()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrWalletCallFailed, err)
	}
	req.Nonce = nonce
	req.Timestamp = time.Now().UnixMilli()

	// The signature covers the exact bytes on the wire, so the body is
	// marshaled once and those bytes are both signed and sent.
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal request: %v", models.ErrWalletCallFailed, err)
	}
	signature := SignBody(body, partner.Secret)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, partner.WalletURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrWalletCallFailed, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set(SignatureHeader, signature)

	resp, err := w.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", models.ErrWalletCallFailed, req.TransactionType, req.TransactionID, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", models.ErrWalletCallFailed, err)
	}

	var walletResp models.WalletResponse
	if err := json.Unmarshal(respBody, &walletResp); err != nil {
		return nil, fmt.Errorf("%w: decode response (http %d): %v", models.ErrWalletCallFailed, resp.StatusCode, err)
	}

	if resp.StatusCode != http.StatusOK || walletResp.Status != models.WalletStatusOK {
		reason := walletResp.Error
		if reason == "" {
			reason = fmt.Sprintf("http %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("%w: %s %s: partner said %q", models.ErrWalletCallFailed, req.TransactionType, req.TransactionID, reason)
	}

	return &walletResp, nil
}

// SignBody computes the hex HMAC-SHA256 of a serialized wallet request body
// under a partner's shared secret.
func SignBody(body []byte, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}

// VerifyBodySignature is the receiving side of the trust boundary: it
// recomputes the code over the received bytes and compares in constant time.
func VerifyBodySignature(body []byte, secret, signature string) bool {
	expected := SignBody(body, secret)
	return hmac.Equal([]byte(expected), []byte(signature))
}
