package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(baseURL string) *ProcessorClient {
	return &ProcessorClient{
		Creds: ProcessorCredentials{
			ApplicationID: "app-test",
			LocationID:    "loc-test",
			Environment:   "sandbox",
			AccessToken:   "token-test",
			SignatureKey:  "sig-key",
		},
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 5 * time.Second},
	}
}

func TestChargeSuccess(t *testing.T) {
	var received map[string]interface{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v2/payments", r.URL.Path)
		require.Equal(t, "Bearer token-test", r.Header.Get("Authorization"))

		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"payment": map[string]string{
				"id":          "pay_123",
				"status":      "COMPLETED",
				"receipt_url": "https://receipts.example/pay_123",
			},
		})
	}))
	defer srv.Close()

	result, err := testClient(srv.URL).Charge(context.Background(), ChargeRequest{
		SourceID:       "cnon:token",
		AmountMinor:    6000,
		Currency:       "EUR",
		OrderID:        "order-42",
		IdempotencyKey: "order-42-1700000000",
		Note:           "Commande Mementa",
	})

	require.NoError(t, err)
	assert.Equal(t, "pay_123", result.PaymentID)
	assert.Equal(t, "COMPLETED", result.Status)
	assert.Equal(t, "https://receipts.example/pay_123", result.ReceiptURL)

	// Le corps envoyé porte bien la clé d'idempotence et le montant en centimes
	assert.Equal(t, "order-42-1700000000", received["idempotency_key"])
	assert.Equal(t, "order-42", received["reference_id"])
	money := received["amount_money"].(map[string]interface{})
	assert.EqualValues(t, 6000, money["amount"])
	assert.Equal(t, "EUR", money["currency"])
}

func TestChargeDeclined(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"errors": []map[string]string{
				{"code": "INSUFFICIENT_FUNDS", "detail": "Insufficient funds in account"},
			},
		})
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Charge(context.Background(), ChargeRequest{
		SourceID:       "cnon:token",
		AmountMinor:    6000,
		Currency:       "EUR",
		OrderID:        "order-42",
		IdempotencyKey: "order-42-1700000000",
	})

	var decline *DeclineError
	require.ErrorAs(t, err, &decline)
	assert.Equal(t, "INSUFFICIENT_FUNDS", decline.Code)
}

func TestChargeNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // serveur déjà fermé = erreur réseau

	_, err := testClient(srv.URL).Charge(context.Background(), ChargeRequest{
		SourceID:    "cnon:token",
		AmountMinor: 6000,
		Currency:    "EUR",
	})

	require.Error(t, err)
	var decline *DeclineError
	assert.False(t, errors.As(err, &decline), "une erreur réseau n'est pas un refus")
}

func TestDeclineMessage(t *testing.T) {
	assert.Contains(t, DeclineMessage("CARD_DECLINED"), "refusée")
	assert.Contains(t, DeclineMessage("INSUFFICIENT_FUNDS"), "insuffisants")
	assert.Contains(t, DeclineMessage("CARD_EXPIRED"), "expirée")
	assert.Contains(t, DeclineMessage("CVV_FAILURE"), "CVV")
	assert.NotEmpty(t, DeclineMessage("UN_CODE_INCONNU"))
}

func TestToMinorUnits(t *testing.T) {
	assert.EqualValues(t, 6000, ToMinorUnits(60.00))
	assert.EqualValues(t, 2250, ToMinorUnits(22.50))
	// Arrondi au centime le plus proche, pas de troncature flottante
	assert.EqualValues(t, 1999, ToMinorUnits(19.99))
	assert.EqualValues(t, 10, ToMinorUnits(0.1))
}

func TestVerifyWebhookSignature(t *testing.T) {
	key := "sig-key"
	url := "https://boutique.example/api/webhooks/processor"
	body := []byte(`{"type":"payment.updated"}`)

	mac := hmac.New(sha256.New, []byte(key))
	mac.Write([]byte(url))
	mac.Write(body)
	good := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	assert.True(t, VerifyWebhookSignature(key, url, body, good))
	assert.False(t, VerifyWebhookSignature(key, url, body, "c2lnbmF0dXJlLWJpZG9u"))
	assert.False(t, VerifyWebhookSignature("autre-cle", url, body, good))
	assert.False(t, VerifyWebhookSignature(key, "https://autre.example/hook", body, good))
	assert.False(t, VerifyWebhookSignature(key, url, []byte(`{"type":"falsifie"}`), good))
}
