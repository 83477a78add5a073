package services

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"os"
	"sync"
	"time"

	"mementa_back_end/internal/utils"
)

// Client du processeur de paiement. Le widget carte et la tokenisation
// restent côté navigateur : ici on ne manipule que des tokens à usage
// unique, jamais de données carte.

// ProcessorCredentials regroupe les identifiants du processeur.
// ApplicationID/LocationID/Environment sont publics (servis au SDK client),
// AccessToken et SignatureKey ne sortent jamais du serveur.
type ProcessorCredentials struct {
	ApplicationID string `json:"application_id"`
	LocationID    string `json:"location_id"`
	Environment   string `json:"environment"`
	AccessToken   string `json:"-"`
	SignatureKey  string `json:"-"`
}

type ProcessorClient struct {
	Creds      ProcessorCredentials
	BaseURL    string
	HTTPClient *http.Client
}

// Bootstrap partagé : tous les appels concurrents convergent sur une seule
// initialisation. L'état est terminal — après une erreur, pas de nouvelle
// tentative sans redémarrage du process.
var (
	bootOnce   sync.Once
	bootClient *ProcessorClient
	bootErr    error
)

// ProcessorBootstrap initialise le client au premier appel et le réutilise ensuite
func ProcessorBootstrap() (*ProcessorClient, error) {
	bootOnce.Do(func() {
		bootClient, bootErr = bootstrapProcessor(context.Background(), utils.DefaultRetryPolicy())
		if bootErr != nil {
			log.Printf("❌ Bootstrap processeur de paiement échoué: %v", bootErr)
		} else {
			log.Printf("✅ Processeur de paiement prêt (%s)", bootClient.Creds.Environment)
		}
	})
	return bootClient, bootErr
}

func bootstrapProcessor(ctx context.Context, policy utils.RetryPolicy) (*ProcessorClient, error) {
	creds := ProcessorCredentials{
		ApplicationID: os.Getenv("PROCESSOR_APPLICATION_ID"),
		LocationID:    os.Getenv("PROCESSOR_LOCATION_ID"),
		Environment:   os.Getenv("PROCESSOR_ENVIRONMENT"),
		AccessToken:   os.Getenv("PROCESSOR_ACCESS_TOKEN"),
		SignatureKey:  os.Getenv("PROCESSOR_WEBHOOK_SIGNATURE_KEY"),
	}
	if creds.Environment == "" {
		creds.Environment = "sandbox"
	}
	if creds.ApplicationID == "" || creds.LocationID == "" || creds.AccessToken == "" {
		return nil, fmt.Errorf("identifiants processeur manquants")
	}

	client := &ProcessorClient{
		Creds:      creds,
		BaseURL:    processorBaseURL(creds.Environment),
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}

	// Valide les identifiants auprès du processeur, avec backoff sur
	// les erreurs transitoires (3 tentatives, 1s/2s/4s)
	if err := policy.Do(ctx, func() error {
		return client.ping(ctx)
	}); err != nil {
		return nil, fmt.Errorf("validation des identifiants échouée: %v", err)
	}

	return client, nil
}

func processorBaseURL(environment string) string {
	if url := os.Getenv("PROCESSOR_API_URL"); url != "" {
		return url
	}
	if environment == "production" {
		return "https://connect.payprocessor.com"
	}
	return "https://connect.payprocessor-sandbox.com"
}

// ping vérifie que la location configurée existe et est accessible
func (p *ProcessorClient) ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/v2/locations/%s", p.BaseURL, p.Creds.LocationID), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+p.Creds.AccessToken)

	resp, err := p.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("processeur a répondu %d", resp.StatusCode)
	}
	return nil
}

// --- Encaissement ---

type ChargeRequest struct {
	SourceID          string // token carte à usage unique
	VerificationToken string // 3DS, optionnel
	AmountMinor       int64  // montant en centimes
	Currency          string
	OrderID           string
	IdempotencyKey    string
	Note              string
}

type ChargeResult struct {
	PaymentID  string
	Status     string
	ReceiptURL string
}

// DeclineError : refus déclaré par le processeur (carte refusée, fonds
// insuffisants…), distinct d'une erreur réseau.
type DeclineError struct {
	Code   string
	Detail string
}

func (e *DeclineError) Error() string {
	return fmt.Sprintf("paiement refusé (%s): %s", e.Code, e.Detail)
}

type chargePayload struct {
	IdempotencyKey    string      `json:"idempotency_key"`
	SourceID          string      `json:"source_id"`
	VerificationToken string      `json:"verification_token,omitempty"`
	AmountMoney       amountMoney `json:"amount_money"`
	LocationID        string      `json:"location_id"`
	ReferenceID       string      `json:"reference_id"`
	Note              string      `json:"note,omitempty"`
}

type amountMoney struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type chargeResponse struct {
	Payment struct {
		ID         string `json:"id"`
		Status     string `json:"status"`
		ReceiptURL string `json:"receipt_url"`
	} `json:"payment"`
	Errors []struct {
		Code   string `json:"code"`
		Detail string `json:"detail"`
	} `json:"errors"`
}

// Charge encaisse un token. Pas de retry ici : la clé d'idempotence
// protège contre les doublons, le webhook réconcilie les cas ambigus.
func (p *ProcessorClient) Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error) {
	body, err := json.Marshal(chargePayload{
		IdempotencyKey:    req.IdempotencyKey,
		SourceID:          req.SourceID,
		VerificationToken: req.VerificationToken,
		AmountMoney:       amountMoney{Amount: req.AmountMinor, Currency: req.Currency},
		LocationID:        p.Creds.LocationID,
		ReferenceID:       req.OrderID,
		Note:              req.Note,
	})
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.BaseURL+"/v2/payments", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+p.Creds.AccessToken)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("erreur réseau processeur: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var parsed chargeResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("réponse processeur illisible: %v", err)
	}

	if resp.StatusCode != http.StatusOK || len(parsed.Errors) > 0 {
		code := "GENERIC_DECLINE"
		detail := fmt.Sprintf("statut HTTP %d", resp.StatusCode)
		if len(parsed.Errors) > 0 {
			code = parsed.Errors[0].Code
			detail = parsed.Errors[0].Detail
		}
		return nil, &DeclineError{Code: code, Detail: detail}
	}

	return &ChargeResult{
		PaymentID:  parsed.Payment.ID,
		Status:     parsed.Payment.Status,
		ReceiptURL: parsed.Payment.ReceiptURL,
	}, nil
}

// DeclineMessage traduit un code de refus en message utilisateur
func DeclineMessage(code string) string {
	switch code {
	case "CARD_DECLINED", "GENERIC_DECLINE":
		return "Votre carte a été refusée. Veuillez essayer une autre carte."
	case "INSUFFICIENT_FUNDS":
		return "Fonds insuffisants sur la carte."
	case "CARD_EXPIRED", "EXPIRATION_FAILURE":
		return "La carte est expirée."
	case "CVV_FAILURE":
		return "Le cryptogramme visuel (CVV) est incorrect."
	case "INVALID_CARD":
		return "Le numéro de carte est invalide."
	default:
		return "Le paiement a été refusé. Veuillez vérifier vos informations de carte."
	}
}

// ToMinorUnits convertit un montant en euros vers des centimes
func ToMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// VerifyWebhookSignature vérifie la signature HMAC-SHA256 d'une
// notification : HMAC(clé, url de notification + corps brut), en base64.
func VerifyWebhookSignature(signatureKey, notificationURL string, body []byte, signature string) bool {
	mac := hmac.New(sha256.New, []byte(signatureKey))
	mac.Write([]byte(notificationURL))
	mac.Write(body)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
