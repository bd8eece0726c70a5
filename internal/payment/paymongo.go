package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"floramia-be/internal/config"
	"floramia-be/internal/logger"

	"go.uber.org/zap"
)

// allowedMethods are the checkout methods offered on the hosted page.
var allowedMethods = []string{"card", "gcash", "paymaya", "grab_pay"}

const statementDescriptor = "Floramia Flower Shop"

type paymongoGateway struct {
	secretKey     string
	baseURL       string
	callbackToken string
	successURL    string
	failureURL    string
	httpClient    *http.Client
}

func NewPayMongoGateway(cfg *config.Config) Gateway {
	if cfg.PayMongoSecretKey == "" {
		logger.L().Warn("PayMongo secret key is empty")
	}

	return &paymongoGateway{
		secretKey:     cfg.PayMongoSecretKey,
		baseURL:       strings.TrimRight(cfg.PayMongoBaseURL, "/"),
		callbackToken: cfg.WebhookToken,
		successURL:    cfg.SuccessURL,
		failureURL:    cfg.FailureURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// toCentavos converts a peso amount to integer minor units.
func toCentavos(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

type intentResponse struct {
	IntentID          string `json:"intent_id"`
	ClientRedirectKey string `json:"client_redirect_key"`
}

func (g *paymongoGateway) CreateIntent(ctx context.Context, req IntentRequest) (*Intent, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("order_id", req.OrderID),
		zap.Float64("amount", req.Amount),
	)

	body := map[string]interface{}{
		"amount":               toCentavos(req.Amount),
		"currency":             "PHP",
		"allowed_methods":      allowedMethods,
		"description":          req.Description,
		"statement_descriptor": statementDescriptor,
		"metadata": map[string]string{
			"order_id":       req.OrderID,
			"customer_email": req.CustomerEmail,
			"customer_name":  req.CustomerName,
		},
	}
	// return URLs the hosted checkout page redirects the shopper to
	if g.successURL != "" || g.failureURL != "" {
		body["redirect"] = map[string]string{
			"success": g.successURL,
			"failed":  g.failureURL,
		}
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		log.Error("failed to marshal intent request", zap.Error(err))
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST",
		g.baseURL+"/payment-intents", bytes.NewBuffer(jsonBody))
	if err != nil {
		log.Error("failed creating request", zap.Error(err))
		return nil, err
	}

	httpReq.SetBasicAuth(g.secretKey, "")
	httpReq.Header.Add("Content-Type", "application/json")

	log.Info("sending payment intent request")

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		log.Error("gateway request failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error("failed to read gateway response", zap.Error(err))
		return nil, fmt.Errorf("%w: read response: %v", ErrGateway, err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		log.Error("gateway returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", bodyBytes),
		)
		return nil, fmt.Errorf("%w: %s", ErrGateway, string(bodyBytes))
	}

	var res intentResponse
	if err := json.Unmarshal(bodyBytes, &res); err != nil {
		log.Error("failed decoding gateway response", zap.Error(err))
		return nil, fmt.Errorf("%w: decode response: %v", ErrGateway, err)
	}

	if res.IntentID == "" || res.ClientRedirectKey == "" {
		return nil, fmt.Errorf("%w: incomplete response", ErrGateway)
	}

	log.Info("payment intent created", zap.String("intent_id", res.IntentID))

	return &Intent{
		IntentID:    res.IntentID,
		RedirectURL: fmt.Sprintf("%s/payments/%s", g.baseURL, res.ClientRedirectKey),
	}, nil
}

// VerifySignature checks the gateway callback token header. Verification is
// skipped when no token is configured (development).
func (g *paymongoGateway) VerifySignature(r *http.Request) error {
	if g.callbackToken == "" {
		return nil
	}
	if r.Header.Get("x-callback-token") != g.callbackToken {
		return ErrInvalidSignature
	}
	return nil
}
