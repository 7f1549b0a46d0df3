package handler

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"nyn_restaurant/config"
	"nyn_restaurant/model"
)

// signatureTolerance bounds how stale a signed webhook timestamp may be.
const signatureTolerance = 5 * time.Minute

// Stripe is the payment gateway client. The API surface this service needs is
// two form-encoded POSTs and one signature check, so it talks to the REST API
// directly rather than carrying the full SDK.
type Stripe struct {
	Config model.StripeConfig
	Client *http.Client
}

func NewStripe() *Stripe {
	appURL := config.Config("APP_URL")
	return &Stripe{
		Config: model.StripeConfig{
			SecretKey:     config.Config("STRIPE_SECRET_KEY"),
			WebhookSecret: config.Config("STRIPE_WEBHOOK_SECRET"),
			APIBase:       config.ConfigOr("STRIPE_API_URL", "https://api.stripe.com"),
			SuccessURL:    appURL + "/order-confirmation?session_id={CHECKOUT_SESSION_ID}",
			CancelURL:     appURL + "/order",
		},
		Client: &http.Client{Timeout: 20 * time.Second},
	}
}

// CreatePaymentIntent prepares a charge and returns the client secret the
// storefront needs to collect the card.
func (s *Stripe) CreatePaymentIntent(req model.PaymentIntentRequest) (*model.PaymentIntentResult, error) {
	params := url.Values{}
	params.Set("amount", strconv.FormatInt(req.AmountCents, 10))
	params.Set("currency", "usd")
	params.Set("automatic_payment_methods[enabled]", "true")
	if req.ReceiptEmail != "" {
		params.Set("receipt_email", req.ReceiptEmail)
	}
	for key, value := range req.Metadata {
		params.Set(fmt.Sprintf("metadata[%s]", key), value)
	}

	var result model.PaymentIntentResult
	if err := s.postForm("/v1/payment_intents", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateCheckoutSession prepares a hosted checkout page for the same order.
func (s *Stripe) CreateCheckoutSession(req model.CheckoutSessionRequest) (*model.CheckoutSessionResult, error) {
	params := url.Values{}
	params.Set("mode", "payment")
	params.Set("success_url", s.Config.SuccessURL)
	params.Set("cancel_url", s.Config.CancelURL)
	params.Set("line_items[0][price_data][currency]", "usd")
	params.Set("line_items[0][price_data][product_data][name]", req.ProductName)
	params.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(req.AmountCents, 10))
	params.Set("line_items[0][quantity]", "1")
	if req.CustomerEmail != "" {
		params.Set("customer_email", req.CustomerEmail)
	}
	for key, value := range req.Metadata {
		params.Set(fmt.Sprintf("metadata[%s]", key), value)
	}

	var result model.CheckoutSessionResult
	if err := s.postForm("/v1/checkout/sessions", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *Stripe) postForm(path string, params url.Values, out any) error {
	httpReq, err := http.NewRequest(http.MethodPost, s.Config.APIBase+path, strings.NewReader(params.Encode()))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Authorization", "Bearer "+s.Config.SecretKey)
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.Client.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 {
		var apiErr model.StripeErrorResponse
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
			return fmt.Errorf("stripe %s: %s", path, apiErr.Error.Message)
		}
		return fmt.Errorf("stripe %s: status %d", path, resp.StatusCode)
	}

	return json.Unmarshal(body, out)
}

// VerifyWebhookSignature checks the Stripe-Signature header: an HMAC-SHA256
// over "{timestamp}.{payload}" with the endpoint's signing secret, with the
// timestamp bounded to limit replay. This is the only authentication on the
// webhook endpoint.
func (s *Stripe) VerifyWebhookSignature(payload []byte, header string, now time.Time) error {
	if header == "" {
		return fmt.Errorf("missing signature header")
	}

	var timestamp int64
	var signatures []string
	for _, part := range strings.Split(header, ",") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch kv[0] {
		case "t":
			ts, err := strconv.ParseInt(kv[1], 10, 64)
			if err != nil {
				return fmt.Errorf("malformed signature timestamp")
			}
			timestamp = ts
		case "v1":
			signatures = append(signatures, kv[1])
		}
	}
	if timestamp == 0 || len(signatures) == 0 {
		return fmt.Errorf("malformed signature header")
	}

	age := now.Sub(time.Unix(timestamp, 0))
	if age > signatureTolerance || age < -signatureTolerance {
		return fmt.Errorf("signature timestamp outside tolerance")
	}

	mac := hmac.New(sha256.New, []byte(s.Config.WebhookSecret))
	mac.Write([]byte(strconv.FormatInt(timestamp, 10)))
	mac.Write([]byte("."))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))

	for _, sig := range signatures {
		if hmac.Equal([]byte(expected), []byte(sig)) {
			return nil
		}
	}
	return fmt.Errorf("no matching signature")
}

// SignWebhookPayload produces a valid Stripe-Signature header value for a
// payload, the counterpart of VerifyWebhookSignature.
func (s *Stripe) SignWebhookPayload(payload []byte, now time.Time) string {
	ts := strconv.FormatInt(now.Unix(), 10)
	mac := hmac.New(sha256.New, []byte(s.Config.WebhookSecret))
	mac.Write([]byte(ts))
	mac.Write([]byte("."))
	mac.Write(payload)
	return fmt.Sprintf("t=%s,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}
