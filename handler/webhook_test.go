package handler

import (
	"bytes"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func webhookApp() *fiber.App {
	app := fiber.New()
	app.Post("/api/webhooks/stripe", StripeWebhook)
	return app
}

func postWebhook(t *testing.T, app *fiber.App, payload []byte, signature string) int {
	t.Helper()
	req := httptest.NewRequest("POST", "/api/webhooks/stripe", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if signature != "" {
		req.Header.Set("Stripe-Signature", signature)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	return resp.StatusCode
}

func TestStripeWebhook_MissingSignature(t *testing.T) {
	t.Setenv("STRIPE_WEBHOOK_SECRET", "whsec_test_secret")

	code := postWebhook(t, webhookApp(), []byte(`{"type":"payment_intent.succeeded"}`), "")
	assert.Equal(t, fiber.StatusBadRequest, code)
}

func TestStripeWebhook_BadSignature(t *testing.T) {
	t.Setenv("STRIPE_WEBHOOK_SECRET", "whsec_test_secret")

	payload := []byte(`{"type":"payment_intent.succeeded"}`)
	forged := (&Stripe{}).SignWebhookPayload(payload, time.Now()) // signed with the wrong secret

	code := postWebhook(t, webhookApp(), payload, forged)
	assert.Equal(t, fiber.StatusBadRequest, code)
}

func TestStripeWebhook_IgnoredEventType(t *testing.T) {
	t.Setenv("STRIPE_WEBHOOK_SECRET", "whsec_test_secret")

	payload := []byte(`{"type":"charge.refunded","data":{"object":{"id":"ch_1"}}}`)
	sig := NewStripe().SignWebhookPayload(payload, time.Now())

	// acknowledged without touching the database
	code := postWebhook(t, webhookApp(), payload, sig)
	assert.Equal(t, fiber.StatusOK, code)
}

func TestStripeWebhook_MalformedPayload(t *testing.T) {
	t.Setenv("STRIPE_WEBHOOK_SECRET", "whsec_test_secret")

	payload := []byte(`{not json`)
	sig := NewStripe().SignWebhookPayload(payload, time.Now())

	code := postWebhook(t, webhookApp(), payload, sig)
	assert.Equal(t, fiber.StatusBadRequest, code)
}

func TestStripeWebhook_ObjectWithoutID(t *testing.T) {
	t.Setenv("STRIPE_WEBHOOK_SECRET", "whsec_test_secret")

	payload := []byte(`{"type":"payment_intent.succeeded","data":{"object":{"metadata":{}}}}`)
	sig := NewStripe().SignWebhookPayload(payload, time.Now())

	code := postWebhook(t, webhookApp(), payload, sig)
	assert.Equal(t, fiber.StatusBadRequest, code)
}

func TestStripeWebhook_MalformedMetadata(t *testing.T) {
	t.Setenv("STRIPE_WEBHOOK_SECRET", "whsec_test_secret")

	payload := []byte(`{"type":"payment_intent.succeeded","data":{"object":{"id":"pi_1","metadata":{"items":""}}}}`)
	sig := NewStripe().SignWebhookPayload(payload, time.Now())

	code := postWebhook(t, webhookApp(), payload, sig)
	assert.Equal(t, fiber.StatusBadRequest, code)
}
