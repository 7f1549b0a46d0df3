package model

import "encoding/json"

type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
	APIBase       string
	SuccessURL    string
	CancelURL     string
}

type PaymentIntentRequest struct {
	AmountCents  int64
	ReceiptEmail string
	Metadata     map[string]string
}

type PaymentIntentResult struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
}

type CheckoutSessionRequest struct {
	AmountCents   int64
	CustomerEmail string
	ProductName   string
	Metadata      map[string]string
}

type CheckoutSessionResult struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type StripeErrorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// StripeEvent is the envelope delivered to the webhook endpoint.
type StripeEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object json.RawMessage `json:"object"`
	} `json:"data"`
}

// StripeEventObject covers the fields shared by payment intents and checkout
// sessions; both carry the order snapshot in Metadata.
type StripeEventObject struct {
	ID       string            `json:"id"`
	Object   string            `json:"object"`
	Metadata map[string]string `json:"metadata"`
}
