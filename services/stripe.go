package services

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// StripeClient talks to the Stripe REST API directly (form-encoded, basic
// auth with the secret key). Only the endpoints the platform needs are
// wrapped: hosted Checkout Session creation and line-item retrieval.
type StripeClient struct {
	httpClient *resty.Client
	secretKey  string
	logger     *zap.Logger
}

func NewStripeClient(logger *zap.Logger) *StripeClient {
	secretKey := os.Getenv("STRIPE_SECRET_KEY")

	client := resty.New().
		SetBaseURL("https://api.stripe.com").
		SetTimeout(30 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(5 * time.Second).
		SetBasicAuth(secretKey, "").
		SetHeader("Content-Type", "application/x-www-form-urlencoded")

	return &StripeClient{
		httpClient: client,
		secretKey:  secretKey,
		logger:     logger,
	}
}

// Enabled reports whether a secret key is configured. Routes degrade to mock
// behavior when it is not.
func (c *StripeClient) Enabled() bool {
	return c.secretKey != ""
}

type CheckoutLine struct {
	Title           string
	UnitAmountCents int64
	Quantity        int
}

type CheckoutParams struct {
	Lines      []CheckoutLine
	Currency   string
	SuccessURL string
	CancelURL  string

	// ConnectAccountID routes the payment to a seller sub-account with
	// ApplicationFeeCents deducted. Both empty in demo mode.
	ConnectAccountID    string
	ApplicationFeeCents int64

	Metadata map[string]string
}

type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type stripeErrorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// CreateCheckoutSession requests a hosted payment page and returns its
// redirect URL.
func (c *StripeClient) CreateCheckoutSession(p CheckoutParams) (*CheckoutSession, error) {
	form := map[string]string{
		"mode":        "payment",
		"success_url": p.SuccessURL,
		"cancel_url":  p.CancelURL,
	}
	for i, line := range p.Lines {
		k := fmt.Sprintf("line_items[%d]", i)
		form[k+"[quantity]"] = strconv.Itoa(line.Quantity)
		form[k+"[price_data][currency]"] = p.Currency
		form[k+"[price_data][unit_amount]"] = strconv.FormatInt(line.UnitAmountCents, 10)
		form[k+"[price_data][product_data][name]"] = line.Title
	}
	if p.ConnectAccountID != "" {
		form["payment_intent_data[transfer_data][destination]"] = p.ConnectAccountID
		form["payment_intent_data[application_fee_amount]"] = strconv.FormatInt(p.ApplicationFeeCents, 10)
	}
	for k, v := range p.Metadata {
		form["metadata["+k+"]"] = v
	}

	c.logger.Info("Creating Stripe checkout session",
		zap.Int("lines", len(p.Lines)),
		zap.String("connect_account", p.ConnectAccountID),
		zap.Int64("application_fee_cents", p.ApplicationFeeCents),
	)

	var session CheckoutSession
	var apiErr stripeErrorResponse
	resp, err := c.httpClient.R().
		SetFormData(form).
		SetResult(&session).
		SetError(&apiErr).
		Post("/v1/checkout/sessions")
	if err != nil {
		c.logger.Error("Stripe API call failed", zap.Error(err))
		return nil, fmt.Errorf("failed to reach Stripe: %w", err)
	}
	if resp.IsError() {
		c.logger.Error("Stripe checkout session rejected",
			zap.Int("status", resp.StatusCode()),
			zap.String("message", apiErr.Error.Message),
		)
		return nil, fmt.Errorf("stripe error: %s", apiErr.Error.Message)
	}
	if session.URL == "" {
		return nil, fmt.Errorf("stripe returned empty checkout URL")
	}
	return &session, nil
}

// LineItem is one authoritative line of a completed checkout session.
type LineItem struct {
	Description string `json:"description"`
	AmountTotal int64  `json:"amount_total"`
	Quantity    int    `json:"quantity"`
	Currency    string `json:"currency"`
}

type lineItemList struct {
	Data []LineItem `json:"data"`
}

// ListSessionLineItems re-fetches line items for a session. The webhook
// handler uses this instead of trusting anything from the original checkout
// request.
func (c *StripeClient) ListSessionLineItems(sessionID string) ([]LineItem, error) {
	var list lineItemList
	var apiErr stripeErrorResponse
	resp, err := c.httpClient.R().
		SetQueryParam("limit", "100").
		SetResult(&list).
		SetError(&apiErr).
		Get("/v1/checkout/sessions/" + sessionID + "/line_items")
	if err != nil {
		c.logger.Error("Stripe line items fetch failed", zap.Error(err), zap.String("session_id", sessionID))
		return nil, fmt.Errorf("failed to reach Stripe: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("stripe error: %s", apiErr.Error.Message)
	}
	return list.Data, nil
}
