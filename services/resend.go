package services

import (
	"fmt"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// ResendClient sends transactional email through Resend. Every send is
// best-effort: the caller logs failures and moves on.
type ResendClient struct {
	httpClient *resty.Client
	apiKey     string
	from       string
	logger     *zap.Logger
}

func NewResendClient(logger *zap.Logger) *ResendClient {
	apiKey := os.Getenv("RESEND_API_KEY")
	from := os.Getenv("RESEND_FROM_EMAIL")
	if from == "" {
		from = "Slydes <notifications@slydes.app>"
	}

	client := resty.New().
		SetBaseURL("https://api.resend.com").
		SetTimeout(15 * time.Second).
		SetAuthToken(apiKey).
		SetHeader("Content-Type", "application/json")

	return &ResendClient{httpClient: client, apiKey: apiKey, from: from, logger: logger}
}

func (c *ResendClient) Enabled() bool {
	return c.apiKey != ""
}

// SendLeadNotification emails an organization owner about a new lead.
func (c *ResendClient) SendLeadNotification(to, orgName, leadEmail, leadName, message string) error {
	if !c.Enabled() {
		c.logger.Info("Resend not configured, skipping lead notification", zap.String("to", to))
		return nil
	}

	subject := fmt.Sprintf("New lead for %s", orgName)
	text := fmt.Sprintf("You have a new lead.\n\nName: %s\nEmail: %s\n\n%s", leadName, leadEmail, message)

	resp, err := c.httpClient.R().
		SetBody(map[string]interface{}{
			"from":    c.from,
			"to":      []string{to},
			"subject": subject,
			"text":    text,
		}).
		Post("/emails")
	if err != nil {
		c.logger.Error("Resend send failed", zap.Error(err), zap.String("to", to))
		return fmt.Errorf("failed to reach Resend: %w", err)
	}
	if resp.IsError() {
		c.logger.Error("Resend rejected email",
			zap.Int("status", resp.StatusCode()),
			zap.String("body", resp.String()),
		)
		return fmt.Errorf("resend error (%d)", resp.StatusCode())
	}
	return nil
}
