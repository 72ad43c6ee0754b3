package services

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CloudflareClient wraps the Stream and Images direct-upload endpoints.
// Without credentials it runs in mock mode: uploads get placeholder URLs and
// videos report ready immediately, so the studio works in local development.
type CloudflareClient struct {
	httpClient *resty.Client
	accountID  string
	apiToken   string
	logger     *zap.Logger
}

func NewCloudflareClient(logger *zap.Logger) *CloudflareClient {
	accountID := os.Getenv("CLOUDFLARE_ACCOUNT_ID")
	apiToken := os.Getenv("CLOUDFLARE_API_TOKEN")

	client := resty.New().
		SetBaseURL("https://api.cloudflare.com/client/v4").
		SetTimeout(30 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(5 * time.Second).
		SetAuthToken(apiToken).
		SetHeader("Accept", "application/json")

	return &CloudflareClient{
		httpClient: client,
		accountID:  accountID,
		apiToken:   apiToken,
		logger:     logger,
	}
}

func (c *CloudflareClient) Enabled() bool {
	return c.accountID != "" && c.apiToken != ""
}

// DirectUpload is a short-lived upload credential: the client PUTs/POSTs the
// binary straight to the provider, the UID comes back to us via attach.
type DirectUpload struct {
	UID       string `json:"uid"`
	UploadURL string `json:"upload_url"`
	Mock      bool   `json:"mock,omitempty"`
}

type cfEnvelope struct {
	Success bool `json:"success"`
	Errors  []struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"errors"`
}

func (e cfEnvelope) firstError() string {
	if len(e.Errors) > 0 {
		return e.Errors[0].Message
	}
	return "unknown cloudflare error"
}

func mockUID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// CreateVideoUpload mints a Stream direct-upload URL bound to the tenant.
func (c *CloudflareClient) CreateVideoUpload(maxDurationSeconds int, creator string) (*DirectUpload, error) {
	if !c.Enabled() {
		uid := mockUID()
		c.logger.Info("Cloudflare not configured, minting mock video upload", zap.String("uid", uid))
		return &DirectUpload{UID: uid, UploadURL: "https://upload.mock.slydes.local/stream/" + uid, Mock: true}, nil
	}
	if maxDurationSeconds <= 0 {
		maxDurationSeconds = 180
	}

	var result struct {
		cfEnvelope
		Result struct {
			UID       string `json:"uid"`
			UploadURL string `json:"uploadURL"`
		} `json:"result"`
	}
	resp, err := c.httpClient.R().
		SetBody(map[string]interface{}{
			"maxDurationSeconds": maxDurationSeconds,
			"creator":            creator,
		}).
		SetResult(&result).
		Post(fmt.Sprintf("/accounts/%s/stream/direct_upload", c.accountID))
	if err != nil {
		c.logger.Error("Cloudflare Stream direct_upload failed", zap.Error(err))
		return nil, fmt.Errorf("failed to reach Cloudflare: %w", err)
	}
	if resp.IsError() || !result.Success {
		return nil, fmt.Errorf("cloudflare error: %s", result.firstError())
	}
	return &DirectUpload{UID: result.Result.UID, UploadURL: result.Result.UploadURL}, nil
}

// CreateImageUpload mints an Images v2 direct-upload URL.
func (c *CloudflareClient) CreateImageUpload(creator string) (*DirectUpload, error) {
	if !c.Enabled() {
		id := mockUID()
		c.logger.Info("Cloudflare not configured, minting mock image upload", zap.String("id", id))
		return &DirectUpload{UID: id, UploadURL: "https://upload.mock.slydes.local/images/" + id, Mock: true}, nil
	}

	var result struct {
		cfEnvelope
		Result struct {
			ID        string `json:"id"`
			UploadURL string `json:"uploadURL"`
		} `json:"result"`
	}
	resp, err := c.httpClient.R().
		SetFormData(map[string]string{
			"requireSignedURLs": "false",
			"metadata":          fmt.Sprintf(`{"creator":%q}`, creator),
		}).
		SetResult(&result).
		Post(fmt.Sprintf("/accounts/%s/images/v2/direct_upload", c.accountID))
	if err != nil {
		c.logger.Error("Cloudflare Images direct_upload failed", zap.Error(err))
		return nil, fmt.Errorf("failed to reach Cloudflare: %w", err)
	}
	if resp.IsError() || !result.Success {
		return nil, fmt.Errorf("cloudflare error: %s", result.firstError())
	}
	return &DirectUpload{UID: result.Result.ID, UploadURL: result.Result.UploadURL}, nil
}

// VideoStatus polls Stream transcode state for a UID and normalizes it to
// processing|ready|failed.
func (c *CloudflareClient) VideoStatus(uid string) (string, error) {
	if !c.Enabled() {
		return "ready", nil
	}

	var result struct {
		cfEnvelope
		Result struct {
			ReadyToStream bool `json:"readyToStream"`
			Status        struct {
				State           string `json:"state"`
				ErrorReasonText string `json:"errorReasonText"`
			} `json:"status"`
		} `json:"result"`
	}
	resp, err := c.httpClient.R().
		SetResult(&result).
		Get(fmt.Sprintf("/accounts/%s/stream/%s", c.accountID, uid))
	if err != nil {
		c.logger.Error("Cloudflare video status failed", zap.Error(err), zap.String("uid", uid))
		return "", fmt.Errorf("failed to reach Cloudflare: %w", err)
	}
	if resp.IsError() || !result.Success {
		return "", fmt.Errorf("cloudflare error: %s", result.firstError())
	}

	switch {
	case result.Result.ReadyToStream:
		return "ready", nil
	case result.Result.Status.State == "error":
		c.logger.Warn("Stream transcode failed",
			zap.String("uid", uid),
			zap.String("reason", result.Result.Status.ErrorReasonText),
		)
		return "failed", nil
	default:
		return "processing", nil
	}
}

// maxDuration sanity bound enforced server-side so a tenant cannot mint
// multi-hour upload slots.
const MaxVideoDurationSeconds = 600

func ClampVideoDuration(requested int) int {
	if requested <= 0 {
		return 180
	}
	if requested > MaxVideoDurationSeconds {
		return MaxVideoDurationSeconds
	}
	return requested
}
