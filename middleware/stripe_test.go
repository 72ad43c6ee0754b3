package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signPayload(payload []byte, secret string, ts time.Time) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", ts.Unix(), payload)
	return fmt.Sprintf("t=%d,v1=%s", ts.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

func TestVerifyStripeSignatureValid(t *testing.T) {
	now := time.Now()
	payload := []byte(`{"id":"evt_1","type":"checkout.session.completed"}`)
	header := signPayload(payload, "whsec_test", now)

	assert.NoError(t, verifyStripeSignature(payload, header, "whsec_test", now))
}

func TestVerifyStripeSignatureWrongSecret(t *testing.T) {
	now := time.Now()
	payload := []byte(`{}`)
	header := signPayload(payload, "whsec_other", now)

	assert.Error(t, verifyStripeSignature(payload, header, "whsec_test", now))
}

func TestVerifyStripeSignatureTamperedPayload(t *testing.T) {
	now := time.Now()
	header := signPayload([]byte(`{"amount":100}`), "whsec_test", now)

	assert.Error(t, verifyStripeSignature([]byte(`{"amount":999}`), header, "whsec_test", now))
}

func TestVerifyStripeSignatureStaleTimestamp(t *testing.T) {
	now := time.Now()
	payload := []byte(`{}`)
	header := signPayload(payload, "whsec_test", now.Add(-10*time.Minute))

	assert.Error(t, verifyStripeSignature(payload, header, "whsec_test", now))
}

func TestVerifyStripeSignatureMissingHeader(t *testing.T) {
	assert.Error(t, verifyStripeSignature([]byte(`{}`), "", "whsec_test", time.Now()))
	assert.Error(t, verifyStripeSignature([]byte(`{}`), "garbage", "whsec_test", time.Now()))
}

func TestWebhookAuthWithoutSecretRejectsNotPanics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Setenv("STRIPE_WEBHOOK_SECRET", "")

	r := gin.New()
	require.NotPanics(t, func() {
		r.POST("/webhook", StripeWebhookAuth(), func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"received": true})
		})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(`{}`))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestVerifyStripeSignatureMultipleV1(t *testing.T) {
	now := time.Now()
	payload := []byte(`{}`)
	good := signPayload(payload, "whsec_test", now)
	header := fmt.Sprintf("%s,v1=%s", good, "deadbeef")

	assert.NoError(t, verifyStripeSignature(payload, header, "whsec_test", now))
}
