package stripeControllers

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/lostmonster84/slydes-sub006/middleware"
	"github.com/lostmonster84/slydes-sub006/models"
	"github.com/lostmonster84/slydes-sub006/services"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: conn, PreferSimpleProtocol: true}), &gorm.Config{})
	require.NoError(t, err)
	return db, mock
}

func newWebhookRouter(t *testing.T, db *gorm.DB) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("STRIPE_WEBHOOK_SECRET", "whsec_test")

	r := gin.New()
	r.POST("/api/stripe/webhook", middleware.StripeWebhookAuth(), WebhookHandler(db, services.NewStripeClient(zap.NewNop())))
	return r
}

func sign(payload []byte, secret string) string {
	ts := time.Now().Unix()
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", ts, payload)
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func TestWebhookInvalidSignatureWritesNothing(t *testing.T) {
	db, mock := newMockDB(t)
	r := newWebhookRouter(t, db)

	payload := []byte(`{"id":"evt_1","type":"checkout.session.completed","data":{"object":{"id":"cs_1"}}}`)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/stripe/webhook", bytes.NewReader(payload))
	req.Header.Set("Stripe-Signature", sign(payload, "whsec_wrong"))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	// No database expectations were set: any write would have failed the mock.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWebhookUnknownEventIgnored(t *testing.T) {
	db, mock := newMockDB(t)
	r := newWebhookRouter(t, db)

	payload := []byte(`{"id":"evt_2","type":"invoice.finalized","data":{"object":{}}}`)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/stripe/webhook", bytes.NewReader(payload))
	req.Header.Set("Stripe-Signature", sign(payload, "whsec_test"))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWebhookSubscriptionUpdated(t *testing.T) {
	db, mock := newMockDB(t)
	r := newWebhookRouter(t, db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "organizations" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	payload := []byte(`{"id":"evt_3","type":"customer.subscription.updated","data":{"object":{"id":"sub_9","status":"past_due"}}}`)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/stripe/webhook", bytes.NewReader(payload))
	req.Header.Set("Stripe-Signature", sign(payload, "whsec_test"))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWebhookDemoCheckoutInsertsOrder(t *testing.T) {
	db, mock := newMockDB(t)
	r := newWebhookRouter(t, db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "orders"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	payload := []byte(`{"id":"evt_4","type":"checkout.session.completed","data":{"object":{` +
		`"id":"cs_demo_1","amount_total":4500,"currency":"gbp",` +
		`"customer_details":{"email":"buyer@example.com"},` +
		`"metadata":{"mode":"demo"}}}}`)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/stripe/webhook", bytes.NewReader(payload))
	req.Header.Set("Stripe-Signature", sign(payload, "whsec_test"))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderLinesKeepNonDivisibleTotals(t *testing.T) {
	items, subtotal := orderLines([]services.LineItem{
		{Description: "Sticker pack", AmountTotal: 100, Quantity: 3},
		{Description: "Board", AmountTotal: 4500, Quantity: 1},
	})

	require.Len(t, items, 2)
	// 100 does not divide by 3; the stored line total must stay exact
	assert.Equal(t, int64(100), items[0].AmountTotalCents)
	assert.Equal(t, int64(4500), items[1].AmountTotalCents)
	assert.Equal(t, int64(4600), subtotal)

	var itemSum int64
	for _, item := range items {
		itemSum += item.AmountTotalCents
	}
	assert.Equal(t, subtotal, itemSum)
}

func TestMapSubscriptionStatus(t *testing.T) {
	assert.Equal(t, models.SubscriptionActive, mapSubscriptionStatus("active", "customer.subscription.updated"))
	assert.Equal(t, models.SubscriptionActive, mapSubscriptionStatus("trialing", "customer.subscription.updated"))
	assert.Equal(t, models.SubscriptionPastDue, mapSubscriptionStatus("past_due", "customer.subscription.updated"))
	assert.Equal(t, models.SubscriptionCanceled, mapSubscriptionStatus("active", "customer.subscription.deleted"))
	assert.Equal(t, models.SubscriptionNone, mapSubscriptionStatus("incomplete", "customer.subscription.updated"))
}
