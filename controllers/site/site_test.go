package siteControllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
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

func TestVisitorHashIsStableAndDistinct(t *testing.T) {
	a := visitorHash("203.0.113.9", "Mozilla/5.0")
	b := visitorHash("203.0.113.9", "Mozilla/5.0")
	c := visitorHash("203.0.113.10", "Mozilla/5.0")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
}

func TestTrackVisitRequiresPath(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, _ := newMockDB(t)

	r := gin.New()
	r.POST("/api/track", TrackVisit(db))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/track", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTrackVisitDuplicateStillAccepted(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, mock := newMockDB(t)

	// ON CONFLICT DO NOTHING returns no row for a duplicate visit
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "site_visits"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectCommit()

	r := gin.New()
	r.POST("/api/track", TrackVisit(db))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/track", strings.NewReader(`{"path":"/surf-shack"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJoinWaitlistClosed(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "platform_settings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "platform_fee_bps", "waitlist_open"}).
			AddRow(1, 1000, false))

	r := gin.New()
	r.POST("/api/waitlist", JoinWaitlist(db))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/waitlist", strings.NewReader(`{"email":"kai@example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
