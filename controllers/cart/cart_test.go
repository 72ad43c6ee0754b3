package cartControllers

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

	"github.com/lostmonster84/slydes-sub006/models"
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

func TestCartTotals(t *testing.T) {
	items := []models.CartItem{
		{ItemID: "board", PriceCents: 4500, Quantity: 2},
		{ItemID: "wax", PriceCents: 999, Quantity: 3},
	}
	total, count := cartTotals(items)
	assert.Equal(t, int64(2*4500+3*999), total)
	assert.Equal(t, 5, count)

	total, count = cartTotals(nil)
	assert.Equal(t, int64(0), total)
	assert.Equal(t, 0, count)
}

func TestGetCartRequiresSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, _ := newMockDB(t)

	r := gin.New()
	r.GET("/api/cart", GetCart(db))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetCartUnknownSessionIsEmpty(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT .* FROM "carts"`).
		WillReturnRows(sqlmock.NewRows([]string{"cart_id", "session_id"}))

	r := gin.New()
	r.GET("/api/cart", GetCart(db))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.Header.Set("X-Cart-Session", "sess-unknown")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total_cents":0`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddSameItemTwiceIncrementsQuantity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT .* FROM "carts" WHERE session_id =`).
		WillReturnRows(sqlmock.NewRows([]string{"cart_id", "session_id"}).AddRow(1, "sess-1"))
	mock.ExpectQuery(`SELECT .* FROM "cart_items" WHERE "cart_items"\."cart_id" =`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "cart_id", "item_id", "title", "price_cents", "quantity"}).
			AddRow(9, 1, "board", "Board", 4500, 1))
	mock.ExpectQuery(`SELECT .* FROM "cart_items" WHERE cart_id = .* AND item_id =`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "cart_id", "item_id", "title", "price_cents", "quantity"}).
			AddRow(9, 1, "board", "Board", 4500, 1))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "cart_items" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	r := gin.New()
	r.POST("/api/cart/items", AddCartItem(db))

	w := httptest.NewRecorder()
	body := strings.NewReader(`{"item_id":"board","title":"Board","price_cents":4500}`)
	req := httptest.NewRequest(http.MethodPost, "/api/cart/items", body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Cart-Session", "sess-1")
	r.ServeHTTP(w, req)

	// Same line, bumped to quantity 2 rather than a second row
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"quantity":2`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoveItemAbsentCartIsNoop(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT .* FROM "carts"`).
		WillReturnRows(sqlmock.NewRows([]string{"cart_id", "session_id"}))

	r := gin.New()
	r.DELETE("/api/cart/items/:item_id", RemoveCartItem(db))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/cart/items/board", nil)
	req.Header.Set("X-Cart-Session", "sess-unknown")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
