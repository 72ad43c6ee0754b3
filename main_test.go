package main

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
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

func TestRetentionSweepRemovesStaleCarts(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "site_visits" WHERE visit_date <`).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	mock.ExpectQuery(`SELECT \* FROM "carts" WHERE updated_at <`).
		WillReturnRows(sqlmock.NewRows([]string{"cart_id", "session_id"}).AddRow(7, "stale-session"))

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "cart_items" WHERE cart_id =`).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM "carts" WHERE "carts"."cart_id" =`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	runRetentionSweep(db, time.Now())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRetentionSweepNoStaleCarts(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "site_visits" WHERE visit_date <`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	mock.ExpectQuery(`SELECT \* FROM "carts" WHERE updated_at <`).
		WillReturnRows(sqlmock.NewRows([]string{"cart_id", "session_id"}))

	runRetentionSweep(db, time.Now())

	assert.NoError(t, mock.ExpectationsWereMet())
}
