package repository

import (
	"context"
	"errors"
	"testing"

	"goshortly/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var testUrl = models.Url{Id: "url-1", LongUrl: "https://example.com", ShortCode: "abc123"}

func newMockRepo(t *testing.T) (Repository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo, err := NewPGRepoForTestWith(
		postgres.New(postgres.Config{Conn: db, PreferSimpleProtocol: true}),
		gorm.Config{SkipDefaultTransaction: true},
	)
	require.NoError(t, err)
	return repo, mock
}

func TestPostgres_GetUrlByCode(t *testing.T) {
	repo, mock := newMockRepo(t)

	rows := sqlmock.NewRows([]string{"id", "long_url", "short_code", "clicks"}).
		AddRow("url-1", "https://example.com", "abc123", int64(7))
	mock.ExpectQuery(`SELECT \* FROM "urls"`).WillReturnRows(rows)

	url, err := repo.GetUrlByCode(context.Background(), "abc123")
	assert.NoError(t, err)
	assert.Equal(t, "url-1", url.Id)
	assert.Equal(t, "https://example.com", url.LongUrl)
	assert.EqualValues(t, 7, url.Clicks)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_GetUrlByCode_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT \* FROM "urls"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetUrlByCode(context.Background(), "zzzzzz")
	assert.Equal(t, ErrRecordNotFound, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_GetUserByEmail_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetUserByEmail(context.Background(), "nobody@example.com")
	assert.Equal(t, ErrRecordNotFound, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_AddClick(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`UPDATE "urls" SET "clicks"=clicks \+ \$1`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.AddClick(context.Background(), "url-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_AddClick_MissingRow(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`UPDATE "urls" SET "clicks"=clicks \+ \$1`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.AddClick(context.Background(), "gone")
	assert.Equal(t, ErrRecordNotFound, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_UpdateUrl_MissingRow(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`UPDATE "urls" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateUrl(context.Background(), &testUrl)
	assert.Equal(t, ErrRecordNotFound, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_DeleteUrl(t *testing.T) {
	repo, mock := newMockRepo(t)

	// gorm renders soft delete as an UPDATE on deleted_at
	mock.ExpectExec(`UPDATE "urls" SET "deleted_at"=`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.DeleteUrl(context.Background(), &testUrl))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTranslateUnique(t *testing.T) {
	assert.Equal(t, ErrDuplicateRecord, translateUnique(&pgconn.PgError{Code: "23505"}))
	assert.NotEqual(t, ErrDuplicateRecord, translateUnique(&pgconn.PgError{Code: "23503"}))
	assert.Nil(t, translateUnique(nil))
	plain := errors.New("boom")
	assert.Equal(t, plain, translateUnique(plain))
}
