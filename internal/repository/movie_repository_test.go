package repository

import (
	"context"
	"errors"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMovieRepoMock(t *testing.T) (*MovieRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewMovieRepo(db), mock
}

func TestMovieDeleteRemovesSeatsInSameTx(t *testing.T) {
	repo, mock := newMovieRepoMock(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM movies WHERE id = ?").
		WithArgs(uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM seats WHERE movie_id = ?").
		WithArgs(uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 80))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(context.Background(), 7))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMovieDeleteUnknownRollsBack(t *testing.T) {
	repo, mock := newMovieRepoMock(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM movies WHERE id = ?").
		WithArgs(uint64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	assert.ErrorIs(t, repo.Delete(context.Background(), 99), ErrMovieNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMovieDeleteSeatFailureRollsBack(t *testing.T) {
	repo, mock := newMovieRepoMock(t)
	boom := errors.New("connection reset")

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM movies WHERE id = ?").
		WithArgs(uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM seats WHERE movie_id = ?").
		WithArgs(uint64(7)).
		WillReturnError(boom)
	mock.ExpectRollback()

	assert.ErrorIs(t, repo.Delete(context.Background(), 7), boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}
