package adapter

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresRunner_Run(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("CREATE TABLE patients").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT name FROM patients").
		WillReturnRows(sqlmock.NewRows([]string{"name"}).
			AddRow("Ada").
			AddRow("Bob"))
	mock.ExpectRollback()

	runner := NewPostgresRunner(db, Config{})
	res, err := runner.Run(context.Background(), "CREATE TABLE patients (name TEXT)", "SELECT name FROM patients")
	require.NoError(t, err)
	require.True(t, res.Success, res.Error)
	assert.Equal(t, []string{"name"}, res.Columns)
	assert.Equal(t, [][]any{{"Ada"}, {"Bob"}}, res.Rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRunner_AlwaysRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT 1").
		WillReturnRows(sqlmock.NewRows([]string{"one"}).AddRow(int64(1)))
	mock.ExpectRollback()

	runner := NewPostgresRunner(db, Config{})
	res, err := runner.Run(context.Background(), "", "SELECT 1")
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.NoError(t, mock.ExpectationsWereMet(), "transaction must be rolled back, never committed")
}

func TestPostgresRunner_QueryErrorInResult(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT nope").
		WillReturnError(errors.New(`column "nope" does not exist`))
	mock.ExpectRollback()

	runner := NewPostgresRunner(db, Config{})
	res, err := runner.Run(context.Background(), "", "SELECT nope FROM patients")
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "nope")
}

func TestPostgresRunner_SetupFailureIsAnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("CREATE TABLE").
		WillReturnError(errors.New("permission denied"))
	mock.ExpectRollback()

	runner := NewPostgresRunner(db, Config{})
	_, err = runner.Run(context.Background(), "CREATE TABLE t (x INT)", "SELECT 1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "setup script")
}

func TestPostgresRunner_BytesBecomeStrings(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT name").
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow([]byte("Ada")))
	mock.ExpectRollback()

	runner := NewPostgresRunner(db, Config{})
	res, err := runner.Run(context.Background(), "", "SELECT name FROM patients")
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.Equal(t, "Ada", res.Rows[0][0])
}
