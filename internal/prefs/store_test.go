package prefs

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"tripsmith/pkg/db"
)

type mockExecutor struct {
	mock.Mock
}

func (m *mockExecutor) DB() *sql.DB { return nil }

func (m *mockExecutor) WithTransaction(ctx context.Context, isolation sql.IsolationLevel, fn db.TxFunc) error {
	args := m.Called(ctx, isolation, fn)
	return args.Error(0)
}

func (m *mockExecutor) ExecContext(ctx context.Context, query string, queryArgs ...any) (sql.Result, error) {
	args := m.Called(ctx, query, queryArgs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(sql.Result), args.Error(1)
}

func (m *mockExecutor) QueryContext(ctx context.Context, query string, queryArgs ...any) (*sql.Rows, error) {
	args := m.Called(ctx, query, queryArgs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sql.Rows), args.Error(1)
}

func (m *mockExecutor) QueryRowContext(ctx context.Context, query string, queryArgs ...any) *sql.Row {
	args := m.Called(ctx, query, queryArgs)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*sql.Row)
}

type mockResult struct {
	mock.Mock
}

func (m *mockResult) LastInsertId() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockResult) RowsAffected() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func TestSave_UpsertsEachPreference(t *testing.T) {
	mockExec := new(mockExecutor)
	result := new(mockResult)
	store := NewStore(mockExec)

	mockExec.On("ExecContext", mock.Anything, mock.AnythingOfType("string"),
		mock.Anything).Return(result, nil).Twice()

	err := store.Save(context.Background(), []Preference{
		{UserID: "u1", Type: TypeTripSpecific, Category: "dietary", Value: "vegan"},
		{UserID: "u1", Type: TypeTripSpecific, Category: "style", Value: "backpacking"},
	})

	assert.NoError(t, err)
	mockExec.AssertExpectations(t)
}

func TestSave_DefaultsFrequencyToOne(t *testing.T) {
	mockExec := new(mockExecutor)
	result := new(mockResult)
	store := NewStore(mockExec)

	mockExec.On("ExecContext", mock.Anything, mock.AnythingOfType("string"),
		mock.MatchedBy(func(args []any) bool {
			return args[5] == 1 // frequency parameter
		})).Return(result, nil)

	err := store.Save(context.Background(), []Preference{
		{UserID: "u1", Type: TypeTripSpecific, Category: "dietary", Value: "vegan", Frequency: 0},
	})

	assert.NoError(t, err)
	mockExec.AssertExpectations(t)
}

func TestSave_StopsOnFirstError(t *testing.T) {
	mockExec := new(mockExecutor)
	store := NewStore(mockExec)

	dbErr := errors.New("connection reset")
	mockExec.On("ExecContext", mock.Anything, mock.AnythingOfType("string"),
		mock.Anything).Return(nil, dbErr).Once()

	err := store.Save(context.Background(), []Preference{
		{UserID: "u1", Category: "dietary", Value: "vegan"},
		{UserID: "u1", Category: "style", Value: "backpacking"},
	})

	assert.ErrorIs(t, err, dbErr)
	mockExec.AssertExpectations(t)
}

func TestPromoteFrequent_PropagatesTransactionError(t *testing.T) {
	mockExec := new(mockExecutor)
	store := NewStore(mockExec)

	txErr := errors.New("tx failed")
	mockExec.On("WithTransaction", mock.Anything, sql.LevelReadCommitted,
		mock.AnythingOfType("db.TxFunc")).Return(txErr)

	_, err := store.PromoteFrequent(context.Background(), "u1")

	assert.ErrorIs(t, err, txErr)
	mockExec.AssertExpectations(t)
}
