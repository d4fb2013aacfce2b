package accounts_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/goliatone/go-repository-bun"
	accounts "github.com/goliatone/go-user-accounts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

func TestChangePasswordHandler(t *testing.T) {
	ctx := context.Background()
	repo := &MockRepositoryManager{}
	users := &MockUsers{}
	sink := &MockActivitySink{}

	user := makeTestUser()

	repo.On("Users").Return(users)
	users.On("GetByID", mock.Anything, user.ID.String(), mock.Anything).Return(user, nil).Once()

	var writtenHash string
	users.On("ResetPasswordTx", mock.Anything, mock.Anything, user.ID, mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) {
			writtenHash = args.String(3)
		}).
		Return(nil).Once()

	repo.On("RunInTx", mock.Anything, (*sql.TxOptions)(nil), mock.Anything).
		Return(nil).
		Run(func(args mock.Arguments) {
			fn := args.Get(2).(func(context.Context, bun.Tx) error)
			var tx bun.Tx
			require.NoError(t, fn(args.Get(0).(context.Context), tx))
		}).Once()

	sink.On("Record", mock.Anything, mock.MatchedBy(func(evt accounts.ActivityEvent) bool {
		return evt.EventType == accounts.ActivityEventPasswordChanged &&
			evt.UserID == user.ID.String()
	})).Return(nil).Once()

	handler := accounts.NewChangePasswordHandler(repo).
		WithActivitySink(sink).
		WithLogger(testLogger{})

	err := handler.Execute(ctx, accounts.ChangePasswordMessage{
		UserID:   user.ID.String(),
		Password: "rotated-password-1",
	})
	require.NoError(t, err)

	require.NotEmpty(t, writtenHash)
	assert.NoError(t, accounts.ComparePasswordAndHash("rotated-password-1", writtenHash))

	repo.AssertExpectations(t)
	users.AssertExpectations(t)
	sink.AssertExpectations(t)
}

func TestChangePasswordHandlerUnknownUser(t *testing.T) {
	repo := &MockRepositoryManager{}
	users := &MockUsers{}

	repo.On("Users").Return(users)
	users.On("GetByID", mock.Anything, "missing-id", mock.Anything).
		Return(nil, repository.NewRecordNotFound()).Once()

	handler := accounts.NewChangePasswordHandler(repo).WithLogger(testLogger{})

	err := handler.Execute(context.Background(), accounts.ChangePasswordMessage{
		UserID:   "missing-id",
		Password: "rotated-password-1",
	})

	require.Error(t, err)
	repo.AssertNotCalled(t, "RunInTx", mock.Anything, mock.Anything, mock.Anything)
}

func TestChangePasswordHandlerEmptyPassword(t *testing.T) {
	repo := &MockRepositoryManager{}
	users := &MockUsers{}

	user := makeTestUser()

	repo.On("Users").Return(users)
	users.On("GetByID", mock.Anything, user.ID.String(), mock.Anything).Return(user, nil).Once()

	handler := accounts.NewChangePasswordHandler(repo).WithLogger(testLogger{})

	err := handler.Execute(context.Background(), accounts.ChangePasswordMessage{
		UserID: user.ID.String(),
	})

	require.Error(t, err)
	repo.AssertNotCalled(t, "RunInTx", mock.Anything, mock.Anything, mock.Anything)
}
