package accounts_test

import (
	"context"
	"testing"

	accounts "github.com/goliatone/go-user-accounts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestVerifyLinkHandler(t *testing.T) {
	tokens := accounts.NewLinkTokens([]byte("secret"), 0)

	t.Run("valid link", func(t *testing.T) {
		repo := &MockRepositoryManager{}
		users := &MockUsers{}

		user := makeTestUser()
		token := tokens.Make(user)

		repo.On("Users").Return(users)
		users.On("GetByID", mock.Anything, user.ID.String(), mock.Anything).Return(user, nil).Once()

		var resp *accounts.VerifyLinkResponse
		event := accounts.VerifyLinkMessage{
			UID:   accounts.EncodeUID(user.ID),
			Token: token,
			OnResponse: func(r *accounts.VerifyLinkResponse) {
				resp = r
			},
		}

		handler := accounts.NewVerifyLinkHandler(repo, tokens).WithLogger(testLogger{})

		err := handler.Execute(context.Background(), event)
		require.NoError(t, err)

		require.NotNil(t, resp)
		assert.True(t, resp.Valid)
		assert.Equal(t, user, resp.User)
	})

	t.Run("tampered token", func(t *testing.T) {
		repo := &MockRepositoryManager{}
		users := &MockUsers{}

		user := makeTestUser()

		repo.On("Users").Return(users)
		users.On("GetByID", mock.Anything, user.ID.String(), mock.Anything).Return(user, nil).Once()

		var resp *accounts.VerifyLinkResponse
		event := accounts.VerifyLinkMessage{
			UID:   accounts.EncodeUID(user.ID),
			Token: tokens.Make(user) + "00",
			OnResponse: func(r *accounts.VerifyLinkResponse) {
				resp = r
			},
		}

		handler := accounts.NewVerifyLinkHandler(repo, tokens).WithLogger(testLogger{})

		err := handler.Execute(context.Background(), event)
		require.NoError(t, err)

		require.NotNil(t, resp)
		assert.False(t, resp.Valid)
		assert.Nil(t, resp.User)
	})

	t.Run("verification does not mutate anything", func(t *testing.T) {
		repo := &MockRepositoryManager{}
		users := &MockUsers{}

		user := makeTestUser()
		token := tokens.Make(user)

		repo.On("Users").Return(users)
		users.On("GetByID", mock.Anything, user.ID.String(), mock.Anything).Return(user, nil).Once()

		handler := accounts.NewVerifyLinkHandler(repo, tokens).WithLogger(testLogger{})

		err := handler.Execute(context.Background(), accounts.VerifyLinkMessage{
			UID:   accounts.EncodeUID(user.ID),
			Token: token,
		})
		require.NoError(t, err)

		repo.AssertNotCalled(t, "RunInTx", mock.Anything, mock.Anything, mock.Anything)
		users.AssertNotCalled(t, "ResetPasswordTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
