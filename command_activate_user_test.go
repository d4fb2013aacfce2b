package accounts_test

import (
	"context"
	"testing"

	"github.com/goliatone/go-repository-bun"
	accounts "github.com/goliatone/go-user-accounts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestActivateUserHandlerActivates(t *testing.T) {
	ctx := context.Background()
	repo := &MockRepositoryManager{}
	users := &MockUsers{}
	sink := &MockActivitySink{}

	tokens := accounts.NewLinkTokens([]byte("secret"), 0)
	user := makeTestUser()
	token := tokens.Make(user)

	activated := *user
	activated.IsActive = true

	repo.On("Users").Return(users)
	users.On("GetByID", mock.Anything, user.ID.String(), mock.Anything).Return(user, nil).Once()
	users.On("Activate", mock.Anything, user.ID).Return(&activated, nil).Once()

	sink.On("Record", mock.Anything, mock.MatchedBy(func(evt accounts.ActivityEvent) bool {
		return evt.EventType == accounts.ActivityEventUserActivated &&
			evt.UserID == user.ID.String()
	})).Return(nil).Once()

	var resp *accounts.ActivateUserResponse
	event := accounts.ActivateUserMessage{
		UID:   accounts.EncodeUID(user.ID),
		Token: token,
		OnResponse: func(r *accounts.ActivateUserResponse) {
			resp = r
		},
	}

	handler := accounts.NewActivateUserHandler(repo, tokens).
		WithActivitySink(sink).
		WithLogger(testLogger{})

	err := handler.Execute(ctx, event)
	require.NoError(t, err)

	require.NotNil(t, resp)
	assert.True(t, resp.Activated)
	require.NotNil(t, resp.User)
	assert.True(t, resp.User.IsActive)

	repo.AssertExpectations(t)
	users.AssertExpectations(t)
	sink.AssertExpectations(t)
}

func TestActivateUserHandlerFailsClosed(t *testing.T) {
	tokens := accounts.NewLinkTokens([]byte("secret"), 0)

	t.Run("undecodable uid", func(t *testing.T) {
		repo := &MockRepositoryManager{}

		var resp *accounts.ActivateUserResponse
		event := accounts.ActivateUserMessage{
			UID:   "%%%not-base64%%%",
			Token: "whatever",
			OnResponse: func(r *accounts.ActivateUserResponse) {
				resp = r
			},
		}

		handler := accounts.NewActivateUserHandler(repo, tokens).WithLogger(testLogger{})

		err := handler.Execute(context.Background(), event)
		require.NoError(t, err)
		require.NotNil(t, resp)
		assert.False(t, resp.Activated)

		repo.AssertNotCalled(t, "Users")
	})

	t.Run("unknown user", func(t *testing.T) {
		repo := &MockRepositoryManager{}
		users := &MockUsers{}
		user := makeTestUser()

		repo.On("Users").Return(users)
		users.On("GetByID", mock.Anything, user.ID.String(), mock.Anything).
			Return(nil, repository.NewRecordNotFound()).Once()

		var resp *accounts.ActivateUserResponse
		event := accounts.ActivateUserMessage{
			UID:   accounts.EncodeUID(user.ID),
			Token: tokens.Make(user),
			OnResponse: func(r *accounts.ActivateUserResponse) {
				resp = r
			},
		}

		handler := accounts.NewActivateUserHandler(repo, tokens).WithLogger(testLogger{})

		err := handler.Execute(context.Background(), event)
		require.NoError(t, err)
		require.NotNil(t, resp)
		assert.False(t, resp.Activated)

		users.AssertExpectations(t)
		users.AssertNotCalled(t, "Activate", mock.Anything, mock.Anything)
	})

	t.Run("bad token", func(t *testing.T) {
		repo := &MockRepositoryManager{}
		users := &MockUsers{}
		user := makeTestUser()

		repo.On("Users").Return(users)
		users.On("GetByID", mock.Anything, user.ID.String(), mock.Anything).Return(user, nil).Once()

		var resp *accounts.ActivateUserResponse
		event := accounts.ActivateUserMessage{
			UID:   accounts.EncodeUID(user.ID),
			Token: "k3j-00000000000000000000",
			OnResponse: func(r *accounts.ActivateUserResponse) {
				resp = r
			},
		}

		handler := accounts.NewActivateUserHandler(repo, tokens).WithLogger(testLogger{})

		err := handler.Execute(context.Background(), event)
		require.NoError(t, err)
		require.NotNil(t, resp)
		assert.False(t, resp.Activated)

		users.AssertExpectations(t)
		users.AssertNotCalled(t, "Activate", mock.Anything, mock.Anything)
	})

	t.Run("token minted before activation no longer verifies", func(t *testing.T) {
		repo := &MockRepositoryManager{}
		users := &MockUsers{}

		user := makeTestUser()
		token := tokens.Make(user)
		user.IsActive = true

		repo.On("Users").Return(users)
		users.On("GetByID", mock.Anything, user.ID.String(), mock.Anything).Return(user, nil).Once()

		var resp *accounts.ActivateUserResponse
		event := accounts.ActivateUserMessage{
			UID:   accounts.EncodeUID(user.ID),
			Token: token,
			OnResponse: func(r *accounts.ActivateUserResponse) {
				resp = r
			},
		}

		handler := accounts.NewActivateUserHandler(repo, tokens).WithLogger(testLogger{})

		err := handler.Execute(context.Background(), event)
		require.NoError(t, err)
		require.NotNil(t, resp)
		assert.False(t, resp.Activated, "activation links are single use")
	})
}
