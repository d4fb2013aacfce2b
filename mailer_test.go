package accounts_test

import (
	"context"
	"strings"
	"testing"

	accounts "github.com/goliatone/go-user-accounts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountMailerLinks(t *testing.T) {
	tokens := accounts.NewLinkTokens([]byte("secret"), 0)
	mailer := accounts.NewAccountMailer(nil, tokens, "http://localhost:8572/")

	user := makeTestUser()

	activation := mailer.ActivationLink(user)
	assert.True(t, strings.HasPrefix(activation, "http://localhost:8572/activate/"), activation)

	reset := mailer.ResetLink(user)
	assert.True(t, strings.HasPrefix(reset, "http://localhost:8572/reset/"), reset)

	// both links embed a uid and a token that verify against the user
	for _, link := range []string{activation, reset} {
		parts := strings.Split(strings.TrimPrefix(link, "http://localhost:8572/"), "/")
		require.Len(t, parts, 3)

		uid, err := accounts.DecodeUID(parts[1])
		require.NoError(t, err)
		assert.Equal(t, user.ID, uid)
		assert.True(t, tokens.Check(user, parts[2]))
	}
}

func TestAccountMailerSendActivation(t *testing.T) {
	var sent []accounts.Email
	outbox := accounts.MailerFunc(func(ctx context.Context, msg accounts.Email) error {
		sent = append(sent, msg)
		return nil
	})

	tokens := accounts.NewLinkTokens([]byte("secret"), 0)
	mailer := accounts.NewAccountMailer(outbox, tokens, "http://localhost:8572").
		WithAppName("TestApp")

	user := makeTestUser()
	user.FirstName = "Pepe"
	user.LastName = "Rone"

	err := mailer.SendActivation(context.Background(), user)
	require.NoError(t, err)

	require.Len(t, sent, 1)
	assert.Equal(t, user.Email, sent[0].To)
	assert.Contains(t, sent[0].Subject, "TestApp")
	assert.Contains(t, sent[0].Body, "Pepe Rone")
	assert.Contains(t, sent[0].Body, "/activate/"+accounts.EncodeUID(user.ID)+"/")
}

func TestAccountMailerSendPasswordReset(t *testing.T) {
	var sent []accounts.Email
	outbox := accounts.MailerFunc(func(ctx context.Context, msg accounts.Email) error {
		sent = append(sent, msg)
		return nil
	})

	tokens := accounts.NewLinkTokens([]byte("secret"), 0)
	mailer := accounts.NewAccountMailer(outbox, tokens, "http://localhost:8572")

	user := makeTestUser()

	err := mailer.SendPasswordReset(context.Background(), user)
	require.NoError(t, err)

	require.Len(t, sent, 1)
	assert.Equal(t, user.Email, sent[0].To)
	assert.Contains(t, sent[0].Subject, "password reset")
	assert.Contains(t, sent[0].Body, "/reset/")
}
