package accounts_test

import (
	"testing"
	"time"

	accounts "github.com/goliatone/go-user-accounts"
	"github.com/stretchr/testify/assert"
)

func TestSessionObjectGetRole(t *testing.T) {
	tests := []struct {
		name     string
		data     map[string]any
		expected accounts.UserRole
	}{
		{
			name:     "admin role",
			data:     map[string]any{"role": "admin"},
			expected: accounts.RoleAdmin,
		},
		{
			name:     "unknown role defaults to guest",
			data:     map[string]any{"role": "sysop"},
			expected: accounts.RoleGuest,
		},
		{
			name:     "missing role defaults to guest",
			data:     map[string]any{},
			expected: accounts.RoleGuest,
		},
		{
			name:     "nil data defaults to guest",
			data:     nil,
			expected: accounts.RoleGuest,
		},
		{
			name:     "non string role defaults to guest",
			data:     map[string]any{"role": 42},
			expected: accounts.RoleGuest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := &accounts.SessionObject{Data: tt.data}
			assert.Equal(t, tt.expected, session.GetRole())
		})
	}
}

func TestSessionObjectAccessors(t *testing.T) {
	issuedAt := time.Now()
	session := &accounts.SessionObject{
		UserID:   "b2cb2c07-1b41-4f83-9397-b45c11b37bd1",
		Audience: []string{"web"},
		Issuer:   "accounts",
		IssuedAt: &issuedAt,
		Data:     map[string]any{"role": "member"},
	}

	assert.Equal(t, "b2cb2c07-1b41-4f83-9397-b45c11b37bd1", session.GetUserID())
	assert.Equal(t, []string{"web"}, session.GetAudience())
	assert.Equal(t, "accounts", session.GetIssuer())
	assert.Equal(t, &issuedAt, session.GetIssuedAt())
	assert.Equal(t, "member", session.GetData()["role"])

	uid, err := session.GetUserUUID()
	assert.NoError(t, err)
	assert.Equal(t, "b2cb2c07-1b41-4f83-9397-b45c11b37bd1", uid.String())
}

func TestSessionObjectGetUserUUIDInvalid(t *testing.T) {
	session := &accounts.SessionObject{UserID: "not-a-uuid"}

	_, err := session.GetUserUUID()
	assert.Error(t, err)
}
