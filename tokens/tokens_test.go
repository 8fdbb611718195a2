package tokens

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIssuer_IssueAndVerify(t *testing.T) {
	issuer := NewIssuer("test-secret", 24*time.Hour)

	token, err := issuer.Issue("user-123", "user@example.com")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := issuer.Verify(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserId)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, "user-123", claims.Subject)
}

func TestIssuer_Verify_AllFailuresCollapse(t *testing.T) {
	issuer := NewIssuer("test-secret", 24*time.Hour)

	expiredIssuer := NewIssuer("test-secret", -time.Hour)
	expired, err := expiredIssuer.Issue("user-123", "user@example.com")
	assert.NoError(t, err)

	otherKey, err := NewIssuer("other-secret", 24*time.Hour).Issue("user-123", "user@example.com")
	assert.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"empty token", ""},
		{"not a jwt", "foobar"},
		{"expired token", expired},
		{"wrong signing key", otherKey},
		{"truncated token", otherKey[:len(otherKey)/2]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := issuer.Verify(tt.token)
			assert.Nil(t, claims)
			// the caller must not be able to tell these cases apart
			assert.Equal(t, ErrInvalidToken, err)
		})
	}
}
