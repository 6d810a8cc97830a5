package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "stablehand/pkg/domain"
	dErrors "stablehand/pkg/domain-errors"
)

const testKey = "test-signing-key"

func TestParse(t *testing.T) {
	parser := NewTokenParser(testKey, "stablehand")

	t.Run("round trips an issued token", func(t *testing.T) {
		userID := id.NewUserID()
		token, err := parser.Issue(userID, time.Hour)
		require.NoError(t, err)

		sess, err := parser.Parse(token)
		require.NoError(t, err)
		assert.Equal(t, userID, sess.UserID)
		assert.WithinDuration(t, time.Now().Add(time.Hour), sess.ExpiresAt, time.Minute)
	})

	t.Run("expired token is unauthorized with a precise message", func(t *testing.T) {
		token, err := parser.Issue(id.NewUserID(), -time.Minute)
		require.NoError(t, err)

		_, err = parser.Parse(token)
		require.Error(t, err)
		assert.True(t, dErrors.Is(err, dErrors.CodeUnauthorized))
		assert.Contains(t, err.Error(), "expired")
	})

	t.Run("wrong signing key is rejected", func(t *testing.T) {
		other := NewTokenParser("different-key", "stablehand")
		token, err := other.Issue(id.NewUserID(), time.Hour)
		require.NoError(t, err)

		_, err = parser.Parse(token)
		require.Error(t, err)
		assert.True(t, dErrors.Is(err, dErrors.CodeUnauthorized))
	})

	t.Run("wrong issuer is rejected", func(t *testing.T) {
		other := NewTokenParser(testKey, "someone-else")
		token, err := other.Issue(id.NewUserID(), time.Hour)
		require.NoError(t, err)

		_, err = parser.Parse(token)
		assert.Error(t, err)
	})

	t.Run("non-HMAC algorithm is rejected", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
			UserID: id.NewUserID().String(),
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    "stablehand",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		})
		raw, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = parser.Parse(raw)
		assert.Error(t, err)
	})

	t.Run("token without a valid user id is rejected", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
			UserID: "not-a-uuid",
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    "stablehand",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		})
		raw, err := token.SignedString([]byte(testKey))
		require.NoError(t, err)

		_, err = parser.Parse(raw)
		require.Error(t, err)
		assert.True(t, dErrors.Is(err, dErrors.CodeUnauthorized))
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		_, err := parser.Parse("not.a.token")
		assert.Error(t, err)
	})
}
