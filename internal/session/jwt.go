package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	id "stablehand/pkg/domain"
	dErrors "stablehand/pkg/domain-errors"
)

// Claims are the token claims the auth provider issues for a session.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// TokenParser validates bearer tokens from the auth provider and extracts
// the acting user. It performs no account lookups; existence checks belong
// to the store.
type TokenParser struct {
	signingKey []byte
	issuer     string
}

// NewTokenParser builds a parser for HS256 tokens from the given issuer.
func NewTokenParser(signingKey, issuer string) *TokenParser {
	return &TokenParser{signingKey: []byte(signingKey), issuer: issuer}
}

// Parse validates the token and returns the session it describes.
func (p *TokenParser) Parse(tokenString string) (Session, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return p.signingKey, nil
	}, jwt.WithIssuer(p.issuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Session{}, dErrors.New(dErrors.CodeUnauthorized, "session token has expired")
		}
		return Session{}, dErrors.New(dErrors.CodeUnauthorized, "invalid session token")
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return Session{}, dErrors.New(dErrors.CodeUnauthorized, "invalid session token claims")
	}

	userID, err := id.ParseUserID(claims.UserID)
	if err != nil {
		return Session{}, dErrors.New(dErrors.CodeUnauthorized, "session token carries no valid user")
	}

	s := Session{UserID: userID}
	if claims.IssuedAt != nil {
		s.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		s.ExpiresAt = claims.ExpiresAt.Time
	}
	return s, nil
}

// Issue mints a token for the given user, used by tests and the dev seed.
func (p *TokenParser) Issue(userID id.UserID, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: userID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    p.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})
	return token.SignedString(p.signingKey)
}
