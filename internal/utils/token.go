package utils // package utils provides helpers for token creation and media URL handling

import (
	"crypto/rand"   // secure random generation for opaque tokens
	"crypto/sha256" // SHA-256 hashing so only token digests reach the database
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessToken is a signed HS256 JWT plus its expiry.  Access tokens are
// short-lived; the browser carries one in the sb-access-token cookie.
type AccessToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// OpaqueToken is a random token handed to the client exactly once.  Both
// refresh tokens and magic-link sign-in codes use this shape; the database
// stores only the SHA-256 hash of Raw.
type OpaqueToken struct {
	Raw string    // raw value returned to the client
	Exp time.Time // UTC expiration time
}

// SessionClaims are the values carried inside an access token.
type SessionClaims struct {
	UserID string
	Email  string
	Exp    time.Time
}

// ErrInvalidToken covers every way an access token can fail to parse:
// wrong signature, wrong algorithm, malformed or expired.
var ErrInvalidToken = errors.New("invalid access token")

// NewAccessToken builds and signs an HS256 JWT for an admin session.
// Standard claims: subject (sub), email, expiration (exp), issued at (iat).
func NewAccessToken(secret, userID, email string, ttlMin int) (AccessToken, error) {
	exp := time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"exp":   exp.Unix(),
		"iat":   time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// ParseAccessToken validates a signed access token and extracts the
// session claims.  Any failure, including expiry, surfaces as
// ErrInvalidToken so callers can treat a stale token like a missing one.
func ParseAccessToken(secret, raw string) (SessionClaims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return SessionClaims{}, ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return SessionClaims{}, ErrInvalidToken
	}
	sub, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	expVal, _ := claims["exp"].(float64)
	if sub == "" || expVal == 0 {
		return SessionClaims{}, ErrInvalidToken
	}
	return SessionClaims{
		UserID: sub,
		Email:  email,
		Exp:    time.Unix(int64(expVal), 0).UTC(),
	}, nil
}

// NewOpaqueToken returns a cryptographically secure random token and its
// expiration time.
func NewOpaqueToken(ttl time.Duration) (OpaqueToken, error) {
	raw, err := randomHex(48) // 48 bytes -> 96 hex chars
	if err != nil {
		return OpaqueToken{}, err
	}
	return OpaqueToken{
		Raw: raw,
		Exp: time.Now().UTC().Add(ttl),
	}, nil
}

// HashToken returns the SHA-256 hash of a raw token as a hex string.
// Storing only hashes means a leaked database cannot mint sessions.
func HashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
