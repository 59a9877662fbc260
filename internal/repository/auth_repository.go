package repository

import (
	"context"
	"database/sql"
	"time"
)

// AuthRepo persists sign-in codes and refresh tokens.  Only SHA-256 hashes
// are stored; the raw values travel to the client once and are never kept
// server side.
type AuthRepo struct {
	DB      *sql.DB
	nowFunc func() time.Time
}

func NewAuthRepo(db *sql.DB) *AuthRepo {
	return &AuthRepo{DB: db, nowFunc: time.Now}
}

// StoreSignInCode inserts a one-time magic-link code hash.
func (r *AuthRepo) StoreSignInCode(ctx context.Context, userID, codeHash string, exp time.Time) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO auth_codes (code_hash, user_id, expires_at) VALUES (?,?,?)",
		codeHash, userID, exp)
	return translate(err)
}

// ConsumeSignInCode redeems a code exactly once and returns the owning
// user id.  Expired, unknown and already-consumed codes all come back as
// ErrNotFound so the caller cannot distinguish them.
func (r *AuthRepo) ConsumeSignInCode(ctx context.Context, codeHash string) (string, error) {
	var (
		userID     string
		expiresAt  time.Time
		consumedAt sql.NullTime
	)
	err := r.DB.QueryRowContext(ctx,
		"SELECT user_id, expires_at, consumed_at FROM auth_codes WHERE code_hash=? LIMIT 1",
		codeHash).Scan(&userID, &expiresAt, &consumedAt)
	if err != nil {
		return "", translate(err)
	}
	if consumedAt.Valid || r.nowFunc().UTC().After(expiresAt) {
		return "", ErrNotFound
	}
	res, err := r.DB.ExecContext(ctx,
		"UPDATE auth_codes SET consumed_at=UTC_TIMESTAMP() WHERE code_hash=? AND consumed_at IS NULL",
		codeHash)
	if err != nil {
		return "", translate(err)
	}
	// A concurrent redeem can win the race; the update must have landed.
	if n, err := res.RowsAffected(); err != nil || n == 0 {
		return "", ErrNotFound
	}
	return userID, nil
}

// StoreRefresh inserts a refresh token hash row.
func (r *AuthRepo) StoreRefresh(ctx context.Context, userID, tokenHash string, exp time.Time) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO refresh_tokens (user_id, token_hash, expires_at) VALUES (?,?,?)",
		userID, tokenHash, exp)
	return translate(err)
}

// ValidateRefresh returns the owning user id if a non-revoked, non-expired
// token exists.
func (r *AuthRepo) ValidateRefresh(ctx context.Context, tokenHash string) (string, error) {
	var (
		userID    string
		expiresAt time.Time
		revokedAt sql.NullTime
	)
	err := r.DB.QueryRowContext(ctx,
		"SELECT user_id, expires_at, revoked_at FROM refresh_tokens WHERE token_hash=? LIMIT 1",
		tokenHash).Scan(&userID, &expiresAt, &revokedAt)
	if err != nil {
		return "", translate(err)
	}
	if revokedAt.Valid {
		return "", ErrNotFound
	}
	if r.nowFunc().UTC().After(expiresAt) {
		return "", ErrNotFound
	}
	return userID, nil
}

// RevokeByHash marks a token as revoked.
func (r *AuthRepo) RevokeByHash(ctx context.Context, tokenHash string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE refresh_tokens SET revoked_at=UTC_TIMESTAMP() WHERE token_hash=? AND revoked_at IS NULL",
		tokenHash)
	return translate(err)
}

// RevokeAllForUser revokes every active token the user holds.
func (r *AuthRepo) RevokeAllForUser(ctx context.Context, userID string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE refresh_tokens SET revoked_at=UTC_TIMESTAMP() WHERE user_id=? AND revoked_at IS NULL",
		userID)
	return translate(err)
}
