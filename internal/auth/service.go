package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mixtapemassey/site/internal/config"
	"github.com/mixtapemassey/site/internal/queue"
	"github.com/mixtapemassey/site/internal/repository"
	"github.com/mixtapemassey/site/internal/utils"
)

// signInAttempts per signInWindow per email before sign-in requests are
// rejected with CategoryRateLimited.  Limiting is skipped when Redis is
// unavailable.
const (
	signInAttempts = 3
	signInWindow   = time.Minute
)

// SignInPublisher hands a magic-link event to the delivery pipeline.
type SignInPublisher func(ctx context.Context, evt queue.SignInLinkEvent) error

// Service implements passwordless email sign-in: a short-lived single-use
// code delivered by email is exchanged for a JWT access token plus an
// opaque rotating refresh token.
type Service struct {
	cfg     config.Config
	users   *repository.UserRepo
	tokens  *repository.AuthRepo
	rdb     *redis.Client
	publish SignInPublisher

	mu     sync.Mutex
	subs   map[int]func(Event)
	nextID int
}

// NewService wires the sign-in flow together.  rdb may be nil (rate
// limiting disabled) and publish may be nil (links are logged instead of
// emailed, for local development without a broker).
func NewService(cfg config.Config, users *repository.UserRepo, tokens *repository.AuthRepo, rdb *redis.Client, publish SignInPublisher) *Service {
	return &Service{
		cfg:     cfg,
		users:   users,
		tokens:  tokens,
		rdb:     rdb,
		publish: publish,
		subs:    make(map[int]func(Event)),
	}
}

// Subscribe registers fn for session-change events and returns a function
// that removes the subscription.  Callbacks run synchronously on the
// goroutine that triggered the change.
func (s *Service) Subscribe(fn func(Event)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Service) notify(evt Event) {
	s.mu.Lock()
	fns := make([]func(Event), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn(evt)
	}
}

// RequestSignIn emails a single-use sign-in link to an existing admin
// account.  Unknown addresses are reported as CategoryNotFound so the
// login page can distinguish "no such account" from delivery problems.
func (s *Service) RequestSignIn(ctx context.Context, email string) error {
	u, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return &Error{Category: CategoryNotFound, Err: err}
	}
	if err != nil {
		return &Error{Category: CategoryGeneric, Err: err}
	}
	if !u.IsActive {
		return &Error{Category: CategoryUnconfirmed, Err: fmt.Errorf("user %s is inactive", u.ID)}
	}

	if err := s.checkSignInRate(ctx, u.Email); err != nil {
		return err
	}

	code, err := utils.NewOpaqueToken(time.Duration(s.cfg.MagicLinkTTLMin) * time.Minute)
	if err != nil {
		return &Error{Category: CategoryGeneric, Err: err}
	}
	if err := s.tokens.StoreSignInCode(ctx, u.ID, utils.HashToken(code.Raw), code.Exp); err != nil {
		return &Error{Category: CategoryGeneric, Err: err}
	}

	link := s.cfg.BaseURL + "/api/auth/callback?code=" + url.QueryEscape(code.Raw)
	if s.publish == nil {
		log.Printf("auth: sign-in link for %s: %s", u.Email, link)
		return nil
	}
	evt := queue.SignInLinkEvent{
		Email:       u.Email,
		Link:        link,
		ExpiresAt:   code.Exp,
		RequestedAt: time.Now().UTC(),
	}
	if err := s.publish(ctx, evt); err != nil {
		return &Error{Category: CategoryGeneric, Err: err}
	}
	return nil
}

func (s *Service) checkSignInRate(ctx context.Context, email string) error {
	if s.rdb == nil {
		return nil
	}
	key := "signin:" + email
	n, err := s.rdb.Incr(ctx, key).Result()
	if err != nil {
		// Rate limiting is advisory; a broken Redis must not lock
		// the admin out.
		log.Printf("auth: rate limit check failed: %v", err)
		return nil
	}
	if n == 1 {
		s.rdb.Expire(ctx, key, signInWindow)
	}
	if n > signInAttempts {
		return &Error{Category: CategoryRateLimited, Err: fmt.Errorf("%d sign-in attempts for %s", n, email)}
	}
	return nil
}

// ExchangeCode redeems a sign-in code from the emailed link.  Codes are
// single-use; expired, consumed and unknown codes are indistinguishable
// to the caller.
func (s *Service) ExchangeCode(ctx context.Context, code string) (*Session, error) {
	userID, err := s.tokens.ConsumeSignInCode(ctx, utils.HashToken(code))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, &Error{Category: CategoryInvalidCredentials, Err: err}
	}
	if err != nil {
		return nil, &Error{Category: CategoryGeneric, Err: err}
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, &Error{Category: CategoryGeneric, Err: err}
	}
	sess, err := s.issueSession(ctx, u.ID, u.Email)
	if err != nil {
		return nil, err
	}
	s.notify(Event{Kind: EventSignedIn, Session: sess})
	return sess, nil
}

// CurrentSession resolves the session behind a token pair.  A missing or
// dead session is (nil, nil); an error is returned only for real failures
// such as the database being unreachable during refresh.
func (s *Service) CurrentSession(ctx context.Context, access, refresh string) (*Session, error) {
	if access == "" && refresh == "" {
		return nil, nil
	}
	if access != "" {
		if claims, err := utils.ParseAccessToken(s.cfg.JWTSecret, access); err == nil {
			return &Session{
				AccessToken:  access,
				RefreshToken: refresh,
				ExpiresAt:    claims.Exp,
				UserID:       claims.UserID,
				Email:        claims.Email,
			}, nil
		}
	}
	if refresh == "" {
		return nil, nil
	}
	sess, err := s.Refresh(ctx, refresh)
	if err != nil {
		var aerr *Error
		if errors.As(err, &aerr) && aerr.Category == CategoryInvalidCredentials {
			return nil, nil
		}
		return nil, err
	}
	return sess, nil
}

// Refresh rotates a refresh token: the old token is revoked and a new
// session with a fresh token pair is issued.
func (s *Service) Refresh(ctx context.Context, refresh string) (*Session, error) {
	hash := utils.HashToken(refresh)
	userID, err := s.tokens.ValidateRefresh(ctx, hash)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, &Error{Category: CategoryInvalidCredentials, Err: err}
	}
	if err != nil {
		return nil, &Error{Category: CategoryGeneric, Err: err}
	}
	if err := s.tokens.RevokeByHash(ctx, hash); err != nil {
		return nil, &Error{Category: CategoryGeneric, Err: err}
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, &Error{Category: CategoryGeneric, Err: err}
	}
	sess, err := s.issueSession(ctx, u.ID, u.Email)
	if err != nil {
		return nil, err
	}
	sess.Rotated = true
	s.notify(Event{Kind: EventTokenRefreshed, Session: sess})
	return sess, nil
}

// SignOut revokes the refresh token and announces the sign-out.  Cookie
// clearing is the caller's job and must happen even when revocation
// fails, so subscribers are notified unconditionally.
func (s *Service) SignOut(ctx context.Context, refresh string) error {
	var err error
	if refresh != "" {
		err = s.tokens.RevokeByHash(ctx, utils.HashToken(refresh))
	}
	s.notify(Event{Kind: EventSignedOut})
	return err
}

func (s *Service) issueSession(ctx context.Context, userID, email string) (*Session, error) {
	access, err := utils.NewAccessToken(s.cfg.JWTSecret, userID, email, s.cfg.AccessTTLMin)
	if err != nil {
		return nil, &Error{Category: CategoryGeneric, Err: err}
	}
	refresh, err := utils.NewOpaqueToken(time.Duration(s.cfg.RefreshTTLDays) * 24 * time.Hour)
	if err != nil {
		return nil, &Error{Category: CategoryGeneric, Err: err}
	}
	if err := s.tokens.StoreRefresh(ctx, userID, utils.HashToken(refresh.Raw), refresh.Exp); err != nil {
		return nil, &Error{Category: CategoryGeneric, Err: err}
	}
	return &Session{
		AccessToken:  access.Token,
		RefreshToken: refresh.Raw,
		ExpiresAt:    access.Exp,
		UserID:       userID,
		Email:        email,
	}, nil
}
