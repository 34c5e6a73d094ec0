// Package auth authenticates the back-office admin against credentials held
// in configuration and guards the admin endpoints with short-lived JWTs.
package auth

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"

	"github.com/aumatic/backend-quote/internal/common"
)

const defaultAccessTTL = time.Hour

// Service issues and validates admin access tokens. There is a single admin
// identity; its email and argon2id password hash come from configuration.
type Service struct {
	secret       []byte
	adminEmail   string
	passwordHash string
	accessTTL    time.Duration
	issuer       string
	audience     string
	now          func() time.Time
}

// Config configures the auth service.
type Config struct {
	Secret            string
	AdminEmail        string
	AdminPasswordHash string
	AccessTokenTTL    time.Duration
	Issuer            string
	Audience          string
	Now               func() time.Time
}

// NewService constructs a Service with sane defaults.
func NewService(cfg Config) (*Service, error) {
	secret := strings.TrimSpace(cfg.Secret)
	if secret == "" {
		return nil, errors.New("auth: secret is required")
	}
	if cfg.AdminEmail == "" || cfg.AdminPasswordHash == "" {
		return nil, errors.New("auth: admin credentials are required")
	}
	ttl := cfg.AccessTokenTTL
	if ttl <= 0 {
		ttl = defaultAccessTTL
	}
	issuer := cfg.Issuer
	if issuer == "" {
		issuer = "backend-quote"
	}
	audience := cfg.Audience
	if audience == "" {
		audience = "quote-admin"
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		secret:       []byte(secret),
		adminEmail:   strings.ToLower(strings.TrimSpace(cfg.AdminEmail)),
		passwordHash: cfg.AdminPasswordHash,
		accessTTL:    ttl,
		issuer:       issuer,
		audience:     audience,
		now:          now,
	}, nil
}

// LoginResult bundles the token material returned after a successful login.
type LoginResult struct {
	AccessToken  string    `json:"accessToken"`
	AccessExpiry time.Time `json:"accessExpiresAt"`
}

var errBadCredentials = common.NewAppError("UNAUTHORIZED", "invalid credentials", http.StatusUnauthorized, nil)

// Login verifies the credentials and issues an access token. The email
// comparison is constant-time alongside the argon2id verification so a miss
// on either field looks the same to the caller.
func (s *Service) Login(email, password string) (LoginResult, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	emailOK := subtle.ConstantTimeCompare([]byte(normalized), []byte(s.adminEmail)) == 1

	match, err := argon2id.ComparePasswordAndHash(password, s.passwordHash)
	if err != nil || !match || !emailOK {
		return LoginResult{}, errBadCredentials
	}

	return s.issueToken(normalized)
}

func (s *Service) issueToken(subject string) (LoginResult, error) {
	issuedAt := s.now()
	expiry := issuedAt.Add(s.accessTTL)
	token, err := jwt.NewBuilder().
		Subject(subject).
		Issuer(s.issuer).
		Audience([]string{s.audience}).
		IssuedAt(issuedAt).
		Expiration(expiry).
		Build()
	if err != nil {
		return LoginResult{}, err
	}
	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256, s.secret))
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{AccessToken: string(signed), AccessExpiry: expiry}, nil
}

// ParseToken validates an access token and returns the admin subject.
func (s *Service) ParseToken(token string) (string, error) {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return "", common.NewAppError("UNAUTHORIZED", "missing token", http.StatusUnauthorized, nil)
	}
	parsed, err := jwt.ParseString(trimmed,
		jwt.WithKey(jwa.HS256, s.secret),
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
		jwt.WithClock(jwt.ClockFunc(s.now)),
	)
	if err != nil {
		return "", common.NewAppError("UNAUTHORIZED", "invalid token", http.StatusUnauthorized, err)
	}
	return parsed.Subject(), nil
}
