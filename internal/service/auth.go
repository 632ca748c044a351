package service

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/awesome-blog/internal/config"
	"github.com/deppfellow/awesome-blog/internal/model"
	"github.com/deppfellow/awesome-blog/internal/server"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidSession = errors.New("invalid session token")

// SessionClaims is the payload of a session token. Subject holds the user id.
type SessionClaims struct {
	Admin bool `json:"admin"`
	jwt.RegisteredClaims
}

// AuthService hashes passwords and issues the signed session tokens kept in
// the session cookie.
type AuthService struct {
	secret       []byte
	ttl          time.Duration
	cookieName   string
	secureCookie bool
	now          func() time.Time
}

func NewAuthService(s *server.Server) *AuthService {
	return newAuthService(s.Config.Auth, !s.Config.IsLocal())
}

func newAuthService(cfg config.AuthConfig, secureCookie bool) *AuthService {
	return &AuthService{
		secret:       []byte(cfg.SecretKey),
		ttl:          cfg.SessionTTL,
		cookieName:   cfg.CookieName,
		secureCookie: secureCookie,
		now:          time.Now,
	}
}

func (a *AuthService) HashPassword(passwd string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(passwd), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}

func (a *AuthService) CheckPassword(hash, passwd string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(passwd)) == nil
}

// IssueToken signs a session token for user.
func (a *AuthService) IssueToken(user *model.User) (string, error) {
	now := a.now()
	claims := SessionClaims{
		Admin: user.Admin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("signing session token: %w", err)
	}
	return signed, nil
}

// ParseToken verifies a session token and returns its claims.
func (a *AuthService) ParseToken(token string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return a.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(a.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}
	if !parsed.Valid || claims.Subject == "" {
		return nil, ErrInvalidSession
	}
	return claims, nil
}

func (a *AuthService) CookieName() string {
	return a.cookieName
}

// SessionCookie wraps token in the session cookie.
func (a *AuthService) SessionCookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     a.cookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(a.ttl.Seconds()),
		HttpOnly: true,
		Secure:   a.secureCookie,
		SameSite: http.SameSiteLaxMode,
	}
}

// ClearCookie expires the session cookie.
func (a *AuthService) ClearCookie() *http.Cookie {
	return &http.Cookie{
		Name:     a.cookieName,
		Value:    "-deleted-",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   a.secureCookie,
		SameSite: http.SameSiteLaxMode,
	}
}
