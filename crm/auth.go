package crm

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Sentinel errors surfaced by the auth service. Handlers map these to the
// envelope message without leaking which half of the credential failed.
var (
	ErrInvalidCredentials = errors.New("crm: invalid email or password")
	ErrInvalidToken       = errors.New("crm: invalid token")
)

const resetAudience = "password-reset"

// TokenIssuer signs and verifies session tokens with an HMAC key.
type TokenIssuer struct {
	key []byte
}

// NewTokenIssuer constructs an issuer from a shared secret.
func NewTokenIssuer(secret []byte) *TokenIssuer {
	return &TokenIssuer{key: secret}
}

// Sign produces a signed token for the claims.
func (t *TokenIssuer) Sign(claims *jwt.RegisteredClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.key)
}

// Verify parses and validates a token, returning its claims.
func (t *TokenIssuer) Verify(tok string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tok, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", token.Method.Alg())
		}
		return t.key, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Session is the result of a successful login.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// AuthService implements login, logout, and the password reset flow over the
// user service. Sessions are stateless signed tokens; logout is client-side.
type AuthService struct {
	users  *UserService
	issuer *TokenIssuer
	ttl    time.Duration
}

// NewAuthService wires an auth service. ttl bounds session token lifetime;
// zero means one hour.
func NewAuthService(users *UserService, issuer *TokenIssuer, ttl time.Duration) *AuthService {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &AuthService{users: users, issuer: issuer, ttl: ttl}
}

// Login checks the credentials and issues a session token.
func (a *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	user, ok := a.users.FindByEmail(email)
	if !ok || user.passwordHash != HashPassword(password) {
		return nil, ErrInvalidCredentials
	}

	token, err := a.issuer.Sign(&jwt.RegisteredClaims{
		Subject:   user.ID,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(a.ttl)),
	})
	if err != nil {
		return nil, fmt.Errorf("crm: signing session token: %w", err)
	}
	return &Session{Token: token, User: user}, nil
}

// Authenticate resolves a session token to its user.
func (a *AuthService) Authenticate(ctx context.Context, token string) (User, error) {
	claims, err := a.issuer.Verify(token)
	if err != nil {
		return User{}, ErrInvalidToken
	}
	if len(claims.Audience) > 0 {
		// Reset tokens never authenticate requests.
		return User{}, ErrInvalidToken
	}
	user, ok := a.users.Get(claims.Subject)
	if !ok {
		return User{}, ErrInvalidToken
	}
	return user, nil
}

// Logout invalidates the session on the client. Tokens are stateless so there
// is nothing to revoke server-side; the method exists to keep the API shape.
func (a *AuthService) Logout(ctx context.Context, token string) error {
	return nil
}

// ForgotPassword issues a short-lived reset token for the account. The token
// is returned to the caller for delivery; mail transport is out of scope.
// Unknown emails produce an error so handlers can still answer uniformly.
func (a *AuthService) ForgotPassword(ctx context.Context, email string) (string, error) {
	user, ok := a.users.FindByEmail(email)
	if !ok {
		return "", ErrInvalidCredentials
	}
	token, err := a.issuer.Sign(&jwt.RegisteredClaims{
		Subject:   user.ID,
		Audience:  jwt.ClaimStrings{resetAudience},
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(15 * time.Minute)),
	})
	if err != nil {
		return "", fmt.Errorf("crm: signing reset token: %w", err)
	}
	return token, nil
}

// ResetPassword validates a reset token and stores the new password.
func (a *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	claims, err := a.issuer.Verify(token)
	if err != nil {
		return ErrInvalidToken
	}
	if len(claims.Audience) != 1 || claims.Audience[0] != resetAudience {
		return ErrInvalidToken
	}
	if err := a.users.SetPassword(claims.Subject, newPassword); err != nil {
		return ErrInvalidToken
	}
	return nil
}

// HashPassword derives the stored credential form of a password.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}
