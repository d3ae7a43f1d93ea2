package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/draftdesk/draftdesk/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

// TokenService issues and verifies expiring, tamper-evident tokens carrying
// an email address. Tokens are signed with a key derived from the process
// secret and a context string, so a token issued for one purpose can never
// verify under another.
type TokenService struct {
	secret []byte
	now    func() time.Time
}

// NewTokenService creates a TokenService sealed with the given secret.
func NewTokenService(secret string) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		now:    time.Now,
	}
}

// SetClock overrides the time source. Intended for tests.
func (s *TokenService) SetClock(now func() time.Time) {
	s.now = now
}

// Issue returns an opaque URL-safe token binding the email to the given
// context at the current time. Age is enforced at verification, so the token
// itself carries no expiry.
func (s *TokenService) Issue(email, context string) (string, error) {
	claims := jwt.MapClaims{
		"sub": email,
		"iat": s.now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.deriveKey(context))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the token's signature under the given context and its age
// against maxAge. It returns the embedded email on success,
// domain.ErrTokenExpired when the token is older than maxAge, and
// domain.ErrTokenInvalid for signature mismatch, wrong context, or malformed
// input.
func (s *TokenService) Verify(tokenString, context string, maxAge time.Duration) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.deriveKey(context), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return "", domain.ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", domain.ErrTokenInvalid
	}

	issued, err := claims.GetIssuedAt()
	if err != nil || issued == nil {
		return "", domain.ErrTokenInvalid
	}
	if s.now().Sub(issued.Time) > maxAge {
		return "", domain.ErrTokenExpired
	}

	email, err := claims.GetSubject()
	if err != nil || email == "" {
		return "", domain.ErrTokenInvalid
	}
	return email, nil
}

// deriveKey mixes the context string into the signing key so that contexts
// act as isolated namespaces.
func (s *TokenService) deriveKey(context string) []byte {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(context))
	return mac.Sum(nil)
}
