package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/selectshop/shop-api/internal/core/domain"
)

const defaultTokenTTL = 60 * time.Minute

// TokenService implements stateless credential issuance and verification.
// Tokens are HS256-signed JWTs carrying subject, role, issued-at, and expiry;
// nothing is ever stored server-side.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a credential for the subject/role pair, expiring after the
// configured TTL. The result carries no scheme prefix.
func (s *TokenService) Issue(subject, role string) (string, error) {
	now := s.now().UTC()
	claims := jwt.MapClaims{
		"sub":  subject,
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(s.ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Verify parses and validates a credential, returning its claims.
//
// Expiry is checked here rather than by the JWT library: a credential is
// rejected only when now is strictly past the expiry instant, so a token
// verified exactly at its expiry second still passes.
func (s *TokenService) Verify(token string) (*domain.Claims, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithoutClaimsValidation())
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, domain.ErrTokenSignatureInvalid
		default:
			return nil, domain.ErrTokenMalformed
		}
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, domain.ErrTokenMalformed
	}
	if s.now().After(exp.Time) {
		return nil, domain.ErrTokenExpired
	}

	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return nil, domain.ErrTokenMalformed
	}
	role, _ := claims["role"].(string)
	if role == "" {
		return nil, domain.ErrTokenMalformed
	}

	return &domain.Claims{Subject: subject, Role: role}, nil
}
