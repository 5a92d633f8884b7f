package jwt

import (
	"errors"
	"strconv"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"servicehub/internal/domain"
)

const issuer = "servicehub"

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrInvalidClaims = errors.New("invalid claims")
)

// Service issues and verifies HS256 access tokens for marketplace accounts.
type Service struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// Claims carry the account id in "sub" and its role alongside.
type Claims struct {
	Role domain.Role `json:"role"`
	jwtlib.RegisteredClaims
}

// Actor converts verified claims into the caller identity.
func (c *Claims) Actor() (domain.Actor, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || id <= 0 || !c.Role.Valid() {
		return domain.Actor{}, ErrInvalidClaims
	}
	return domain.Actor{ID: id, Role: c.Role}, nil
}

func New(secret string, ttl time.Duration) *Service {
	return &Service{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token for the given account.
func (s *Service) Issue(a domain.Actor) (string, error) {
	if a.ID <= 0 || !a.Role.Valid() {
		return "", ErrInvalidClaims
	}
	now := s.now()
	claims := Claims{
		Role: a.Role,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.FormatInt(a.ID, 10),
			ID:        uuid.NewString(),
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify checks signature, issuer and expiry and returns the caller.
func (s *Service) Verify(token string) (domain.Actor, error) {
	var claims Claims
	_, err := jwtlib.ParseWithClaims(token, &claims, func(*jwtlib.Token) (any, error) {
		return s.secret, nil
	},
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithIssuer(issuer),
		jwtlib.WithExpirationRequired(),
		jwtlib.WithTimeFunc(s.now),
	)
	if err != nil {
		return domain.Actor{}, ErrInvalidToken
	}
	return claims.Actor()
}
