package jwt

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"servicehub/internal/domain"
)

func TestIssueVerify_RoundTripsActor(t *testing.T) {
	s := New("secret", time.Hour)

	tok, err := s.Issue(domain.Actor{ID: 42, Role: domain.RoleProvider})
	require.NoError(t, err)

	actor, err := s.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, domain.Actor{ID: 42, Role: domain.RoleProvider}, actor)
}

func TestIssue_RejectsUnknownRole(t *testing.T) {
	_, err := New("secret", time.Hour).Issue(domain.Actor{ID: 1, Role: "guest"})
	assert.ErrorIs(t, err, ErrInvalidClaims)

	_, err = New("secret", time.Hour).Issue(domain.Actor{Role: domain.RoleAdmin})
	assert.ErrorIs(t, err, ErrInvalidClaims)
}

func TestVerify_Expired(t *testing.T) {
	s := New("secret", time.Minute)
	issued := time.Now().Add(-time.Hour)
	s.now = func() time.Time { return issued }
	tok, err := s.Issue(domain.Actor{ID: 1, Role: domain.RoleCustomer})
	require.NoError(t, err)

	s.now = time.Now
	_, err = s.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_ForeignIssuer(t *testing.T) {
	claims := Claims{
		Role: domain.RoleAdmin,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Issuer:    "elsewhere",
			Subject:   "1",
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	tok, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = New("secret", time.Hour).Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_BadSubject(t *testing.T) {
	claims := Claims{
		Role: domain.RoleCustomer,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Issuer:    issuer,
			Subject:   "not-a-number",
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	tok, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = New("secret", time.Hour).Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidClaims)
}
