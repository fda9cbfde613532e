package auth

import (
	"strings"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/shift-scheduler/internal/domain"
)

func testAccount() *domain.StaffAccount {
	return &domain.StaffAccount{
		ID:    7,
		Name:  "John Doe",
		Email: "john@schedule.com",
		Role:  domain.RoleStaff,
	}
}

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 24*time.Hour)

	token, exp, err := tm.Generate(testAccount())
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), exp, 5*time.Second)

	claims, err := tm.Parse(token)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), claims.StaffID)
	assert.Equal(t, "john@schedule.com", claims.Email)
	assert.Equal(t, domain.RoleStaff, claims.Role)
}

func TestExpiredTokenRejected(t *testing.T) {
	tm := NewTokenManager("test-secret", 24*time.Hour)

	claims := &Claims{
		StaffID: 7,
		Email:   "john@schedule.com",
		Role:    domain.RoleStaff,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-25 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-1 * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	assert.NoError(t, err)

	_, err = tm.Parse(token)
	assert.Error(t, err)
}

func TestTamperedSignatureRejected(t *testing.T) {
	tm := NewTokenManager("test-secret", 24*time.Hour)

	token, _, err := tm.Generate(testAccount())
	assert.NoError(t, err)

	parts := strings.Split(token, ".")
	assert.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + "." + "AAAA" + parts[2][4:]

	_, err = tm.Parse(tampered)
	assert.Error(t, err)
}

func TestWrongSecretRejected(t *testing.T) {
	issuer := NewTokenManager("secret-a", 24*time.Hour)
	verifier := NewTokenManager("secret-b", 24*time.Hour)

	token, _, err := issuer.Generate(testAccount())
	assert.NoError(t, err)

	_, err = verifier.Parse(token)
	assert.Error(t, err)
}

func TestNonHS256Rejected(t *testing.T) {
	tm := NewTokenManager("test-secret", 24*time.Hour)

	// alg=none tokens must fail closed.
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{StaffID: 7}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	assert.NoError(t, err)

	_, err = tm.Parse(token)
	assert.Error(t, err)
}

func TestPasswordHashCompare(t *testing.T) {
	hash, err := HashPassword("staff123", 4)
	assert.NoError(t, err)
	assert.NotEqual(t, "staff123", hash)

	assert.NoError(t, ComparePassword(hash, "staff123"))
	assert.Error(t, ComparePassword(hash, "wrong"))
}
