package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentormatch/apiserver/types"
)

func testUser() types.User {
	return types.User{ID: 42, Email: "mentee@example.com", Name: "Mentee", Role: types.RoleMentee}
}

func TestIssueAndValidate(t *testing.T) {
	svc := NewTokenService("secret", "", "", 0)

	token, err := svc.Issue(testUser())
	require.NoError(t, err)

	claims, err := svc.Validate(token)
	require.NoError(t, err)

	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, 42, id)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, DefaultIssuer, claims.Issuer)
	assert.Equal(t, jwt.ClaimStrings{DefaultAudience}, claims.Audience)
	assert.Equal(t, types.RoleMentee, claims.Role)
	assert.Equal(t, "mentee@example.com", claims.Email)
	assert.NotEmpty(t, claims.ID)
	require.NotNil(t, claims.ExpiresAt)
	require.NotNil(t, claims.IssuedAt)
	require.NotNil(t, claims.NotBefore)
	assert.Equal(t, time.Hour, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
}

func TestIssueUniqueTokenIDs(t *testing.T) {
	svc := NewTokenService("secret", "", "", 0)

	first, err := svc.Issue(testUser())
	require.NoError(t, err)
	second, err := svc.Issue(testUser())
	require.NoError(t, err)

	a, err := svc.Validate(first)
	require.NoError(t, err)
	b, err := svc.Validate(second)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestIssueRequiresUserID(t *testing.T) {
	svc := NewTokenService("secret", "", "", 0)
	_, err := svc.Issue(types.User{})
	assert.Error(t, err)
}

func TestValidateExpired(t *testing.T) {
	svc := NewTokenService("secret", "", "", time.Hour)
	issuedAt := time.Now().Add(-2 * time.Hour)
	svc.now = func() time.Time { return issuedAt }

	token, err := svc.Issue(testUser())
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidateWrongSecret(t *testing.T) {
	token, err := NewTokenService("secret", "", "", 0).Issue(testUser())
	require.NoError(t, err)

	_, err = NewTokenService("other", "", "", 0).Validate(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidateWrongIssuer(t *testing.T) {
	token, err := NewTokenService("secret", "someone-else", "", 0).Issue(testUser())
	require.NoError(t, err)

	_, err = NewTokenService("secret", "", "", 0).Validate(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidateIgnoresAudience(t *testing.T) {
	token, err := NewTokenService("secret", "", "another-audience", 0).Issue(testUser())
	require.NoError(t, err)

	claims, err := NewTokenService("secret", "", "", 0).Validate(token)
	require.NoError(t, err)
	assert.Equal(t, jwt.ClaimStrings{"another-audience"}, claims.Audience)
}

func TestValidateMalformed(t *testing.T) {
	svc := NewTokenService("secret", "", "", 0)
	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		_, err := svc.Validate(raw)
		assert.ErrorIs(t, err, ErrTokenInvalid, raw)
	}
}

func TestValidateRejectsOtherAlgorithms(t *testing.T) {
	claims := Claims{RegisteredClaims: jwt.RegisteredClaims{
		Issuer:    DefaultIssuer,
		Subject:   "1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewTokenService("secret", "", "", 0).Validate(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidateRejectsNonNumericSubject(t *testing.T) {
	claims := Claims{RegisteredClaims: jwt.RegisteredClaims{
		Issuer:    DefaultIssuer,
		Subject:   "abc",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewTokenService("secret", "", "", 0).Validate(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
