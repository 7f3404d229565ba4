package auth

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/mentormatch/apiserver/types"
)

const (
	DefaultIssuer   = "mentor-mentee-app"
	DefaultAudience = "mentor-mentee-users"
	DefaultTokenTTL = time.Hour
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// Claims is the session token payload.
type Claims struct {
	Email string     `json:"email"`
	Name  string     `json:"name"`
	Role  types.Role `json:"role"`

	jwt.RegisteredClaims
}

// UserID returns the subject as a user id.
func (c Claims) UserID() (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(c.Subject))
	if err != nil || id < 1 {
		return 0, ErrTokenInvalid
	}
	return id, nil
}

// TokenService issues and validates HS256 session tokens.
//
// Validation checks signature, expiry, not-before and issuer. The audience claim is
// written but deliberately not verified, so tokens minted for another audience by the
// same issuer and secret are accepted.
type TokenService struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration

	now func() time.Time
}

// NewTokenService constructs a TokenService. Empty issuer/audience and non-positive ttl
// fall back to the defaults.
func NewTokenService(secret, issuer, audience string, ttl time.Duration) *TokenService {
	if issuer == "" {
		issuer = DefaultIssuer
	}
	if audience == "" {
		audience = DefaultAudience
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{
		secret:   []byte(secret),
		issuer:   issuer,
		audience: audience,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Issue signs a token for user.
func (s *TokenService) Issue(user types.User) (string, error) {
	if user.ID < 1 {
		return "", errors.New("user id is required to issue a token")
	}

	now := s.now().UTC()
	claims := Claims{
		Email: user.Email,
		Name:  user.Name,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   strconv.Itoa(user.ID),
			Audience:  jwt.ClaimStrings{s.audience},
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Validate parses tokenString and returns its claims.
func (s *TokenService) Validate(tokenString string) (Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)

	var claims Claims
	token, err := parser.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrTokenInvalid
	}
	if token == nil || !token.Valid {
		return Claims{}, ErrTokenInvalid
	}
	if _, err := claims.UserID(); err != nil {
		return Claims{}, err
	}
	return claims, nil
}
