package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	kdb "github.com/pantrylab/cookbookd/pkg/db"
)

// ErrInvalidToken means a bearer token did not verify.
var ErrInvalidToken = errors.New("invalid token")

// DefaultTokenTTL is how long issued tokens live unless configured
// otherwise.
const DefaultTokenTTL = 24 * time.Hour

// Claims carried in cookbookd bearer tokens.
type Claims struct {
	jwt.RegisteredClaims

	// private claims
	Email string `json:"cookbookd/email"`
}

// AccountId reads the subject claim back as an account id.
func (c *Claims) AccountId() (int, error) {
	id, err := strconv.Atoi(c.Subject)
	if err != nil {
		return 0, fmt.Errorf("%w: subject %q is not an account id", ErrInvalidToken, c.Subject)
	}
	return id, nil
}

// Tokens issues and verifies bearer tokens as JWS, signed HS256 with
// a shared secret.
//
// Tokens are stateless: nothing is stored per token, and issued ones
// stay valid until they expire, whatever happens to the account's
// password in between.
type Tokens struct {
	secret []byte
	ttl    time.Duration
}

func NewTokens(secret []byte, ttl time.Duration) *Tokens {
	return &Tokens{secret: secret, ttl: ttl}
}

// Issue signs a new token for the account.
func (t *Tokens) Issue(user kdb.User) (string, error) {
	now := time.Now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			// jti
			ID: uuid.NewString(),

			// sub
			Subject: strconv.Itoa(user.Id),

			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
		Email: user.Email,
	})
	return tok.SignedString(t.secret)
}

// Verify parses a token and returns its claims.
//
// With a static shared secret there is no way to fail but the token
// itself, so every failure wraps ErrInvalidToken.
func (t *Tokens) Verify(token string) (*Claims, error) {
	claims := &Claims{}
	if _, err := jwt.ParseWithClaims(
		token, claims,
		func(*jwt.Token) (interface{}, error) { return t.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	); err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}
	return claims, nil
}
