package auth

import (
	"errors"
	"strconv"
	"time"

	"blogward/errs"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is how long an issued token stays valid.
const DefaultTTL = 30 * 24 * time.Hour

// Config carries the signing secret and token lifetime. It is built from
// the environment at startup and passed in explicitly.
type Config struct {
	Secret string
	TTL    time.Duration
}

// Tokens issues and verifies HS256-signed bearer tokens.
type Tokens struct {
	secret []byte
	ttl    time.Duration
}

// NewTokens builds the token service from cfg. An empty secret is refused;
// a zero TTL falls back to DefaultTTL.
func NewTokens(cfg Config) (*Tokens, error) {
	if cfg.Secret == "" {
		return nil, errors.New("token secret cannot be empty")
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Tokens{secret: []byte(cfg.Secret), ttl: ttl}, nil
}

// TTL returns the configured token lifetime.
func (t *Tokens) TTL() time.Duration {
	return t.ttl
}

// Issue signs the claims with an expiry of now + TTL and returns the
// opaque token string. The passed map is not modified.
func (t *Tokens) Issue(claims map[string]any) (string, error) {
	full := make(jwt.MapClaims, len(claims)+2)
	for k, v := range claims {
		full[k] = v
	}
	now := time.Now()
	full["iat"] = now.Unix()
	full["exp"] = now.Add(t.ttl).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, full)
	return token.SignedString(t.secret)
}

// Verify parses and validates the token, returning its claim set. An
// expired token fails with the expired error, a bad signature with the
// invalid-signature error.
func (t *Tokens) Verify(tokenStr string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return t.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errs.NewTokenExpiredError()
		}
		return nil, errs.NewInvalidSignatureError(err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errs.NewInvalidSignatureError(errors.New("unexpected claims type"))
	}
	return claims, nil
}

// Subject extracts the user id from a verified claim set. JWT numbers
// decode as float64.
func Subject(claims jwt.MapClaims) (uint, bool) {
	raw, ok := claims["sub"]
	if !ok {
		return 0, false
	}
	switch v := raw.(type) {
	case float64:
		if v <= 0 || v != float64(uint(v)) {
			return 0, false
		}
		return uint(v), true
	case string:
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil || id == 0 {
			return 0, false
		}
		return uint(id), true
	default:
		return 0, false
	}
}
