package security

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/segmentio/ksuid"
)

// Keyring holds the process-wide token signing key. The key is generated at
// startup unless a secret is pinned in config, so tokens issued before a
// restart stop verifying. It is read-only after construction.
type Keyring struct {
	key []byte
	ttl time.Duration
}

func NewKeyring(secret string, ttl time.Duration) (*Keyring, error) {
	key := []byte(secret)
	if len(key) == 0 {
		key = make([]byte, 64)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("generate signing key: %w", err)
		}
	}
	return &Keyring{key: key, ttl: ttl}, nil
}

func (k *Keyring) TTL() time.Duration {
	return k.ttl
}

type Claims struct {
	jwt.RegisteredClaims
}

// Issue mints a signed bearer token for the given username and returns it
// together with its expiry instant. The jti is a fresh ksuid so two logins
// within the same second still produce distinct token strings.
func (k *Keyring) Issue(username string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(k.ttl)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        ksuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	signed, err := token.SignedString(k.key)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign jwt: %w", err)
	}
	return signed, expiresAt, nil
}

// Parse verifies signature, structure and the embedded expiry, returning the
// token subject. The server-recorded expiry is checked separately by the
// authentication gate.
func (k *Keyring) Parse(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return k.key, nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid token")
	}
	return claims.Subject, nil
}

// ExtractBearer strips the "Bearer " prefix from an Authorization header
// value. ok is false when the header is absent or malformed.
func ExtractBearer(header string) (string, bool) {
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return "", false
	}
	return token, true
}
