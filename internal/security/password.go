package security

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// argon2Params pins the cost of credential hashing. Stored hashes embed their
// own params, so these can change without invalidating existing users.
type argon2Params struct {
	time    uint32
	memory  uint32
	threads uint8
	keyLen  uint32
	saltLen uint32
}

var passwordParams = argon2Params{
	time:    3,
	memory:  64 * 1024,
	threads: 2,
	keyLen:  32,
	saltLen: 16,
}

// HashPassword derives an argon2id hash of password with a fresh random salt
// and returns it in the form $argon2id$v=19$t=,m=,p=$<salt>$<hash>.
func HashPassword(password string) ([]byte, error) {
	salt := make([]byte, passwordParams.saltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt,
		passwordParams.time, passwordParams.memory, passwordParams.threads, passwordParams.keyLen)

	encoded := fmt.Sprintf("$argon2id$v=19$t=%d,m=%d,p=%d$%s$%s",
		passwordParams.time, passwordParams.memory, passwordParams.threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key))

	return []byte(encoded), nil
}

// VerifyPassword reports whether password matches the stored hash. The params
// are taken from the hash itself, not from passwordParams.
func VerifyPassword(password string, stored []byte) (bool, error) {
	parts := strings.Split(string(stored), "$")
	if len(parts) != 6 || parts[1] != "argon2id" || parts[2] != "v=19" {
		return false, fmt.Errorf("malformed password hash")
	}

	var params argon2Params
	if _, err := fmt.Sscanf(parts[3], "t=%d,m=%d,p=%d", &params.time, &params.memory, &params.threads); err != nil {
		return false, fmt.Errorf("parse hash params: %w", err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, fmt.Errorf("decode salt: %w", err)
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false, fmt.Errorf("decode hash: %w", err)
	}

	computed := argon2.IDKey([]byte(password), salt,
		params.time, params.memory, params.threads, uint32(len(key)))

	return subtle.ConstantTimeCompare(key, computed) == 1, nil
}
