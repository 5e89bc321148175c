// Package cryptox implements password hashing for the identity provider.
// Hashes are argon2id keys over a random per-account salt and are compared in
// constant time.
package cryptox

import (
	"crypto/subtle"
	"fmt"

	"github.com/dmitrijs2005/caresupport/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	SaltSize = 16

	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
)

// DeriveKey stretches password with salt using argon2id.
func DeriveKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, argonTime, argonMemory, argonThreads, argonKeyLen)
}

// HashPassword returns a fresh salt and the derived hash for password.
func HashPassword(password []byte) (hash []byte, salt []byte, err error) {
	salt, err = common.GenerateRandByteArray(SaltSize)
	if err != nil {
		return nil, nil, fmt.Errorf("generate salt: %w", err)
	}
	return DeriveKey(password, salt), salt, nil
}

// VerifyPassword reports whether password matches hash under salt.
func VerifyPassword(password, salt, hash []byte) bool {
	candidate := DeriveKey(password, salt)
	return subtle.ConstantTimeCompare(candidate, hash) == 1
}
