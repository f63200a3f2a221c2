package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"swmanager/internal/config"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher turns plain passwords into stored hashes and checks them
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) bool
}

// SHA256Hasher stores hex(sha256(password)) with no salt. Existing user rows use this
// format, so it stays the default. Identical passwords produce identical hashes.
type SHA256Hasher struct{}

func (SHA256Hasher) Hash(plain string) (string, error) {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:]), nil
}

func (h SHA256Hasher) Compare(hash, plain string) bool {
	candidate, _ := h.Hash(plain)
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(hash)) == 1
}

// BcryptHasher is the salted alternative, enabled with PASSWORD_HASHER=bcrypt
type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(plain string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

func (BcryptHasher) Compare(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// NewPasswordHasher picks the hasher named in configuration
func NewPasswordHasher(name string) (PasswordHasher, error) {
	switch name {
	case config.HasherSHA256, "":
		return SHA256Hasher{}, nil
	case config.HasherBcrypt:
		return BcryptHasher{}, nil
	default:
		return nil, fmt.Errorf("unknown password hasher %q", name)
	}
}
