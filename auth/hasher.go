package auth

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/AlexWarnes/fStopandGo-api/apperror"
)

// MaxPasswordLength is bcrypt's 72-byte input limit. GenerateFromPassword
// rejects anything longer, so the validation layer enforces the same cap in
// bytes before a password ever reaches the hasher.
const MaxPasswordLength = 72

// HashPassword produces a bcrypt hash of the plaintext password. Failures
// here are internal (e.g. cost misconfiguration), never caused by the input.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", apperror.NewInternalError("failed to hash password", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether plain matches the stored bcrypt hash.
// A mismatch is a clean false; the comparison itself cannot be short-cut by
// the caller since bcrypt performs its own constant-effort verification.
func CheckPassword(hashed, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}
