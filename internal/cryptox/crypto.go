// Package cryptox wraps the credential primitives: the slow adaptive password
// hash used to store secrets and the nonce generator used by the auth
// challenge.
package cryptox

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"

	"github.com/crewbase/crewbase/internal/common"
)

// bcrypt cost is fixed, not configurable per call.
const hashCost = bcrypt.DefaultCost

// HashPassword derives a storable digest from a plaintext secret. The
// plaintext must never be persisted or logged.
func HashPassword(secret string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(secret), hashCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// VerifyPassword reports whether secret matches the stored digest.
func VerifyPassword(secret string, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(secret)) == nil
}

// MakeNonce hashes a fresh random token into a hex nonce. Called once per
// service lifecycle, not per request.
func MakeNonce() string {
	sum := sha256.Sum256(common.GenerateRandByteArray(32))
	return hex.EncodeToString(sum[:])
}
