package cryptox

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/campdir/campdir/internal/common"
)

// resetTokenBytes is the entropy of a reset token before hex encoding.
const resetTokenBytes = 20

// NewResetToken generates a password-reset token pair: the plaintext that is
// mailed to the user and the sha256 digest that is persisted. Only the digest
// ever touches the store.
func NewResetToken() (plain string, digest string, err error) {
	plain, err = common.MakeRandHexString(resetTokenBytes)
	if err != nil {
		return "", "", err
	}
	return plain, HashResetToken(plain), nil
}

// HashResetToken returns the hex-encoded sha256 digest of a plaintext reset
// token. The same digest is used on store and on lookup, so hash equality
// substitutes for comparing plaintexts.
func HashResetToken(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}
