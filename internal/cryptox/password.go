// Package cryptox wraps the credential primitives used by the auth flow:
// adaptive one-way password hashing and single-use reset tokens.
package cryptox

import "golang.org/x/crypto/bcrypt"

// bcryptCost matches the salt rounds the service has always used; raising it
// only affects hashes written after the change.
const bcryptCost = 10

// HashPassword returns a salted bcrypt hash of the plaintext password.
// Plaintext must be hashed through this function before it is handed to any
// store write; nothing else in the codebase persists passwords.
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword reports whether plain matches the stored bcrypt hash.
// Any mismatch or malformed hash yields false, never an error.
func CheckPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
