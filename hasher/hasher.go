// Package hasher wraps bcrypt. The salt is generated per call and embedded in
// the digest, so only the digest needs storing.
package hasher

import "golang.org/x/crypto/bcrypt"

const cost = 10

func Hash(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether password matches digest. A mismatch is false, never
// an error; the caller decides how to surface it.
func Verify(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
