package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword produces a salted bcrypt digest. Each call salts freshly, so
// the same password never hashes to the same digest twice.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword verifies password against a digest produced by HashPassword.
// The comparison of the derived hash is constant-time inside bcrypt.
func CheckPassword(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
