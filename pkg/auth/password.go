package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword digests a password for storage.
//
// The digest carries its own salt, so hashing the same password
// twice yields different digests.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword answers whether password is the one digested into hash.
func VerifyPassword(hash string, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
