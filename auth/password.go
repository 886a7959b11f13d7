package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword produces a salted bcrypt digest. The plaintext never
// leaves this call.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hashed), err
}

func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
