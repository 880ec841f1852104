package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is a security parameter, not a performance knob. Lowering it
// weakens every stored credential at once.
const bcryptCost = 12

// MinPasswordLength applies to self-registration flows.
const MinPasswordLength = 6

// dummyHash is a fixed cost-12 reference hash. Authenticate verifies against
// it when no account matches the email, so the missing and wrong-password
// paths take comparable time. The result is always discarded.
const dummyHash = "$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW"

// HashPassword derives a salted one-way hash of the plaintext. The encoded
// output embeds the algorithm, cost, and salt; two calls with the same input
// produce different hashes.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword verifies the plaintext against a stored hash using the
// salt embedded in it. Returns false on any mismatch, including a malformed
// stored hash; it never reports why verification failed.
func CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
