package auth

import (
	"github.com/rotisserie/eris"
	"golang.org/x/crypto/bcrypt"
)

// defaultCost is the bcrypt work factor. Tests inject a lower cost to avoid
// paying hundreds of milliseconds per hash.
const defaultCost = 12

// PasswordHasher provides bcrypt hashing and verification. bcrypt generates
// a random salt per hash and embeds it in the output, so the stored string
// is self-contained.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher creates a PasswordHasher with the production cost.
func NewPasswordHasher() *PasswordHasher {
	return &PasswordHasher{cost: defaultCost}
}

// NewPasswordHasherWithCost creates a PasswordHasher with a custom cost.
// Intended for tests; bcrypt.MinCost keeps them fast.
func NewPasswordHasherWithCost(cost int) *PasswordHasher {
	return &PasswordHasher{cost: cost}
}

// Hash hashes the given plaintext password with bcrypt.
func (h *PasswordHasher) Hash(plaintext string) (string, error) {
	if len(plaintext) > 72 {
		// bcrypt silently truncates beyond 72 bytes; reject instead.
		return "", eris.New("password must be 72 bytes or fewer")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", eris.Wrap(err, "hashing password")
	}

	return string(hashed), nil
}

// Verify reports whether the plaintext password matches the stored hash.
// bcrypt compares in constant time.
func (h *PasswordHasher) Verify(hash, plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
