package password

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"github.com/dkulagin/notable/internal/model"
)

// Hasher turns plaintext passwords into one-way hashes and verifies them.
type Hasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hashed string) bool
}

// BcryptHasher implements Hasher with bcrypt.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a BcryptHasher with the given cost. Non-positive
// cost falls back to the bcrypt default.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

func (h *BcryptHasher) Verify(plain, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}

// Policy validates password strength before hashing.
type Policy interface {
	Validate(plain string) error
}

// DefaultPolicy rejects short, purely numeric and commonly used passwords.
type DefaultPolicy struct {
	minLength int
}

// NewDefaultPolicy creates a DefaultPolicy with the given minimum length.
func NewDefaultPolicy(minLength int) *DefaultPolicy {
	if minLength <= 0 {
		minLength = 8
	}
	return &DefaultPolicy{minLength: minLength}
}

var commonPasswords = map[string]struct{}{
	"password":    {},
	"password1":   {},
	"password123": {},
	"12345678":    {},
	"123456789":   {},
	"1234567890":  {},
	"qwerty":      {},
	"qwertyuiop":  {},
	"letmein":     {},
	"iloveyou":    {},
	"admin":       {},
	"welcome":     {},
	"monkey":      {},
	"dragon":      {},
	"sunshine":    {},
	"princess":    {},
	"football":    {},
	"baseball":    {},
	"trustno1":    {},
	"abc123":      {},
}

func (p *DefaultPolicy) Validate(plain string) error {
	if len(plain) < p.minLength {
		return fmt.Errorf("%w: shorter than %d characters", model.ErrWeakPassword, p.minLength)
	}

	if isEntirelyNumeric(plain) {
		return fmt.Errorf("%w: entirely numeric", model.ErrWeakPassword)
	}

	if _, ok := commonPasswords[strings.ToLower(plain)]; ok {
		return fmt.Errorf("%w: too common", model.ErrWeakPassword)
	}

	return nil
}

func isEntirelyNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
