package model

import (
	"crypto/rand"
	"math/big"
	"time"
)

// PremiumDomain is a reserved email local part that requires a redemption
// code to claim during registration.
type PremiumDomain struct {
	ID string `json:"id"`

	// Name is the reserved local part; the domain suffix is fixed
	// server-side.
	Name string `json:"name"`

	Price float64 `json:"price"`

	// Code is the 5-character uppercase alphanumeric redemption code.
	Code string `json:"code"`

	// DurationMonths is how long the claim lasts.
	DurationMonths int `json:"durationMonths"`

	Active    bool      `json:"active"`
	CreatedBy string    `json:"createdBy,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

const (
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength   = 5
)

// GenerateCode produces a random 5-character uppercase alphanumeric
// redemption code. Uniqueness against existing codes is the caller's
// concern; see GenerateUniqueCode.
func GenerateCode() string {
	buf := make([]byte, codeLength)
	max := big.NewInt(int64(len(codeAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the platform source is broken;
			// fall back to the first symbol rather than panic mid-form.
			buf[i] = codeAlphabet[0]
			continue
		}
		buf[i] = codeAlphabet[n.Int64()]
	}
	return string(buf)
}

// GenerateUniqueCode generates a code absent from the given existing set.
// The set is typically the currently loaded premium list; global uniqueness
// remains the server's to enforce.
func GenerateUniqueCode(existing []PremiumDomain) string {
	taken := make(map[string]bool, len(existing))
	for _, p := range existing {
		taken[p.Code] = true
	}
	for {
		code := GenerateCode()
		if !taken[code] {
			return code
		}
	}
}

// IsValidCode reports whether s has the shape of a redemption code:
// exactly 5 uppercase alphanumeric characters.
func IsValidCode(s string) bool {
	if len(s) != codeLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}
