package util

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// GenerateCaseNumber produces a citizen-facing case reference of the form
// LIB-YYYYMM-NNNN. Uniqueness is enforced by the store's unique index, not
// here; the random suffix only keeps collisions rare.
func GenerateCaseNumber(now time.Time) string {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	suffix := int64(0)
	if err == nil {
		suffix = n.Int64()
	}
	return fmt.Sprintf("LIB-%04d%02d-%04d", now.Year(), int(now.Month()), suffix)
}
