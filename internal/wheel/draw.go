package wheel

import (
	"crypto/rand"
	"math/big"
	mathrand "math/rand/v2"

	"luckywheel/internal/models"
)

// Source supplies uniformly distributed integers. *math/rand/v2.Rand
// satisfies it, which is what tests use for reproducible draws.
type Source interface {
	// IntN returns a value in [0, n). It panics if n <= 0.
	IntN(n int) int
}

// SecureSource implements Source using crypto/rand.
type SecureSource struct{}

// NewSecureSource creates a new crypto/rand backed source.
func NewSecureSource() *SecureSource {
	return &SecureSource{}
}

// IntN returns a uniformly distributed value in [0, n).
func (s *SecureSource) IntN(n int) int {
	if n <= 0 {
		panic("wheel: invalid argument to IntN")
	}
	if n == 1 {
		return 0
	}

	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand only fails when the OS entropy source is broken
		return mathrand.IntN(n)
	}
	return int(v.Int64())
}

// Draw picks one segment index uniformly at random in [0, len(segments)).
func Draw(src Source, segments []models.Segment) (int, error) {
	if len(segments) == 0 {
		return 0, ErrNoSegments
	}
	return src.IntN(len(segments)), nil
}

// InRange returns a uniformly distributed value in [min, max] (inclusive).
func InRange(src Source, min, max int) int {
	if min >= max {
		return min
	}
	return min + src.IntN(max-min+1)
}
