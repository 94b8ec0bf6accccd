// Package idgen provides ID generation utilities
package idgen

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"sync/atomic"

	"github.com/google/uuid"
)

// RandomIDLength is the length of ids produced by RandomGenerator
const RandomIDLength = 16

const randomAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

var validIDPattern = regexp.MustCompile(`^[a-zA-Z0-9]{16}$`)

// Generator generates unique identifiers
type Generator interface {
	Generate() string
}

// RandomGenerator generates 16 character alphanumeric ids, the format used for
// bonus ids inside a parent document.
type RandomGenerator struct{}

// NewRandom creates a new random id generator
func NewRandom() *RandomGenerator {
	return &RandomGenerator{}
}

// Generate creates a new random alphanumeric id
func (g *RandomGenerator) Generate() string {
	out := make([]byte, RandomIDLength)
	limit := big.NewInt(int64(len(randomAlphabet)))
	for i := range out {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			// crypto/rand failing means the system is unusable
			panic(fmt.Sprintf("crypto/rand.Int failed: %v", err))
		}
		out[i] = randomAlphabet[n.Int64()]
	}
	return string(out)
}

// IsValidID reports whether id has the shape produced by RandomGenerator
func IsValidID(id string) bool {
	return validIDPattern.MatchString(id)
}

// SequentialGenerator generates sequential ids for testing. Ids are zero padded
// so they stay valid per IsValidID when the prefix is alphanumeric.
type SequentialGenerator struct {
	prefix  string
	counter uint64
}

// NewSequential creates a new sequential generator
func NewSequential(prefix string) *SequentialGenerator {
	return &SequentialGenerator{prefix: prefix}
}

// Generate creates a new sequential ID
func (g *SequentialGenerator) Generate() string {
	n := atomic.AddUint64(&g.counter, 1)
	width := RandomIDLength - len(g.prefix)
	if width < 1 {
		return fmt.Sprintf("%s%d", g.prefix, n)
	}
	return fmt.Sprintf("%s%0*d", g.prefix, width, n)
}

// UUIDGenerator generates UUIDs with optional prefix
type UUIDGenerator struct {
	prefix string
}

// NewUUID creates a new UUID generator with optional prefix
func NewUUID(prefix string) *UUIDGenerator {
	return &UUIDGenerator{prefix: prefix}
}

// Generate creates a new UUID-based ID
func (g *UUIDGenerator) Generate() string {
	id := uuid.New().String()
	if g.prefix != "" {
		return fmt.Sprintf("%s_%s", g.prefix, id)
	}
	return id
}
