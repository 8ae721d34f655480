// Package idgen provides a deterministic, collision-free generator for the
// short identifiers assigned to anonymous data nodes in a computation graph.
package idgen

import (
	"fmt"
	"hash"

	"golang.org/x/crypto/blake2b"
)

// prng is a clocked, keyed-hash pseudo-random generator: each clockOnce
// call returns 32 bytes of output and feeds the other half of the digest
// back into its hash state, so that distinct tasks built from the same seed emit
// byte-identical sequences of anonymous ids.
type prng struct {
	clock uint64
	seed  []byte
	hash  hash.Hash
}

func newPRNG(seed []byte) (*prng, error) {
	h, err := blake2b.New512(nil)
	if err != nil {
		return nil, fmt.Errorf("cannot create idgen prng: %w", err)
	}
	p := &prng{hash: h}
	p.reseed(seed)
	return p, nil
}

func (p *prng) reseed(seed []byte) {
	p.hash.Reset()
	p.seed = seed
	p.hash.Write(seed)
	p.clock = 0
}

// clockOnce returns the left 32 bytes of the current digest and writes the
// right 32 bytes back into the hash, advancing the clock by one.
func (p *prng) clockOnce() []byte {
	sum := p.hash.Sum(nil)
	p.hash.Write(sum[32:])
	p.clock++
	return sum[:32]
}
