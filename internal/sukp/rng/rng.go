// Package rng provides deterministic, seedable random streams: a master
// generator that derives one independent stream per worker, per spec §2/§5.
package rng

import "math/rand"

// Provider owns a master generator and hands out worker streams. A Provider
// is not safe for concurrent Stream calls; derive all worker streams up
// front from the controlling goroutine before fanning out.
type Provider struct {
	master *rand.Rand
	seed   uint64
}

// New returns a Provider seeded from seed.
func New(seed uint64) *Provider {
	return &Provider{master: rand.New(rand.NewSource(int64(seed))), seed: seed}
}

// Seed returns the master seed this Provider was constructed with.
func (p *Provider) Seed() uint64 { return p.seed }

// Stream derives the next worker's private *rand.Rand. Repeating a run with
// the same master seed and the same sequence of Stream calls reproduces the
// same per-worker streams (spec §5's determinism requirement).
func (p *Provider) Stream() *rand.Rand {
	childSeed := p.master.Int63()
	return rand.New(rand.NewSource(childSeed))
}

// Streams derives n worker streams in one call, in order.
func (p *Provider) Streams(n int) []*rand.Rand {
	out := make([]*rand.Rand, n)
	for i := range out {
		out[i] = p.Stream()
	}
	return out
}
