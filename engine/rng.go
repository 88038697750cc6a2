// Copyright (c) 2020 Cisco Systems and/or its affiliates.
// Licensed under the Apache License, Version 2.0 (the "License")
// that can be found in the LICENSE file in the root of the source
// tree.

package engine

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"math/rand"
)

// mathRandPRNG wraps math/rand seeded from crypto/rand, resolving the
// teacher's own "TBD replace with random random32()" comment on
// tcp_iss in client_ctx.go — ISNs here are drawn from a real PRNG
// instead of a monotonic counter.
type mathRandPRNG struct {
	r *rand.Rand
}

// NewPRNG returns the default PRNG implementation.
func NewPRNG() PRNG {
	var seed int64
	var buf [8]byte
	if _, err := cryptorand.Read(buf[:]); err == nil {
		seed = int64(binary.LittleEndian.Uint64(buf[:]))
	}
	return &mathRandPRNG{r: rand.New(rand.NewSource(seed))}
}

func (p *mathRandPRNG) NextUint32() uint32 {
	return p.r.Uint32()
}

// FixedPRNG is a deterministic PRNG for tests, returning values from a
// fixed stream (cycling if exhausted).
type FixedPRNG struct {
	Values []uint32
	i      int
}

func (f *FixedPRNG) NextUint32() uint32 {
	if len(f.Values) == 0 {
		return 0
	}
	v := f.Values[f.i%len(f.Values)]
	f.i++
	return v
}
