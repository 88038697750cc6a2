// Copyright (c) 2020 Cisco Systems and/or its affiliates.
// Licensed under the Apache License, Version 2.0 (the "License")
// that can be found in the LICENSE file in the root of the source
// tree.

// Package seq implements modular arithmetic over 32-bit TCP sequence
// numbers, per RFC793-bis: comparisons are taken modulo 2^32 using the
// sign of the signed difference, never as plain unsigned comparisons.
package seq

// Num is a TCP sequence (or acknowledgment) number. It is a distinct
// type rather than a bare uint32 so that accidental unsigned comparisons
// don't silently compile.
type Num uint32

// Incr returns n+1.
func (n Num) Incr() Num {
	return n + 1
}

// Addi returns n+d, d may be negative.
func (n Num) Addi(d int32) Num {
	return Num(int32(n) + d)
}

// Equal reports whether n == m.
func (n Num) Equal(m Num) bool {
	return n == m
}

// Less reports whether n comes before m in sequence-number order.
func (n Num) Less(m Num) bool {
	return int32(n-m) < 0
}

// LessEqual reports whether n comes at or before m.
func (n Num) LessEqual(m Num) bool {
	return int32(n-m) <= 0
}

// Greater reports whether n comes after m.
func (n Num) Greater(m Num) bool {
	return int32(n-m) > 0
}

// GreaterEqual reports whether n comes at or after m.
func (n Num) GreaterEqual(m Num) bool {
	return int32(n-m) >= 0
}

// Max returns whichever of n, m is later in sequence order.
func (n Num) Max(m Num) Num {
	if n.Greater(m) {
		return n
	}
	return m
}

// Diff returns n-m as a signed distance (positive if n is ahead of m).
func (n Num) Diff(m Num) int32 {
	return int32(n - m)
}
