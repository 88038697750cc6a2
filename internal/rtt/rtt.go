// Copyright (c) 2020 Cisco Systems and/or its affiliates.
// Licensed under the Apache License, Version 2.0 (the "License")
// that can be found in the LICENSE file in the root of the source
// tree.

// Package rtt implements the smoothed round-trip-time estimator inputs
// the engine feeds on each ACK that times an outstanding segment,
// grounded on (*TcpSocket).xmit_timer in the teacher's tcp_input.go.
// Congestion-control use of the estimate is out of scope; this package
// only keeps the running srtt/rttvar/rto inputs.
package rtt

import "time"

// Info holds the smoothed RTT estimator state. Srtt and Rttvar are plain
// (unscaled) durations; Update applies the Jacobson/Karels gains of 1/8
// and 1/4 as right shifts by 3 and 2 bits, the shift widths of the
// teacher's TCP_RTT_SHIFT / TCP_RTTVAR_SHIFT.
type Info struct {
	Srtt   time.Duration
	Rttvar time.Duration
	Rto    time.Duration
	Have   bool
}

const (
	rttShift    = 3
	rttvarShift = 2
	minRto      = 1 * time.Second
	maxRto      = 64 * time.Second
)

// Update folds a new RTT sample (span) into inf and returns the updated
// estimator.
func Update(span time.Duration, inf Info) Info {
	if span < 0 {
		span = 0
	}
	if !inf.Have {
		inf.Srtt = span
		inf.Rttvar = span / 2
		inf.Have = true
	} else {
		delta := span - inf.Srtt
		inf.Srtt += delta >> rttShift
		if delta < 0 {
			delta = -delta
		}
		inf.Rttvar += (delta - inf.Rttvar) >> rttvarShift
	}
	rto := inf.Srtt + 4*inf.Rttvar
	if rto < minRto {
		rto = minRto
	}
	if rto > maxRto {
		rto = maxRto
	}
	inf.Rto = rto
	return inf
}
