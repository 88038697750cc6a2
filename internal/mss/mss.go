// Copyright (c) 2020 Cisco Systems and/or its affiliates.
// Licensed under the Apache License, Version 2.0 (the "License")
// that can be found in the LICENSE file in the root of the source
// tree.

// Package mss provides the MSS- and buffer-sizing helpers the engine
// calls out to when completing a handshake, grounded on (*TcpSocket).mss
// and updateInitwnd in the teacher's tcp_output.go / client_ctx.go.
package mss

import "github.com/my/tcpengine/engine/connid"

// Opt returns the path-MTU-derived local MSS cap for id. This engine has
// no route table, so it returns the same conservative Ethernet-framed
// default (1460) for every id.
func Opt(id connid.ConnectionId) uint16 {
	return 1500 - 20 - 20
}

// CalculateBufSizes mirrors calculate_buf_sizes from spec.md §4.2: given
// our advertised MSS cap, the peer's offered MSS (if any), and the
// configured default socket buffer sizes, it returns the buffer sizes,
// effective MSS, and initial congestion window to use for the
// connection.
func CalculateBufSizes(advmss uint16, peerMSS *uint16, soRcv, soSnd uint32, initwndFactor uint16) (rcvbuf, sndbuf uint32, maxseg uint16, cwnd uint32) {
	maxseg = advmss
	if peerMSS != nil && *peerMSS > 0 && *peerMSS < maxseg {
		maxseg = *peerMSS
	}
	rcvbuf = soRcv
	sndbuf = soSnd
	cwnd = uint32(maxseg) * uint32(initwndFactor)
	if cwnd > 48*1024 {
		cwnd = 48 * 1024
	}
	return rcvbuf, sndbuf, maxseg, cwnd
}

// CalculateBSDRcvWnd recomputes the receive window the way tcp_input.go
// does on every established-state segment: the larger of the currently
// free buffer space and the previously advertised right edge minus
// rcv_nxt, clamped to be non-negative.
func CalculateBSDRcvWnd(freeBufSpace int64, rcvAdvMinusRcvNxt int64) uint32 {
	win := freeBufSpace
	if win < 0 {
		win = 0
	}
	if rcvAdvMinusRcvNxt > win {
		win = rcvAdvMinusRcvNxt
	}
	if win < 0 {
		win = 0
	}
	return uint32(win)
}
