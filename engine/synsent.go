// Copyright (c) 2020 Cisco Systems and/or its affiliates.
// Licensed under the Apache License, Version 2.0 (the "License")
// that can be found in the LICENSE file in the root of the source
// tree.

package engine

import (
	"time"

	"github.com/my/tcpengine/internal/mss"
	"github.com/my/tcpengine/internal/rtt"
	"github.com/my/tcpengine/tcpflags"
	"github.com/my/tcpengine/wire"
)

// handleSynSent is SynSentHandler from spec.md §4.3, grounded on the
// TCPS_SYN_SENT case in tcp_input.go.
func (e *Engine) handleSynSent(now time.Time, cs *ConnState, id ConnectionId, seg wire.Segment) (*wire.Segment, result) {
	synAck := seg.Flags.Exact(tcpflags.SYN | tcpflags.ACK)
	synOnly := seg.Flags.Only(tcpflags.SYN)

	switch {
	case synAck:
		return e.deliverIn2(now, cs, id, seg)
	case synOnly:
		return e.deliverIn2b(now, cs, id, seg)
	default:
		return e.deliverIn2a(cs, seg)
	}
}

// deliverIn2 completes an active open on receipt of SYN|ACK.
func (e *Engine) deliverIn2(now time.Time, cs *ConnState, id ConnectionId, seg wire.Segment) (*wire.Segment, result) {
	cb := &cs.CB
	if !seg.Ack.Equal(cb.SndNxt) {
		return nil, drop("syn-sent: ack does not match snd_nxt")
	}

	if seg.WS != nil {
		cb.TfDoingWs = true
		cb.RcvScale = cb.RequestRScale
		cb.SndScale = *seg.WS
	}

	_, _, maxseg, cwnd := e.bufSizes(cb.TAdvmss, seg.MSS)
	cb.TMaxseg = maxseg
	cb.SndCwnd = cwnd
	cb.RcvWnd = uint32(mss.CalculateBSDRcvWnd(int64(cs.RcvBufSize), int64(cb.RcvAdv.Diff(cb.RcvNxt))))

	if cb.TRttSeg != nil && seg.Ack.Greater(cb.TRttSeg.Seq) {
		cb.TRttInf = rtt.Update(now.Sub(cb.TRttSeg.At), cb.TRttInf)
		cb.TSofterror = nil
		cb.TRttSeg = nil
	}

	if seg.Ack.Equal(cb.SndMax) {
		cb.TtRexmt = nil
	}

	cb.RcvNxt = seg.Seq.Incr()
	cb.TIdleTime = now
	cb.TtConnEst = nil
	cb.TtDelack = nil
	cb.SndUna = cb.Iss.Incr()
	cb.SndWl1 = seg.Seq.Incr()
	cb.SndWl2 = seg.Ack
	cb.Irs = seg.Seq
	cb.LastAckSent = cb.RcvNxt

	scaledWin := cb.RcvWnd >> cb.RcvScale
	if scaledWin > uint32(^uint16(0)) {
		scaledWin = uint32(^uint16(0))
	}
	cb.RcvAdv = cb.RcvNxt.Addi(int32(scaledWin << cb.RcvScale))
	cb.TfRxwin0Sent = cb.RcvWnd == 0

	cs.TcpState = StateEstablished
	e.bumpConnects()
	reply := makeAck(cb, id)
	return &reply, ok()
}

// deliverIn2a rejects a non-SYN, non-SYN|ACK segment in SYN_SENT.
// spec.md §4.3: an {ACK,RST} acking snd_nxt (a stale reset from a prior
// incarnation) removes the connection with no reply; any other flag
// combination is dropped silently and the connection is kept.
func (e *Engine) deliverIn2a(cs *ConnState, seg wire.Segment) (*wire.Segment, result) {
	if seg.Flags.Exact(tcpflags.ACK|tcpflags.RST) && seg.Ack.Equal(cs.CB.SndNxt) {
		return nil, reset("syn-sent: stale reset acking our syn")
	}
	return nil, drop("syn-sent: unacceptable flags")
}

// deliverIn2b is the simultaneous-open path (SYN with no ACK arriving
// while we're SYN_SENT). Unimplemented per spec.md §4.3 / §9 — the
// conservative choice recorded in DESIGN.md is to treat it as a drop
// rather than attempt RFC793-bis's simultaneous-open completion.
func (e *Engine) deliverIn2b(now time.Time, cs *ConnState, id ConnectionId, seg wire.Segment) (*wire.Segment, result) {
	return nil, drop("syn-sent: simultaneous open unsupported")
}
