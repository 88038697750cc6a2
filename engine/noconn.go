// Copyright (c) 2020 Cisco Systems and/or its affiliates.
// Licensed under the Apache License, Version 2.0 (the "License")
// that can be found in the LICENSE file in the root of the source
// tree.

package engine

import (
	"time"

	"github.com/my/tcpengine/config"
	"github.com/my/tcpengine/internal/mss"
	"github.com/my/tcpengine/seq"
	"github.com/my/tcpengine/tcpflags"
	"github.com/my/tcpengine/wire"
)

// handleNoConn is NoConnHandler from spec.md §4.2: a passive open (or a
// martian) arriving with no matching connection. Grounded on the
// TCPS_LISTEN case in the teacher's tcp_input.go.
func (e *Engine) handleNoConn(state EngineState, now time.Time, id ConnectionId, seg wire.Segment) (EngineState, *wire.Segment) {
	_, listening := state.Listeners[id.LocalPort]
	if !listening || !seg.Flags.Only(tcpflags.SYN) {
		if listening && seg.Flags.Has(tcpflags.ACK) {
			e.bumpBadSyn()
		}
		return state, dropWithReset(seg)
	}

	advmss := mss.Opt(id)
	rcvbuf, sndbuf, maxseg, cwnd := e.bufSizes(advmss, seg.MSS)

	var cb ControlBlock
	cb.TAdvmss = advmss
	cb.TMaxseg = maxseg
	cb.SndCwnd = cwnd
	cb.RcvWnd = rcvbuf

	if seg.WS != nil && *seg.WS <= config.TCPMaxWinScale {
		cb.TfDoingWs = true
		cb.SndScale = *seg.WS
		cb.RequestRScale = e.Config.Scale
		cb.RcvScale = e.Config.Scale
	}

	cb.Iss = seq.Num(state.Rng.NextUint32())
	rcvNxt := seg.Seq.Incr()

	cb.TtRexmt = e.initialTimer(now, TimerRexmt)
	cb.TIdleTime = now
	cb.Irs = seg.Seq
	cb.SndUna = cb.Iss
	cb.SndNxt = cb.Iss.Incr()
	cb.SndMax = cb.SndNxt
	cb.RcvNxt = rcvNxt
	cb.LastAckSent = rcvNxt
	cb.RcvAdv = rcvNxt.Addi(int32(cb.RcvWnd))
	cb.TfRxwin0Sent = cb.RcvWnd == 0
	cb.TRttSeg = &RttSample{At: now, Seq: cb.Iss}

	next := state.Clone()
	next.Conns[id] = &ConnState{
		CB:         cb,
		TcpState:   StateSynReceived,
		RcvBufSize: rcvbuf,
		SndBufSize: sndbuf,
	}
	e.bumpAccepts()
	reply := makeSynAck(&cb, id)
	return next, &reply
}
