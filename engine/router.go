// Copyright (c) 2020 Cisco Systems and/or its affiliates.
// Licensed under the Apache License, Version 2.0 (the "License")
// that can be found in the LICENSE file in the root of the source
// tree.

package engine

import (
	"time"

	"github.com/my/tcpengine/tcpflags"
	"github.com/my/tcpengine/wire"
)

// handleConn is Router / handle_conn from spec.md §4.7: dispatch for a
// segment matching an existing connection.
func (e *Engine) handleConn(state EngineState, now time.Time, id ConnectionId, existing *ConnState, seg wire.Segment) (EngineState, *wire.Segment) {
	// Work on a private copy so handlers' in-place mutation of the
	// control block never corrupts the caller's prior snapshot — Handle
	// only publishes this copy into the returned state.
	cs := new(ConnState)
	*cs = *existing

	var reply *wire.Segment
	var res result

	switch cs.TcpState {
	case StateSynSent:
		reply, res = e.handleSynSent(now, cs, id, seg)
	case StateSynReceived:
		reply, res = e.handleSynReceived(cs, seg)
	default:
		reply, res = e.routeEstablishedFamily(cs, id, seg)
	}

	return e.applyOutcome(state, id, cs, seg, reply, res)
}

// routeEstablishedFamily covers every state other than SYN_SENT and
// SYN_RECEIVED: gate on in_window, then classify by RST/SYN presence per
// spec.md §4.7.
func (e *Engine) routeEstablishedFamily(cs *ConnState, id ConnectionId, seg wire.Segment) (*wire.Segment, result) {
	if !inWindow(&cs.CB, seg.Seq, seg.Len()) {
		if seg.Len() > 0 {
			e.bumpRcvAfterWin()
		}
		return nil, drop("router: segment outside window")
	}

	rstSet := seg.Flags.Has(tcpflags.RST)
	synSet := seg.Flags.Has(tcpflags.SYN)

	switch {
	case rstSet:
		return e.deliverIn7(cs, id, seg)
	case synSet:
		return e.deliverIn8(cs, id, seg)
	default:
		return e.handleEstablished(cs, id, seg)
	}
}

// applyOutcome maps a sub-handler's result onto the engine-state side
// effects spec.md §4.7 describes: Drop leaves everything unchanged,
// Reset removes the connection and replies with a stateless RST.
func (e *Engine) applyOutcome(state EngineState, id ConnectionId, cs *ConnState, seg wire.Segment, reply *wire.Segment, res result) (EngineState, *wire.Segment) {
	switch {
	case res.isDrop():
		log.Debugf("drop %s: %s", id, res.reason)
		return state, nil
	case res.isReset():
		log.Debugf("reset %s: %s", id, res.reason)
		e.bumpDrops()
		next := state.Clone()
		delete(next.Conns, id)
		return next, dropWithReset(seg)
	default:
		next := state.Clone()
		next.Conns[id] = cs
		return next, reply
	}
}
