// Copyright (c) 2020 Cisco Systems and/or its affiliates.
// Licensed under the Apache License, Version 2.0 (the "License")
// that can be found in the LICENSE file in the root of the source
// tree.

package engine

import (
	"net"
	"time"

	"github.com/my/tcpengine/wire"
)

// Handle is the top-level entry point from spec.md §4.8 / §6: decode,
// look up the connection, dispatch, and encode any reply. dstIP is the
// address the segment arrived on (our local address); srcIP is the
// sender's.
func (e *Engine) Handle(state EngineState, now time.Time, dstIP, srcIP net.IP, raw []byte) (EngineState, []OutEvent) {
	seg, err := wire.DecodeAndValidate(srcIP, dstIP, raw)
	if err != nil {
		e.bumpRxParseErr()
		log.Debugf("decode failed from %s: %v", srcIP, err)
		return state, nil
	}

	id := NewConnectionId(dstIP, srcIP, seg.DstPort, seg.SrcPort)
	next, reply := e.HandleSegment(state, now, id, seg)

	if reply == nil {
		return next, nil
	}

	out, err := wire.Encode(dstIP, srcIP, *reply)
	if err != nil {
		log.Warningf("encode failed for reply to %s: %v", id, err)
		return next, nil
	}
	return next, []OutEvent{{DstIP: srcIP, Bytes: out}}
}

// HandleSegment is the pure engine core spec.md §2 describes:
// (State, Now, ConnectionId, Segment) -> (State, Option<Segment>). It
// dispatches to NoConnHandler or the Router depending on whether id
// already names a connection, with no decode/encode on either side.
func (e *Engine) HandleSegment(state EngineState, now time.Time, id ConnectionId, seg wire.Segment) (EngineState, *wire.Segment) {
	if cs, found := state.Conns[id]; found {
		return e.handleConn(state, now, id, cs, seg)
	}
	return e.handleNoConn(state, now, id, seg)
}
