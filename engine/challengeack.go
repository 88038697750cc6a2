// Copyright (c) 2020 Cisco Systems and/or its affiliates.
// Licensed under the Apache License, Version 2.0 (the "License")
// that can be found in the LICENSE file in the root of the source
// tree.

package engine

import "github.com/my/tcpengine/wire"

// deliverIn7 is the RFC5961 RST-in-window path from spec.md §4.6: an
// exact-sequence RST is accepted (Reset), anything else merely in-window
// draws a challenge ACK with no state change.
func (e *Engine) deliverIn7(cs *ConnState, id ConnectionId, seg wire.Segment) (*wire.Segment, result) {
	if cs.CB.RcvNxt.Equal(seg.Seq) {
		return nil, reset("in-window rst accepted")
	}
	e.bumpChallengeAck()
	reply := makeAck(&cs.CB, id)
	return &reply, ok()
}

// deliverIn8 is the RFC5961 SYN-in-window challenge ACK from spec.md
// §4.6: always answer with an ACK, never change state.
func (e *Engine) deliverIn8(cs *ConnState, id ConnectionId, seg wire.Segment) (*wire.Segment, result) {
	e.bumpChallengeAck()
	reply := makeAck(&cs.CB, id)
	return &reply, ok()
}
