// Copyright (c) 2020 Cisco Systems and/or its affiliates.
// Licensed under the Apache License, Version 2.0 (the "License")
// that can be found in the LICENSE file in the root of the source
// tree.

package engine

import (
	"github.com/my/tcpengine/tcpflags"
	"github.com/my/tcpengine/wire"
)

// handleSynReceived is deliver_in_3c_3d from spec.md §4.4, grounded on
// the TCPS_SYN_RECEIVED case in tcp_input.go's ack-processing switch.
func (e *Engine) handleSynReceived(cs *ConnState, seg wire.Segment) (*wire.Segment, result) {
	cb := &cs.CB

	if !seg.Seq.Equal(cb.RcvNxt) {
		return nil, drop("syn-received: unexpected sequence number")
	}
	if !seg.Flags.Only(tcpflags.ACK) {
		return nil, reset("syn-received: expected pure ack")
	}
	if !seg.Ack.Equal(cb.SndNxt) {
		return nil, reset("syn-received: ack does not match snd_nxt")
	}

	cb.SndUna = seg.Ack
	cb.SndWl1 = seg.Seq
	cb.SndWl2 = seg.Ack
	cs.TcpState = StateEstablished
	e.bumpConnects()
	return nil, ok()
}
