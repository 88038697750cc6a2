// Copyright (c) 2020 Cisco Systems and/or its affiliates.
// Licensed under the Apache License, Version 2.0 (the "License")
// that can be found in the LICENSE file in the root of the source
// tree.

package engine

import (
	"github.com/my/tcpengine/tcpflags"
	"github.com/my/tcpengine/wire"
)

// makeSynAck builds the SYN|ACK reply for a freshly accepted passive
// open, grounded on the TCPS_LISTEN case in the teacher's tcp_input.go
// (which sets TF_ACKNOW and lets tcp_output's tcp_outflags table supply
// SYN|ACK for TCPS_SYN_RECEIVED).
func makeSynAck(cb *ControlBlock, id ConnectionId) wire.Segment {
	seg := wire.Segment{
		Seq:     cb.Iss,
		Ack:     cb.RcvNxt,
		Window:  windowField(cb),
		Flags:   tcpflags.SYN | tcpflags.ACK,
		SrcPort: id.LocalPort,
		DstPort: id.RemotePort,
	}
	if cb.TfDoingWs {
		ws := cb.RequestRScale
		seg.WS = &ws
	}
	mss := cb.TAdvmss
	seg.MSS = &mss
	return seg
}

// makeAck builds a pure ACK, grounded on respond() in tcp_subr.go and
// the tcp_outflags table in tcp_fsm.go.
func makeAck(cb *ControlBlock, id ConnectionId) wire.Segment {
	return wire.Segment{
		Seq:     cb.SndNxt,
		Ack:     cb.RcvNxt,
		Window:  windowField(cb),
		Flags:   tcpflags.ACK,
		SrcPort: id.LocalPort,
		DstPort: id.RemotePort,
	}
}

// dropWithReset builds the stateless RST reply to seg, suppressing
// RST-in-response-to-RST per its contract (spec.md §6, §4.6).
func dropWithReset(seg wire.Segment) *wire.Segment {
	if seg.Flags.Has(tcpflags.RST) {
		return nil
	}
	out := wire.Segment{
		SrcPort: seg.DstPort,
		DstPort: seg.SrcPort,
	}
	if seg.Flags.Has(tcpflags.ACK) {
		out.Seq = seg.Ack
		out.Flags = tcpflags.RST
	} else {
		ackFor := seg.Seq.Addi(int32(seg.Len()))
		if seg.Flags.Has(tcpflags.SYN) {
			ackFor = ackFor.Incr()
		}
		out.Ack = ackFor
		out.Flags = tcpflags.RST | tcpflags.ACK
	}
	return &out
}

func windowField(cb *ControlBlock) uint32 {
	if cb.RcvScale == 0 {
		return cb.RcvWnd
	}
	return cb.RcvWnd >> cb.RcvScale
}
