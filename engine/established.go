// Copyright (c) 2020 Cisco Systems and/or its affiliates.
// Licensed under the Apache License, Version 2.0 (the "License")
// that can be found in the LICENSE file in the root of the source
// tree.

package engine

import (
	"github.com/my/tcpengine/tcpflags"
	"github.com/my/tcpengine/wire"
)

// handleEstablished is EstablishedHandler / deliver_in_3 from spec.md
// §4.5, grounded on the ack-processing switch and FIN handling in the
// teacher's tcp_input.go.
func (e *Engine) handleEstablished(cs *ConnState, id ConnectionId, seg wire.Segment) (*wire.Segment, result) {
	cb := &cs.CB

	if !inWindow(cb, seg.Seq, seg.Len()) {
		if seg.Len() > 0 {
			e.bumpRcvAfterWin()
		}
		return nil, drop("established: segment outside window")
	}
	if !legalEstablishedFlags(seg.Flags) {
		return nil, reset("established: illegal flag combination")
	}

	rcvWndBefore := cb.RcvWnd
	sndUnaBefore := cb.SndUna
	windowOpened := rcvWndBefore == 0 && seg.Window > 0
	if rcvWndBefore == 0 && seg.Len() == 0 && seg.Window == 0 {
		e.bumpRcvWinProbe()
	}

	finAcked := di3AckStuff(cb, seg)
	if seg.Flags.Has(tcpflags.ACK) && seg.Len() == 0 && !finAcked && seg.Ack.Equal(sndUnaBefore) {
		e.bumpRcvDupAck()
	}
	rcvdFin, ackNeeded := di3DataStuff(cb, seg)

	newState := di3StStuff(cs.TcpState, rcvdFin, finAcked)
	cs.TcpState = newState
	if rcvdFin {
		cs.CantRcvMore = true
	}

	_ = windowOpened // consumed by the output stage this engine doesn't own

	if !ackNeeded {
		return nil, ok()
	}
	reply := makeAck(cb, id)
	return &reply, ok()
}

func legalEstablishedFlags(f tcpflags.Flags) bool {
	switch {
	case f.IsEmpty():
	case f.Only(tcpflags.ACK):
	case f.OrAck(tcpflags.FIN):
	case f.OrAck(tcpflags.PSH):
	case f.Exact(tcpflags.FIN | tcpflags.PSH):
	case f.Exact(tcpflags.FIN | tcpflags.PSH | tcpflags.ACK):
	default:
		return false
	}
	return true
}

// di3AckStuff is topstuff+ackstuff's ack half from spec.md §4.5: advance
// snd_una and report whether this ack covers our outstanding FIN.
func di3AckStuff(cb *ControlBlock, seg wire.Segment) (finAcked bool) {
	if !seg.Flags.Has(tcpflags.ACK) {
		return false
	}
	cb.SndUna = cb.SndUna.Max(seg.Ack)
	return seg.Ack.Equal(cb.SndNxt.Incr())
}

// di3DataStuff is datastuff from spec.md §4.5: in-order data is
// consumed (delivery to the receive buffer is external to this core);
// out-of-order data is silently dropped, matching the stubbed
// reassembly queue in spec.md §9.
func di3DataStuff(cb *ControlBlock, seg wire.Segment) (fin bool, ackNeeded bool) {
	rcvNxtBefore := cb.RcvNxt
	if seg.Seq.Equal(cb.RcvNxt) {
		nxt := seg.Seq.Addi(int32(seg.Len()))
		if seg.Flags.Has(tcpflags.FIN) {
			cb.RcvNxt = nxt.Incr()
			fin = true
		} else {
			cb.RcvNxt = nxt
			fin = false
		}
		ackNeeded = cb.RcvNxt.Greater(rcvNxtBefore)
	} else {
		fin = false
		ackNeeded = false
	}
	// Known ambiguity carried from the source (spec.md §9): rcv_wnd is
	// assigned directly from the peer's advertised window field without
	// re-applying snd_scale. Preserved deliberately, not "fixed".
	cb.RcvWnd = seg.Window
	return fin, ackNeeded
}

// di3StStuff is the state-transition table from spec.md §4.5.
func di3StStuff(from State, rcvdFin, ourFinIsAcked bool) State {
	switch from {
	case StateEstablished:
		if rcvdFin {
			return StateCloseWait
		}
		return StateEstablished
	case StateCloseWait:
		return StateCloseWait
	case StateFinWait1:
		switch {
		case !rcvdFin && !ourFinIsAcked:
			return StateFinWait1
		case !rcvdFin && ourFinIsAcked:
			return StateFinWait2
		case rcvdFin && !ourFinIsAcked:
			return StateClosing
		default:
			return StateTimeWait
		}
	case StateFinWait2:
		if rcvdFin {
			return StateTimeWait
		}
		return StateFinWait2
	case StateClosing:
		if ourFinIsAcked {
			return StateTimeWait
		}
		return StateClosing
	case StateLastAck:
		return StateLastAck
	case StateTimeWait:
		return StateTimeWait
	default:
		return from
	}
}
