// Copyright (c) 2020 Cisco Systems and/or its affiliates.
// Licensed under the Apache License, Version 2.0 (the "License")
// that can be found in the LICENSE file in the root of the source
// tree.

// Package engine is the pure TCP receive-path protocol core: connection
// state machine, segment acceptance rules, and control-block bookkeeping.
// It has no knowledge of sockets, timers, or the wire format beyond the
// Segment shape handed to it by package wire.
package engine

import (
	"net"
	"time"

	"github.com/my/tcpengine/engine/connid"
	"github.com/my/tcpengine/internal/rtt"
	"github.com/my/tcpengine/seq"
	"github.com/my/tcpengine/wire"
)

// State is one of the RFC793-bis connection states. Closed is the
// implicit/absent state — a ConnectionId with no entry in EngineState.Conns.
type State int16

const (
	StateSynSent State = iota + 1
	StateSynReceived
	StateEstablished
	StateCloseWait
	StateFinWait1
	StateFinWait2
	StateClosing
	StateLastAck
	StateTimeWait
)

var stateNames = map[State]string{
	StateSynSent:     "SYN_SENT",
	StateSynReceived: "SYN_RECEIVED",
	StateEstablished: "ESTABLISHED",
	StateCloseWait:   "CLOSE_WAIT",
	StateFinWait1:    "FIN_WAIT_1",
	StateFinWait2:    "FIN_WAIT_2",
	StateClosing:     "CLOSING",
	StateLastAck:     "LAST_ACK",
	StateTimeWait:    "TIME_WAIT",
}

func (s State) String() string {
	if n, ok := stateNames[s]; ok {
		return n
	}
	return "CLOSED"
}

// ConnectionId is the exact 4-tuple key identifying a connection.
type ConnectionId = connid.ConnectionId

// NewConnectionId builds a ConnectionId from addresses and the ports
// carried on the segment (dst is local, src is remote, from the
// receiver's point of view).
func NewConnectionId(localIP, remoteIP net.IP, localPort, remotePort uint16) ConnectionId {
	return connid.New(localIP, remoteIP, localPort, remotePort)
}

// TimerHandle is an opaque value the output/timer subsystem consumes.
// The engine only ever sets or clears these; it never interprets them.
type TimerHandle struct {
	Kind    TimerKind
	Started time.Time
	Shift   int
	Backoff time.Duration
}

// TimerKind enumerates the timers this engine's bookkeeping references.
type TimerKind uint8

const (
	TimerRexmt TimerKind = iota
	TimerConnEst
	TimerDelack
)

// ControlBlock is the per-connection mutable record (spec.md §3).
type ControlBlock struct {
	Iss seq.Num
	Irs seq.Num

	SndUna seq.Num
	SndNxt seq.Num
	SndMax seq.Num
	SndWl1 seq.Num
	SndWl2 seq.Num

	SndCwnd  uint32
	TMaxseg  uint16
	TAdvmss  uint16

	RcvNxt seq.Num
	RcvWnd uint32
	RcvAdv seq.Num

	RcvScale       uint8
	SndScale       uint8
	RequestRScale  uint8
	TfDoingWs      bool

	TfRxwin0Sent bool

	LastAckSent seq.Num

	TtRexmt   *TimerHandle
	TtConnEst *TimerHandle
	TtDelack  *TimerHandle

	TIdleTime time.Time

	// TRttSeg is the (timestamp, seq) pair currently being timed, if
	// any.
	TRttSeg *RttSample

	TRttInf    rtt.Info
	TSofterror error
}

// RttSample pairs a transmit timestamp with the sequence number it
// covers, for the single in-flight RTT measurement this engine tracks.
type RttSample struct {
	At  time.Time
	Seq seq.Num
}

// ConnState is the full per-connection state: control block plus FSM
// state and the buffer/half-close bookkeeping the spec asks this core to
// record (without owning the actual buffers).
type ConnState struct {
	CB          ControlBlock
	TcpState    State
	RcvBufSize  uint32
	SndBufSize  uint32
	CantRcvMore bool
}

// Listeners is the set of local ports accepting passive opens.
type Listeners map[uint16]struct{}

// Conns maps a connection's exact 4-tuple to its state.
type Conns map[ConnectionId]*ConnState

// PRNG is the injected ISS source. Implementations must guarantee that
// concurrent passive opens each draw a distinct value from the
// underlying stream (i.e. NextUint32 is called exactly once per ISS
// selection and is safe to call from the Engine's single-writer
// context).
type PRNG interface {
	NextUint32() uint32
}

// EngineState is the whole engine-owned state: listener set, connection map,
// and the PRNG capability used to mint ISNs. It is intentionally named
// distinctly from the FSM's State type; callers hold one of these across
// calls to Handle.
type EngineState struct {
	Listeners Listeners
	Conns     Conns
	Rng       PRNG
}

// NewEngineState returns an empty engine state seeded with rng.
func NewEngineState(rng PRNG) EngineState {
	return EngineState{
		Listeners: Listeners{},
		Conns:     Conns{},
		Rng:       rng,
	}
}

// Clone returns a shallow copy of s with freshly allocated top-level
// maps, so handlers can return a new EngineState without mutating the
// caller's map out from under concurrent readers (spec.md §5).
func (s EngineState) Clone() EngineState {
	out := EngineState{
		Listeners: make(Listeners, len(s.Listeners)),
		Conns:     make(Conns, len(s.Conns)),
		Rng:       s.Rng,
	}
	for p := range s.Listeners {
		out.Listeners[p] = struct{}{}
	}
	for id, cs := range s.Conns {
		out.Conns[id] = cs
	}
	return out
}

// OutEvent is a unit of outbound work the caller must ship — the Data
// event in spec.md §6.
type OutEvent struct {
	DstIP net.IP
	Bytes []byte
}

// Segment is an alias so callers of this package don't need to import
// wire directly for the common case.
type Segment = wire.Segment
