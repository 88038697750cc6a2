// Copyright (c) 2020 Cisco Systems and/or its affiliates.
// Licensed under the Apache License, Version 2.0 (the "License")
// that can be found in the LICENSE file in the root of the source
// tree.

package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/my/tcpengine/config"
	"github.com/my/tcpengine/seq"
	"github.com/my/tcpengine/tcpflags"
	"github.com/my/tcpengine/wire"
)

func newTestEngine() *Engine {
	return New(config.Default(), nil)
}

var testID = ConnectionId{LocalIP: "10.0.0.1", LocalPort: 80, RemoteIP: "10.0.0.2", RemotePort: 4000}

func TestScenario1PassiveOpen(t *testing.T) {
	e := newTestEngine()
	state := NewEngineState(&FixedPRNG{Values: []uint32{55555}})
	state.Listeners[80] = struct{}{}

	seg := wire.Segment{Seq: 1000, Flags: tcpflags.SYN, SrcPort: 4000, DstPort: 80}
	next, reply := e.HandleSegment(state, time.Now(), testID, seg)

	cs, found := next.Conns[testID]
	require.True(t, found)
	require.Equal(t, StateSynReceived, cs.TcpState)
	require.Equal(t, seq.Num(1000), cs.CB.Irs)
	require.Equal(t, seq.Num(1001), cs.CB.RcvNxt)

	require.NotNil(t, reply)
	require.True(t, reply.Flags.Exact(tcpflags.SYN|tcpflags.ACK))
	require.Equal(t, cs.CB.Iss, reply.Seq)
	require.Equal(t, seq.Num(1001), reply.Ack)
}

func TestScenario2NonSynToListener(t *testing.T) {
	e := newTestEngine()
	state := NewEngineState(&FixedPRNG{})
	state.Listeners[80] = struct{}{}

	seg := wire.Segment{Seq: 5, Ack: 9, Flags: tcpflags.ACK, SrcPort: 4000, DstPort: 80}
	next, reply := e.HandleSegment(state, time.Now(), testID, seg)

	require.Empty(t, next.Conns)
	require.NotNil(t, reply)
	require.True(t, reply.Flags.Has(tcpflags.RST))
}

func TestScenario3ActiveOpenCompletion(t *testing.T) {
	e := newTestEngine()
	state := NewEngineState(&FixedPRNG{})
	cb := ControlBlock{Iss: 500, SndNxt: 501, SndMax: 501, SndUna: 500}
	state.Conns[testID] = &ConnState{CB: cb, TcpState: StateSynSent, RcvBufSize: 32 * 1024}

	seg := wire.Segment{Seq: 2000, Ack: 501, Flags: tcpflags.SYN | tcpflags.ACK, SrcPort: 4000, DstPort: 80}
	next, reply := e.HandleSegment(state, time.Now(), testID, seg)

	cs := next.Conns[testID]
	require.Equal(t, StateEstablished, cs.TcpState)
	require.Equal(t, seq.Num(2000), cs.CB.Irs)
	require.Equal(t, seq.Num(2001), cs.CB.RcvNxt)
	require.Equal(t, seq.Num(501), cs.CB.SndUna)

	require.NotNil(t, reply)
	require.True(t, reply.Flags.Exact(tcpflags.ACK))
	require.Equal(t, seq.Num(501), reply.Seq)
	require.Equal(t, seq.Num(2001), reply.Ack)
}

func TestScenario4BadAckInSynSent(t *testing.T) {
	e := newTestEngine()
	state := NewEngineState(&FixedPRNG{})
	cb := ControlBlock{Iss: 500, SndNxt: 501, SndMax: 501, SndUna: 500}
	state.Conns[testID] = &ConnState{CB: cb, TcpState: StateSynSent}

	seg := wire.Segment{Seq: 2000, Ack: 999, Flags: tcpflags.SYN | tcpflags.ACK, SrcPort: 4000, DstPort: 80}
	next, reply := e.HandleSegment(state, time.Now(), testID, seg)

	require.Nil(t, reply)
	cs := next.Conns[testID]
	require.Equal(t, StateSynSent, cs.TcpState)
	require.Equal(t, seq.Num(500), cs.CB.SndUna)
}

func TestScenario5InOrderDataPlusFin(t *testing.T) {
	e := newTestEngine()
	state := NewEngineState(&FixedPRNG{})
	cb := ControlBlock{RcvNxt: 3000, RcvWnd: 8192, SndUna: 9000, SndNxt: 9000, SndMax: 9000}
	state.Conns[testID] = &ConnState{CB: cb, TcpState: StateEstablished}

	payload := make([]byte, 10)
	seg := wire.Segment{Seq: 3000, Ack: cb.SndUna, Flags: tcpflags.FIN | tcpflags.PSH | tcpflags.ACK, Payload: payload, SrcPort: 4000, DstPort: 80}
	next, reply := e.HandleSegment(state, time.Now(), testID, seg)

	cs := next.Conns[testID]
	require.Equal(t, StateCloseWait, cs.TcpState)
	require.Equal(t, seq.Num(3011), cs.CB.RcvNxt)
	require.True(t, cs.CantRcvMore)

	require.NotNil(t, reply)
	require.True(t, reply.Flags.Has(tcpflags.ACK))
	require.False(t, reply.Flags.Has(tcpflags.FIN))
	require.Equal(t, seq.Num(3011), reply.Ack)
}

func TestScenario6ValidRstInEstablished(t *testing.T) {
	e := newTestEngine()
	state := NewEngineState(&FixedPRNG{})
	cb := ControlBlock{RcvNxt: 3000, RcvWnd: 8192}
	state.Conns[testID] = &ConnState{CB: cb, TcpState: StateEstablished}

	seg := wire.Segment{Seq: 3000, Flags: tcpflags.RST, SrcPort: 4000, DstPort: 80}
	next, reply := e.HandleSegment(state, time.Now(), testID, seg)

	_, found := next.Conns[testID]
	require.False(t, found)
	require.Nil(t, reply)
}

func TestScenario7OutOfWindowSegment(t *testing.T) {
	e := newTestEngine()
	state := NewEngineState(&FixedPRNG{})
	cb := ControlBlock{RcvNxt: 3000, RcvWnd: 100}
	state.Conns[testID] = &ConnState{CB: cb, TcpState: StateEstablished}

	seg := wire.Segment{Seq: 9000, Ack: 0, Flags: tcpflags.ACK, Payload: make([]byte, 20), SrcPort: 4000, DstPort: 80}
	next, reply := e.HandleSegment(state, time.Now(), testID, seg)

	require.Nil(t, reply)
	cs := next.Conns[testID]
	require.Equal(t, cb, cs.CB)
}

func TestScenario8SynInEstablishedWindow(t *testing.T) {
	e := newTestEngine()
	state := NewEngineState(&FixedPRNG{})
	cb := ControlBlock{RcvNxt: 4000, RcvWnd: 8192}
	state.Conns[testID] = &ConnState{CB: cb, TcpState: StateEstablished}

	seg := wire.Segment{Seq: 4000, Flags: tcpflags.SYN, SrcPort: 4000, DstPort: 80}
	next, reply := e.HandleSegment(state, time.Now(), testID, seg)

	cs := next.Conns[testID]
	require.Equal(t, StateEstablished, cs.TcpState)
	require.Equal(t, cb, cs.CB)

	require.NotNil(t, reply)
	require.True(t, reply.Flags.Exact(tcpflags.ACK))
}
