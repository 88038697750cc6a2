// Copyright (c) 2020 Cisco Systems and/or its affiliates.
// Licensed under the Apache License, Version 2.0 (the "License")
// that can be found in the LICENSE file in the root of the source
// tree.

// Command tcpengine-sim drives the engine over a synthetic passive-open
// session with no real socket or NIC involved, in the spirit of
// cmd-test/tcp-server in the teacher tree: a minimal program (two flags,
// -v and -port) that exercises one package directly instead of standing
// up a full harness.
package main

import (
	"flag"
	"fmt"
	"net"
	"time"

	"github.com/my/tcpengine/config"
	"github.com/my/tcpengine/engine"
	"github.com/my/tcpengine/tcpflags"
	"github.com/my/tcpengine/wire"
)

func main() {
	verbose := flag.Bool("v", false, "enable debug logging")
	port := flag.Uint("port", 80, "local port to accept the synthetic session on")
	flag.Parse()

	engine.ConfigureLogger(*verbose)

	e := engine.New(config.Default(), nil)
	state := engine.NewEngineState(engine.NewPRNG())
	state.Listeners[uint16(*port)] = struct{}{}

	local := net.ParseIP("10.0.0.1")
	remote := net.ParseIP("10.0.0.2")
	id := engine.NewConnectionId(local, remote, uint16(*port), 40000)
	now := time.Now()

	fmt.Println("--- passive open ---")
	syn := wire.Segment{Seq: 1000, Flags: tcpflags.SYN, SrcPort: 40000, DstPort: uint16(*port)}
	state, reply := step(e, state, now, id, syn)

	if reply == nil {
		fmt.Println("no reply to SYN, aborting")
		return
	}

	fmt.Println("--- completing three-way handshake ---")
	ack := wire.Segment{Seq: 1001, Ack: reply.Seq.Incr(), Flags: tcpflags.ACK, SrcPort: 40000, DstPort: uint16(*port)}
	state, _ = step(e, state, now, id, ack)

	fmt.Println("--- data plus FIN ---")
	data := wire.Segment{
		Seq:     1001,
		Ack:     reply.Seq.Incr(),
		Flags:   tcpflags.FIN | tcpflags.PSH | tcpflags.ACK,
		Payload: []byte("GET / HTTP/1.0\r\n\r\n"),
		SrcPort: 40000,
		DstPort: uint16(*port),
	}
	state, _ = step(e, state, now, id, data)

	if cs, ok := state.Conns[id]; ok {
		fmt.Printf("final state: %s cant_rcv_more=%v\n", cs.TcpState, cs.CantRcvMore)
	} else {
		fmt.Println("connection no longer tracked")
	}
}

func step(e *engine.Engine, state engine.EngineState, now time.Time, id engine.ConnectionId, seg wire.Segment) (engine.EngineState, *wire.Segment) {
	next, reply := e.HandleSegment(state, now, id, seg)
	if reply != nil {
		fmt.Printf("  -> reply flags=%s seq=%d ack=%d\n", reply.Flags, reply.Seq, reply.Ack)
	} else {
		fmt.Println("  -> no reply")
	}
	return next, reply
}
