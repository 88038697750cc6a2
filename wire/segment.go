// Copyright (c) 2020 Cisco Systems and/or its affiliates.
// Licensed under the Apache License, Version 2.0 (the "License")
// that can be found in the LICENSE file in the root of the source
// tree.

// Package wire is the segment decode/encode boundary: it turns raw IP
// payload bytes into the Segment shape the engine reasons about, and
// turns a constructed reply Segment back into bytes with a correct
// checksum. Everything in this package is an "external collaborator" per
// the engine's spec — the engine never touches gopacket directly.
package wire

import (
	"net"

	"github.com/my/tcpengine/seq"
	"github.com/my/tcpengine/tcpflags"
)

// Segment is the input/output shape exchanged with the engine.
type Segment struct {
	Seq     seq.Num
	Ack     seq.Num
	Window  uint32
	Flags   tcpflags.Flags
	Payload []byte

	SrcPort uint16
	DstPort uint16

	// MSS and WS are option values observed on inbound SYNs. Nil means
	// absent.
	MSS *uint16
	WS  *uint8
}

// Len returns the number of sequence-space bytes this segment occupies
// (payload length; SYN/FIN accounting is the engine's job, not wire's).
func (s Segment) Len() int {
	return len(s.Payload)
}

// Endpoint identifies one side of a TCP 4-tuple.
type Endpoint struct {
	IP   net.IP
	Port uint16
}
