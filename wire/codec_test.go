// Copyright (c) 2020 Cisco Systems and/or its affiliates.
// Licensed under the Apache License, Version 2.0 (the "License")
// that can be found in the LICENSE file in the root of the source
// tree.

package wire

import (
	"net"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/my/tcpengine/tcpflags"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	src := net.ParseIP("10.0.0.2")
	dst := net.ParseIP("10.0.0.1")

	mss := uint16(1460)
	ws := uint8(7)
	in := Segment{
		Seq:     1000,
		Ack:     2000,
		Window:  8192,
		Flags:   tcpflags.SYN,
		SrcPort: 4000,
		DstPort: 80,
		MSS:     &mss,
		WS:      &ws,
	}

	raw, err := Encode(src, dst, in)
	require.NoError(t, err)

	out, err := DecodeAndValidate(src, dst, raw)
	require.NoError(t, err)

	require.Equal(t, in.Seq, out.Seq)
	require.Equal(t, in.Ack, out.Ack)
	require.Equal(t, in.Window, out.Window)
	require.Equal(t, in.Flags, out.Flags)
	require.Equal(t, in.SrcPort, out.SrcPort)
	require.Equal(t, in.DstPort, out.DstPort)
	require.NotNil(t, out.MSS)
	require.Equal(t, mss, *out.MSS)
	require.NotNil(t, out.WS)
	require.Equal(t, ws, *out.WS)
}

func TestEncodeDecodeRoundTripWithPayload(t *testing.T) {
	src := net.ParseIP("10.0.0.2")
	dst := net.ParseIP("10.0.0.1")

	in := Segment{
		Seq:     3000,
		Ack:     501,
		Window:  4096,
		Flags:   tcpflags.FIN | tcpflags.PSH | tcpflags.ACK,
		Payload: []byte("hello world"),
		SrcPort: 4000,
		DstPort: 80,
	}

	raw, err := Encode(src, dst, in)
	require.NoError(t, err)

	out, err := DecodeAndValidate(src, dst, raw)
	require.NoError(t, err)

	require.Equal(t, in.Payload, out.Payload)
	require.True(t, out.Flags.Exact(tcpflags.FIN|tcpflags.PSH|tcpflags.ACK))
}

func TestDecodeAndValidateRejectsCorruptChecksum(t *testing.T) {
	src := net.ParseIP("10.0.0.2")
	dst := net.ParseIP("10.0.0.1")

	in := Segment{Seq: 1, Ack: 1, Window: 1, Flags: tcpflags.ACK, SrcPort: 4000, DstPort: 80}
	raw, err := Encode(src, dst, in)
	require.NoError(t, err)

	raw[len(raw)-1] ^= 0xFF
	_, err = DecodeAndValidate(src, dst, raw)
	require.Error(t, err)
}

func TestDecodeAndValidateRejectsShortSegment(t *testing.T) {
	_, err := DecodeAndValidate(net.ParseIP("10.0.0.2"), net.ParseIP("10.0.0.1"), []byte{1, 2, 3})
	require.Error(t, err)
}
