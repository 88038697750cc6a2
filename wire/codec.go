// Copyright (c) 2020 Cisco Systems and/or its affiliates.
// Licensed under the Apache License, Version 2.0 (the "License")
// that can be found in the LICENSE file in the root of the source
// tree.

package wire

import (
	"errors"
	"net"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"

	"github.com/my/tcpengine/seq"
	"github.com/my/tcpengine/tcpflags"
)

// ErrShortSegment is returned when bytes doesn't even hold a full TCP
// header.
var ErrShortSegment = errors.New("wire: segment shorter than a TCP header")

// ErrBadChecksum is returned when the TCP checksum doesn't validate
// against the given pseudo-header addresses.
var ErrBadChecksum = errors.New("wire: checksum mismatch")

// DecodeAndValidate parses a raw TCP segment addressed between srcIP and
// dstIP, validating its checksum and doing the minimal option parse the
// engine needs (MSS, window scale). It never returns the martian and
// broadcast/multicast checks a full stack would add at the IP layer —
// those live above this package, against routing state this package
// doesn't have.
func DecodeAndValidate(srcIP, dstIP net.IP, b []byte) (Segment, error) {
	if len(b) < 20 {
		return Segment{}, ErrShortSegment
	}
	var tcp layers.TCP
	if err := tcp.DecodeFromBytes(b, gopacket.NilDecodeFeedback); err != nil {
		return Segment{}, err
	}

	if err := verifyChecksum(srcIP, dstIP, b, &tcp); err != nil {
		return Segment{}, err
	}

	seg := Segment{
		Seq:     seq.Num(tcp.Seq),
		Ack:     seq.Num(tcp.Ack),
		Window:  uint32(tcp.Window),
		Flags:   decodeFlags(&tcp),
		Payload: tcp.LayerPayload(),
		SrcPort: uint16(tcp.SrcPort),
		DstPort: uint16(tcp.DstPort),
	}
	for _, opt := range tcp.Options {
		switch opt.OptionType {
		case layers.TCPOptionKindMSS:
			if len(opt.OptionData) == 2 {
				mss := uint16(opt.OptionData[0])<<8 | uint16(opt.OptionData[1])
				seg.MSS = &mss
			}
		case layers.TCPOptionKindWindowScale:
			if len(opt.OptionData) == 1 {
				ws := opt.OptionData[0]
				seg.WS = &ws
			}
		}
	}
	return seg, nil
}

func decodeFlags(tcp *layers.TCP) tcpflags.Flags {
	var f tcpflags.Flags
	if tcp.FIN {
		f |= tcpflags.FIN
	}
	if tcp.SYN {
		f |= tcpflags.SYN
	}
	if tcp.RST {
		f |= tcpflags.RST
	}
	if tcp.PSH {
		f |= tcpflags.PSH
	}
	if tcp.ACK {
		f |= tcpflags.ACK
	}
	if tcp.URG {
		f |= tcpflags.URG
	}
	return f
}

func verifyChecksum(srcIP, dstIP net.IP, b []byte, tcp *layers.TCP) error {
	network := pseudoHeaderLayer(srcIP, dstIP)
	if network == nil {
		return ErrBadChecksum
	}
	if err := tcp.SetNetworkLayerForChecksum(network); err != nil {
		return err
	}
	// DecodeFromBytes already parsed tcp against b; recompute and compare.
	want := tcp.Checksum
	buf := gopacket.NewSerializeBuffer()
	opts := gopacket.SerializeOptions{ComputeChecksums: true, FixLengths: false}
	payload := gopacket.Payload(tcp.LayerPayload())
	cpy := *tcp
	cpy.Checksum = 0
	if err := gopacket.SerializeLayers(buf, opts, &cpy, payload); err != nil {
		return err
	}
	got := cpy.Checksum
	if got != want {
		return ErrBadChecksum
	}
	return nil
}

func pseudoHeaderLayer(srcIP, dstIP net.IP) gopacket.NetworkLayer {
	if v4src := srcIP.To4(); v4src != nil {
		if v4dst := dstIP.To4(); v4dst != nil {
			return &layers.IPv4{SrcIP: v4src, DstIP: v4dst, Protocol: layers.IPProtocolTCP}
		}
		return nil
	}
	if v6src := srcIP.To16(); v6src != nil {
		if v6dst := dstIP.To16(); v6dst != nil {
			return &layers.IPv6{SrcIP: v6src, DstIP: v6dst, NextHeader: layers.IPProtocolTCP}
		}
	}
	return nil
}

// Encode serializes seg as a TCP segment from srcIP:seg.SrcPort to
// dstIP:seg.DstPort, with a correct checksum over the given pseudo
// header.
func Encode(srcIP, dstIP net.IP, seg Segment) ([]byte, error) {
	network := pseudoHeaderLayer(srcIP, dstIP)
	if network == nil {
		return nil, errors.New("wire: unsupported or mismatched address family")
	}
	tcp := &layers.TCP{
		SrcPort: layers.TCPPort(seg.SrcPort),
		DstPort: layers.TCPPort(seg.DstPort),
		Seq:     uint32(seg.Seq),
		Ack:     uint32(seg.Ack),
		Window:  uint16(seg.Window),
		FIN:     seg.Flags.Has(tcpflags.FIN),
		SYN:     seg.Flags.Has(tcpflags.SYN),
		RST:     seg.Flags.Has(tcpflags.RST),
		PSH:     seg.Flags.Has(tcpflags.PSH),
		ACK:     seg.Flags.Has(tcpflags.ACK),
		URG:     seg.Flags.Has(tcpflags.URG),
	}
	if seg.MSS != nil {
		tcp.Options = append(tcp.Options, layers.TCPOption{
			OptionType:   layers.TCPOptionKindMSS,
			OptionLength: 4,
			OptionData:   []byte{byte(*seg.MSS >> 8), byte(*seg.MSS)},
		})
	}
	if seg.WS != nil {
		tcp.Options = append(tcp.Options, layers.TCPOption{
			OptionType:   layers.TCPOptionKindWindowScale,
			OptionLength: 3,
			OptionData:   []byte{*seg.WS},
		})
	}
	if err := tcp.SetNetworkLayerForChecksum(network); err != nil {
		return nil, err
	}
	buf := gopacket.NewSerializeBuffer()
	opts := gopacket.SerializeOptions{ComputeChecksums: true, FixLengths: true}
	if err := gopacket.SerializeLayers(buf, opts, tcp, gopacket.Payload(seg.Payload)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
