// Copyright (c) 2020 Cisco Systems and/or its affiliates.
// Licensed under the Apache License, Version 2.0 (the "License")
// that can be found in the LICENSE file in the root of the source
// tree.

package engine

import "github.com/my/tcpengine/seq"

// inWindow implements the RFC793-bis §3.3 acceptance table (spec.md
// §4.1): whether seg's sequence range overlaps the receiver's current
// window.
func inWindow(cb *ControlBlock, segSeq seq.Num, segLen int) bool {
	rcvNxt := cb.RcvNxt
	rcvWnd := cb.RcvWnd

	switch {
	case segLen == 0 && rcvWnd == 0:
		return segSeq.Equal(rcvNxt)
	case segLen == 0 && rcvWnd > 0:
		return segSeq.GreaterEqual(rcvNxt) && segSeq.Less(rcvNxt.Addi(int32(rcvWnd)))
	case segLen > 0 && rcvWnd == 0:
		return false
	default: // segLen > 0 && rcvWnd > 0
		last := segSeq.Addi(int32(segLen - 1))
		winEnd := rcvNxt.Addi(int32(rcvWnd))
		firstIn := segSeq.GreaterEqual(rcvNxt) && segSeq.Less(winEnd)
		lastIn := last.GreaterEqual(rcvNxt) && last.Less(winEnd)
		return firstIn || lastIn
	}
}
