// Copyright (c) 2020 Cisco Systems and/or its affiliates.
// Licensed under the Apache License, Version 2.0 (the "License")
// that can be found in the LICENSE file in the root of the source
// tree.

// Package connid defines the connection 4-tuple key shared between the
// engine and the leaf packages (like mss) that need to name a
// connection without depending on the rest of the engine's state.
package connid

import (
	"fmt"
	"net"
)

// ConnectionId is the exact 4-tuple key identifying a connection.
type ConnectionId struct {
	LocalIP    string // net.IP.String(); comparable map key
	LocalPort  uint16
	RemoteIP   string
	RemotePort uint16
}

func (id ConnectionId) String() string {
	return fmt.Sprintf("%s:%d<->%s:%d", id.LocalIP, id.LocalPort, id.RemoteIP, id.RemotePort)
}

// New builds a ConnectionId from addresses and ports, local first.
func New(localIP, remoteIP net.IP, localPort, remotePort uint16) ConnectionId {
	return ConnectionId{
		LocalIP:    localIP.String(),
		LocalPort:  localPort,
		RemoteIP:   remoteIP.String(),
		RemotePort: remotePort,
	}
}
