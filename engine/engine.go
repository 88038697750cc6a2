// Copyright (c) 2020 Cisco Systems and/or its affiliates.
// Licensed under the Apache License, Version 2.0 (the "License")
// that can be found in the LICENSE file in the root of the source
// tree.

package engine

import (
	"time"

	"github.com/my/tcpengine/config"
	"github.com/my/tcpengine/internal/mss"
	"github.com/my/tcpengine/metrics"
)

// Engine bundles the tunables and counters the pure handlers consult. It
// carries no mutable connection state itself — that lives in the
// EngineState the caller threads through Handle.
type Engine struct {
	Config  config.Config
	Metrics *metrics.Counters
}

// New returns an Engine with the given config and counters. Pass nil
// Metrics to disable counter updates (useful in tests that don't want a
// Prometheus registry in play).
func New(cfg config.Config, m *metrics.Counters) *Engine {
	return &Engine{Config: cfg, Metrics: m}
}

func (e *Engine) bumpAccepts()      { e.bump(func(m *metrics.Counters) { m.Accepts.Inc() }) }
func (e *Engine) bumpConnects()     { e.bump(func(m *metrics.Counters) { m.Connects.Inc() }) }
func (e *Engine) bumpDrops()        { e.bump(func(m *metrics.Counters) { m.Drops.Inc() }) }
func (e *Engine) bumpBadSyn()       { e.bump(func(m *metrics.Counters) { m.BadSyn.Inc() }) }
func (e *Engine) bumpRcvDupAck()    { e.bump(func(m *metrics.Counters) { m.RcvDupAck.Inc() }) }
func (e *Engine) bumpRcvAfterWin()  { e.bump(func(m *metrics.Counters) { m.RcvAfterWin.Inc() }) }
func (e *Engine) bumpRcvWinProbe()  { e.bump(func(m *metrics.Counters) { m.RcvWinProbe.Inc() }) }
func (e *Engine) bumpChallengeAck() { e.bump(func(m *metrics.Counters) { m.ChallengeAck.Inc() }) }
func (e *Engine) bumpRxParseErr()   { e.bump(func(m *metrics.Counters) { m.RxParseErr.Inc() }) }

func (e *Engine) bump(f func(*metrics.Counters)) {
	if e.Metrics == nil {
		return
	}
	f(e.Metrics)
}

// bufSizes is a small convenience wrapper around internal/mss so
// handlers don't thread e.Config fields one at a time.
func (e *Engine) bufSizes(advmss uint16, peerMSS *uint16) (rcvbuf, sndbuf uint32, maxseg uint16, cwnd uint32) {
	return mss.CalculateBufSizes(advmss, peerMSS, e.Config.SoRcvBuf, e.Config.SoSndBuf, e.Config.InitwndFactor)
}

func (e *Engine) initialTimer(now time.Time, kind TimerKind) *TimerHandle {
	shift := 0
	backoff := time.Duration(0)
	if len(e.Config.Backoff) > 0 {
		backoff = e.Config.Backoff[0]
	}
	return &TimerHandle{Kind: kind, Started: now, Shift: shift, Backoff: backoff}
}
