// Package metrics exposes the engine's receive-path counters as
// Prometheus metrics. Field naming follows TcpStats in the teacher's
// tcp_counters.go; only the counters this pure engine can actually
// increment (no retransmit-timer or socket-buffer bookkeeping) are kept.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Counters groups the counters this package registers. Construct one with
// NewCounters per registry; tests typically use a throwaway
// prometheus.NewRegistry() to avoid colliding with the global default.
type Counters struct {
	Accepts    prometheus.Counter // tcps_accepts — passive opens completed
	Connects   prometheus.Counter // tcps_connects — active opens completed
	Drops      prometheus.Counter // tcps_drops — connections dropped
	BadSyn     prometheus.Counter // tcps_badsyn — bogus SYN to a listener
	RcvDupAck  prometheus.Counter // tcps_rcvdupack
	RcvAfterWin prometheus.Counter // tcps_rcvpackafterwin
	RcvWinProbe prometheus.Counter // tcps_rcvwinprobe
	ChallengeAck prometheus.Counter // RFC5961 challenge ACKs emitted
	RxParseErr  prometheus.Counter // tcps_rx_parse_err
}

// NewCounters registers a fresh Counters set against reg.
func NewCounters(reg prometheus.Registerer) *Counters {
	f := promauto.With(reg)
	return &Counters{
		Accepts: f.NewCounter(prometheus.CounterOpts{
			Name: "tcpengine_accepts_total",
			Help: "passive opens completed (tcps_accepts)",
		}),
		Connects: f.NewCounter(prometheus.CounterOpts{
			Name: "tcpengine_connects_total",
			Help: "active opens completed (tcps_connects)",
		}),
		Drops: f.NewCounter(prometheus.CounterOpts{
			Name: "tcpengine_drops_total",
			Help: "connections dropped (tcps_drops)",
		}),
		BadSyn: f.NewCounter(prometheus.CounterOpts{
			Name: "tcpengine_bad_syn_total",
			Help: "bogus SYN delivered to a listener (tcps_badsyn)",
		}),
		RcvDupAck: f.NewCounter(prometheus.CounterOpts{
			Name: "tcpengine_rcv_dup_ack_total",
			Help: "duplicate acks received (tcps_rcvdupack)",
		}),
		RcvAfterWin: f.NewCounter(prometheus.CounterOpts{
			Name: "tcpengine_rcv_after_win_total",
			Help: "segments with data beyond the receive window (tcps_rcvpackafterwin)",
		}),
		RcvWinProbe: f.NewCounter(prometheus.CounterOpts{
			Name: "tcpengine_rcv_win_probe_total",
			Help: "zero-window probes received (tcps_rcvwinprobe)",
		}),
		ChallengeAck: f.NewCounter(prometheus.CounterOpts{
			Name: "tcpengine_challenge_ack_total",
			Help: "RFC5961 challenge ACKs emitted",
		}),
		RxParseErr: f.NewCounter(prometheus.CounterOpts{
			Name: "tcpengine_rx_parse_err_total",
			Help: "segments failing decode/validate (tcps_rx_parse_err)",
		}),
	}
}
