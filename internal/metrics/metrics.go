// Package metrics exposes the server's Prometheus collectors.
//
// Collectors are package-level and registered with the default registry;
// the /metrics endpoint serves them via promhttp. Dispatch and transport
// code update them directly.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PlayersOnline tracks the number of live player sessions.
	PlayersOnline = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "metaverse",
		Name:      "players_online",
		Help:      "Number of currently joined players.",
	})

	// MessagesTotal counts inbound frames by message kind. Frames that
	// fail envelope parsing are counted under the "invalid" kind.
	MessagesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "metaverse",
		Name:      "messages_total",
		Help:      "Inbound WebSocket messages processed, by kind.",
	}, []string{"kind"})

	// BroadcastsTotal counts fan-out operations, not per-recipient sends.
	BroadcastsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "metaverse",
		Name:      "broadcasts_total",
		Help:      "Broadcast operations performed.",
	})

	// DroppedFramesTotal counts outbound frames dropped because a
	// client's send buffer was full.
	DroppedFramesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "metaverse",
		Name:      "dropped_frames_total",
		Help:      "Outbound frames dropped due to slow clients.",
	})

	// ReapedConnectionsTotal counts connections closed by the idle reaper.
	ReapedConnectionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "metaverse",
		Name:      "reaped_connections_total",
		Help:      "Connections forcibly closed after idling past the threshold.",
	})
)
