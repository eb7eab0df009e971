package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		updatesTotal,
		gateChecksTotal,
		cardSendsTotal,
		broadcastSendsTotal,
		rateLimitedTotal,
	)
}

var (
	updatesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_updates_total",
			Help: "Telegram updates processed, by kind.",
		},
		[]string{"kind"}, // 'command', 'callback', 'other'
	)

	gateChecksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_gate_checks_total",
			Help: "Subscription gate checks, by outcome.",
		},
		[]string{"outcome"}, // 'subscribed', 'not_subscribed', 'check_failed'
	)

	cardSendsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_card_sends_total",
			Help: "Card photo sends, by result.",
		},
		[]string{"result"}, // 'ok', 'miss', 'error'
	)

	broadcastSendsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_broadcast_sends_total",
			Help: "Daily broadcast sends, by result.",
		},
		[]string{"result"}, // 'ok', 'error'
	)

	rateLimitedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bot_rate_limited_total",
			Help: "Updates rejected by the per-user rate limiter.",
		},
	)
)

func IncUpdate(kind string) { updatesTotal.WithLabelValues(kind).Inc() }

func IncGateCheck(outcome string) { gateChecksTotal.WithLabelValues(outcome).Inc() }

func IncCardSend(result string) { cardSendsTotal.WithLabelValues(result).Inc() }

func IncBroadcastSend(result string) { broadcastSendsTotal.WithLabelValues(result).Inc() }

func IncRateLimited() { rateLimitedTotal.Inc() }
