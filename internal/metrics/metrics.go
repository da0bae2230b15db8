package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "dealflow"

//nolint:gochecknoglobals
var (
	DealsIngested = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "deals_ingested_total",
		Help:      "Deals accepted by the ingestion boundary, by tier.",
	}, []string{"tier"})

	DealsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "deals_rejected_total",
		Help:      "Deal submissions rejected by validation.",
	})

	MatchesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "matches_created_total",
		Help:      "Match rows created at ingestion.",
	})

	MatchOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "match_outcomes_total",
		Help:      "Settled matches, by terminal status.",
	}, []string{"status"})

	Deliveries = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "deliveries_total",
		Help:      "Outbound notification attempts, by channel and result.",
	}, []string{"channel", "result"})

	SweepDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "notification_sweep_duration_seconds",
		Help:      "Duration of a notification sweep.",
		Buckets:   prometheus.DefBuckets,
	})

	BillingEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "billing_events_total",
		Help:      "Billing events consumed, by result.",
	}, []string{"result"})
)
