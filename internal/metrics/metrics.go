package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ListingFetches counts listing fetches by mode (fresh, load_more, search) and outcome.
	ListingFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "jobboard",
		Name:      "listing_fetches_total",
		Help:      "Listing fetches by mode and outcome.",
	}, []string{"mode", "outcome"})

	// StaleResponses counts fetch or search results dropped because a newer request superseded them.
	StaleResponses = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "jobboard",
		Name:      "listing_stale_responses_total",
		Help:      "Listing results discarded because a newer request was issued for the session.",
	})

	// ApplicationSubmissions counts applyToJob calls by outcome.
	ApplicationSubmissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "jobboard",
		Name:      "application_submissions_total",
		Help:      "Application submissions by outcome.",
	}, []string{"outcome"})

	// ActiveSessions reports live listing sessions.
	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "jobboard",
		Name:      "listing_sessions",
		Help:      "Live listing query sessions.",
	})
)

// Outcome labels.
const (
	OutcomeOK        = "ok"
	OutcomeError     = "error"
	OutcomeStale     = "stale"
	OutcomeDuplicate = "duplicate"
	OutcomeOrphaned  = "orphaned"
)
