package appsettings

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Save outcomes, used as the "outcome" label of saveCounter.
const (
	outcomeNoop    = "noop"
	outcomeCreated = "created"
	outcomeUpdated = "updated"
	outcomeDeleted = "deleted"
)

var (
	saveCounter = promauto.NewCounterVec( //nolint:gochecknoglobals
		prometheus.CounterOpts{
			Name: "appsettings_saves_total",
			Help: "Number of settings saves, differentiated by entity type and storage outcome.",
		},
		[]string{"entity", "outcome"},
	)

	collapsedCounter = promauto.NewCounterVec( //nolint:gochecknoglobals
		prometheus.CounterOpts{
			Name: "appsettings_duplicates_collapsed_total",
			Help: "Number of duplicate settings records deleted while saving.",
		},
		[]string{"entity"},
	)
)
