// Package metrics exposes Prometheus collectors for the mutation layer.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Mutations counts completed mutation procedures by operation name.
	Mutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stockroom_mutations_total",
		Help: "Completed mutation procedures by operation.",
	}, []string{"operation"})

	// MutationErrors counts failed mutation procedures by operation name.
	MutationErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stockroom_mutation_errors_total",
		Help: "Failed mutation procedures by operation.",
	}, []string{"operation"})

	// SeedFallbacks counts reads served from the seed dataset because
	// storage was unreachable.
	SeedFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stockroom_seed_fallback_total",
		Help: "Snapshot reads served from the built-in seed dataset.",
	})
)
