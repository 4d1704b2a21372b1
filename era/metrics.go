package era

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	eraValidationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "era_validations_total",
		Help: "Number of era validations by era kind and result.",
	}, []string{"kind", "result"})
	blockFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "era_block_failures_total",
		Help: "Number of blocks that failed verification by era kind.",
	}, []string{"kind"})
)

func recordValidation(kind Kind, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	eraValidationsTotal.WithLabelValues(kind.String(), result).Inc()
}
