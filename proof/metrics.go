package proof

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	proofsGeneratedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inclusion_proofs_generated_total",
		Help: "Number of inclusion proofs generated by era kind.",
	}, []string{"kind"})
	proofsVerifiedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inclusion_proofs_verified_total",
		Help: "Number of inclusion proofs verified by result.",
	}, []string{"result"})
	batchVerificationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "inclusion_proof_batch_verification_seconds",
		Help:    "Time taken to verify a batch of inclusion proofs.",
		Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
	})
)
