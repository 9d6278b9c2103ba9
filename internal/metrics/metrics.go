// Package metrics records conversion counts and latencies.
//
// Recorder is the interface the batch processor and HTTP handlers depend on.
// Prometheus implements it on top of client_golang; Nop discards everything
// and is used by the CLI and in tests.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/khmer-numerals/pkg/khmer"
)

// Operation labels
const (
	OpWordsToNumeral = "words_to_numeral"
	OpNumeralToWords = "numeral_to_words"
)

// OutcomeOK labels a successful conversion. Failures use khmer.ErrorCode.
const OutcomeOK = "ok"

type Recorder interface {
	ObserveConversion(op string, err error, d time.Duration)
}

// Nop is a Recorder that records nothing.
type Nop struct{}

func (Nop) ObserveConversion(string, error, time.Duration) {}

// Outcome returns the outcome label for err.
func Outcome(err error) string {
	if err == nil {
		return OutcomeOK
	}
	return khmer.ErrorCode(err)
}

// Prometheus is a Recorder backed by a counter and a histogram vector.
type Prometheus struct {
	conversions *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

// NewPrometheus creates the conversion collectors and registers them with reg.
func NewPrometheus(reg prometheus.Registerer) (*Prometheus, error) {
	p := &Prometheus{
		conversions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "khmernum",
			Name:      "conversions_total",
			Help:      "Number of conversions by operation and outcome.",
		}, []string{"op", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "khmernum",
			Name:      "conversion_duration_seconds",
			Help:      "Conversion latency by operation.",
			Buckets:   []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01},
		}, []string{"op"}),
	}

	for _, c := range []prometheus.Collector{p.conversions, p.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (p *Prometheus) ObserveConversion(op string, err error, d time.Duration) {
	p.conversions.WithLabelValues(op, Outcome(err)).Inc()
	p.duration.WithLabelValues(op).Observe(d.Seconds())
}
