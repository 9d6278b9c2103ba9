package rest

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/khmer-numerals/internal/transport/middleware"
)

// NewRouter wires the conversion, health and metrics routes behind the
// request-id, recovery and logging middleware.
func NewRouter(convert *ConvertHandler, health *HealthHandler, gatherer prometheus.Gatherer, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /v1/words-to-numeral", convert.WordsToNumeral)
	mux.HandleFunc("POST /v1/numeral-to-words", convert.NumeralToWords)
	mux.HandleFunc("GET /live", health.Live)
	mux.HandleFunc("GET /health", health.Health)
	if gatherer != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	return middleware.Chain(
		middleware.RequestID(),
		middleware.Recovery(logger),
		middleware.Logger(logger),
	)(mux)
}
