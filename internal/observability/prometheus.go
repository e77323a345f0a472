package observability

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// PrometheusMeter creates an OTel meter whose instruments are collected into
// a private Prometheus registry, and the [http.Handler] serving that
// registry's /metrics scrape endpoint. Each call creates an independent
// registry to avoid collector conflicts.
func PrometheusMeter() (metric.Meter, http.Handler, error) {
	registry := prometheus.NewRegistry()

	exporter, err := promexporter.New(
		promexporter.WithRegisterer(registry),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("create prometheus exporter: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))

	return provider.Meter(serviceName), promhttp.HandlerFor(registry, promhttp.HandlerOpts{}), nil
}
