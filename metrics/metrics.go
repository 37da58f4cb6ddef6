package metrics

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type VerifierMetrics struct {
	*HostMetrics
	*TransferMetrics
}

// NewVerifierMetrics creates the verifier metrics. Every measurement carries
// the env, id and version attributes.
func NewVerifierMetrics(ctx context.Context, meter metric.Meter, env, id, version string) (*VerifierMetrics, error) {
	opts := metric.WithAttributes(
		attribute.String("env", env),
		attribute.String("id", id),
		attribute.String("version", version),
	)

	hostMetrics, err := NewHostMetrics(ctx, meter, opts)
	if err != nil {
		return nil, err
	}
	transferMetrics, err := NewTransferMetrics(ctx, meter, opts)
	if err != nil {
		return nil, err
	}

	return &VerifierMetrics{
		HostMetrics:     hostMetrics,
		TransferMetrics: transferMetrics,
	}, nil
}
