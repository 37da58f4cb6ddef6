package metrics

import (
	"context"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	HOP_TTL = time.Minute * 30
)

type TransferMetrics struct {
	opts metric.MeasurementOption

	scenarioCounter metric.Int64Counter
	runningGauge    metric.Int64UpDownCounter

	hopTimeHistogram  metric.Float64Histogram
	hopStartTimeCache *ttlcache.Cache[string, time.Time]
}

// NewTransferMetrics initializes metrics related to scenarios and their hops
func NewTransferMetrics(ctx context.Context, meter metric.Meter, opts metric.MeasurementOption) (*TransferMetrics, error) {
	scenarioCounter, err := meter.Int64Counter(
		"verifier.ScenarioStates",
		metric.WithDescription("Number of scenario state transitions"),
	)
	if err != nil {
		return nil, err
	}

	runningGauge, err := meter.Int64UpDownCounter(
		"verifier.RunningScenarios",
		metric.WithDescription("Number of scenarios currently running"),
	)
	if err != nil {
		return nil, err
	}

	hopTimeHistogram, err := meter.Float64Histogram(
		"verifier.HopTime",
		metric.WithDescription("Seconds between submitting and verifying a hop"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &TransferMetrics{
		opts:             opts,
		scenarioCounter:  scenarioCounter,
		runningGauge:     runningGauge,
		hopTimeHistogram: hopTimeHistogram,
		hopStartTimeCache: ttlcache.New(
			ttlcache.WithTTL[string, time.Time](HOP_TTL),
		),
	}, nil
}

// TrackScenario counts a state transition of the named scenario.
func (m *TransferMetrics) TrackScenario(name string, state string) {
	ctx := context.Background()
	m.scenarioCounter.Add(ctx, 1, m.opts, metric.WithAttributes(
		attribute.String("scenario", name),
		attribute.String("state", state),
	))

	switch state {
	case "INIT":
		m.runningGauge.Add(ctx, 1, m.opts)
	case "DONE", "ABORTED":
		m.runningGauge.Add(ctx, -1, m.opts)
	}
}

func (m *TransferMetrics) StartHop(hopID string) {
	m.hopStartTimeCache.Set(hopID, time.Now(), ttlcache.DefaultTTL)
}

func (m *TransferMetrics) EndHop(hopID string, from string, to string) {
	duration, ok := m.HopDuration(hopID)
	if !ok {
		log.Warn().Msgf("Hop start time with ID %s not found", hopID)
		return
	}
	m.hopStartTimeCache.Delete(hopID)

	log.Debug().Msgf("Hop %s from %s to %s took %s", hopID, from, to, duration)
	m.hopTimeHistogram.Record(
		context.Background(),
		duration.Seconds(),
		m.opts,
		metric.WithAttributes(attribute.String("from", from), attribute.String("to", to)),
	)
}

// HopDuration returns how long the hop has been running.
func (m *TransferMetrics) HopDuration(hopID string) (time.Duration, bool) {
	startTime := m.hopStartTimeCache.Get(hopID)
	if startTime == nil {
		return 0, false
	}
	return time.Since(startTime.Value()), true
}
