package service

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/zap"
)

const meterName = "github.com/prperemyshlev/course-platform/internal/service"

// Exported by the Prometheus exporter with a _total suffix
const (
	metricSessionsIssued  = "auth_sessions_issued"
	metricRefreshRejected = "auth_refresh_rejected"
	metricCoursePublish   = "course_publish"
)

type counters struct {
	sessionsIssued  metric.Int64Counter
	refreshRejected metric.Int64Counter
	coursePublish   metric.Int64Counter
}

// newCounters registers the domain counters on the global meter provider.
// A counter that fails to register is replaced by a no-op.
func newCounters(logger *zap.Logger) *counters {
	meter := otel.Meter(meterName)

	counter := func(name, description string) metric.Int64Counter {
		c, err := meter.Int64Counter(name, metric.WithDescription(description))
		if err != nil {
			logger.Warn("failed to register counter", zap.String("name", name), zap.Error(err))
			return noop.Int64Counter{}
		}
		return c
	}

	return &counters{
		sessionsIssued:  counter(metricSessionsIssued, "Sessions issued by register, login and refresh"),
		refreshRejected: counter(metricRefreshRejected, "Refresh attempts rejected, by reason"),
		coursePublish:   counter(metricCoursePublish, "Course publish attempts, by result"),
	}
}

func (c *counters) sessionIssued(ctx context.Context, reason string) {
	c.sessionsIssued.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}

func (c *counters) refreshRejectedFor(ctx context.Context, reason string) {
	c.refreshRejected.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}

func (c *counters) publishAttempt(ctx context.Context, result string) {
	c.coursePublish.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
}
