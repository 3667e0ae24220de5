package services

import (
	"context"
	"strings"
	"sync/atomic"

	"graphstack-keeper/internal/utils"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	requestCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "keeper_request_total",
			Help: "Total HTTP requests handled by the keeper",
		},
		[]string{"route"},
	)

	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "keeper_request_duration_seconds",
			Help:    "Duration of HTTP requests handled by the keeper",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	errorCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "keeper_request_errors_total",
			Help: "HTTP requests that ended with status >= 400",
		},
		[]string{"route"},
	)

	stackStartCount = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "keeper_stack_start_total",
			Help: "Whole-stack start attempts",
		},
	)

	stackStartFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "keeper_stack_start_failures_total",
			Help: "Whole-stack start attempts that did not converge",
		},
	)

	healthPollRounds = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "keeper_health_poll_rounds_total",
			Help: "Health polling rounds executed while awaiting convergence",
		},
	)

	engineCommands = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "keeper_engine_commands_total",
			Help: "Container engine invocations by verb",
		},
		[]string{"verb"},
	)
)

// Local counters back the /healthz metrics block; the Prometheus client
// offers no cheap read-back of counter values.
var (
	totalRequests int64
	totalErrors   int64
	totalStarts   int64
)

func init() {
	prometheus.MustRegister(requestCount)
	prometheus.MustRegister(requestDuration)
	prometheus.MustRegister(errorCount)
	prometheus.MustRegister(stackStartCount)
	prometheus.MustRegister(stackStartFailures)
	prometheus.MustRegister(healthPollRounds)
	prometheus.MustRegister(engineCommands)
}

func IncrementRequestCount(route string) {
	requestCount.WithLabelValues(route).Inc()
	atomic.AddInt64(&totalRequests, 1)
}

func RecordRequestDuration(route string, seconds float64) {
	requestDuration.WithLabelValues(route).Observe(seconds)
}

func IncrementErrorCount(route string) {
	errorCount.WithLabelValues(route).Inc()
	atomic.AddInt64(&totalErrors, 1)
}

func RecordStackStart() {
	stackStartCount.Inc()
	atomic.AddInt64(&totalStarts, 1)
}

func RecordStackStartFailure() {
	stackStartFailures.Inc()
}

func RecordHealthPoll() {
	healthPollRounds.Inc()
}

func GetTotalRequestCount() int64 {
	return atomic.LoadInt64(&totalRequests)
}

func GetTotalErrorCount() int64 {
	return atomic.LoadInt64(&totalErrors)
}

func GetStackStartCount() int64 {
	return atomic.LoadInt64(&totalStarts)
}

// knownVerbs are the engine verbs worth distinguishing in the command
// counter; anything else lands in "other".
var knownVerbs = map[string]bool{
	"info":    true,
	"inspect": true,
	"stats":   true,
	"load":    true,
	"up":      true,
	"stop":    true,
	"down":    true,
	"restart": true,
	"logs":    true,
	"version": true,
}

func commandVerb(command string) string {
	fields := strings.Fields(command)
	for _, f := range fields[1:] {
		if knownVerbs[strings.TrimLeft(f, "-")] {
			return strings.TrimLeft(f, "-")
		}
	}
	return "other"
}

// meteredRunner counts engine invocations by verb on the way through.
type meteredRunner struct {
	inner utils.CommandRunner
}

func (m *meteredRunner) Run(ctx context.Context, command string) (string, error) {
	engineCommands.WithLabelValues(commandVerb(command)).Inc()
	return m.inner.Run(ctx, command)
}

func (m *meteredRunner) RunDir(ctx context.Context, dir string, command string) (string, error) {
	engineCommands.WithLabelValues(commandVerb(command)).Inc()
	return m.inner.RunDir(ctx, dir, command)
}
