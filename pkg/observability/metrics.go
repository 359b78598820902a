package observability

import (
	"context"
	"time"

	"github.com/aretw0/reel/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the render collectors.
type Metrics struct {
	frames           *prometheus.CounterVec
	frameDuration    prometheus.Histogram
	commands         *prometheus.CounterVec
	assemblies       *prometheus.CounterVec
	assembleDuration prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		frames: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reel_frames_total",
				Help: "Total number of rendered frames by outcome",
			},
			[]string{"status"},
		),
		frameDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "reel_frame_duration_seconds",
				Help:    "Duration of a single frame render",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 14),
			},
		),
		commands: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reel_commands_total",
				Help: "Total number of dispatched commands by operator",
			},
			[]string{"op"},
		),
		assemblies: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reel_animations_total",
				Help: "Total number of animation assemblies by outcome",
			},
			[]string{"status"},
		),
		assembleDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name: "reel_animation_duration_seconds",
				Help: "Duration of animation assembly",
			},
		),
	}
	for _, c := range []prometheus.Collector{m.frames, m.frameDuration, m.commands, m.assemblies, m.assembleDuration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Hooks returns lifecycle hooks that record frame and command metrics.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnFrameEnd: func(ctx context.Context, e *domain.FrameEvent) {
			m.frames.WithLabelValues(status(e.Err)).Inc()
			m.frameDuration.Observe(e.Duration.Seconds())
		},
		OnCommand: func(ctx context.Context, e *domain.CommandEvent) {
			m.commands.WithLabelValues(e.Command.Op.String()).Inc()
		},
	}
}

// ObserveAssemble records one animation assembly. Its signature matches the
// assembler observer callback.
func (m *Metrics) ObserveAssemble(ctx context.Context, _ domain.EventType, d time.Duration, err error) {
	m.assemblies.WithLabelValues(status(err)).Inc()
	m.assembleDuration.Observe(d.Seconds())
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// Commands exposes the per-operator command counter.
func (m *Metrics) Commands() *prometheus.CounterVec {
	return m.commands
}
