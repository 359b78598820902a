package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/reel/pkg/domain"
)

// LoggingHooks logs frame boundaries at Info and failures at Error.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnFrameStart: func(ctx context.Context, e *domain.FrameEvent) {
			logger.Info("frame_start", "frame", e.Frame, "frames", e.Frames)
		},
		OnFrameEnd: func(ctx context.Context, e *domain.FrameEvent) {
			if e.Err != nil {
				logger.Error("frame_failed", "frame", e.Frame, "error", e.Err)
				return
			}
			logger.Info("frame_end", "frame", e.Frame, "duration", e.Duration)
		},
	}
}

// Combine fans every event out to each hook set in order.
func Combine(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	var out domain.LifecycleHooks
	for _, s := range sets {
		s := s // per-iteration copy; the closures below capture s
		if s.OnFrameStart != nil {
			prev := out.OnFrameStart
			out.OnFrameStart = func(ctx context.Context, e *domain.FrameEvent) {
				if prev != nil {
					prev(ctx, e)
				}
				s.OnFrameStart(ctx, e)
			}
		}
		if s.OnFrameEnd != nil {
			prev := out.OnFrameEnd
			out.OnFrameEnd = func(ctx context.Context, e *domain.FrameEvent) {
				if prev != nil {
					prev(ctx, e)
				}
				s.OnFrameEnd(ctx, e)
			}
		}
		if s.OnCommand != nil {
			prev := out.OnCommand
			out.OnCommand = func(ctx context.Context, e *domain.CommandEvent) {
				if prev != nil {
					prev(ctx, e)
				}
				s.OnCommand(ctx, e)
			}
		}
	}
	return out
}
