package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/reel"
	"github.com/aretw0/reel/internal/config"
	"github.com/aretw0/reel/internal/logging"
	"github.com/aretw0/reel/pkg/adapters/file"
	"github.com/aretw0/reel/pkg/adapters/gif"
	"github.com/aretw0/reel/pkg/adapters/process"
	"github.com/aretw0/reel/pkg/adapters/redis"
	"github.com/aretw0/reel/pkg/domain"
	"github.com/aretw0/reel/pkg/ports"
	"github.com/spf13/cobra"
)

// settings holds everything a command needs to build an engine.
type settings struct {
	cfg    config.Config
	logger *slog.Logger
}

func loadSettings(cmd *cobra.Command) (*settings, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.DefaultPath
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if dir, _ := cmd.Flags().GetString("dir"); dir != "" {
		cfg.OutputDir = dir
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.LogLevel = lvl
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return &settings{cfg: cfg, logger: logging.New(level)}, nil
}

// engineParts are the adapters selected by the configuration.
type engineParts struct {
	store  ports.ImageStore
	viewer ports.Viewer
	// encoder is nil when assembly is disabled.
	encoder ports.Encoder
	closer  io.Closer
}

func (p *engineParts) Close() error {
	if p.closer == nil {
		return nil
	}
	return p.closer.Close()
}

func buildParts(cfg config.Config, headless bool) (*engineParts, error) {
	parts := &engineParts{}

	switch cfg.Store {
	case config.StoreRedis:
		if cfg.Encoder == config.EncoderProcess {
			return nil, errors.New("the process encoder reads frames from disk and cannot be used with the redis store")
		}
		var opts []redis.Option
		if cfg.Redis.Prefix != "" {
			opts = append(opts, redis.WithPrefix(cfg.Redis.Prefix))
		}
		if cfg.Redis.TTLSeconds > 0 {
			opts = append(opts, redis.WithTTL(time.Duration(cfg.Redis.TTLSeconds)*time.Second))
		}
		rs := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, opts...)
		parts.store, parts.closer = rs, rs
	default:
		parts.store = file.New(cfg.OutputDir)
	}

	runner := process.NewRunner(
		process.WithRegistry(cfg.ProcessCommands()),
		process.WithBaseDir(cfg.OutputDir),
	)
	if !headless {
		parts.viewer = process.NewViewer(runner)
	}

	switch cfg.Encoder {
	case config.EncoderGIF:
		parts.encoder = gif.New(parts.store, gif.WithDelay(cfg.GIFDelay))
	case config.EncoderProcess:
		parts.encoder = process.NewEncoder(runner)
	case config.EncoderNone:
	default:
		return nil, fmt.Errorf("unknown encoder %q", cfg.Encoder)
	}
	return parts, nil
}

// engineOptions translates the configuration and adapters into engine options.
func engineOptions(s *settings, parts *engineParts, hooks domain.LifecycleHooks) []reel.Option {
	return []reel.Option{
		reel.WithLogger(s.logger),
		reel.WithImageStore(parts.store),
		reel.WithViewer(parts.viewer),
		reel.WithEncoder(parts.encoder),
		reel.WithLighting(s.cfg.Lighting),
		reel.WithColors(s.cfg.Foreground.RGBA(), s.cfg.Background.RGBA()),
		reel.WithSize(s.cfg.Width, s.cfg.Height),
		reel.WithStep(s.cfg.Step),
		reel.WithAnimDir(s.cfg.AnimDir),
		reel.WithLifecycleHooks(hooks),
	}
}
