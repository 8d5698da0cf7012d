// Package main is the entry point for the sunroom viewer.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/sunroom/internal/assets"
	"github.com/Faultbox/sunroom/internal/clock"
	"github.com/Faultbox/sunroom/internal/config"
	"github.com/Faultbox/sunroom/internal/logger"
	"github.com/Faultbox/sunroom/internal/room"
	"github.com/Faultbox/sunroom/internal/viewer"
)

// modelCheckTimeout bounds --check-models.
const modelCheckTimeout = 30 * time.Second

func init() {
	runtime.LockOSThread()
}

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Sunroom ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if config.SaveRequested() {
		if err := cfg.Save(); err != nil {
			logger.Error("failed to save config", zap.Error(err))
			os.Exit(1)
		}
		logger.Info("config saved", zap.String("dir", config.ConfigDir()))
		return
	}

	if config.CheckModelsRequested() {
		ctx, cancel := context.WithTimeout(context.Background(), modelCheckTimeout)
		err := checkModels(ctx, assets.NewLoader(cfg.Assets.ModelDir, logger.Named("assets")), room.Layout().Models())
		cancel()
		if err != nil {
			logger.Error("model check failed", zap.Error(err))
			os.Exit(1)
		}
		logger.Info("all room models load")
		return
	}

	start, err := startTime(time.Now(), config.StartTime())
	if err != nil {
		logger.Error("invalid start time", zap.Error(err))
		os.Exit(1)
	}

	v, err := viewer.New(cfg, start)
	if err != nil {
		logger.Error("failed to create viewer", zap.Error(err))
		os.Exit(1)
	}
	defer v.Close()

	v.Run()
	logger.Info("viewer closed normally")
}

// startTime returns now, or today at the HH:MM given by --time.
func startTime(now time.Time, flag string) (time.Time, error) {
	if flag == "" {
		return now, nil
	}
	total, err := clock.Parse(flag)
	if err != nil {
		return time.Time{}, err
	}
	return clock.Apply(now, total), nil
}

// checkModels loads every name and joins the failures.
func checkModels(ctx context.Context, loader *assets.Loader, names []string) error {
	loader.RequestAll(names)
	var errs []error
	for _, name := range names {
		m, err := loader.Wait(ctx, name)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}
		logger.Debug("model ok", zap.String("name", name), zap.Int("triangles", m.TriangleCount()))
	}
	if err := loader.Close(ctx); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
