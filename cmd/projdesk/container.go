package main

import (
	"os"
	"path/filepath"

	"github.com/samber/do"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"projdesk/config"
	"projdesk/db"
	"projdesk/engine"
	"projdesk/platform"
)

// buildContainer wires the backend subsystems. Everything is lazy: a service
// is only constructed when a command invokes it.
func buildContainer() *do.Injector {
	inj := do.New()

	do.Provide(inj, func(i *do.Injector) (zap.AtomicLevel, error) {
		return zap.NewAtomicLevelAt(zapcore.InfoLevel), nil
	})

	do.Provide(inj, func(i *do.Injector) (*zap.Logger, error) {
		level := do.MustInvoke[zap.AtomicLevel](i)
		encCfg := zap.NewProductionEncoderConfig()
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		core := zapcore.NewCore(
			zapcore.NewConsoleEncoder(encCfg),
			zapcore.Lock(os.Stderr),
			level,
		)
		return zap.New(core), nil
	})

	do.Provide(inj, func(i *do.Injector) (platform.Launcher, error) {
		log := do.MustInvoke[*zap.Logger](i)
		return platform.New(log)
	})

	do.Provide(inj, func(i *do.Injector) (*config.Manager, error) {
		launcher := do.MustInvoke[platform.Launcher](i)
		log := do.MustInvoke[*zap.Logger](i)

		dir, err := launcher.ConfigDir()
		if err != nil {
			return nil, err
		}
		mgr, err := config.NewManager(dir, log)
		if err != nil {
			return nil, err
		}

		level := do.MustInvoke[zap.AtomicLevel](i)
		level.SetLevel(logLevel(mgr.Get().Advanced.LogLevel))
		return mgr, nil
	})

	do.Provide(inj, func(i *do.Injector) (*db.Store, error) {
		launcher := do.MustInvoke[platform.Launcher](i)
		mgr := do.MustInvoke[*config.Manager](i)
		log := do.MustInvoke[*zap.Logger](i)

		path, err := databasePath(launcher, mgr)
		if err != nil {
			return nil, err
		}
		return db.New(path, log)
	})

	do.Provide(inj, func(i *do.Injector) (*engine.Engine, error) {
		return engine.New(
			do.MustInvoke[*db.Store](i),
			do.MustInvoke[*config.Manager](i),
			do.MustInvoke[platform.Launcher](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})

	return inj
}

// databasePath honors the configured override, falling back to the OS data
// directory.
func databasePath(launcher platform.Launcher, mgr *config.Manager) (string, error) {
	cfg := mgr.Get()
	if cfg.Advanced.DatabasePath != nil && *cfg.Advanced.DatabasePath != "" {
		return *cfg.Advanced.DatabasePath, nil
	}

	dir, err := launcher.DataDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dir, "projdesk.db"), nil
}

func logLevel(level config.LogLevel) zapcore.Level {
	switch level {
	case config.LogError:
		return zapcore.ErrorLevel
	case config.LogWarn:
		return zapcore.WarnLevel
	case config.LogDebug:
		return zapcore.DebugLevel
	default:
		return zapcore.InfoLevel
	}
}
