package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"projdesk/models"
)

// Manager is the single source of truth for AppConfig. It loads the document
// once, hands out deep copies, and replaces the whole document on update.
type Manager struct {
	mu   sync.RWMutex
	cfg  AppConfig
	path string
	log  *zap.Logger
}

// NewManager loads the configuration file from dir, creating it with OS
// defaults on first run.
func NewManager(dir string, log *zap.Logger) (*Manager, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create config directory: %w: %v", models.ErrStorage, err)
	}

	m := &Manager{path: filepath.Join(dir, "config.json"), log: log}

	data, err := os.ReadFile(m.path)
	switch {
	case os.IsNotExist(err):
		log.Info("first run, writing default configuration", zap.String("path", m.path))
		m.cfg = Defaults()
		if err := m.save(m.cfg); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, fmt.Errorf("read config file: %w: %v", models.ErrStorage, err)
	default:
		var cfg AppConfig
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w: %v", models.ErrConfig, err)
		}
		if cfg.Version != Version {
			log.Warn("unknown configuration version, consider resetting",
				zap.String("version", cfg.Version))
		}
		m.cfg = cfg
	}

	return m, nil
}

// Path returns the backing file location.
func (m *Manager) Path() string {
	return m.path
}

// Get returns a deep copy of the current configuration.
func (m *Manager) Get() AppConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cfg.Clone()
}

// Update validates the new document, then replaces the in-memory state and
// persists it under one lock hold, so concurrent updates cannot leave the
// file behind the in-memory document. Validation failure leaves the previous
// state untouched. A disk-write failure after validation is surfaced, but the
// in-memory state has already changed at that point.
func (m *Manager) Update(cfg AppConfig) error {
	if err := validate(cfg); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.cfg = cfg.Clone()
	if err := m.save(cfg); err != nil {
		return err
	}
	m.log.Info("configuration updated", zap.String("path", m.path))
	return nil
}

// Reset regenerates OS defaults and routes them through Update.
func (m *Manager) Reset() (AppConfig, error) {
	cfg := Defaults()
	if err := m.Update(cfg); err != nil {
		return AppConfig{}, err
	}
	m.log.Info("configuration reset to defaults")
	return cfg, nil
}

func (m *Manager) save(cfg AppConfig) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w: %v", models.ErrConfig, err)
	}
	if err := os.WriteFile(m.path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w: %v", models.ErrStorage, err)
	}
	return nil
}

// validate enforces the handful of invariants that would otherwise surface
// as confusing runtime failures: a Custom terminal must point at an existing
// binary, and a configured backup path must exist or be creatable.
func validate(cfg AppConfig) error {
	if cfg.Platform.Terminal.Mode == ModeCustom && cfg.Platform.Terminal.CustomPath != nil {
		if _, err := os.Stat(*cfg.Platform.Terminal.CustomPath); err != nil {
			return fmt.Errorf("terminal path does not exist: %s: %w",
				*cfg.Platform.Terminal.CustomPath, models.ErrConfig)
		}
	}

	if cfg.Backup.DefaultPath != nil {
		if _, err := os.Stat(*cfg.Backup.DefaultPath); err != nil {
			if mkErr := os.MkdirAll(*cfg.Backup.DefaultPath, 0o755); mkErr != nil {
				return fmt.Errorf("backup path cannot be created: %s: %w",
					*cfg.Backup.DefaultPath, models.ErrConfig)
			}
		}
	}

	return nil
}
