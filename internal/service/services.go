package service

import (
	"log/slog"
	"time"

	"github.com/xolan/worktimer/internal/config"
	"github.com/xolan/worktimer/internal/storage"
)

// Services holds all service instances used by the application
type Services struct {
	Entry     *EntryService
	DayType   *DayTypeService
	Settings  *SettingsService
	Dashboard *DashboardService
	Countdown *CountdownService
	Transfer  *TransferService
	Storage   *StorageService
	Config    *ConfigService

	State  *State
	Logger *slog.Logger

	// Now is the time source for every service. Replace it to evaluate
	// against a fixed clock.
	Now func() time.Time
}

// NewServices creates a new Services instance from the config file at its
// default location.
func NewServices(logger *slog.Logger) (*Services, error) {
	configPath, err := config.GetConfigPath()
	if err != nil {
		return nil, err
	}

	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, err
	}

	return NewServicesWithConfig(configPath, cfg, logger)
}

// NewServicesWithConfig opens the store selected by cfg.
func NewServicesWithConfig(configPath string, cfg config.Config, logger *slog.Logger) (*Services, error) {
	store, err := storage.Open(cfg.StorageBackend, cfg.DataDir, logger)
	if err != nil {
		return nil, err
	}
	return NewServicesWithStore(store, configPath, cfg, logger), nil
}

// NewServicesWithStore creates a new Services instance around an existing
// store (useful for testing).
func NewServicesWithStore(store storage.Store, configPath string, cfg config.Config, logger *slog.Logger) *Services {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Services{
		Logger: logger,
		Now:    time.Now,
	}
	now := func() time.Time { return s.Now() }

	s.State = NewState(store, logger)
	s.Entry = NewEntryService(s.State, now, logger)
	s.DayType = NewDayTypeService(s.State, now, logger)
	s.Settings = NewSettingsService(s.State, logger)
	s.Dashboard = NewDashboardService(s.State, now, logger)
	s.Countdown = NewCountdownService(s.State, s.Dashboard, now, logger)
	s.Transfer = NewTransferService(s.State, now, logger)
	s.Storage = NewStorageService(s.State, logger)
	s.Config = NewConfigService(configPath, cfg)
	return s
}

// Close releases the store.
func (s *Services) Close() error {
	return s.State.Store().Close()
}
