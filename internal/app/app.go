// Package app wires configuration, logging, storage and services into one
// shared core used by cmd/tradecast-server.
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"tradecast/internal/common"
	"tradecast/internal/interfaces"
	"tradecast/internal/services/account"
	"tradecast/internal/services/predictor"
	"tradecast/internal/services/session"
	"tradecast/internal/storage"
)

// App holds all initialized services and storage.
type App struct {
	Config      *common.Config
	Logger      *common.Logger
	Storage     interfaces.StorageManager
	Accounts    interfaces.AccountService
	Sessions    interfaces.SessionService
	Predictor   interfaces.PredictorService
	StartupTime time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes config, logging, storage, and all services.
// configPath may be empty, in which case the default resolution logic is used.
func NewApp(configPath string) (*App, error) {
	startupStart := time.Now()

	// Load version from .version file (fallback if ldflags not set)
	common.LoadVersionFromFile()

	binDir := getBinaryDir()

	// Load configuration - check provided path, TRADECAST_CONFIG, then binary dir, then fallback
	if configPath == "" {
		configPath = os.Getenv("TRADECAST_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "tradecast.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/tradecast.toml" // fallback for development
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	storageManager, err := storage.NewManager(logger, config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	accountService := account.NewService(storageManager, logger)
	sessionService := session.NewService(accountService, logger)
	predictorService := predictor.NewService(logger, config.Predictor.Seed)

	a := &App{
		Config:      config,
		Logger:      logger,
		Storage:     storageManager,
		Accounts:    accountService,
		Sessions:    sessionService,
		Predictor:   predictorService,
		StartupTime: startupStart,
	}

	logger.Info().Dur("startup", time.Since(startupStart)).Msg("App initialized")

	return a, nil
}

// NewTestApp builds an App over in-memory storage with a silent logger,
// for handler and flow tests.
func NewTestApp() *App {
	logger := common.NewSilentLogger()
	config := common.NewDefaultConfig()
	config.Storage.Backend = storage.BackendMemory

	storageManager := storage.NewMemoryManager(logger)
	accountService := account.NewService(storageManager, logger)
	sessionService := session.NewService(accountService, logger)
	predictorService := predictor.NewService(logger, 42)

	return &App{
		Config:      config,
		Logger:      logger,
		Storage:     storageManager,
		Accounts:    accountService,
		Sessions:    sessionService,
		Predictor:   predictorService,
		StartupTime: time.Now(),
	}
}

// Close releases all resources held by the App.
func (a *App) Close() {
	if a.Storage != nil {
		a.Storage.Close()
		a.Storage = nil
	}
}
