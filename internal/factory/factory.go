package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/rfallows/moonrug/internal/dependencies/clock"
	"github.com/rfallows/moonrug/internal/dependencies/random"
	"github.com/rfallows/moonrug/internal/services/announce"
	"github.com/rfallows/moonrug/internal/services/flip"
	"github.com/rfallows/moonrug/internal/services/identity"
	"github.com/rfallows/moonrug/internal/services/stats"
	"github.com/rfallows/moonrug/internal/storage"
	filestorage "github.com/rfallows/moonrug/internal/storage/file"
	"github.com/rfallows/moonrug/internal/storage/memory"
	redisstorage "github.com/rfallows/moonrug/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
	StorageTypeFile   = "file"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	IdentityService *identity.Service
	FlipController  *flip.Controller
	StatsService    *stats.Service
	AnnounceService *announce.Service
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory", "redis" or "file")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// DataFile is the JSON blob path (required if StorageType is "file")
	DataFile string
	// FlipConfig holds ledger retention settings (optional)
	FlipConfig flip.Config
	// AnnounceConfig holds banner settings (optional)
	AnnounceConfig announce.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := loggerOrDiscard(cfg.Logger)

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	case StorageTypeFile:
		if cfg.DataFile == "" {
			return nil, errors.New("DataFile required when StorageType is file")
		}
		store = filestorage.New(cfg.DataFile, logger)
	default:
		return nil, errors.New("invalid StorageType: must be 'memory', 'redis' or 'file'")
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	return newWithDependencies(store, clk, rnd, cfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, cfg Config, logger *slog.Logger) *App {
	logger = loggerOrDiscard(logger)

	flipCfg := cfg.FlipConfig
	if flipCfg.RetainFlips == 0 {
		flipCfg = flip.DefaultConfig()
	}
	announceCfg := cfg.AnnounceConfig
	if announceCfg.BannerDuration == 0 {
		announceCfg = announce.DefaultConfig()
	}

	identityService := identity.New(store, clk, logger)
	flipController := flip.NewController(store, clk, rnd, flipCfg, logger)
	statsService := stats.New(store, clk, logger)
	announceService := announce.New(clk, announceCfg)

	return &App{
		Storage:         store,
		Clock:           clk,
		Random:          rnd,
		IdentityService: identityService,
		FlipController:  flipController,
		StatsService:    statsService,
		AnnounceService: announceService,
	}
}

func loggerOrDiscard(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return logger
}
