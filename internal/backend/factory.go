package backend

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"budgetize/internal/storage"
	"budgetize/internal/tabular"
	gsheet "budgetize/internal/tabular/google"
	"budgetize/internal/tabular/memory"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *slog.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{
		logger: logger,
	}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if !config.Type.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", config.Type)
	}

	switch config.Type {
	case SQLiteBackend:
		return f.createSQLiteBackend(config)
	case SheetsBackend:
		return f.createSheetsBackend(ctx, config)
	case MemoryBackend:
		return f.createMemoryBackend(config)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

// PeriodFromConfig resolves the configured period, defaulting to the
// current month.
func PeriodFromConfig(config Config) (tabular.Period, error) {
	if config.Period == "" {
		return tabular.PeriodOf(time.Now()), nil
	}
	return tabular.ParsePeriod(config.Period)
}

func (f *DefaultFactory) createSQLiteBackend(config Config) (*BackendResult, error) {
	period, err := PeriodFromConfig(config)
	if err != nil {
		return nil, err
	}

	repo, err := storage.NewRepository(config.SQLiteDBPath, period)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
	}

	f.logger.Info("Initialized SQLite backend",
		"db_path", config.SQLiteDBPath,
		"period", period.String())

	return &BackendResult{
		Store:   repo,
		Cleanup: repo.Close,
	}, nil
}

func (f *DefaultFactory) createSheetsBackend(ctx context.Context, config Config) (*BackendResult, error) {
	cli, err := gsheet.NewFromEnv(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Google Sheets client: %w", err)
	}

	f.logger.Info("Initialized Google Sheets backend")

	return &BackendResult{
		Store:   cli,
		Cleanup: nil, // No cleanup needed for sheets backend
	}, nil
}

func (f *DefaultFactory) createMemoryBackend(config Config) (*BackendResult, error) {
	if config.DataDirectory == "" {
		f.logger.Info("Initialized empty memory backend")
		return &BackendResult{Store: memory.New(), Cleanup: nil}, nil
	}

	store := memory.NewFromFiles(config.DataDirectory)

	f.logger.Info("Initialized memory backend", "data_directory", config.DataDirectory)

	return &BackendResult{
		Store:   store,
		Cleanup: nil, // No cleanup needed for memory backend
	}, nil
}
