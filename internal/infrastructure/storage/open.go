package storage

import (
	"context"
	"fmt"

	"github.com/jhoicas/zervidtronics-storefront/internal/application/ports"
	"github.com/jhoicas/zervidtronics-storefront/internal/infrastructure/postgres"
	"github.com/jhoicas/zervidtronics-storefront/pkg/config"
)

// Open crea el proveedor indicado por STORAGE_DRIVER.
func Open(ctx context.Context, cfg *config.Config) (ports.StorageProvider, error) {
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		return NewMemory(), nil
	case config.StorageFile:
		return NewFile(cfg.Storage.Dir)
	case config.StorageRedis:
		return ConnectRedis(ctx, cfg.Redis)
	case config.StoragePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("storage: %w", err)
		}
		st, err := postgres.NewClientStorage(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("storage: %w", err)
		}
		return st, nil
	}
	return nil, fmt.Errorf("storage: driver desconocido %q", cfg.Storage.Driver)
}
