package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/zervidtronics-storefront/internal/application/ports"
)

var _ ports.StorageProvider = (*ClientStorage)(nil)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS client_storage (
	namespace  TEXT        NOT NULL,
	key        TEXT        NOT NULL,
	value      TEXT        NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (namespace, key)
)`

// ClientStorage almacenamiento de sesiones en la tabla client_storage.
type ClientStorage struct {
	pool *pgxpool.Pool
}

// NewClientStorage crea el almacenamiento y la tabla si no existe.
func NewClientStorage(ctx context.Context, pool *pgxpool.Pool) (*ClientStorage, error) {
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		return nil, fmt.Errorf("crear tabla client_storage: %w", err)
	}
	return &ClientStorage{pool: pool}, nil
}

// Scope devuelve el namespace ns.
func (s *ClientStorage) Scope(ns string) ports.Storage { return &pgScope{pool: s.pool, ns: ns} }

// Close cierra el pool.
func (s *ClientStorage) Close() error {
	s.pool.Close()
	return nil
}

// PurgeIdle elimina los namespaces sin escrituras desde hace más de olderThanMinutes.
func (s *ClientStorage) PurgeIdle(ctx context.Context, olderThanMinutes int) (int64, error) {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM client_storage
		WHERE namespace IN (
			SELECT namespace FROM client_storage
			GROUP BY namespace
			HAVING max(updated_at) < now() - make_interval(mins => $1)
		)`, olderThanMinutes)
	if err != nil {
		return 0, fmt.Errorf("purgar client_storage: %w", err)
	}
	return tag.RowsAffected(), nil
}

type pgScope struct {
	pool *pgxpool.Pool
	ns   string
}

func (s *pgScope) Get(ctx context.Context, key string) (string, bool, error) {
	var v string
	err := s.pool.QueryRow(ctx,
		`SELECT value FROM client_storage WHERE namespace = $1 AND key = $2`, s.ns, key).Scan(&v)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("leer %s: %w", key, err)
	}
	return v, true, nil
}

func (s *pgScope) Set(ctx context.Context, key, value string) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO client_storage (namespace, key, value, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (namespace, key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		s.ns, key, value)
	if err != nil {
		return fmt.Errorf("guardar %s: %w", key, err)
	}
	return nil
}

func (s *pgScope) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if _, err := s.pool.Exec(ctx,
		`DELETE FROM client_storage WHERE namespace = $1 AND key = ANY($2)`, s.ns, keys); err != nil {
		return fmt.Errorf("eliminar claves: %w", err)
	}
	return nil
}

func (s *pgScope) Clear(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM client_storage WHERE namespace = $1`, s.ns); err != nil {
		return fmt.Errorf("limpiar namespace: %w", err)
	}
	return nil
}
