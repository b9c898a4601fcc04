package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/zervidtronics-storefront/internal/application/ports"
	"github.com/jhoicas/zervidtronics-storefront/internal/infrastructure/storage"
	"github.com/jhoicas/zervidtronics-storefront/pkg/config"
)

func providers(t *testing.T) map[string]ports.StorageProvider {
	t.Helper()
	f, err := storage.NewFile(t.TempDir())
	require.NoError(t, err)
	return map[string]ports.StorageProvider{"memory": storage.NewMemory(), "file": f, "redis": newRedis(t, time.Hour)}
}

func newRedis(t *testing.T, ttl time.Duration) *storage.Redis {
	return newRedisAt(t, miniredis.RunT(t), ttl)
}

func newRedisAt(t *testing.T, mr *miniredis.Miniredis, ttl time.Duration) *storage.Redis {
	t.Helper()
	r := storage.NewRedis(redis.NewClient(&redis.Options{Addr: mr.Addr()}), ttl)
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func TestStorage_GuardarLeerBorrar(t *testing.T) {
	ctx := context.Background()
	for name, p := range providers(t) {
		t.Run(name, func(t *testing.T) {
			st := p.Scope("sesion-1")

			_, ok, err := st.Get(ctx, ports.KeyToken)
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, st.Set(ctx, ports.KeyToken, "abc"))
			require.NoError(t, st.Set(ctx, ports.KeyUserRole, "proveedor"))
			v, ok, err := st.Get(ctx, ports.KeyToken)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "abc", v)

			require.NoError(t, st.Delete(ctx, ports.KeyToken))
			_, ok, _ = st.Get(ctx, ports.KeyToken)
			assert.False(t, ok)
			_, ok, _ = st.Get(ctx, ports.KeyUserRole)
			assert.True(t, ok)
		})
	}
}

func TestStorage_ClearSoloAfectaSuNamespace(t *testing.T) {
	ctx := context.Background()
	for name, p := range providers(t) {
		t.Run(name, func(t *testing.T) {
			a, b := p.Scope("a"), p.Scope("b")
			require.NoError(t, a.Set(ctx, ports.KeyToken, "ta"))
			require.NoError(t, b.Set(ctx, ports.KeyToken, "tb"))

			require.NoError(t, a.Clear(ctx))
			_, ok, _ := a.Get(ctx, ports.KeyToken)
			assert.False(t, ok)
			v, ok, _ := b.Get(ctx, ports.KeyToken)
			assert.True(t, ok)
			assert.Equal(t, "tb", v)
		})
	}
}

func TestFile_PermisosYPersistencia(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	f, err := storage.NewFile(dir)
	require.NoError(t, err)
	require.NoError(t, f.Scope("default").Set(ctx, ports.KeyRefreshToken, "r1"))

	info, err := os.Stat(filepath.Join(dir, "default.json"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	again, err := storage.NewFile(dir)
	require.NoError(t, err)
	v, ok, err := again.Scope("default").Get(ctx, ports.KeyRefreshToken)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "r1", v)
}

func TestFile_NamespaceInvalido(t *testing.T) {
	f, err := storage.NewFile(t.TempDir())
	require.NoError(t, err)
	err = f.Scope("../etc").Set(context.Background(), "k", "v")
	require.Error(t, err)
}

func TestOpen_Memory(t *testing.T) {
	p, err := storage.Open(context.Background(), &config.Config{Storage: config.StorageConfig{Driver: config.StorageMemory}})
	require.NoError(t, err)
	assert.IsType(t, &storage.Memory{}, p)
}

func TestRedis_CadaEscrituraRenuevaElTTL(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	st := newRedisAt(t, mr, time.Minute).Scope("s1")

	require.NoError(t, st.Set(ctx, ports.KeyToken, "abc"))
	assert.Equal(t, time.Minute, mr.TTL("storefront:session:s1"))

	mr.FastForward(40 * time.Second)
	require.NoError(t, st.Set(ctx, ports.KeyUserRole, "cliente"))
	assert.Equal(t, time.Minute, mr.TTL("storefront:session:s1"))

	mr.FastForward(2 * time.Minute)
	_, ok, err := st.Get(ctx, ports.KeyToken)
	require.NoError(t, err)
	assert.False(t, ok, "el hash expira completo")
}

func TestRedis_SinTTLNoExpira(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	st := newRedisAt(t, mr, 0).Scope("s1")

	require.NoError(t, st.Set(ctx, ports.KeyToken, "abc"))
	assert.Zero(t, mr.TTL("storefront:session:s1"))
}

func TestRedis_HealthCheckYCaida(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	r := newRedisAt(t, mr, time.Minute)
	require.NoError(t, r.HealthCheck(ctx))

	mr.Close()
	assert.Error(t, r.HealthCheck(ctx))
	_, _, err := r.Scope("s1").Get(ctx, ports.KeyToken)
	assert.ErrorContains(t, err, "storage: redis HGET")
}

func TestOpen_RedisInalcanzable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := storage.Open(context.Background(), &config.Config{
		Storage: config.StorageConfig{Driver: config.StorageRedis},
		Redis:   config.RedisConfig{Addr: addr},
	})
	assert.ErrorContains(t, err, "ping redis")
}
