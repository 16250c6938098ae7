package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artmuseum/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, []string{"mysql", "mongo", "neo4j"}, cfg.EnabledBackends())
	assert.Equal(t, config.BackendMySQL, cfg.PrimaryUserBackend)
	assert.Equal(t, config.AllocatorScan, cfg.IDAllocator)
	assert.False(t, cfg.MySQLAutoMigrate)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("BACKENDS", " Mongo ,neo4j")
	t.Setenv("PRIMARY_USER_BACKEND", "neo4j")
	t.Setenv("REDIS_DB", "4")
	t.Setenv("MYSQL_AUTO_MIGRATE", "true")

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, 4, cfg.RedisDB)
	assert.True(t, cfg.MySQLAutoMigrate)
	assert.True(t, cfg.Enabled(config.BackendMongo))
	assert.False(t, cfg.Enabled(config.BackendMySQL))
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "museum.yaml")
	require.NoError(t, os.WriteFile(path, []byte("jwt_issuer: file-issuer\nid_allocator: redis\n"), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "file-issuer", cfg.JWTIssuer)
	assert.Equal(t, config.AllocatorRedis, cfg.IDAllocator)
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "unknown backend", key: "BACKENDS", val: "mysql,postgres"},
		{name: "primary not enabled", key: "PRIMARY_USER_BACKEND", val: "cassandra"},
		{name: "unknown allocator", key: "ID_ALLOCATOR", val: "uuid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := config.Load("")
			assert.Error(t, err)
		})
	}
}
