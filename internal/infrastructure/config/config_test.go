package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	// 切到空目录,保证找不到config.yaml
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 9090, cfg.GRPC.Port)
	assert.Equal(t, CatalogSourceStatic, cfg.Catalog.Source)
	assert.False(t, cfg.Catalog.ShuffleTies)
	assert.Equal(t, SessionStoreMemory, cfg.Session.Store)
	assert.Equal(t, 2*time.Hour, cfg.Session.TTL)
	assert.Equal(t, "wizardshop.events", cfg.MQ.Exchange)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: 8181
catalog:
  source: file
  file: books.yaml
  shuffle_ties: true
session:
  ttl: 30m
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("WIZARDSHOP_SESSION_STORE", "redis")
	t.Setenv("WIZARDSHOP_GRPC_PORT", "9191")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8181, cfg.Server.Port)
	assert.Equal(t, CatalogSourceFile, cfg.Catalog.Source)
	assert.Equal(t, "books.yaml", cfg.Catalog.File)
	assert.True(t, cfg.Catalog.ShuffleTies)
	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
	assert.Equal(t, SessionStoreRedis, cfg.Session.Store, "环境变量覆盖")
	assert.Equal(t, 9191, cfg.GRPC.Port)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Server:  ServerConfig{Port: 8080, Mode: "debug"},
			GRPC:    GRPCConfig{Enabled: true, Port: 9090},
			JWT:     JWTConfig{Secret: DefaultJWTSecret},
			Catalog: CatalogConfig{Source: CatalogSourceStatic},
			Session: SessionConfig{Store: SessionStoreMemory, TTL: time.Hour},
			Tracing: TracingConfig{SampleRatio: 1},
		}
	}

	assert.NoError(t, validate(base()))

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"端口越界", func(c *Config) { c.Server.Port = 70000 }},
		{"gRPC端口与HTTP冲突", func(c *Config) { c.GRPC.Port = 8080 }},
		{"未知目录数据源", func(c *Config) { c.Catalog.Source = "s3" }},
		{"file数据源缺少路径", func(c *Config) { c.Catalog.Source = CatalogSourceFile }},
		{"未知会话存储", func(c *Config) { c.Session.Store = "etcd" }},
		{"TTL为0", func(c *Config) { c.Session.TTL = 0 }},
		{"采样率越界", func(c *Config) { c.Tracing.SampleRatio = 1.5 }},
		{"release模式使用默认密钥", func(c *Config) { c.Server.Mode = "release" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(c)
			assert.Error(t, validate(c))
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{
		User: "root", Password: "pw", Host: "db", Port: 3306, DBName: "wizardshop",
		Charset: "utf8mb4", ParseTime: true, Loc: "Asia/Shanghai",
	}
	assert.Equal(t, "root:pw@tcp(db:3306)/wizardshop?charset=utf8mb4&parseTime=true&loc=Asia%2FShanghai", d.DSN())
}
