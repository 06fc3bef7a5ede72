package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOf(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvJWTKey, EnvDatabaseURL, EnvAppEnv, EnvNodeEnv} {
		t.Setenv(k, "")
	}
}

func TestParseConfig_Defaults(t *testing.T) {
	clearEnv(t)
	c, err := ParseConfig([]byte("server:\n  http-port: \":8080\"\n"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", c.Server.HttpPort)
	assert.Equal(t, "release", c.Server.RunMode)
	assert.Equal(t, "sqlite", c.Database.Type)
	assert.Equal(t, "NoteApp", c.Session.CookieName)
	assert.Equal(t, 7*24*time.Hour, c.SessionMaxAge())
	assert.True(t, c.User.RegisterIsEnable)
	assert.Equal(t, 5, c.App.EditMaxRetries)
	assert.Equal(t, "@every 1h", c.App.OrphanCleanupCron)
	assert.Equal(t, time.Minute, c.GetDBStatsInterval())
	assert.Equal(t, 60*time.Second, c.GetContextTimeout())
}

func TestParseConfig_ExplicitFalseIsKept(t *testing.T) {
	data := []byte(`
user:
  register-is-enable: false
tracer:
  enabled: false
app:
  edit-max-retries: 0
  default-context-timeout: 0
`)
	c, err := ParseConfig(data)
	require.NoError(t, err)

	assert.False(t, c.User.RegisterIsEnable)
	assert.False(t, c.Tracer.Enabled)
	assert.Equal(t, 0, c.App.EditMaxRetries)
	assert.Equal(t, time.Duration(0), c.GetContextTimeout())
	assert.False(t, c.GetServiceConfig().User.RegisterIsEnable)
}

func TestParseConfig_Invalid(t *testing.T) {
	_, err := ParseConfig([]byte("server: [1, 2"))
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	clearEnv(t)
	c, err := ParseConfig([]byte("security:\n  auth-token-key: from-file\n"))
	require.NoError(t, err)

	c.applyEnv(envOf(map[string]string{
		EnvJWTKey:      "from-env",
		EnvDatabaseURL: "postgres://u:p@localhost:5432/notes?sslmode=disable",
		EnvNodeEnv:     "production",
	}))

	assert.Equal(t, "from-env", c.Security.AuthTokenKey)
	assert.Equal(t, "postgres", c.Database.Type)
	assert.Equal(t, "postgres://u:p@localhost:5432/notes?sslmode=disable", c.Database.DSN)
	assert.True(t, c.IsProduction())
	assert.True(t, c.GetCookieConfig().Secure)
}

func TestApplyEnv_NoOverrides(t *testing.T) {
	clearEnv(t)
	c, err := ParseConfig([]byte("security:\n  auth-token-key: from-file\n"))
	require.NoError(t, err)

	c.applyEnv(envOf(map[string]string{EnvAppEnv: "development"}))

	assert.Equal(t, "from-file", c.Security.AuthTokenKey)
	assert.Equal(t, "sqlite", c.Database.Type)
	assert.False(t, c.IsProduction())
	assert.False(t, c.GetCookieConfig().Secure)
}

func TestLoadConfig(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("session:\n  max-age: 1d\n  cookie-name: Sess\n"), 0644))

	c, realpath, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, path, realpath)
	assert.Equal(t, path, c.File)

	tc := c.GetTokenConfig()
	assert.Equal(t, 24*time.Hour, tc.Expiry)
	cc := c.GetCookieConfig()
	assert.Equal(t, "Sess", cc.Name)
	assert.Equal(t, "/", cc.Path)
	assert.Equal(t, 24*time.Hour, cc.MaxAge)

	_, _, err = LoadConfig(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestQueueConfigs(t *testing.T) {
	clearEnv(t)
	c, err := ParseConfig([]byte(`
app:
  worker-pool-max-workers: 3
  worker-pool-queue-size: 9
  write-queue-capacity: 7
  write-queue-timeout: 2s
  edit-retry-min: 1ms
  edit-retry-max: 4ms
`))
	require.NoError(t, err)

	wp := c.GetWorkerPoolConfig()
	assert.Equal(t, 3, wp.MaxWorkers)
	assert.Equal(t, 9, wp.QueueSize)

	wq := c.GetWriteQueueConfig()
	assert.Equal(t, 7, wq.QueueCapacity)
	assert.Equal(t, 2*time.Second, wq.WriteTimeout)

	svc := c.GetServiceConfig()
	assert.Equal(t, time.Millisecond, svc.App.EditRetryMin)
	assert.Equal(t, 4*time.Millisecond, svc.App.EditRetryMax)

	db := c.GetDatabaseConfig()
	assert.Equal(t, "sqlite", db.Type)
	assert.Equal(t, "release", db.RunMode)
}
