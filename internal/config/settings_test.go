package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettings_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("DATABASE_URL", "")

	s, err := LoadSettings("", "")
	require.NoError(t, err)
	assert.Equal(t, "info", s.Log.Level)
	assert.Equal(t, "console", s.Log.Format)
	assert.Equal(t, ":8080", s.Server.Addr)
	assert.Equal(t, "none", s.ScenarioLog.Driver)
	assert.Equal(t, 5*time.Second, s.ScenarioLog.Timeout)
	assert.Equal(t, DefaultOfferModel, s.Offer.Model)
	assert.Empty(t, s.Offer.APIKey)
}

func TestLoadSettings_FileAndEnvironment(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "compme.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte(`
log:
  level: debug
  format: json
server:
  addr: "127.0.0.1:9000"
scenario_log:
  driver: sqlite
  dsn: "file:scenarios.db"
  timeout: 2s
`), 0644))

	env := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(env, []byte("GEMINI_API_KEY=from-dotenv\n"), 0644))
	t.Setenv("COMPME_SERVER_ADDR", ":7000")
	// godotenv does not override variables that are already set
	t.Setenv("GEMINI_API_KEY", "")
	require.NoError(t, os.Unsetenv("GEMINI_API_KEY"))

	s, err := LoadSettings(cfg, env)
	require.NoError(t, err)
	assert.Equal(t, "debug", s.Log.Level)
	assert.Equal(t, "json", s.Log.Format)
	assert.Equal(t, ":7000", s.Server.Addr)
	assert.Equal(t, "sqlite", s.ScenarioLog.Driver)
	assert.Equal(t, 2*time.Second, s.ScenarioLog.Timeout)
	assert.Equal(t, "from-dotenv", s.Offer.APIKey)
}

func TestLoadSettings_MissingExplicitFile(t *testing.T) {
	_, err := LoadSettings(filepath.Join(t.TempDir(), "absent.yaml"), filepath.Join(t.TempDir(), "absent.env"))
	assert.Error(t, err)
}

func TestSettings_Validate(t *testing.T) {
	s := &Settings{}
	s.Log.Level = "info"
	s.ScenarioLog.Driver = "postgres"

	var vErr *ValidationError
	require.ErrorAs(t, s.Validate(), &vErr)
	assert.Equal(t, "scenario_log.dsn", vErr.Field)

	s.ScenarioLog.DSN = "postgres://localhost/compme"
	assert.NoError(t, s.Validate())

	s.ScenarioLog.Driver = "mongo"
	require.ErrorAs(t, s.Validate(), &vErr)
	assert.Equal(t, "scenario_log.driver", vErr.Field)

	s.ScenarioLog.Driver = "none"
	s.Log.Level = "chatty"
	require.ErrorAs(t, s.Validate(), &vErr)
	assert.Equal(t, "log.level", vErr.Field)
}
