package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr())
	assert.Empty(t, cfg.RedisURL)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
	assert.Equal(t, []string{"hot flashes", "sleep", "mood", "brain fog"}, cfg.RefreshTopics)
	assert.False(t, cfg.KeepVideosOnNewsFallback)
	assert.False(t, cfg.SeedStaticContent)
}

func TestLoadFromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "9090")
	t.Setenv("REDIS_URL", "redis://cache:6379")
	t.Setenv("HTTP_TIMEOUT", "5s")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("REFRESH_TOPICS", " sleep, ,mood ")
	t.Setenv("REFRESH_SCHEDULE", "@every 6h")
	t.Setenv("KEEP_VIDEOS_ON_NEWS_FALLBACK", "true")
	t.Setenv("DB_POOL_SIZE", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "redis://cache:6379", cfg.RedisURL)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "sk-test", cfg.OpenAI.APIKey)
	assert.Equal(t, []string{"sleep", "mood"}, cfg.RefreshTopics)
	assert.Equal(t, "@every 6h", cfg.RefreshSchedule)
	assert.True(t, cfg.KeepVideosOnNewsFallback)
	assert.Equal(t, 20, cfg.DBPoolSize, "unparsable values use the default")
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("NEWS_API_KEY=from-file\nPORT=7070\n"), 0o600))
	t.Chdir(dir)
	t.Setenv("PORT", "6060")
	t.Cleanup(func() { os.Unsetenv("NEWS_API_KEY") })

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.NewsAPI.APIKey)
	assert.Equal(t, 6060, cfg.Port, "process environment wins over .env")
}

func TestValidate(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "70000")
	t.Setenv("OPENAI_BASE_URL", "api.openai.com")
	t.Setenv("OPENAI_TEMPERATURE", "3")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PORT")
	assert.Contains(t, err.Error(), "OPENAI_BASE_URL")
	assert.Contains(t, err.Error(), "OPENAI_TEMPERATURE")
}
