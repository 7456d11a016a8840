package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vannoorsab/FINAI/internal/config"
)

func baseConfig() *config.Config {
	return &config.Config{
		Port:            "8080",
		LogLevel:        "info",
		StoreBackend:    config.StoreNone,
		ExternalTimeout: 5 * time.Second,
		CacheMaxItems:   10,
		MaxUploadBytes:  1 << 20,
		JobWorkers:      1,
		JobBuffer:       1,
	}
}

func TestNew_MinimalConfig(t *testing.T) {
	s, err := New(context.Background(), baseConfig(), zerolog.Nop(), Options{})
	require.NoError(t, err)
	defer s.Close()

	assert.Nil(t, s.Store)
	assert.Nil(t, s.Storage)
	assert.Nil(t, s.Notion)
	assert.False(t, s.AIEnabled())
	assert.False(t, s.VideosEnabled())
	assert.NotNil(t, s.Cache)
	assert.NotNil(t, s.Assessor)
	assert.NotNil(t, s.Marketplace)
	assert.NotNil(t, s.Insights)
}

func TestNew_SQLiteAndNotion(t *testing.T) {
	cfg := baseConfig()
	cfg.StoreBackend = config.StoreSQLite
	cfg.SQLiteDBPath = filepath.Join(t.TempDir(), "finai.db")
	cfg.NotionToken = "secret"
	cfg.NotionDatabaseID = "db"

	s, err := New(context.Background(), cfg, zerolog.Nop(), Options{})
	require.NoError(t, err)
	defer s.Close()

	assert.NotNil(t, s.Store)
	assert.NotNil(t, s.Notion)

	list, err := s.Store.List(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestNew_BadBackend(t *testing.T) {
	cfg := baseConfig()
	cfg.StoreBackend = "postgres"

	_, err := New(context.Background(), cfg, zerolog.Nop(), Options{})
	assert.Error(t, err)
}
