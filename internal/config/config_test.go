package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresDSN(t *testing.T) {
	t.Setenv("DB_DSN", "")
	_, err := Load()
	assert.ErrorContains(t, err, "DB_DSN")
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://localhost/crm")
	t.Setenv("QUOTE_HTTP_URL", "https://quotes.example.com/")
	t.Setenv("QUOTE_TIMEOUT", "")
	t.Setenv("QUOTE_CONCURRENCY", "")
	t.Setenv("PNL_MATERIALITY", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/crm", cfg.DBDSN)
	assert.Equal(t, "https://quotes.example.com", cfg.Quotes.HTTPURL, "trailing slash trimmed")
	assert.Equal(t, 10*time.Second, cfg.Quotes.Timeout)
	assert.Equal(t, 4, cfg.Quotes.Concurrency)
	assert.Equal(t, "0.01", cfg.Materiality)
}

func TestLoadQuotesRejectsBadValues(t *testing.T) {
	t.Setenv("QUOTE_TIMEOUT", "soon")
	_, err := LoadQuotes()
	assert.ErrorContains(t, err, "QUOTE_TIMEOUT")

	t.Setenv("QUOTE_TIMEOUT", "30s")
	t.Setenv("QUOTE_CONCURRENCY", "0")
	_, err = LoadQuotes()
	assert.ErrorContains(t, err, "QUOTE_CONCURRENCY")

	t.Setenv("QUOTE_CONCURRENCY", "8")
	cfg, err := LoadQuotes()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, 8, cfg.Concurrency)
}
