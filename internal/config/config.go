package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

type QuoteConfig struct {
	HTTPURL     string
	WSURL       string
	APIToken    string
	Timeout     time.Duration
	Concurrency int
}

type Config struct {
	DBDSN       string
	Quotes      QuoteConfig
	Materiality string
}

// Load reads the full tool configuration from the environment. Only DB_DSN
// is required; quote provider settings are optional because closed-position
// recalculation needs no live prices.
func Load() (Config, error) {
	var c Config
	qc, err := LoadQuotes()
	if err != nil {
		return c, err
	}
	c.Quotes = qc
	c.DBDSN = os.Getenv("DB_DSN")
	if c.DBDSN == "" {
		return c, errors.New("missing required env: DB_DSN")
	}
	c.Materiality = os.Getenv("PNL_MATERIALITY")
	if c.Materiality == "" {
		c.Materiality = "0.01"
	}
	return c, nil
}

// LoadQuotes reads only the quote provider settings.
func LoadQuotes() (QuoteConfig, error) {
	var c QuoteConfig
	c.HTTPURL = strings.TrimRight(os.Getenv("QUOTE_HTTP_URL"), "/")
	c.WSURL = os.Getenv("QUOTE_WS_URL")
	c.APIToken = os.Getenv("QUOTE_API_TOKEN")
	timeout := os.Getenv("QUOTE_TIMEOUT")
	if timeout == "" {
		c.Timeout = 10 * time.Second
	} else {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return c, errors.New("invalid QUOTE_TIMEOUT: " + err.Error())
		}
		c.Timeout = d
	}
	concurrency := os.Getenv("QUOTE_CONCURRENCY")
	if concurrency == "" {
		c.Concurrency = 4
	} else {
		n, err := strconv.Atoi(concurrency)
		if err != nil || n < 1 {
			return c, errors.New("invalid QUOTE_CONCURRENCY: must be a positive integer")
		}
		c.Concurrency = n
	}
	return c, nil
}
