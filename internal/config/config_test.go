package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buildledger/estimate-api/internal/config"
)

func TestLoadFileSource(t *testing.T) {
	cfg, err := config.LoadForTests(map[string]string{
		"ESTIMATE_SOURCE_FILE": "testdata/estimate.json",
		"ESTIMATE_SOURCE_URL":  "",
	})
	require.NoError(t, err)

	assert.Equal(t, "testdata/estimate.json", cfg.SourceFile)
	assert.Equal(t, "", cfg.SourceURL)
	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 10*time.Second, cfg.SourceFetchTimeout)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadURLSource(t *testing.T) {
	cfg, err := config.LoadForTests(map[string]string{
		"ESTIMATE_SOURCE_URL":     "https://upstream.example/estimate",
		"ESTIMATE_SOURCE_FILE":    "",
		"ESTIMATE_SOURCE_TIMEOUT": "3s",
		"CORS_ALLOWED_ORIGINS":    "https://app.example, https://admin.example",
		"PORT":                    "9090",
	})
	require.NoError(t, err)

	assert.Equal(t, "https://upstream.example/estimate", cfg.SourceURL)
	assert.Equal(t, 3*time.Second, cfg.SourceFetchTimeout)
	assert.Equal(t, []string{"https://app.example", "https://admin.example"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, ":9090", cfg.HTTPAddr())
}

func TestLoadRequiresExactlyOneSource(t *testing.T) {
	_, err := config.LoadForTests(map[string]string{
		"ESTIMATE_SOURCE_URL":  "",
		"ESTIMATE_SOURCE_FILE": "",
	})
	assert.Error(t, err)

	_, err = config.LoadForTests(map[string]string{
		"ESTIMATE_SOURCE_URL":  "https://upstream.example/estimate",
		"ESTIMATE_SOURCE_FILE": "testdata/estimate.json",
	})
	assert.Error(t, err)
}

func TestLoadBadTimeoutFallsBack(t *testing.T) {
	cfg, err := config.LoadForTests(map[string]string{
		"ESTIMATE_SOURCE_FILE":    "testdata/estimate.json",
		"ESTIMATE_SOURCE_URL":     "",
		"ESTIMATE_SOURCE_TIMEOUT": "soon",
	})
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, cfg.SourceFetchTimeout)
}

func TestHTTPAddr(t *testing.T) {
	cases := map[string]string{
		"8080":  ":8080",
		":7000": ":7000",
		"":      ":8080",
	}
	for port, want := range cases {
		cfg := config.Config{Port: port}
		assert.Equal(t, want, cfg.HTTPAddr(), "port %q", port)
	}
}
