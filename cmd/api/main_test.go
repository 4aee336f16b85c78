package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willykudo/pionix/internal/config"
)

func TestRun_ReturnsStartupErrors(t *testing.T) {
	cfg := &config.Config{
		Database: config.DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     1,
			User:     "pionix",
			Password: "pionix",
			Name:     "pionix",
			SSLMode:  "disable",
		},
		App: config.AppConfig{Timezone: "Asia/Jakarta"},
	}

	err := run(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect to database")
}
