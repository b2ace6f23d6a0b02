package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/skirmish/internal/config"
)

func TestPoolConfig_AppliesLimits(t *testing.T) {
	cfg := config.Default().Database
	cfg.MaxConns = 7
	cfg.MinConns = 3
	cfg.MaxConnLifetime = 20 * time.Minute

	pc, err := poolConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, int32(7), pc.MaxConns)
	assert.Equal(t, int32(3), pc.MinConns)
	assert.Equal(t, 20*time.Minute, pc.MaxConnLifetime)
	assert.Equal(t, cfg.Host, pc.ConnConfig.Host)
	assert.Equal(t, uint16(cfg.Port), pc.ConnConfig.Port)
	assert.Equal(t, cfg.Name, pc.ConnConfig.Database)
	assert.Equal(t, ApplicationName, pc.ConnConfig.RuntimeParams["application_name"])
}

func TestPoolConfig_RejectsBadSSLMode(t *testing.T) {
	cfg := config.Default().Database
	cfg.SSLMode = "sometimes"
	_, err := poolConfig(cfg)
	assert.Error(t, err)
}
