package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ist-rebalancer/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "ist-rebalancer", cfg.App.Name)
	assert.Equal(t, 60, cfg.IST.SellThroughThreshold)
	assert.Equal(t, 30, cfg.IST.DaysThreshold)
	assert.Equal(t, "zero", cfg.IST.NegativeNet)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, 50*1024*1024, cfg.HTTP.BodyLimit())
}

func TestLoad_DesdeEntorno(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("IST_SELL_THROUGH_THRESHOLD", "45")
	t.Setenv("IST_DEFAULT_VARIANT", "regional")
	t.Setenv("JWT_SECRET", "s3cr3t")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 45, cfg.IST.SellThroughThreshold)
	assert.Equal(t, "regional", cfg.IST.DefaultVariant)
	assert.Equal(t, "s3cr3t", cfg.JWT.Secret)
}

func TestLoad_ValoresInvalidos(t *testing.T) {
	cases := map[string][2]string{
		"umbral > 100":         {"IST_SELL_THROUGH_THRESHOLD", "150"},
		"días negativos":       {"IST_DAYS_THRESHOLD", "-5"},
		"política desconocida": {"IST_NEGATIVE_NET", "clamp"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv(kv[0], kv[1])
			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}
