package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Bodega-api/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.StoreDriverMemory, cfg.Store.Driver)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.False(t, cfg.Ledger.StrictItems)
	assert.Equal(t, "10", cfg.Valuation.DefaultUnitCost.String())
	assert.Equal(t, 90*24*time.Hour, cfg.MIS.Window())
	assert.Equal(t, 10, cfg.MIS.SummaryTopN)
	assert.Equal(t, 5, cfg.MIS.VelocityTopN)
}

func TestLoad_EnvTienePrioridad(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("LEDGER_STRICT_ITEMS", "true")
	t.Setenv("VALUATION_DEFAULT_UNIT_COST", "12.5")
	t.Setenv("MIS_WINDOW_DAYS", "30")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.True(t, cfg.Ledger.StrictItems)
	assert.Equal(t, "12.5", cfg.Valuation.DefaultUnitCost.String())
	assert.Equal(t, 30*24*time.Hour, cfg.MIS.Window())
}

func TestLoad_DriverInvalido(t *testing.T) {
	t.Setenv("STORE_DRIVER", "mongo")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_DSN_EscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:w/rd", DBName: "bodega", SSLMode: "disable"}

	assert.Equal(t, "postgres://app:p%40ss%3Aw%2Frd@db:5432/bodega?sslmode=disable", c.DSN())
	assert.Equal(t, c.DSN(), c.ConnectionString())

	c.DatabaseURL = "postgres://u:p@h:1/x"
	assert.Equal(t, "postgres://u:p@h:1/x", c.ConnectionString())
}
