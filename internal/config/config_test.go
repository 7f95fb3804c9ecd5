package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "trading_config.txt")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadParsesRecognizedKeys(t *testing.T) {
	path := writeTempConfig(t, `# trading config
server.port=9090
dashboard.port=9091
server.max_clients=50
risk.max_order_size=5000
risk.max_position_size=25000
risk.max_daily_loss=50000.5
logging.level=debug
logging.file=/var/log/trading.log
matching.enable_profiling=true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, 9090, cfg.ServerPort)
	require.Equal(t, 9091, cfg.DashboardPort)
	require.Equal(t, 50, cfg.ServerMaxClients)
	require.EqualValues(t, 5000, cfg.RiskMaxOrderSize)
	require.EqualValues(t, 25000, cfg.RiskMaxPositionSize)
	require.InDelta(t, 50000.5, cfg.RiskMaxDailyLoss, 0.001)
	require.Equal(t, "debug", cfg.LoggingLevel)
	require.Equal(t, "/var/log/trading.log", cfg.LoggingFile)
	require.True(t, cfg.MatchingEnableProfile)
}

func TestLoadDefaultsForMissingKeys(t *testing.T) {
	path := writeTempConfig(t, "# empty file, only a comment\n")
	cfg, err := Load(path)
	require.NoError(t, err)

	def := Default()
	require.Equal(t, def.ServerPort, cfg.ServerPort)
	require.Equal(t, def.DashboardPort, cfg.DashboardPort)
	require.False(t, cfg.MatchingEnableProfile)
}

func TestLoadRejectsMalformedIntegerKey(t *testing.T) {
	path := writeTempConfig(t, "server.port=not-a-number\n")
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadRejectsMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.txt"))
	require.Error(t, err)
}

func TestRiskLimitsOverridesOnlySetKeys(t *testing.T) {
	path := writeTempConfig(t, "risk.max_order_size=42\n")
	cfg, err := Load(path)
	require.NoError(t, err)

	limits := cfg.RiskLimits()
	require.EqualValues(t, 42, limits.MaxOrderSize)
	require.NotZero(t, limits.MaxPositionSize, "MaxPositionSize should fall back to the risk package default, not zero")
}
