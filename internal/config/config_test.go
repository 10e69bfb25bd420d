package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"goalcal/internal/calendar"
)

func TestLoad_FirstRunWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), cfg)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	again, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg, again)
}

func TestLoad_PartialConfigIsNormalized(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listen: \":9000\"\nlane_policy: stable\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, ":9000", cfg.Listen)
	require.Equal(t, calendar.LanePolicyStable, cfg.Policy())
	require.Equal(t, calendar.DefaultGeometry(), cfg.Geometry)
	require.Equal(t, "INFO", cfg.LogLevel)
	require.Equal(t, filepath.Join(filepath.Dir(path), "goals.yaml"), cfg.GoalsFile(path))
}

func TestLoad_PartialGeometry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("geometry:\n  cell_height: 100\n  bar_inset: 0\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	want := calendar.DefaultGeometry()
	want.CellHeight = 100
	want.BarInset = 0
	require.Equal(t, want, cfg.Geometry)
}

func TestLoad_RejectsBadSettings(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "policy.yaml")
	require.NoError(t, os.WriteFile(path, []byte("lane_policy: optimal\n"), 0o600))
	_, err := Load(path)
	require.ErrorIs(t, err, calendar.ErrInvalidArgument)

	path = filepath.Join(dir, "geometry.yaml")
	body := "geometry:\n  cell_width: 100\n  cell_height: 80\n  min_lane_height: 20\n  max_lane_height: 10\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	_, err = Load(path)
	require.ErrorIs(t, err, calendar.ErrInvalidArgument)

	path = filepath.Join(dir, "refresh.yaml")
	require.NoError(t, os.WriteFile(path, []byte("refresh: \"every so often\"\n"), 0o600))
	_, err = Load(path)
	require.ErrorContains(t, err, "refresh schedule")

	path = filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listen: [\n"), 0o600))
	_, err = Load(path)
	require.Error(t, err)

	_, err = Load("")
	require.Error(t, err)
}

func TestGoalsFile_Absolute(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GoalsPath = "/var/lib/goalcal/goals.yaml"
	require.Equal(t, cfg.GoalsPath, cfg.GoalsFile("/etc/goalcal/config.yaml"))
}
