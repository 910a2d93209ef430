package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{"FIELDCHECK_DATA_DIR", "FIELDCHECK_PORT", "FIELDCHECK_FONT_PATH", "FIELDCHECK_LOCALE", "FIELDCHECK_LOG_LEVEL"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadFromDirDefaultsWhenMissing(t *testing.T) {
	clearEnv(t)

	cfg, info, err := LoadFromDir(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.False(t, info.PortSpecified)
}

func TestLoadFromDirReadsTomlAndEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	toml := `
[server]
port = 18080
dev_mode = true

[report]
locale = "en"
timezone = "Asia/Shanghai"

[report.layout]
gallery_height = 150
image_gap = 0
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(toml), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("FIELDCHECK_LOG_LEVEL=debug\nFIELDCHECK_DATA_DIR=/srv/fieldcheck\n"), 0644))

	cfg, info, err := LoadFromDir(dir)
	require.NoError(t, err)
	assert.True(t, info.PortSpecified)
	assert.Equal(t, 18080, cfg.Server.Port)
	assert.True(t, cfg.Server.DevMode)
	assert.True(t, cfg.Server.OpenBrowser, "unset keys keep defaults")
	assert.Equal(t, "en", cfg.Report.Locale)
	assert.Equal(t, 150.0, cfg.Report.Layout.GalleryHeight)
	require.NotNil(t, cfg.Report.Layout.ImageGap)
	assert.Zero(t, *cfg.Report.Layout.ImageGap)
	assert.Nil(t, cfg.Report.Layout.SectionSpace)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/srv/fieldcheck", cfg.Data.DataDir)
	assert.Equal(t, "/srv/fieldcheck", ResolveDataDir(cfg))

	loc, err := cfg.Report.Location()
	require.NoError(t, err)
	assert.Equal(t, "Asia/Shanghai", loc.String())
}

func TestLoadFromDirEnvPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("FIELDCHECK_PORT", "9000")
	cfg, info, err := LoadFromDir(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.True(t, info.PortSpecified)

	t.Setenv("FIELDCHECK_PORT", "abc")
	_, _, err = LoadFromDir(t.TempDir())
	assert.Error(t, err)
}

func TestLoadFromDirRejectsBadToml(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[server\nport="), 0644))
	_, _, err := LoadFromDir(dir)
	assert.Error(t, err)
}

func TestEnsureDataDir(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Data.DataDir = filepath.Join(t.TempDir(), "data")

	dir, err := EnsureDataDir(cfg)
	require.NoError(t, err)
	assert.Equal(t, cfg.Data.DataDir, dir)
	st, err := os.Stat(filepath.Join(dir, "backups"))
	require.NoError(t, err)
	assert.True(t, st.IsDir())
	assert.Equal(t, filepath.Join(dir, "backups"), BackupDir(cfg))
	assert.Equal(t, filepath.Join(dir, "fieldcheck.db"), DBPath(cfg))
}

func TestReportLocationInvalid(t *testing.T) {
	_, err := ReportConfig{Timezone: "Mars/Olympus"}.Location()
	assert.Error(t, err)
}
