package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestInitConfig_CreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", FileName)

	cfg, err := InitConfig(path)
	require.NoError(t, err)

	assert.Equal(t, DefaultConfig(), cfg)
	assert.FileExists(t, path)

	reloaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, reloaded)
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
[server]
max_limit = 20
default_limit = 4

[dict]
words_file = "/srv/words.txt"
base_score = 500

[cli]
default_no_filter = true
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 20, cfg.Server.MaxLimit)
	assert.Equal(t, 4, cfg.Server.DefaultLimit)
	assert.Equal(t, 60, cfg.Server.MaxPrefix)
	assert.Equal(t, "/srv/words.txt", cfg.Dict.WordsFile)
	assert.Equal(t, 500, cfg.Dict.BaseScore)
	assert.True(t, cfg.CLI.DefaultNoFilter)
	assert.Equal(t, 5, cfg.CLI.DefaultLimit)
}

func TestLoadConfig_PartialRecovery(t *testing.T) {
	path := writeConfig(t, `
[server]
max_limit = "lots"
default_limit = 3

[dict]
base_score = 77
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 64, cfg.Server.MaxLimit)
	assert.Equal(t, 3, cfg.Server.DefaultLimit)
	assert.Equal(t, 77, cfg.Dict.BaseScore)
}

func TestLoadConfig_Garbage(t *testing.T) {
	path := writeConfig(t, "this is = = not toml [")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_Normalizes(t *testing.T) {
	path := writeConfig(t, `
[server]
max_limit = 0
default_limit = 500
min_prefix = 10
max_prefix = 2
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 64, cfg.Server.MaxLimit)
	assert.Equal(t, 10, cfg.Server.DefaultLimit)
	assert.Equal(t, 60, cfg.Server.MaxPrefix)
}

func TestLoadConfigWithPriority_Custom(t *testing.T) {
	path := writeConfig(t, "[server]\nmax_limit = 9\n")

	cfg, used, err := LoadConfigWithPriority(path)
	require.NoError(t, err)

	assert.Equal(t, path, used)
	assert.Equal(t, 9, cfg.Server.MaxLimit)
}

func TestClampLimit(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 10, cfg.ClampLimit(0))
	assert.Equal(t, 10, cfg.ClampLimit(-3))
	assert.Equal(t, 7, cfg.ClampLimit(7))
	assert.Equal(t, 64, cfg.ClampLimit(1000))
}

func TestRebuildConfigFile(t *testing.T) {
	path := writeConfig(t, "[server]\nmax_limit = 3\n")

	require.NoError(t, RebuildConfigFile(path))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestRebuildConfigFile_CreatesDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", FileName)

	require.NoError(t, RebuildConfigFile(path))
	assert.FileExists(t, path)
}

func TestGetActiveConfigPath(t *testing.T) {
	path := writeConfig(t, "")

	assert.Equal(t, path, GetActiveConfigPath(path))
	assert.True(t, filepath.IsAbs(GetActiveConfigPath(FileName)))
}

func TestLoadConfig_ClampsMaxLimitToRankRange(t *testing.T) {
	path := writeConfig(t, "[server]\nmax_limit = 70000\ndefault_limit = 20\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, math.MaxUint16, cfg.Server.MaxLimit)
	assert.Equal(t, 20, cfg.Server.DefaultLimit)
	assert.Equal(t, math.MaxUint16, cfg.ClampLimit(1<<20))
}
