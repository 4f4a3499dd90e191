package fsutil_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/fsutil/pkg/fsutil"
	"github.com/arthur-debert/fsutil/pkg/fsutil/testutil"
)

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := fsutil.ParseConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, fsutil.DefaultConfig(), cfg)
}

func TestParseConfig(t *testing.T) {
	cfg, err := fsutil.ParseConfig([]byte(`
temp_root: /var/tmp
temp_prefix: build-
max_attempts: 9
log_level: debug
`))
	require.NoError(t, err)
	assert.Equal(t, "/var/tmp", cfg.TempRoot)
	assert.Equal(t, "build-", cfg.TempPrefix)
	assert.Equal(t, 9, cfg.MaxAttempts)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestParseConfigRejects(t *testing.T) {
	testCases := map[string]string{
		"unknown key":      "tmp_root: /x\n",
		"negative retries": "max_attempts: -1\n",
		"bad level":        "log_level: loud\n",
		"prefix separator": "temp_prefix: a/b\n",
	}
	for name, doc := range testCases {
		t.Run(name, func(t *testing.T) {
			_, err := fsutil.ParseConfig([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fsutil.yaml")
	require.NoError(t, os.WriteFile(path, []byte("temp_prefix: cfg-\n"), 0o644))

	cfg, err := fsutil.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "cfg-", cfg.TempPrefix)

	_, err = fsutil.LoadConfig(filepath.Join(dir, "fsutil.json"))
	assert.Error(t, err)

	_, err = fsutil.LoadConfig(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestConfigTempDirFactory(t *testing.T) {
	cfg := fsutil.DefaultConfig()
	cfg.TempRoot = t.TempDir()

	factory, err := cfg.TempDirFactory(nil)
	require.NoError(t, err)

	dir, err := factory.Make(cfg.TempPrefix)
	require.NoError(t, err)
	testutil.AssertExists(t, dir.Path())
	assert.Contains(t, dir.Path().String(), "fsutil-")

	require.NoError(t, dir.Close())
	testutil.AssertNotExists(t, dir.Path())
}
