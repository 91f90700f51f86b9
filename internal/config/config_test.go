package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldline/retaildq/internal/config"
)

// chdir switches to dir for the duration of the test, restoring the
// previous working directory on cleanup (t.Chdir needs Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Errorf("restoring working directory: %v", err)
		}
	})
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, "retaildq.db", cfg.DBPath)
	assert.True(t, cfg.RetierOnIngest)
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conf.yaml")
	require.NoError(t, os.WriteFile(path, []byte("db_path: /tmp/other.db\nretier_on_ingest: false\n"), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/other.db", cfg.DBPath)
	assert.False(t, cfg.RetierOnIngest)
}

func TestLoad_ImplicitFilePickedUp(t *testing.T) {
	chdir(t, t.TempDir())
	require.NoError(t, os.WriteFile("retaildq.yaml", []byte("db_path: local.db\n"), 0o644))

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, "local.db", cfg.DBPath)
	assert.True(t, cfg.RetierOnIngest, "unset keys keep defaults")
}

func TestLoad_ExplicitMissingFileErrors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv(config.EnvDBPath, "/tmp/env.db")
	t.Setenv(config.EnvRetier, "false")

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/env.db", cfg.DBPath)
	assert.False(t, cfg.RetierOnIngest)
}

func TestLoad_EnvBeatsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conf.yaml")
	require.NoError(t, os.WriteFile(path, []byte("db_path: file.db\n"), 0o644))
	t.Setenv(config.EnvDBPath, "env.db")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env.db", cfg.DBPath)
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.yaml")
	require.NoError(t, os.WriteFile(path, []byte("db_path: [unclosed\n"), 0o644))

	_, err := config.Load(path)
	assert.Error(t, err)
}
