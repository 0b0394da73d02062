package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "viewer.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.NoError(t, Default().Validate())
}

func TestFileOverlaysDefaults(t *testing.T) {
	path := write(t, `
[window]
width = 800
title = "pbr"

[camera]
eye = [1.0, 2.0, 3.0]

[paths]
scene = "scenes/lantern.yaml"

[logging]
level = "debug"
development = true
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 720, cfg.Window.Height)
	assert.Equal(t, "pbr", cfg.Window.Title)
	assert.Equal(t, [3]float32{1, 2, 3}, cfg.Camera.Eye)
	assert.Equal(t, float32(45), cfg.Camera.FOV)
	assert.Equal(t, "scenes/lantern.yaml", cfg.Paths.Scene)
	assert.Equal(t, "data/shaders", cfg.Paths.Shaders)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)
}

func TestBadFiles(t *testing.T) {
	_, err := Load(write(t, "[window\nwidth = 1"))
	assert.ErrorContains(t, err, "parse config")

	_, err = Load(write(t, "[camera]\nnear = 10.0\nfar = 1.0\n"))
	assert.ErrorContains(t, err, "clip range")

	_, err = Load(write(t, "[window]\nwidth = 0\n"))
	assert.ErrorContains(t, err, "window size")
}
