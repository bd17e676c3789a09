package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, 1, cfg.Profile.LineWidth)
	assert.Equal(t, 20, cfg.Mesh.CylinderFaces)
}

func TestLoadConfigPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yamlText := `
profile:
  lineWidth: 5
  clipOverlay: true
mesh:
  color: [1, 0, 0, 0.5]
`
	require.NoError(t, os.WriteFile(path, []byte(yamlText), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Profile.LineWidth)
	assert.True(t, cfg.Profile.ClipOverlay)
	assert.Equal(t, "red", cfg.Profile.OverlayColor)
	assert.Equal(t, [4]float32{1, 0, 0, 0.5}, cfg.Mesh.Color)
	assert.Equal(t, 20, cfg.Mesh.CylinderFaces)
}

func TestLoadConfigInvalid(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("profile: [unclosed"), 0644))
	_, err := LoadConfig(bad)
	assert.Error(t, err)

	wide := filepath.Join(dir, "wide.yaml")
	require.NoError(t, os.WriteFile(wide, []byte("profile:\n  lineWidth: 5000\n"), 0644))
	_, err = LoadConfig(wide)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	faces := filepath.Join(dir, "faces.yaml")
	require.NoError(t, os.WriteFile(faces, []byte("mesh:\n  cylinderFaces: 0\n"), 0644))
	_, err = LoadConfig(faces)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestCreateDefaultConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	require.NoError(t, CreateDefaultConfigFile(path))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}
