package loaders

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/lumen/engine/renderer/metadata"
)

const sampleMaterial = `
name = "fire"
variant = "blob"
auto_release = true
color = [1.0, 0.5, 0.0, 0.8]
size = 10.0
color_mode = "uniform"
size_space = "world"
map_name = "flame_ramp"
map_interpolation = "nearest"
aa = false
`

func writeMaterialFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fire.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestMaterialLoaderLoad(t *testing.T) {
	path := writeMaterialFile(t, sampleMaterial)

	ml := &MaterialLoader{}
	resource, err := ml.Load(path, metadata.ResourceTypeMaterial, nil)
	require.NoError(t, err)

	assert.Equal(t, metadata.ResourceTypeMaterial, resource.ResourceType)
	assert.Equal(t, "fire", resource.Name)
	assert.Equal(t, path, resource.FullPath)

	cfg, ok := resource.Data.(*metadata.MaterialConfig)
	require.True(t, ok)
	assert.Equal(t, "fire", cfg.Name)
	assert.Equal(t, "blob", cfg.Variant)
	assert.True(t, cfg.AutoRelease)
	assert.Equal(t, []float32{1.0, 0.5, 0.0, 0.8}, cfg.Color)
	assert.Equal(t, float32(10), cfg.Size)
	assert.Equal(t, "uniform", cfg.ColorMode)
	assert.Equal(t, "world", cfg.SizeSpace)
	assert.Equal(t, "flame_ramp", cfg.MapName)
	assert.Equal(t, "nearest", cfg.MapInterpolation)
	require.NotNil(t, cfg.AA)
	assert.False(t, *cfg.AA)

	require.NoError(t, ml.Unload(resource))
	assert.Nil(t, resource.Data)
}

func TestMaterialLoaderDefaultsNameFromFile(t *testing.T) {
	path := writeMaterialFile(t, `size = 2.0`)

	ml := &MaterialLoader{}
	resource, err := ml.Load(path, metadata.ResourceTypeMaterial, nil)
	require.NoError(t, err)

	cfg := resource.Data.(*metadata.MaterialConfig)
	assert.Equal(t, "fire", cfg.Name)
	assert.Nil(t, cfg.AA, "unset aa stays nil so the default applies later")
}

func TestMaterialLoaderRejectsBadTOML(t *testing.T) {
	path := writeMaterialFile(t, `color = "red`)

	ml := &MaterialLoader{}
	_, err := ml.Load(path, metadata.ResourceTypeMaterial, nil)
	assert.Error(t, err)
}

func TestMaterialLoaderMissingFile(t *testing.T) {
	ml := &MaterialLoader{}
	_, err := ml.Load(filepath.Join(t.TempDir(), "nope.toml"), metadata.ResourceTypeMaterial, nil)
	assert.Error(t, err)
}
