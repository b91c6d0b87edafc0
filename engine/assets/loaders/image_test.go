package loaders

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/lumen/engine/renderer/metadata"
)

// writeTestPNG writes a 2x2 image with a red top-left pixel and a
// semi-transparent blue bottom-right pixel.
func writeTestPNG(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})
	img.SetRGBA(1, 0, color.RGBA{G: 255, A: 255})
	img.SetRGBA(0, 1, color.RGBA{B: 255, A: 255})
	img.SetRGBA(1, 1, color.RGBA{B: 255, A: 128})

	path := filepath.Join(t.TempDir(), "test.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func TestImageLoaderLoad(t *testing.T) {
	path := writeTestPNG(t)

	il := &ImageLoader{}
	resource, err := il.Load(path, metadata.ResourceTypeImage, nil)
	require.NoError(t, err)

	assert.Equal(t, metadata.ResourceTypeImage, resource.ResourceType)
	data, ok := resource.Data.(*metadata.ImageResourceData)
	require.True(t, ok)

	assert.Equal(t, uint32(2), data.Width)
	assert.Equal(t, uint32(2), data.Height)
	assert.Equal(t, uint8(4), data.ChannelCount)
	require.Len(t, data.Pixels, 16)

	// Top-left pixel is red.
	assert.Equal(t, uint8(255), data.Pixels[0])
	assert.Equal(t, uint8(255), data.Pixels[3])

	require.NoError(t, il.Unload(resource))
	assert.Nil(t, resource.Data)
}

func TestImageLoaderFlipY(t *testing.T) {
	path := writeTestPNG(t)

	il := &ImageLoader{}
	resource, err := il.Load(path, metadata.ResourceTypeImage, &metadata.ImageResourceParams{FlipY: true})
	require.NoError(t, err)

	data := resource.Data.(*metadata.ImageResourceData)

	// With the rows flipped, the blue bottom-left pixel moves to the top.
	assert.Equal(t, uint8(255), data.Pixels[2], "expected blue channel at flipped origin")
}

func TestImageLoaderMissingFile(t *testing.T) {
	il := &ImageLoader{}
	_, err := il.Load(filepath.Join(t.TempDir(), "nope.png"), metadata.ResourceTypeImage, nil)
	assert.Error(t, err)
}

func TestImageLoaderRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.png")
	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0o644))

	il := &ImageLoader{}
	_, err := il.Load(path, metadata.ResourceTypeImage, nil)
	assert.Error(t, err)
}
