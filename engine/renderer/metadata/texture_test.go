package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextureSameComparesByIdentity(t *testing.T) {
	a := NewTexture("wood")
	b := NewTexture("wood")

	assert.True(t, a.Same(a))
	assert.False(t, a.Same(b), "distinct textures with equal names are not the same resource")

	// A reloaded copy keeps its identity.
	copyOfA := *a
	copyOfA.Generation++
	assert.True(t, a.Same(&copyOfA))

	var nilTexture *Texture
	assert.False(t, a.Same(nil))
	assert.True(t, nilTexture.Same(nil))
}

func TestTextureHasTransparency(t *testing.T) {
	tx := NewTexture("glass")
	assert.False(t, tx.HasTransparency())

	tx.Flags |= TextureFlagBits(TextureFlagHasTransparency)
	assert.True(t, tx.HasTransparency())
}

func TestNewDefaultTexture(t *testing.T) {
	tx := NewDefaultTexture()

	assert.Equal(t, DEFAULT_TEXTURE_NAME, tx.Name)
	assert.Equal(t, DEFAULT_TEXTURE_DIMENSION, tx.Width)
	assert.Equal(t, DEFAULT_TEXTURE_DIMENSION, tx.Height)
	assert.Len(t, tx.Pixels, int(DEFAULT_TEXTURE_DIMENSION*DEFAULT_TEXTURE_DIMENSION*4))

	// Fully opaque everywhere.
	for i := 3; i < len(tx.Pixels); i += 4 {
		assert.Equal(t, uint8(255), tx.Pixels[i])
	}
	assert.False(t, tx.HasTransparency())
}

func TestMaterialConfigColorVec4(t *testing.T) {
	cfg := &MaterialConfig{}
	assert.Equal(t, float32(1), cfg.ColorVec4().W)

	cfg.Color = []float32{0.1, 0.2, 0.3, 0.4}
	c := cfg.ColorVec4()
	assert.Equal(t, float32(0.1), c.X)
	assert.Equal(t, float32(0.4), c.W)

	// Malformed entries fall back to opaque white.
	cfg.Color = []float32{1, 2}
	assert.Equal(t, float32(1), cfg.ColorVec4().X)
}
