package materials

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/lumen/engine/core"
	"github.com/spaghettifunk/lumen/engine/math"
	"github.com/spaghettifunk/lumen/engine/renderer/metadata"
)

func TestNewPointsMaterialDefaults(t *testing.T) {
	m := NewPointsMaterial("points", metadata.MaterialVariantDefault)
	defer m.Destroy()

	assert.Equal(t, math.NewVec4One(), m.Color())
	assert.False(t, m.ColorIsTransparent())
	assert.Equal(t, DefaultPointSize, m.Size())
	assert.Equal(t, metadata.ColorModeAuto, m.ColorMode())
	assert.Equal(t, metadata.SizeModeUniform, m.SizeMode())
	assert.Equal(t, metadata.SizeSpaceScreen, m.SizeSpace())
	assert.Equal(t, metadata.TextureFilterModeLinear, m.MapInterpolation())
	assert.True(t, m.AA())
	assert.Nil(t, m.Map())
	assert.Nil(t, m.Sprite())
}

func TestSetColorDerivesTransparency(t *testing.T) {
	m := NewPointsMaterial("points", metadata.MaterialVariantDefault)
	defer m.Destroy()

	m.SetColor(math.NewVec4(1, 0, 0, 0.5))
	assert.True(t, m.ColorIsTransparent())
	assert.Equal(t, float32(0.5), m.Color().W)

	m.SetColor(math.NewVec4(1, 0, 0, 1))
	assert.False(t, m.ColorIsTransparent())
}

func TestColorAndSizeLiveInUniformBuffer(t *testing.T) {
	m := NewPointsMaterial("points", metadata.MaterialVariantDefault)
	defer m.Destroy()

	buffer := m.UniformBuffer()
	buffer.ClearPending()

	m.SetSize(12)
	offset, size, ok := buffer.PendingRange()
	require.True(t, ok)
	assert.Equal(t, uint32(16), offset)
	assert.Equal(t, uint32(4), size)

	m.SetColor(math.NewVec4(0, 1, 0, 1))
	offset, size, ok = buffer.PendingRange()
	require.True(t, ok)
	assert.Equal(t, uint32(0), offset)
	assert.Equal(t, uint32(20), size)

	// The accessors read from the same bytes the renderer uploads.
	assert.Equal(t, float32(12), buffer.ReadFloat32(metadata.UNIFORM_FIELD_SIZE))
	assert.Equal(t, float32(12), m.Size())
}

func TestColorModeRoundTripsEveryMember(t *testing.T) {
	m := NewPointsMaterial("points", metadata.MaterialVariantDefault)
	defer m.Destroy()

	for _, value := range metadata.ColorModes() {
		require.NoError(t, m.SetColorMode(value))
		assert.Equal(t, value, string(m.ColorMode()))
	}
}

func TestEnumSettersRejectInvalidValues(t *testing.T) {
	m := NewPointsMaterial("points", metadata.MaterialVariantDefault)
	defer m.Destroy()

	require.NoError(t, m.SetColorMode("vertex"))
	assert.Equal(t, metadata.ColorModeVertex, m.ColorMode())

	err := m.SetColorMode("plasma")
	var enumErr *core.InvalidEnumError
	require.ErrorAs(t, err, &enumErr)
	assert.Equal(t, PropertyColorMode, enumErr.Property)
	assert.Equal(t, "plasma", enumErr.Value)
	assert.Contains(t, enumErr.Allowed, "vertex")

	// The previous value survives the failed assignment.
	assert.Equal(t, metadata.ColorModeVertex, m.ColorMode())

	assert.Error(t, m.SetSizeMode("face"))
	assert.Error(t, m.SetSizeSpace("clip"))
	assert.Error(t, m.SetMapInterpolation("cubic"))

	// Empty values select the defaults rather than failing.
	require.NoError(t, m.SetColorMode(""))
	assert.Equal(t, metadata.ColorModeAuto, m.ColorMode())
}

func TestVertexColorsCompatibility(t *testing.T) {
	m := NewPointsMaterial("points", metadata.MaterialVariantDefault)
	defer m.Destroy()

	require.NoError(t, m.SetColorMode("vertex"))
	assert.True(t, m.VertexColors())

	require.NoError(t, m.SetColorMode("uniform"))
	assert.False(t, m.VertexColors())

	// The setter is gone for good; it never mutates anything.
	err := m.SetVertexColors(true)
	assert.ErrorIs(t, err, core.ErrDeprecated)
	assert.Equal(t, metadata.ColorModeUniform, m.ColorMode())
}

func TestGenerationBumpsOnChange(t *testing.T) {
	m := NewPointsMaterial("points", metadata.MaterialVariantDefault)
	defer m.Destroy()

	before := m.Generation
	m.SetSize(9)
	assert.Equal(t, before+1, m.Generation)

	// A failed assignment must not bump the generation.
	before = m.Generation
	assert.Error(t, m.SetColorMode("plasma"))
	assert.Equal(t, before, m.Generation)
}

func TestSetMapIdentityNoOp(t *testing.T) {
	m := NewPointsMaterial("points", metadata.MaterialVariantDefault)
	defer m.Destroy()

	texture := metadata.NewTexture("ramp")
	m.SetMap(texture)
	assert.Same(t, texture, m.Map())

	before := m.Generation
	m.SetMap(texture)
	assert.Equal(t, before, m.Generation, "re-assigning the same texture is a no-op")

	// A texture copy with the same identity is also a no-op.
	sameIdentity := *texture
	m.SetMap(&sameIdentity)
	assert.Equal(t, before, m.Generation)

	other := metadata.NewTexture("other")
	m.SetMap(other)
	assert.Equal(t, before+1, m.Generation)
}

func TestMapSamplerDerivesFiltersFromInterpolation(t *testing.T) {
	m := NewPointsMaterial("points", metadata.MaterialVariantDefault)
	defer m.Destroy()

	assert.Nil(t, m.MapSampler(), "no map, no sampler")

	texture := metadata.NewTexture("ramp")
	m.SetMap(texture)

	sampler := m.MapSampler()
	require.NotNil(t, sampler)
	assert.Same(t, texture, sampler.Texture)
	assert.Equal(t, metadata.TextureFilterModeLinear, sampler.FilterMinify)
	assert.Equal(t, metadata.TextureFilterModeLinear, sampler.FilterMagnify)

	require.NoError(t, m.SetMapInterpolation("nearest"))
	sampler = m.MapSampler()
	assert.Equal(t, metadata.TextureFilterModeNearest, sampler.FilterMinify)
	assert.Equal(t, metadata.TextureFilterModeNearest, sampler.FilterMagnify)
}

func TestSpriteRequiresSpriteVariant(t *testing.T) {
	plain := NewPointsMaterial("plain", metadata.MaterialVariantDefault)
	defer plain.Destroy()
	sprite := NewPointsMaterial("sprite", metadata.MaterialVariantSprite)
	defer sprite.Destroy()

	texture := metadata.NewTexture("star")

	assert.Error(t, plain.SetSprite(texture))
	assert.Nil(t, plain.Sprite())

	require.NoError(t, sprite.SetSprite(texture))
	assert.Same(t, texture, sprite.Sprite())
}

func TestSetPropertyRoutesToTypedSetters(t *testing.T) {
	m := NewPointsMaterial("points", metadata.MaterialVariantDefault)
	defer m.Destroy()

	require.NoError(t, m.SetProperty(PropertyColor, math.NewVec4(0, 0, 1, 1)))
	assert.Equal(t, float32(1), m.Color().Z)

	require.NoError(t, m.SetProperty(PropertySize, float32(6)))
	assert.Equal(t, float32(6), m.Size())

	require.NoError(t, m.SetProperty(PropertyColorMode, "face"))
	assert.Equal(t, metadata.ColorModeFace, m.ColorMode())

	require.NoError(t, m.SetProperty(PropertyAA, false))
	assert.False(t, m.AA())

	require.NoError(t, m.SetProperty(PropertyMap, metadata.NewTexture("ramp")))
	require.NoError(t, m.SetProperty(PropertyMap, nil))
	assert.Nil(t, m.Map())
}

func TestSetPropertyTypeMismatch(t *testing.T) {
	m := NewPointsMaterial("points", metadata.MaterialVariantDefault)
	defer m.Destroy()

	var typeErr *core.TypeMismatchError

	err := m.SetProperty(PropertySize, "big")
	require.ErrorAs(t, err, &typeErr)
	assert.Equal(t, "float32", typeErr.Expected)

	err = m.SetProperty(PropertyColor, 42)
	assert.ErrorAs(t, err, &typeErr)

	err = m.SetProperty(PropertyMap, "not a texture")
	require.ErrorAs(t, err, &typeErr)
	assert.Equal(t, PropertyMap, typeErr.Property)

	// Validation still applies through the untyped path.
	err = m.SetProperty(PropertyColorMode, "plasma")
	var enumErr *core.InvalidEnumError
	assert.ErrorAs(t, err, &enumErr)

	assert.ErrorIs(t, m.SetProperty("bogus", 1), core.ErrUnknown)
}

func TestNewPointsMaterialFromConfig(t *testing.T) {
	aa := false
	m, err := NewPointsMaterialFromConfig(&metadata.MaterialConfig{
		Name:      "fire",
		Variant:   "blob",
		Color:     []float32{1, 0.5, 0, 0.8},
		Size:      10,
		ColorMode: "uniform",
		SizeSpace: "world",
		AA:        &aa,
	})
	require.NoError(t, err)
	defer m.Destroy()

	assert.Equal(t, "fire", m.Name)
	assert.Equal(t, metadata.MaterialVariantBlob, m.Variant)
	assert.Equal(t, float32(10), m.Size())
	assert.True(t, m.ColorIsTransparent())
	assert.Equal(t, metadata.SizeSpaceWorld, m.SizeSpace())
	assert.False(t, m.AA())
}

func TestNewPointsMaterialFromConfigRejectsBadEnums(t *testing.T) {
	_, err := NewPointsMaterialFromConfig(&metadata.MaterialConfig{
		Name:    "bad",
		Variant: "mesh",
	})
	var enumErr *core.InvalidEnumError
	require.ErrorAs(t, err, &enumErr)
	assert.Equal(t, "variant", enumErr.Property)

	_, err = NewPointsMaterialFromConfig(&metadata.MaterialConfig{
		Name:      "bad",
		ColorMode: "plasma",
	})
	assert.True(t, errors.As(err, &enumErr))
}

func TestDecodePick(t *testing.T) {
	m := NewPointsMaterial("points", metadata.MaterialVariantDefault)
	defer m.Destroy()

	value := metadata.PackPickValue(m.ID, 17, math.NewVec2(3, -4))
	info := m.DecodePick(value)

	assert.Equal(t, m.ID, info.ObjectID)
	assert.Equal(t, uint32(17), info.VertexIndex)
	assert.Equal(t, float32(3), info.PointCoord.X)
	assert.Equal(t, float32(-4), info.PointCoord.Y)
}
