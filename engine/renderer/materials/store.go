package materials

import (
	"github.com/spaghettifunk/lumen/engine/core"
	"github.com/spaghettifunk/lumen/engine/renderer/metadata"
)

// Property names used in change notifications and the by-name setter.
const (
	PropertyColor            string = "color"
	PropertySize             string = "size"
	PropertyColorMode        string = "color_mode"
	PropertySizeMode         string = "size_mode"
	PropertySizeSpace        string = "size_space"
	PropertyMapInterpolation string = "map_interpolation"
	PropertyAA               string = "aa"
	PropertyMap              string = "map"
	PropertySprite           string = "sprite"
)

/**
 * @brief The validated backing store for a material's render-relevant
 * configuration. Numeric properties (colour, size) are not held here;
 * they live in the packed uniform buffer so the accessor and the
 * staged bytes can never diverge. Every setter validates before it
 * stores: on failure the previous value is kept untouched.
 */
type propertyStore struct {
	colorMode        metadata.ColorMode
	sizeMode         metadata.SizeMode
	sizeSpace        metadata.SizeSpace
	mapInterpolation metadata.TextureFilter
	aa               bool

	// Derived from the colour's alpha channel; updated together with
	// the colour, never separately.
	colorIsTransparent bool

	colorMap *metadata.Texture
	sprite   *metadata.Texture
}

func newPropertyStore() propertyStore {
	return propertyStore{
		colorMode:        metadata.ColorModeAuto,
		sizeMode:         metadata.SizeModeUniform,
		sizeSpace:        metadata.SizeSpaceScreen,
		mapInterpolation: metadata.TextureFilterModeLinear,
		aa:               true,
	}
}

func (ps *propertyStore) setColorMode(value string) error {
	mode, ok := metadata.ParseColorMode(value)
	if !ok {
		return &core.InvalidEnumError{
			Property: PropertyColorMode,
			Value:    value,
			Allowed:  metadata.ColorModes(),
		}
	}
	ps.colorMode = mode
	return nil
}

func (ps *propertyStore) setSizeMode(value string) error {
	mode, ok := metadata.ParseSizeMode(value)
	if !ok {
		return &core.InvalidEnumError{
			Property: PropertySizeMode,
			Value:    value,
			Allowed:  metadata.SizeModes(),
		}
	}
	ps.sizeMode = mode
	return nil
}

func (ps *propertyStore) setSizeSpace(value string) error {
	space, ok := metadata.ParseSizeSpace(value)
	if !ok {
		return &core.InvalidEnumError{
			Property: PropertySizeSpace,
			Value:    value,
			Allowed:  metadata.SizeSpaces(),
		}
	}
	ps.sizeSpace = space
	return nil
}

func (ps *propertyStore) setMapInterpolation(value string) error {
	filter, ok := metadata.ParseTextureFilter(value)
	if !ok {
		return &core.InvalidEnumError{
			Property: PropertyMapInterpolation,
			Value:    value,
			Allowed:  metadata.TextureFilters(),
		}
	}
	ps.mapInterpolation = filter
	return nil
}
