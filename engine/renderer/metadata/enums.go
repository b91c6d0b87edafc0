package metadata

// Enumerated configuration domains referenced by material properties.
// Values are strings so they round-trip through config files unchanged;
// membership is always checked at the property setter, never coerced.

/** @brief The way a colour is applied to an object. */
type ColorMode string

const (
	/** @brief Use the uniform colour unless vertex colours are present. */
	ColorModeAuto ColorMode = "auto"
	/** @brief Use the uniform colour for the whole object. */
	ColorModeUniform ColorMode = "uniform"
	/** @brief Use the colour attribute of each vertex. */
	ColorModeVertex ColorMode = "vertex"
	/** @brief Use the colour attribute of each face. */
	ColorModeFace ColorMode = "face"
)

/** @brief The way a size is applied to an object. */
type SizeMode string

const (
	/** @brief Use the uniform size for every point. */
	SizeModeUniform SizeMode = "uniform"
	/** @brief Use the size attribute of each vertex. */
	SizeModeVertex SizeMode = "vertex"
)

/** @brief The coordinate space a size is expressed in. */
type SizeSpace string

const (
	SizeSpaceScreen SizeSpace = "screen"
	SizeSpaceWorld  SizeSpace = "world"
	SizeSpaceModel  SizeSpace = "model"
)

/** @brief Supported texture sampling filter modes. */
type TextureFilter string

const (
	/** @brief Nearest-neighbor filtering. */
	TextureFilterModeNearest TextureFilter = "nearest"
	/** @brief Linear (i.e. bilinear) filtering. */
	TextureFilterModeLinear TextureFilter = "linear"
)

func ColorModes() []string {
	return []string{
		string(ColorModeAuto),
		string(ColorModeUniform),
		string(ColorModeVertex),
		string(ColorModeFace),
	}
}

func SizeModes() []string {
	return []string{string(SizeModeUniform), string(SizeModeVertex)}
}

func SizeSpaces() []string {
	return []string{
		string(SizeSpaceScreen),
		string(SizeSpaceWorld),
		string(SizeSpaceModel),
	}
}

func TextureFilters() []string {
	return []string{
		string(TextureFilterModeNearest),
		string(TextureFilterModeLinear),
	}
}

func memberOf(value string, allowed []string) bool {
	for _, a := range allowed {
		if value == a {
			return true
		}
	}
	return false
}

// ParseColorMode validates the raw value against the ColorMode domain.
// An empty value maps to the documented default, ColorModeAuto.
func ParseColorMode(value string) (ColorMode, bool) {
	if value == "" {
		return ColorModeAuto, true
	}
	return ColorMode(value), memberOf(value, ColorModes())
}

// ParseSizeMode validates the raw value against the SizeMode domain.
// An empty value maps to the documented default, SizeModeUniform.
func ParseSizeMode(value string) (SizeMode, bool) {
	if value == "" {
		return SizeModeUniform, true
	}
	return SizeMode(value), memberOf(value, SizeModes())
}

// ParseSizeSpace validates the raw value against the SizeSpace domain.
// An empty value maps to the documented default, SizeSpaceScreen.
func ParseSizeSpace(value string) (SizeSpace, bool) {
	if value == "" {
		return SizeSpaceScreen, true
	}
	return SizeSpace(value), memberOf(value, SizeSpaces())
}

// ParseTextureFilter validates the raw value against the TextureFilter
// domain. An empty value maps to the documented default,
// TextureFilterModeLinear.
func ParseTextureFilter(value string) (TextureFilter, bool) {
	if value == "" {
		return TextureFilterModeLinear, true
	}
	return TextureFilter(value), memberOf(value, TextureFilters())
}
