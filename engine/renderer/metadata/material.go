package metadata

import "github.com/spaghettifunk/lumen/engine/math"

/** @brief The name of the default material. */
const DefaultMaterialName string = "default"

/**
 * @brief Selects the rendering variant of a points material. Variants
 * extend the base property set; they never change validation rules or
 * the uniform layout.
 */
type MaterialVariant string

const (
	/** @brief Plain disks of the configured size and colour. */
	MaterialVariantDefault MaterialVariant = "default"
	/** @brief Gaussian blobs with a sigma of 1/6th of the point size. */
	MaterialVariantBlob MaterialVariant = "blob"
	/** @brief A sprite texture drawn at each point position. */
	MaterialVariantSprite MaterialVariant = "sprite"
)

func MaterialVariants() []string {
	return []string{
		string(MaterialVariantDefault),
		string(MaterialVariantBlob),
		string(MaterialVariantSprite),
	}
}

// ParseMaterialVariant validates the raw value against the variant
// domain. An empty value maps to MaterialVariantDefault.
func ParseMaterialVariant(value string) (MaterialVariant, bool) {
	if value == "" {
		return MaterialVariantDefault, true
	}
	return MaterialVariant(value), memberOf(value, MaterialVariants())
}

type MaterialReference struct {
	ReferenceCount uint64
	Handle         uint32
	AutoRelease    bool
}

/**
 * @brief Material configuration typically loaded from a file or
 * created in code to load a material from. Zero values select the
 * documented defaults.
 */
type MaterialConfig struct {
	/** @brief The name of the material. */
	Name string `toml:"name"`
	/** @brief The rendering variant ("default", "blob" or "sprite"). */
	Variant string `toml:"variant"`
	/** @brief Indicates if the material should be automatically released when no references to it remain. */
	AutoRelease bool `toml:"auto_release"`
	/** @brief The uniform colour, as RGBA components in [0, 1]. */
	Color []float32 `toml:"color"`
	/** @brief The point size (diameter) in logical pixels. */
	Size float32 `toml:"size"`
	/** @brief The mode by which points are coloured. */
	ColorMode string `toml:"color_mode"`
	/** @brief The mode by which points are sized. */
	SizeMode string `toml:"size_mode"`
	/** @brief The coordinate space the size is expressed in. */
	SizeSpace string `toml:"size_space"`
	/** @brief The colour map texture name. */
	MapName string `toml:"map_name"`
	/** @brief The method used to interpolate the colour map. */
	MapInterpolation string `toml:"map_interpolation"`
	/** @brief The sprite texture name (sprite variant only). */
	SpriteName string `toml:"sprite_name"`
	/** @brief Whether point edges are anti-aliased in the shader. */
	AA *bool `toml:"aa"`
}

// ColorVec4 returns the configured colour, or opaque white when absent.
func (mc *MaterialConfig) ColorVec4() math.Vec4 {
	if len(mc.Color) != 4 {
		return math.NewVec4One()
	}
	return math.NewVec4(mc.Color[0], mc.Color[1], mc.Color[2], mc.Color[3])
}
