package metadata

import "github.com/google/uuid"

const (
	/** @brief The default texture name. */
	DEFAULT_TEXTURE_NAME string = "default"
	/** @brief The side length of the generated default texture. */
	DEFAULT_TEXTURE_DIMENSION uint32 = 16
)

/** @brief An invalid id, used to mark unassigned slots. */
const InvalidID uint32 = 4294967295

type TextureReference struct {
	ReferenceCount uint64
	Handle         uint32
	AutoRelease    bool
}

type TextureFlag int

const (
	/** @brief Indicates if the texture has transparency. */
	TextureFlagHasTransparency TextureFlag = 0x1
)

/** @brief Holds bit flags for textures. */
type TextureFlagBits uint8

/**
 * @brief Represents a texture. Textures are shared-ownership
 * resources: many materials may reference the same texture, and the
 * owning system tracks reference counts. The UUID gives each texture
 * a stable identity, so re-assigning the same handle to a material
 * property is a no-op.
 */
type Texture struct {
	/** @brief The unique texture identifier. */
	ID uuid.UUID
	/** @brief The slot handle assigned by the owning texture system. */
	Handle uint32
	/** @brief The texture Width. */
	Width uint32
	/** @brief The texture Height. */
	Height uint32
	/** @brief The number of channels in the texture. */
	ChannelCount uint8
	/** @brief Holds various Flags for this texture. */
	Flags TextureFlagBits
	/** @brief The texture Generation. Incremented every time the data is reloaded. */
	Generation uint32
	/** @brief The texture Name. */
	Name string
	/** @brief The raw texture data (pixels), tightly packed RGBA. */
	Pixels []uint8
}

// NewTexture creates a named texture with a fresh identity and no pixel data.
func NewTexture(name string) *Texture {
	return &Texture{
		ID:     uuid.New(),
		Handle: InvalidID,
		Name:   name,
	}
}

// HasTransparency reports whether the transparency flag is set.
func (t *Texture) HasTransparency() bool {
	return t.Flags&TextureFlagBits(TextureFlagHasTransparency) != 0
}

// Same reports whether other is the same texture resource. Identity is
// by UUID, not by pointer, so reloaded copies still compare equal.
func (t *Texture) Same(other *Texture) bool {
	if t == nil || other == nil {
		return t == other
	}
	return t.ID == other.ID
}

/**
 * @brief A structure which maps a texture to its sampling parameters.
 */
type TextureMap struct {
	/** @brief A pointer to a Texture. */
	Texture *Texture
	/** @brief Texture filtering mode for minification. */
	FilterMinify TextureFilter
	/** @brief Texture filtering mode for magnification. */
	FilterMagnify TextureFilter
}

// NewDefaultTexture generates the familiar magenta/white checkerboard
// placeholder used when no texture has been assigned.
func NewDefaultTexture() *Texture {
	t := NewTexture(DEFAULT_TEXTURE_NAME)
	dim := DEFAULT_TEXTURE_DIMENSION
	t.Width = dim
	t.Height = dim
	t.ChannelCount = 4
	t.Generation = 0
	t.Pixels = make([]uint8, dim*dim*4)

	for row := uint32(0); row < dim; row++ {
		for col := uint32(0); col < dim; col++ {
			i := (row*dim + col) * 4
			if (row/4+col/4)%2 == 0 {
				t.Pixels[i+0] = 255
				t.Pixels[i+1] = 0
				t.Pixels[i+2] = 255
			} else {
				t.Pixels[i+0] = 255
				t.Pixels[i+1] = 255
				t.Pixels[i+2] = 255
			}
			t.Pixels[i+3] = 255
		}
	}
	return t
}
