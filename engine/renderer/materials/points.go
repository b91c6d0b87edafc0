package materials

import (
	"fmt"

	"github.com/spaghettifunk/lumen/engine/core"
	"github.com/spaghettifunk/lumen/engine/math"
	"github.com/spaghettifunk/lumen/engine/renderer/metadata"
)

/** @brief The default point size (diameter) in logical pixels. */
const DefaultPointSize float32 = 4.0

/**
 * @brief A points material: renders disks of the configured size and
 * colour. The blob and sprite variants reuse the exact same property
 * set and uniform layout; the sprite variant adds one extra validated
 * texture reference.
 */
type PointsMaterial struct {
	/** @brief The material id, assigned from the identifier system. */
	ID uint32
	/** @brief The material name. */
	Name string
	/** @brief Incremented every time a property of the material changes. */
	Generation uint32
	/** @brief The rendering variant. */
	Variant metadata.MaterialVariant

	store    propertyStore
	uniforms *metadata.UniformBuffer
}

// NewPointsMaterial creates a material of the given variant with the
// documented defaults: size 4, screen-space uniform sizing, opaque
// white colour in auto mode, linear map interpolation, aa on.
func NewPointsMaterial(name string, variant metadata.MaterialVariant) *PointsMaterial {
	m := &PointsMaterial{
		Name:     name,
		Variant:  variant,
		store:    newPropertyStore(),
		uniforms: metadata.NewUniformBuffer(metadata.NewPointsUniformLayout()),
	}
	m.ID = core.IdentifierAcquireNewID(m)
	m.SetColor(math.NewVec4One())
	m.SetSize(DefaultPointSize)
	return m
}

// NewPointsMaterialFromConfig creates a material from a parsed
// configuration, validating every enum-valued entry. The first invalid
// entry aborts creation.
func NewPointsMaterialFromConfig(config *metadata.MaterialConfig) (*PointsMaterial, error) {
	variant, ok := metadata.ParseMaterialVariant(config.Variant)
	if !ok {
		return nil, &core.InvalidEnumError{
			Property: "variant",
			Value:    config.Variant,
			Allowed:  metadata.MaterialVariants(),
		}
	}

	m := NewPointsMaterial(config.Name, variant)
	if err := m.SetColorMode(config.ColorMode); err != nil {
		m.Destroy()
		return nil, err
	}
	if err := m.SetSizeMode(config.SizeMode); err != nil {
		m.Destroy()
		return nil, err
	}
	if err := m.SetSizeSpace(config.SizeSpace); err != nil {
		m.Destroy()
		return nil, err
	}
	if err := m.SetMapInterpolation(config.MapInterpolation); err != nil {
		m.Destroy()
		return nil, err
	}
	m.SetColor(config.ColorVec4())
	if config.Size > 0 {
		m.SetSize(config.Size)
	}
	if config.AA != nil {
		m.SetAA(*config.AA)
	}
	return m, nil
}

// Destroy releases the material's id. The material must not be used
// afterwards.
func (m *PointsMaterial) Destroy() {
	if m.ID != metadata.InvalidID {
		if err := core.IdentifierReleaseID(m.ID); err != nil {
			core.LogWarn("material %q: %v", m.Name, err)
		}
		m.ID = metadata.InvalidID
	}
}

// UniformBuffer exposes the packed uniform block for the renderer to
// upload. The renderer clears the pending range after copying.
func (m *PointsMaterial) UniformBuffer() *metadata.UniformBuffer {
	return m.uniforms
}

func (m *PointsMaterial) changed(property string) {
	m.Generation++
	core.EventFire(core.EVENT_CODE_MATERIAL_PROPERTY_CHANGED, m, core.EventContext{
		Name:     property,
		ObjectID: m.ID,
	})
}

// Color returns the uniform colour of the points, read back from the
// packed uniform buffer.
func (m *PointsMaterial) Color() math.Vec4 {
	return m.uniforms.ReadVec4(metadata.UNIFORM_FIELD_COLOR)
}

// SetColor stores the colour into the uniform buffer, marks the range
// pending-flush and re-derives the transparency flag. The flag and the
// colour are never observable out of sync.
func (m *PointsMaterial) SetColor(color math.Vec4) {
	// Errors are impossible here; the field is part of the fixed layout.
	_ = m.uniforms.WriteVec4(metadata.UNIFORM_FIELD_COLOR, color)
	m.store.colorIsTransparent = color.W < 1.0
	m.changed(PropertyColor)
}

// ColorIsTransparent reports whether the colour is semi-transparent
// (i.e. not fully opaque).
func (m *PointsMaterial) ColorIsTransparent() bool {
	return m.store.colorIsTransparent
}

// Size returns the size (diameter) of the points in logical pixels,
// read back from the packed uniform buffer.
func (m *PointsMaterial) Size() float32 {
	return m.uniforms.ReadFloat32(metadata.UNIFORM_FIELD_SIZE)
}

// SetSize stores the point size into the uniform buffer and marks the
// range pending-flush.
func (m *PointsMaterial) SetSize(size float32) {
	_ = m.uniforms.WriteFloat32(metadata.UNIFORM_FIELD_SIZE, size)
	m.changed(PropertySize)
}

// ColorMode returns the way colour is applied to the points.
func (m *PointsMaterial) ColorMode() metadata.ColorMode {
	return m.store.colorMode
}

// SetColorMode validates and stores the colour mode. An empty value
// selects the default ("auto"); values outside the declared set leave
// the previous value intact.
func (m *PointsMaterial) SetColorMode(value string) error {
	if err := m.store.setColorMode(value); err != nil {
		return err
	}
	m.changed(PropertyColorMode)
	return nil
}

// VertexColors reports whether the colour mode is "vertex".
func (m *PointsMaterial) VertexColors() bool {
	return m.store.colorMode == metadata.ColorModeVertex
}

// SetVertexColors is kept for backwards compatibility only; it always
// fails and performs no action.
func (m *PointsMaterial) SetVertexColors(value bool) error {
	return core.NewDeprecatedError("vertex_colors", `SetColorMode("vertex")`)
}

// SizeMode returns the way size is applied to the points.
func (m *PointsMaterial) SizeMode() metadata.SizeMode {
	return m.store.sizeMode
}

// SetSizeMode validates and stores the size mode. An empty value
// selects the default ("uniform").
func (m *PointsMaterial) SetSizeMode(value string) error {
	if err := m.store.setSizeMode(value); err != nil {
		return err
	}
	m.changed(PropertySizeMode)
	return nil
}

// SizeSpace returns the coordinate space the point size is expressed in.
func (m *PointsMaterial) SizeSpace() metadata.SizeSpace {
	return m.store.sizeSpace
}

// SetSizeSpace validates and stores the size space. An empty value
// selects the default ("screen").
func (m *PointsMaterial) SetSizeSpace(value string) error {
	if err := m.store.setSizeSpace(value); err != nil {
		return err
	}
	m.changed(PropertySizeSpace)
	return nil
}

// MapInterpolation returns the method used to interpolate the colour map.
func (m *PointsMaterial) MapInterpolation() metadata.TextureFilter {
	return m.store.mapInterpolation
}

// SetMapInterpolation validates and stores the colour map filter. An
// empty value selects the default ("linear").
func (m *PointsMaterial) SetMapInterpolation(value string) error {
	if err := m.store.setMapInterpolation(value); err != nil {
		return err
	}
	m.changed(PropertyMapInterpolation)
	return nil
}

// AA reports whether point edges are anti-aliased in the shader.
func (m *PointsMaterial) AA() bool {
	return m.store.aa
}

// SetAA toggles point edge anti-aliasing.
func (m *PointsMaterial) SetAA(aa bool) {
	m.store.aa = aa
	m.changed(PropertyAA)
}

// Map returns the texture specifying the colour for each texture
// coordinate, or nil when unset.
func (m *PointsMaterial) Map() *metadata.Texture {
	return m.store.colorMap
}

// SetMap assigns the colour map texture. nil clears it. Re-assigning
// the same texture (by identity) is a no-op.
func (m *PointsMaterial) SetMap(texture *metadata.Texture) {
	if texture.Same(m.store.colorMap) {
		return
	}
	m.store.colorMap = texture
	m.changed(PropertyMap)
}

// MapSampler pairs the colour map texture with the sampling filters
// derived from map_interpolation. This is the form the renderer binds;
// nil when no map is assigned.
func (m *PointsMaterial) MapSampler() *metadata.TextureMap {
	if m.store.colorMap == nil {
		return nil
	}
	return &metadata.TextureMap{
		Texture:       m.store.colorMap,
		FilterMinify:  m.store.mapInterpolation,
		FilterMagnify: m.store.mapInterpolation,
	}
}

// Sprite returns the sprite texture, or nil. Only the sprite variant
// carries one.
func (m *PointsMaterial) Sprite() *metadata.Texture {
	return m.store.sprite
}

// SetSprite assigns the sprite texture. Only valid on the sprite
// variant; other variants reject the assignment.
func (m *PointsMaterial) SetSprite(texture *metadata.Texture) error {
	if m.Variant != metadata.MaterialVariantSprite {
		return fmt.Errorf("material %q: sprite requires the %q variant, is %q",
			m.Name, metadata.MaterialVariantSprite, m.Variant)
	}
	if texture.Same(m.store.sprite) {
		return nil
	}
	m.store.sprite = texture
	m.changed(PropertySprite)
	return nil
}

// SetProperty assigns a property by name from an untyped value. This
// is the path config and hot-reload code uses; it routes to the typed
// setters, so validation is identical. Texture-valued properties
// accept *metadata.Texture or nil; anything else is a type mismatch.
func (m *PointsMaterial) SetProperty(name string, value interface{}) error {
	switch name {
	case PropertyColor:
		v, ok := value.(math.Vec4)
		if !ok {
			return &core.TypeMismatchError{Property: name, Expected: "math.Vec4", Got: fmt.Sprintf("%T", value)}
		}
		m.SetColor(v)
		return nil
	case PropertySize:
		v, ok := value.(float32)
		if !ok {
			return &core.TypeMismatchError{Property: name, Expected: "float32", Got: fmt.Sprintf("%T", value)}
		}
		m.SetSize(v)
		return nil
	case PropertyColorMode:
		v, ok := value.(string)
		if !ok {
			return &core.TypeMismatchError{Property: name, Expected: "string", Got: fmt.Sprintf("%T", value)}
		}
		return m.SetColorMode(v)
	case PropertySizeMode:
		v, ok := value.(string)
		if !ok {
			return &core.TypeMismatchError{Property: name, Expected: "string", Got: fmt.Sprintf("%T", value)}
		}
		return m.SetSizeMode(v)
	case PropertySizeSpace:
		v, ok := value.(string)
		if !ok {
			return &core.TypeMismatchError{Property: name, Expected: "string", Got: fmt.Sprintf("%T", value)}
		}
		return m.SetSizeSpace(v)
	case PropertyMapInterpolation:
		v, ok := value.(string)
		if !ok {
			return &core.TypeMismatchError{Property: name, Expected: "string", Got: fmt.Sprintf("%T", value)}
		}
		return m.SetMapInterpolation(v)
	case PropertyAA:
		v, ok := value.(bool)
		if !ok {
			return &core.TypeMismatchError{Property: name, Expected: "bool", Got: fmt.Sprintf("%T", value)}
		}
		m.SetAA(v)
		return nil
	case PropertyMap:
		t, err := textureValue(name, value)
		if err != nil {
			return err
		}
		m.SetMap(t)
		return nil
	case PropertySprite:
		t, err := textureValue(name, value)
		if err != nil {
			return err
		}
		return m.SetSprite(t)
	default:
		return fmt.Errorf("material %q: %w property %q", m.Name, core.ErrUnknown, name)
	}
}

func textureValue(property string, value interface{}) (*metadata.Texture, error) {
	if value == nil {
		return nil, nil
	}
	t, ok := value.(*metadata.Texture)
	if !ok {
		return nil, &core.TypeMismatchError{
			Property: property,
			Expected: "*metadata.Texture or nil",
			Got:      fmt.Sprintf("%T", value),
		}
	}
	return t, nil
}

// DecodePick maps an encoded pick value produced while rendering with
// this material back into its semantic fields.
func (m *PointsMaterial) DecodePick(value uint64) metadata.PickInfo {
	return metadata.UnpackPickValue(value)
}
