package metadata

import (
	"encoding/binary"
	gomath "math"

	"github.com/spaghettifunk/lumen/engine/core"
	"github.com/spaghettifunk/lumen/engine/math"
)

// Uniform field names shared between materials and shaders.
const (
	UNIFORM_FIELD_COLOR string = "color"
	UNIFORM_FIELD_SIZE  string = "size"
)

/** @brief The alignment required for GPU-visible uniform blocks. */
const uniformBlockAlign uint32 = 16

/**
 * @brief Describes a single named field inside a packed uniform block:
 * a fixed byte offset and a fixed byte width.
 */
type UniformField struct {
	Name   string
	Offset uint32
	Size   uint32
}

/** @brief The ordered fields of a packed uniform block. */
type UniformLayout []UniformField

// NewPointsUniformLayout returns the block layout shared by all points
// material variants: a 4-component float colour at offset 0, followed
// by a scalar float size. The offsets are a fixed contract with the
// shader and must not change between uploads.
func NewPointsUniformLayout() UniformLayout {
	return UniformLayout{
		{Name: UNIFORM_FIELD_COLOR, Offset: 0, Size: 16},
		{Name: UNIFORM_FIELD_SIZE, Offset: 16, Size: 4},
	}
}

// Field looks up a field by name.
func (ul UniformLayout) Field(name string) (UniformField, bool) {
	for _, f := range ul {
		if f.Name == name {
			return f, true
		}
	}
	return UniformField{}, false
}

// TotalSize returns the byte size of the block, padded to the uniform
// block alignment.
func (ul UniformLayout) TotalSize() uint32 {
	var end uint32
	for _, f := range ul {
		end = math.Max(end, f.Offset+f.Size)
	}
	if rem := end % uniformBlockAlign; rem != 0 {
		end += uniformBlockAlign - rem
	}
	return end
}

/**
 * @brief A fixed-layout byte region mirroring a subset of material
 * properties for GPU consumption. Writes record the covering byte
 * range as pending-flush; the renderer copies Bytes() to the
 * GPU-visible resource and then clears the pending marker. This
 * structure never performs the upload itself.
 */
type UniformBuffer struct {
	layout UniformLayout
	data   []byte

	pendingLo  uint32
	pendingHi  uint32
	hasPending bool
}

func NewUniformBuffer(layout UniformLayout) *UniformBuffer {
	return &UniformBuffer{
		layout: layout,
		data:   make([]byte, layout.TotalSize()),
	}
}

// Layout returns the block layout this buffer was created with.
func (ub *UniformBuffer) Layout() UniformLayout {
	return ub.layout
}

// Bytes returns the raw backing bytes. The renderer reads these when
// uploading; callers must not mutate them directly.
func (ub *UniformBuffer) Bytes() []byte {
	return ub.data
}

// WriteFloat32 stores a scalar float into the named field and marks
// the covering byte range pending-flush.
func (ub *UniformBuffer) WriteFloat32(name string, value float32) error {
	f, ok := ub.layout.Field(name)
	if !ok {
		return &core.TypeMismatchError{Property: name, Expected: "a declared uniform field", Got: "unknown field"}
	}
	binary.LittleEndian.PutUint32(ub.data[f.Offset:], gomath.Float32bits(value))
	ub.markPending(f.Offset, 4)
	return nil
}

// WriteVec4 stores a 4-component float vector into the named field and
// marks the covering byte range pending-flush.
func (ub *UniformBuffer) WriteVec4(name string, value math.Vec4) error {
	f, ok := ub.layout.Field(name)
	if !ok {
		return &core.TypeMismatchError{Property: name, Expected: "a declared uniform field", Got: "unknown field"}
	}
	binary.LittleEndian.PutUint32(ub.data[f.Offset+0:], gomath.Float32bits(value.X))
	binary.LittleEndian.PutUint32(ub.data[f.Offset+4:], gomath.Float32bits(value.Y))
	binary.LittleEndian.PutUint32(ub.data[f.Offset+8:], gomath.Float32bits(value.Z))
	binary.LittleEndian.PutUint32(ub.data[f.Offset+12:], gomath.Float32bits(value.W))
	ub.markPending(f.Offset, 16)
	return nil
}

// ReadFloat32 reads the named scalar field back from the buffer bytes.
// Accessors read from here rather than a shadow copy, so the buffer
// and the accessor can never diverge.
func (ub *UniformBuffer) ReadFloat32(name string) float32 {
	f, ok := ub.layout.Field(name)
	if !ok {
		return 0
	}
	return gomath.Float32frombits(binary.LittleEndian.Uint32(ub.data[f.Offset:]))
}

// ReadVec4 reads the named 4-component field back from the buffer bytes.
func (ub *UniformBuffer) ReadVec4(name string) math.Vec4 {
	f, ok := ub.layout.Field(name)
	if !ok {
		return math.Vec4{}
	}
	return math.NewVec4(
		gomath.Float32frombits(binary.LittleEndian.Uint32(ub.data[f.Offset+0:])),
		gomath.Float32frombits(binary.LittleEndian.Uint32(ub.data[f.Offset+4:])),
		gomath.Float32frombits(binary.LittleEndian.Uint32(ub.data[f.Offset+8:])),
		gomath.Float32frombits(binary.LittleEndian.Uint32(ub.data[f.Offset+12:])),
	)
}

// PendingRange returns the byte range written since the last clear.
// ok is false when nothing is pending.
func (ub *UniformBuffer) PendingRange() (offset, size uint32, ok bool) {
	if !ub.hasPending {
		return 0, 0, false
	}
	return ub.pendingLo, ub.pendingHi - ub.pendingLo, true
}

// ClearPending marks the buffer clean. The renderer calls this after
// it has copied the pending range to the GPU-visible resource.
func (ub *UniformBuffer) ClearPending() {
	ub.pendingLo = 0
	ub.pendingHi = 0
	ub.hasPending = false
	core.MetricsUniformFlushed()
}

func (ub *UniformBuffer) markPending(offset, size uint32) {
	if !ub.hasPending {
		ub.pendingLo = offset
		ub.pendingHi = offset + size
		ub.hasPending = true
		return
	}
	ub.pendingLo = math.Min(ub.pendingLo, offset)
	ub.pendingHi = math.Max(ub.pendingHi, offset+size)
}
