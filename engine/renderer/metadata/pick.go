package metadata

import "github.com/spaghettifunk/lumen/engine/math"

// Pick values arrive from the render backend as a packed integer. The
// bit widths and the coordinate bias below are a fixed contract with
// the shader-side encoder and must be kept in lockstep with it.
const (
	pickObjectIDBits uint = 20
	pickIndexBits    uint = 26
	pickCoordBits    uint = 9

	// Sub-pixel coordinates are stored biased so they fit an unsigned
	// field; subtracting the bias recovers the signed position.
	pickCoordBias float32 = 256.0
)

/**
 * @brief The decoded result of a pick operation: which object and
 * primitive were selected and where inside the primitive the hit
 * landed, in signed sub-pixel coordinates.
 */
type PickInfo struct {
	/** @brief The id of the picked object, as assigned at creation. */
	ObjectID uint32
	/** @brief The index of the picked vertex within the object. */
	VertexIndex uint32
	/** @brief The sub-pixel position of the hit within the point. */
	PointCoord math.Vec2
}

// UnpackPickValue decodes a packed pick integer. Fields are packed
// most-significant first: object id, vertex index, x, y.
func UnpackPickValue(value uint64) PickInfo {
	y := uint32(value & (1<<pickCoordBits - 1))
	value >>= pickCoordBits
	x := uint32(value & (1<<pickCoordBits - 1))
	value >>= pickCoordBits
	index := uint32(value & (1<<pickIndexBits - 1))
	value >>= pickIndexBits
	id := uint32(value & (1<<pickObjectIDBits - 1))

	return PickInfo{
		ObjectID:    id,
		VertexIndex: index,
		PointCoord: math.NewVec2(
			float32(x)-pickCoordBias,
			float32(y)-pickCoordBias,
		),
	}
}

// PackPickValue is the encoder-side mirror of UnpackPickValue. The
// render backend owns the real encoder; this one exists so the
// contract can be exercised end to end in tests and tooling.
func PackPickValue(objectID, vertexIndex uint32, coord math.Vec2) uint64 {
	x := uint64(uint32(coord.X+pickCoordBias)) & (1<<pickCoordBits - 1)
	y := uint64(uint32(coord.Y+pickCoordBias)) & (1<<pickCoordBits - 1)
	id := uint64(objectID) & (1<<pickObjectIDBits - 1)
	index := uint64(vertexIndex) & (1<<pickIndexBits - 1)

	v := id
	v = v<<pickIndexBits | index
	v = v<<pickCoordBits | x
	v = v<<pickCoordBits | y
	return v
}
