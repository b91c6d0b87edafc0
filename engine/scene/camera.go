package scene

import (
	"github.com/spaghettifunk/lumen/engine/math"
)

/** @brief The name of the default camera. */
const DEFAULT_CAMERA_NAME string = "default"

/**
 * @brief A camera is a regular scene node whose view matrix is the
 * inverse of its world matrix. It participates in the hierarchy like
 * any other node, so it can be parented to moving objects.
 */
type Camera struct {
	*Node
}

func NewCamera(name string) *Camera {
	if name == "" {
		name = DEFAULT_CAMERA_NAME
	}
	return &Camera{Node: NewNode(name)}
}

// ViewMatrix brings the camera's ancestors up to date, then returns
// the inverse of the camera's world matrix.
func (c *Camera) ViewMatrix() math.Mat4 {
	c.UpdateWorldMatrix(false, false, true)
	return c.WorldMatrix().Inverse()
}

// Reset re-centers the camera at the origin with no rotation.
func (c *Camera) Reset() {
	c.Position = math.NewVec3Zero()
	c.Rotation = math.NewQuatIdentity()
	c.Scale = math.NewVec3One()
	c.UpdateLocalMatrix()
}
