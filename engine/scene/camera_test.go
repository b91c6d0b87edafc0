package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/lumen/engine/math"
)

func TestCameraViewMatrixInvertsWorldMatrix(t *testing.T) {
	c := NewCamera("main")
	defer c.Destroy()
	c.Position = math.NewVec3(3, 2, 10)

	view := c.ViewMatrix()

	// The view matrix maps the camera's own position to the origin.
	p := c.Position.Transform(view)
	assert.True(t, p.Compare(math.NewVec3Zero(), 1e-4), "got %+v", p)
}

func TestCameraFollowsParent(t *testing.T) {
	rig := NewNode("rig")
	defer rig.Destroy()
	c := NewCamera("main")
	require.NoError(t, rig.Add(c.Node))

	rig.Position = math.NewVec3(0, 0, 5)

	view := c.ViewMatrix()
	p := math.NewVec3(0, 0, 5).Transform(view)
	assert.True(t, p.Compare(math.NewVec3Zero(), 1e-4))
}

func TestCameraDefaultName(t *testing.T) {
	c := NewCamera("")
	defer c.Destroy()
	assert.Equal(t, DEFAULT_CAMERA_NAME, c.Name)
}

func TestCameraReset(t *testing.T) {
	c := NewCamera("main")
	defer c.Destroy()
	c.Position = math.NewVec3(1, 2, 3)
	c.Scale = math.NewVec3(2, 2, 2)

	c.Reset()

	assert.True(t, c.Position.Compare(math.NewVec3Zero(), 0))
	assert.True(t, c.Scale.Compare(math.NewVec3One(), 0))
	assert.True(t, c.LocalMatrix().Compare(math.NewMat4Identity(), 0))
}
