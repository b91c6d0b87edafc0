package math

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const tolerance float32 = 1e-5

func TestMat4MulAppliesLeftOperandFirst(t *testing.T) {
	translate := NewMat4Translation(NewVec3(1, 2, 3))
	scale := NewMat4Scale(NewVec3(2, 2, 2))

	// scale first, then translate
	combined := scale.Mul(translate)

	p := NewVec3(1, 1, 1).Transform(combined)
	assert.True(t, p.Compare(NewVec3(3, 4, 5), tolerance), "got %+v", p)
}

func TestMat4ComposeOrder(t *testing.T) {
	position := NewVec3(1, 2, 3)
	rotation := NewQuatFromAxisAngle(NewVec3(0, 0, 1), DegToRad(90))
	scale := NewVec3(2, 2, 2)

	m := NewMat4Compose(position, rotation, scale)

	// (1,0,0) scales to (2,0,0), rotates to (0,2,0), translates to (1,4,3).
	p := NewVec3(1, 0, 0).Transform(m)
	assert.True(t, p.Compare(NewVec3(1, 4, 3), tolerance), "got %+v", p)

	assert.True(t, m.Position().Compare(position, tolerance))
}

func TestMat4InverseRoundTrip(t *testing.T) {
	m := NewMat4Compose(
		NewVec3(4, -2, 7),
		NewQuatFromAxisAngle(NewVec3(1, 2, 0), 0.7),
		NewVec3(1.5, 2, 0.5),
	)

	identity := m.Mul(m.Inverse())
	assert.True(t, identity.Compare(NewMat4Identity(), 1e-4))
}

func TestMat4TransposedSwapsRowsAndColumns(t *testing.T) {
	m := NewMat4Translation(NewVec3(1, 2, 3))
	tr := m.Transposed()
	assert.Equal(t, float32(1), tr.Data[3])
	assert.Equal(t, float32(2), tr.Data[7])
	assert.Equal(t, float32(3), tr.Data[11])
	assert.True(t, tr.Transposed().Compare(m, 0))
}

func TestLookAtFacesTarget(t *testing.T) {
	position := NewVec3(0, 0, 5)
	target := NewVec3Zero()

	m := NewMat4LookAt(position, target, NewVec3Up())

	// Looking down the negative z axis from +z is no rotation at all.
	assert.True(t, m.Compare(NewMat4Identity(), tolerance))

	// From the side, the negative z axis must map onto the view direction.
	position = NewVec3(5, 0, 0)
	m = NewMat4LookAt(position, target, NewVec3Up())
	forward := NewVec3(0, 0, -1).Transform(m)
	want := target.Sub(position).Normalized()
	assert.True(t, forward.Compare(want, tolerance), "got %+v want %+v", forward, want)
}

func TestLookAtDegenerateInputs(t *testing.T) {
	// position == target must not produce NaNs.
	m := NewMat4LookAt(NewVec3(1, 1, 1), NewVec3(1, 1, 1), NewVec3Up())
	for _, v := range m.Data {
		assert.False(t, v != v, "matrix contains NaN")
	}

	// up parallel to the view direction must not produce NaNs either.
	m = NewMat4LookAt(NewVec3(0, 5, 0), NewVec3Zero(), NewVec3Up())
	for _, v := range m.Data {
		assert.False(t, v != v, "matrix contains NaN")
	}
}

func TestQuatMat4RoundTrip(t *testing.T) {
	cases := []Quaternion{
		NewQuatIdentity(),
		NewQuatFromAxisAngle(NewVec3(0, 1, 0), DegToRad(90)),
		NewQuatFromAxisAngle(NewVec3(1, 1, 0), 2.1),
		NewQuatFromAxisAngle(NewVec3(0, 0, 1), DegToRad(180)),
		NewQuatFromAxisAngle(NewVec3(-1, 0.5, 2), -0.4),
	}
	for _, q := range cases {
		back := NewQuatFromMat4(q.ToMat4())
		// q and -q encode the same rotation.
		sameRotation := kabs(q.Dot(back)) > 1.0-tolerance
		assert.True(t, sameRotation, "round trip changed rotation: %+v vs %+v", q, back)
	}
}

func TestQuatMulComposesRotations(t *testing.T) {
	a := NewQuatFromAxisAngle(NewVec3(0, 0, 1), DegToRad(90))
	b := NewQuatFromAxisAngle(NewVec3(0, 0, 1), DegToRad(90))

	// Two quarter turns about z make a half turn.
	half := a.Mul(b)
	want := NewQuatFromAxisAngle(NewVec3(0, 0, 1), DegToRad(180))
	assert.True(t, kabs(half.Dot(want)) > 1.0-tolerance)
}

func TestQuatInverseUndoesRotation(t *testing.T) {
	q := NewQuatFromAxisAngle(NewVec3(1, 0.2, -0.5), 1.3)
	identity := q.Mul(q.Inverse())
	assert.True(t, kabs(identity.Dot(NewQuatIdentity())) > 1.0-tolerance)
}

func TestExtractRotationStripsScaleAndTranslation(t *testing.T) {
	rotation := NewQuatFromAxisAngle(NewVec3(0, 1, 0), 0.9)
	m := NewMat4Compose(NewVec3(3, 1, -2), rotation, NewVec3(4, 4, 4))

	r := m.ExtractRotation()
	assert.True(t, r.Position().Compare(NewVec3Zero(), 0))
	assert.True(t, r.Compare(rotation.ToMat4(), 1e-4))
}

func TestVec3Operations(t *testing.T) {
	assert.True(t, NewVec3(1, 0, 0).Cross(NewVec3(0, 1, 0)).Compare(NewVec3(0, 0, 1), 0))
	assert.Equal(t, float32(0), NewVec3(1, 0, 0).Dot(NewVec3(0, 1, 0)))
	assert.InDelta(t, 1.0, NewVec3(3, -4, 12).Normalized().Length(), float64(tolerance))
	assert.True(t, NewVec3Zero().Normalized().Compare(NewVec3Zero(), 0))
}

func TestDegRadConversion(t *testing.T) {
	assert.InDelta(t, float64(Pi), float64(DegToRad(180)), float64(tolerance))
	assert.InDelta(t, 180.0, float64(RadToDeg(Pi)), float64(tolerance))
}
