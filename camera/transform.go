package camera

import (
	"github.com/EngoEngine/glm"
	"github.com/EngoEngine/math"
)

// Transform accumulates a mesh's model matrix. Each call composes on the
// right, so it acts in the mesh's local space: Translate then Scale scales the
// mesh about its own origin after it has been placed.
//
// The zero value is the identity.
type Transform struct {
	model glm.Mat4
}

func (t *Transform) base() glm.Mat4 {
	if t.model == (glm.Mat4{}) {
		return identity
	}
	return t.model
}

func (t *Transform) apply(m *glm.Mat4) {
	base := t.base()
	t.model = base.Mul4(m)
}

func (t *Transform) Translate(x, y, z float32) {
	m := glm.Translate3D(x, y, z)
	t.apply(&m)
}

// Rotate turns by degrees about axis. The axis does not need to be unit length.
func (t *Transform) Rotate(degrees float32, axis glm.Vec3) {
	unit := axis.Normalized()
	m := glm.HomogRotate3D(degrees*math.Pi/180, &unit)
	t.apply(&m)
}

func (t *Transform) Scale(s glm.Vec3) {
	m := glm.Scale3D(s[0], s[1], s[2])
	t.apply(&m)
}

// Reset returns the transform to the identity.
func (t *Transform) Reset() {
	t.model = identity
}

func (t *Transform) Matrix() glm.Mat4 {
	return t.base()
}
