package camera

import (
	"unsafe"

	"github.com/EngoEngine/glm"
)

// Shader uniform names the matrices are bound to.
const (
	UniformModel      = "u_ModelMatrix"
	UniformView       = "u_ViewMatrix"
	UniformProjection = "u_Projection"
)

// Uniforms is the per-draw transform block. Field order matches the layout
// returned by Bytes.
type Uniforms struct {
	Model      glm.Mat4
	View       glm.Mat4
	Projection glm.Mat4
}

// Uniforms pairs model with the camera's current view and projection.
func (c *Camera) Uniforms(model glm.Mat4) Uniforms {
	return Uniforms{
		Model:      model,
		View:       c.ViewMatrix(),
		Projection: c.projection,
	}
}

// Bytes returns the three column-major matrices back to back in native byte
// order, ready to be written into a uniform buffer.
func (u *Uniforms) Bytes() []byte {
	raw := *(*[unsafe.Sizeof(*u)]byte)(unsafe.Pointer(u))
	return raw[:]
}

func (u *Uniforms) ByName(name string) (glm.Mat4, bool) {
	switch name {
	case UniformModel:
		return u.Model, true
	case UniformView:
		return u.View, true
	case UniformProjection:
		return u.Projection, true
	}
	return glm.Mat4{}, false
}
