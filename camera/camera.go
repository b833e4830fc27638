// Package camera implements a first-person viewpoint that produces the view and
// projection matrices a renderer binds every frame.
package camera

import (
	"github.com/EngoEngine/glm"
	"github.com/EngoEngine/math"
)

var identity = glm.Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 1, 0,
	0, 0, 0, 1,
}

// Identity returns the 4x4 identity matrix, the default model transform.
func Identity() glm.Mat4 {
	return identity
}

type Camera struct {
	eye           glm.Vec3 // world-space position
	viewDirection glm.Vec3
	up            glm.Vec3 // fixed at creation, never rotated
	projection    glm.Mat4

	lastCursor   glm.Vec2
	hasReference bool

	normalize bool
}

// New returns a camera at the origin looking down -Z with +Y up.
// +Z points toward the viewer in a right-handed view space, so -Z is "into" the world.
func New() *Camera {
	return &Camera{
		eye:           glm.Vec3{0, 0, 0},
		viewDirection: glm.Vec3{0, 0, -1},
		up:            glm.Vec3{0, 1, 0},
		projection:    identity,
		normalize:     true,
	}
}

// SetNormalize controls whether the view direction is renormalized after every
// Look rotation. When disabled, rounding in repeated rotations is allowed to
// accumulate in the length of the view direction, which also scales movement.
func (c *Camera) SetNormalize(normalize bool) {
	c.normalize = normalize
}

// SetProjection stores a perspective projection. Parameters are not validated.
func (c *Camera) SetProjection(fovY, aspectRatio, nearPlane, farPlane float32) {
	c.projection = glm.Perspective(fovY, aspectRatio, nearPlane, farPlane)
}

func (c *Camera) ViewMatrix() glm.Mat4 {
	target := c.eye.Add(&c.viewDirection)
	return glm.LookAtV(&c.eye, &target, &c.up)
}

func (c *Camera) ProjectionMatrix() glm.Mat4 {
	return c.projection
}

func (c *Camera) MoveForward(speed float32) {
	step := c.viewDirection.Mul(speed)
	c.eye = c.eye.Add(&step)
}

func (c *Camera) MoveBackward(speed float32) {
	step := c.viewDirection.Mul(speed)
	c.eye = c.eye.Sub(&step)
}

func (c *Camera) MoveLeft(speed float32) {
	right := c.right()
	step := right.Mul(speed)
	c.eye = c.eye.Sub(&step)
}

func (c *Camera) MoveRight(speed float32) {
	right := c.right()
	step := right.Mul(speed)
	c.eye = c.eye.Add(&step)
}

func (c *Camera) right() glm.Vec3 {
	return c.viewDirection.Cross(&c.up)
}

// Look turns the camera from cursor movement, one degree per pixel.
func (c *Camera) Look(cursorX, cursorY int) {
	c.LookScaled(cursorX, cursorY, 1)
}

// LookScaled is Look with a configurable number of degrees per pixel.
//
// The first call only records the cursor position. Every later call yaws the
// view direction around up by the horizontal distance travelled since the
// previous sample. Vertical movement is sampled but does not pitch the camera.
func (c *Camera) LookScaled(cursorX, cursorY int, degreesPerPixel float32) {
	current := glm.Vec2{float32(cursorX), float32(cursorY)}
	if !c.hasReference {
		c.lastCursor = current
		c.hasReference = true
		return
	}

	// cursorY is tracked for the reference point only; there is no pitch.
	dx := c.lastCursor[0] - current[0]
	c.lastCursor = current

	if dx == 0 {
		return
	}
	angle := dx * degreesPerPixel * math.Pi / 180
	rotation := glm.QuatRotate(angle, &c.up)
	c.viewDirection = rotation.Rotate(&c.viewDirection)
	if c.normalize {
		c.viewDirection = c.viewDirection.Normalized()
	}
}

func (c *Camera) Eye() glm.Vec3 {
	return c.eye
}

func (c *Camera) SetEye(eye glm.Vec3) {
	c.eye = eye
}

func (c *Camera) ViewDirection() glm.Vec3 {
	return c.viewDirection
}

func (c *Camera) SetViewDirection(dir glm.Vec3) {
	c.viewDirection = dir
}

func (c *Camera) Up() glm.Vec3 {
	return c.up
}

// LastCursor returns the mouse-look reference point and whether one has been
// recorded yet.
func (c *Camera) LastCursor() (glm.Vec2, bool) {
	return c.lastCursor, c.hasReference
}
