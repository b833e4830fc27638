package camera

import "github.com/EngoEngine/glm"

// Pose is the part of a camera that other viewers need to draw it.
type Pose struct {
	Eye           glm.Vec3 `json:"eye"`
	ViewDirection glm.Vec3 `json:"view_direction"`
	Up            glm.Vec3 `json:"up"`
}

func (c *Camera) Pose() Pose {
	return Pose{Eye: c.eye, ViewDirection: c.viewDirection, Up: c.up}
}

// SetPose moves the camera to p. Up is only taken when it is non-zero, so a
// pose built from position and direction alone keeps the camera's vertical.
func (c *Camera) SetPose(p Pose) {
	c.eye = p.Eye
	c.viewDirection = p.ViewDirection
	if p.Up != (glm.Vec3{}) {
		c.up = p.Up
	}
}

// Target is the point one view direction in front of the eye.
func (p Pose) Target() glm.Vec3 {
	return p.Eye.Add(&p.ViewDirection)
}
