package camera

// Input is one frame of movement intent. Producing it from a keyboard or mouse
// is up to the caller.
type Input struct {
	Forward, Backward bool
	Left, Right       bool

	HasCursor bool
	CursorX   int
	CursorY   int
}

// Controller applies Input to a camera using the speeds from Settings.
type Controller struct {
	MoveSpeed       float32
	LookSensitivity float32
}

func (s Settings) Controller() Controller {
	return Controller{MoveSpeed: s.MoveSpeed, LookSensitivity: s.LookSensitivity}
}

// Step moves first, then looks, matching the order a frame reads its input.
func (ctl Controller) Step(c *Camera, in Input) {
	if in.Forward {
		c.MoveForward(ctl.MoveSpeed)
	}
	if in.Backward {
		c.MoveBackward(ctl.MoveSpeed)
	}
	if in.Left {
		c.MoveLeft(ctl.MoveSpeed)
	}
	if in.Right {
		c.MoveRight(ctl.MoveSpeed)
	}
	if in.HasCursor {
		c.LookScaled(in.CursorX, in.CursorY, ctl.LookSensitivity)
	}
}
