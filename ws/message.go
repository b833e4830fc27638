package ws

import "go_camera/camera"

// Hello is the first message a client receives after connecting.
type Hello struct {
	ID int `json:"id"`
}

// Message is one viewer's most recent pose.
type Message struct {
	Client int         `json:"client"`
	Pose   camera.Pose `json:"pose"`
}

// Snapshot is broadcast to every client once per tick.
type Snapshot struct {
	Tick  uint64    `json:"tick"`
	Poses []Message `json:"poses"`
}
