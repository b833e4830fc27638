package camera

import (
	"fmt"
	"os"

	"github.com/EngoEngine/glm"
	"github.com/EngoEngine/math"
	"gopkg.in/yaml.v3"
)

// Settings is the YAML description of a camera and how input drives it.
type Settings struct {
	FovYDegrees     float32   `yaml:"fov_y_degrees"`
	AspectRatio     float32   `yaml:"aspect_ratio"`
	Near            float32   `yaml:"near"`
	Far             float32   `yaml:"far"`
	MoveSpeed       float32   `yaml:"move_speed"`
	LookSensitivity float32   `yaml:"look_sensitivity"`
	Normalize       bool      `yaml:"normalize"`
	Eye             []float32 `yaml:"eye,omitempty"`
	ViewDirection   []float32 `yaml:"view_direction,omitempty"`
}

func DefaultSettings() Settings {
	return Settings{
		FovYDegrees:     45,
		AspectRatio:     640.0 / 480.0,
		Near:            0.1,
		Far:             100,
		MoveSpeed:       0.1,
		LookSensitivity: 1,
		Normalize:       true,
		Eye:             []float32{0, 0, 0},
		ViewDirection:   []float32{0, 0, -1},
	}
}

func LoadSettings(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("read camera settings: %w", err)
	}
	s, err := ParseSettings(data)
	if err != nil {
		return Settings{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// ParseSettings decodes data over DefaultSettings, so absent keys keep their
// default values.
func ParseSettings(data []byte) (Settings, error) {
	s := DefaultSettings()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("parse camera settings: %w", err)
	}
	if _, _, err := optionalVec3("eye", s.Eye); err != nil {
		return Settings{}, err
	}
	if _, _, err := optionalVec3("view_direction", s.ViewDirection); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func vec3(field string, v []float32) (glm.Vec3, error) {
	if len(v) != 3 {
		return glm.Vec3{}, fmt.Errorf("%s: want 3 components, got %d", field, len(v))
	}
	return glm.Vec3{v[0], v[1], v[2]}, nil
}

func (s Settings) FovYRadians() float32 {
	return s.FovYDegrees * math.Pi / 180
}

// Apply configures projection, placement and normalization of c.
// Projection parameters are passed through unchecked. An empty Eye or
// ViewDirection keeps the camera's current value; any other length than three
// is an error and leaves c untouched.
func (s Settings) Apply(c *Camera) error {
	eye, hasEye, err := optionalVec3("eye", s.Eye)
	if err != nil {
		return err
	}
	dir, hasDir, err := optionalVec3("view_direction", s.ViewDirection)
	if err != nil {
		return err
	}

	c.SetProjection(s.FovYRadians(), s.AspectRatio, s.Near, s.Far)
	c.SetNormalize(s.Normalize)
	if hasEye {
		c.SetEye(eye)
	}
	if hasDir {
		c.SetViewDirection(dir)
	}
	return nil
}

func optionalVec3(field string, v []float32) (glm.Vec3, bool, error) {
	if len(v) == 0 {
		return glm.Vec3{}, false, nil
	}
	out, err := vec3(field, v)
	return out, err == nil, err
}

func (s Settings) NewCamera() (*Camera, error) {
	c := New()
	if err := s.Apply(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s Settings) Marshal() ([]byte, error) {
	return yaml.Marshal(s)
}
