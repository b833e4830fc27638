package camera

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/EngoEngine/glm"
)

func TestParseSettingsKeepsDefaults(t *testing.T) {
	s, err := ParseSettings([]byte("fov_y_degrees: 60\nmove_speed: 0.5\n"))
	if err != nil {
		t.Fatalf("ParseSettings: %v", err)
	}

	def := DefaultSettings()
	if s.FovYDegrees != 60 {
		t.Errorf("Expected fov 60, got %v", s.FovYDegrees)
	}
	if s.MoveSpeed != 0.5 {
		t.Errorf("Expected move speed 0.5, got %v", s.MoveSpeed)
	}
	if s.Near != def.Near || s.Far != def.Far || s.AspectRatio != def.AspectRatio {
		t.Errorf("Expected default projection planes, got near=%v far=%v aspect=%v", s.Near, s.Far, s.AspectRatio)
	}
	if !s.Normalize {
		t.Error("Expected normalize to default to true")
	}
}

func TestParseSettingsErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"bad yaml", "fov_y_degrees: [", "parse camera settings"},
		{"wrong type", "near: far", "parse camera settings"},
		{"short eye", "eye: [1, 2]", "eye: want 3 components, got 2"},
		{"long direction", "view_direction: [0, 0, -1, 0]", "view_direction: want 3 components, got 4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSettings([]byte(tt.data))
			if err == nil {
				t.Fatal("Expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error containing %q, got %q", tt.want, err)
			}
		})
	}
}

func TestLoadSettings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "camera.yaml")
	data := `
fov_y_degrees: 90
aspect_ratio: 2
near: 1
far: 10
normalize: false
eye: [1, 2, 3]
view_direction: [1, 0, 0]
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}

	c, err := s.NewCamera()
	if err != nil {
		t.Fatalf("NewCamera: %v", err)
	}
	if c.Eye() != (glm.Vec3{1, 2, 3}) {
		t.Errorf("Expected eye (1,2,3), got %v", c.Eye())
	}
	if c.ViewDirection() != (glm.Vec3{1, 0, 0}) {
		t.Errorf("Expected view direction (1,0,0), got %v", c.ViewDirection())
	}
	if c.normalize {
		t.Error("Expected normalize to be disabled")
	}
	want := glm.Perspective(float32(math.Pi/2), 2, 1, 10)
	got := c.ProjectionMatrix()
	for i := range want {
		if !approx(got[i], want[i]) {
			t.Errorf("Projection element %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestLoadSettingsMissingFile(t *testing.T) {
	_, err := LoadSettings(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected a not-exist error, got %v", err)
	}
}

func TestSettingsRoundTripThroughYAML(t *testing.T) {
	s := DefaultSettings()
	s.FovYDegrees = 70
	s.Eye = []float32{4, 5, 6}

	data, err := s.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	back, err := ParseSettings(data)
	if err != nil {
		t.Fatalf("ParseSettings: %v", err)
	}
	if back.FovYDegrees != 70 || back.Eye[2] != 6 {
		t.Errorf("Expected fov 70 and eye z 6, got %v and %v", back.FovYDegrees, back.Eye)
	}
}

func TestShippedSettings(t *testing.T) {
	s, err := LoadSettings(filepath.Join("..", "configs", "camera.yaml"))
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	c, err := s.NewCamera()
	if err != nil {
		t.Fatalf("NewCamera: %v", err)
	}
	if c.Eye() != (glm.Vec3{0, 0, 0}) || c.ViewDirection() != (glm.Vec3{0, 0, -1}) {
		t.Errorf("Expected default placement, got eye %v direction %v", c.Eye(), c.ViewDirection())
	}
	if ctl := s.Controller(); ctl.MoveSpeed != 0.1 || ctl.LookSensitivity != 1 {
		t.Errorf("Unexpected controller %+v", ctl)
	}
}

func TestApplyRejectsWrongLengthVectors(t *testing.T) {
	tests := []struct {
		name string
		edit func(*Settings)
		want string
	}{
		{"short eye", func(s *Settings) { s.Eye = []float32{1, 2} }, "eye: want 3 components, got 2"},
		{"long direction", func(s *Settings) { s.ViewDirection = []float32{1, 0, 0, 0} }, "view_direction: want 3 components, got 4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			s.FovYDegrees = 90
			tt.edit(&s)

			c := New()
			before := c.ProjectionMatrix()
			err := s.Apply(c)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("Expected error containing %q, got %v", tt.want, err)
			}
			if c.ProjectionMatrix() != before || c.Eye() != (glm.Vec3{0, 0, 0}) {
				t.Error("Expected a failed Apply to leave the camera untouched")
			}

			if _, err := s.NewCamera(); err == nil {
				t.Error("Expected NewCamera to fail too")
			}
		})
	}
}

func TestApplyEmptyVectorsKeepPlacement(t *testing.T) {
	s := DefaultSettings()
	s.Eye = nil
	s.ViewDirection = nil

	c := New()
	c.SetEye(glm.Vec3{5, 5, 5})
	c.SetViewDirection(glm.Vec3{1, 0, 0})
	if err := s.Apply(c); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if c.Eye() != (glm.Vec3{5, 5, 5}) || c.ViewDirection() != (glm.Vec3{1, 0, 0}) {
		t.Errorf("Expected placement kept, got eye %v direction %v", c.Eye(), c.ViewDirection())
	}
}
