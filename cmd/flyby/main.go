// Command flyby drives a camera along a scripted path and publishes its pose
// to a posesync server every frame.
package main

import (
	"context"
	"flag"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"time"
	"unsafe"

	"github.com/EngoEngine/glm"

	"go_camera/camera"
	"go_camera/ws"
)

var (
	addr     = flag.String("addr", "localhost:8080", "posesync service address")
	config   = flag.String("config", "", "camera settings YAML (defaults if empty)")
	frames   = flag.Int("frames", 600, "number of frames to run")
	interval = flag.Duration("frame", time.Second/60, "frame interval")
	verbose  = flag.Bool("v", false, "log every frame")
	dump     = flag.Bool("dump-config", false, "print the effective camera settings and exit")
)

// mesh is a scene object whose model matrix spins a little every frame.
type mesh struct {
	name      string
	transform camera.Transform
	spin      float32 // degrees per frame about +Y
}

func newScene() []*mesh {
	near := &mesh{name: "near", spin: 0.01}
	near.transform.Translate(0, 0, -2)
	near.transform.Scale(glm.Vec3{1, 1, 1})

	far := &mesh{name: "far", spin: -0.01}
	far.transform.Translate(0, 0, -4)
	far.transform.Scale(glm.Vec3{1, 2, 1})

	return []*mesh{near, far}
}

func main() {
	flag.Parse()

	level := new(slog.LevelVar)
	if *verbose {
		level.Set(slog.LevelDebug)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	settings := camera.DefaultSettings()
	if *config != "" {
		var err error
		settings, err = camera.LoadSettings(*config)
		if err != nil {
			logger.Error("load settings", "err", err)
			os.Exit(1)
		}
	}
	if *dump {
		data, err := settings.Marshal()
		if err != nil {
			logger.Error("marshal settings", "err", err)
			os.Exit(1)
		}
		os.Stdout.Write(data)
		return
	}

	cam, err := settings.NewCamera()
	if err != nil {
		logger.Error("apply settings", "err", err)
		os.Exit(1)
	}
	ctl := settings.Controller()
	scene := newScene()
	// one uniform block per mesh, back to back, as it would be uploaded
	uniformBuf := make([]byte, 0, len(scene)*int(unsafe.Sizeof(camera.Uniforms{})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	u := url.URL{Scheme: "ws", Host: *addr, Path: "/ws"}
	logger.Info("connecting", "url", u.String())
	client, err := ws.Dial(ctx, u.String())
	if err != nil {
		logger.Error("dial", "err", err)
		os.Exit(1)
	}
	defer client.Close()
	logger.Info("connected", "id", client.ID())

	go func() {
		err := client.Recv(func(snap ws.Snapshot) {
			logger.Debug("snapshot", "tick", snap.Tick, "viewers", len(snap.Poses))
		})
		if err != nil {
			logger.Warn("recv", "err", err)
		}
	}()

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()
	for frame := 0; frame < *frames; frame++ {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		ctl.Step(cam, script(frame))
		if err := client.Publish(cam.Pose()); err != nil {
			logger.Error("publish", "frame", frame, "err", err)
			return
		}

		uniformBuf = uniformBuf[:0]
		for _, m := range scene {
			m.transform.Rotate(m.spin, glm.Vec3{0, 0.1, 0})
			uniforms := cam.Uniforms(m.transform.Matrix())
			uniformBuf = append(uniformBuf, uniforms.Bytes()...)
			if model, ok := uniforms.ByName(camera.UniformModel); ok {
				logger.Debug("mesh", "frame", frame, "name", m.name, camera.UniformModel, model)
			}
		}
		logger.Debug("frame", "n", frame, "eye", cam.Eye(), "target", cam.Pose().Target(), "uniform_bytes", len(uniformBuf))
	}
}

// script walks forward while sweeping the cursor left, which traces a circle.
func script(frame int) camera.Input {
	return camera.Input{
		Forward:   true,
		HasCursor: true,
		CursorX:   -frame,
		CursorY:   0,
	}
}
