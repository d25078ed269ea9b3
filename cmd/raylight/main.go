// raylight - Terminal Ray Tracer
// Renders a scene of spheres and point lights in your terminal, tracing
// shadows and highlights, while you move the light around.
//
// Controls:
//
//	E/D         - Move light away/toward the camera (-Z/+Z)
//	S/F         - Move light left/right (-X/+X)
//	Q/A         - Move light up/down (+Y/-Y)
//	Tab         - Select the next light
//	P           - Save a PNG snapshot of the current frame
//	?           - Toggle HUD overlay (FPS, frame time, hit count, light)
//	Esc         - Quit
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/raylight/pkg/math3d"
	"github.com/taigrr/raylight/pkg/render"
	"github.com/taigrr/raylight/pkg/scene"
	xdraw "golang.org/x/image/draw"
)

var (
	defaults = DefaultConfig()

	width     = flag.Int("width", defaults.Width, "Render width in pixels")
	height    = flag.Int("height", defaults.Height, "Render height in pixels")
	fov       = flag.Float64("fov", defaults.FOV, "Vertical field of view in degrees")
	workers   = flag.Int("workers", defaults.Workers, "Row bands rendered in parallel")
	targetFPS = flag.Int("fps", defaults.FPS, "Target FPS")
	bgColor   = flag.String("bg", defaults.Bg, "Background color (R,G,B or a color name)")
	scenePath = flag.String("scene", "", "Scene file (.gltf/.glb); default is the built-in scene")
	exportTo  = flag.String("export", "", "Write the scene as .gltf/.glb and exit")
	snapshot  = flag.String("snapshot", "", "Render one frame to a PNG file and exit")
	smooth    = flag.Bool("smooth", false, "Ease light motion with a spring")
	filter    = flag.String("filter", defaults.Filter, "Display scaling filter (nearest, bilinear, catmullrom)")
	logFile   = flag.String("log", "", "Write logs to this file")
	logLevel  = flag.String("log-level", defaults.LogLevel, "Log level (debug, info, warn, error)")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "raylight - Terminal Ray Tracer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: raylight [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  E/D         - Move light -Z/+Z\n")
		fmt.Fprintf(os.Stderr, "  S/F         - Move light -X/+X\n")
		fmt.Fprintf(os.Stderr, "  Q/A         - Move light +Y/-Y\n")
		fmt.Fprintf(os.Stderr, "  Tab         - Next light\n")
		fmt.Fprintf(os.Stderr, "  P           - Save snapshot\n")
		fmt.Fprintf(os.Stderr, "  ?           - Toggle HUD overlay\n")
		fmt.Fprintf(os.Stderr, "  Esc         - Quit\n")
	}
	flag.Parse()

	cfg := Config{
		Width:    *width,
		Height:   *height,
		FOV:      *fov,
		Workers:  *workers,
		FPS:      *targetFPS,
		Bg:       *bgColor,
		Scene:    *scenePath,
		Export:   *exportTo,
		Snapshot: *snapshot,
		Smooth:   *smooth,
		Filter:   *filter,
		Log:      *logFile,
		LogLevel: *logLevel,
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// lightKeys maps movement keys to one light step.
var lightKeys = map[string]math3d.Vec3{
	"e": math3d.V3(0, 0, -scene.LightStep),
	"d": math3d.V3(0, 0, scene.LightStep),
	"s": math3d.V3(-scene.LightStep, 0, 0),
	"f": math3d.V3(scene.LightStep, 0, 0),
	"q": math3d.V3(0, scene.LightStep, 0),
	"a": math3d.V3(0, -scene.LightStep, 0),
}

type commandKind int

const (
	cmdMove commandKind = iota
	cmdNextLight
	cmdToggleHUD
	cmdSnapshot
	cmdResize
)

// command is sent from the event goroutine to the frame loop, so the scene
// is only touched between frames.
type command struct {
	kind          commandKind
	delta         math3d.Vec3
	width, height int
}

func run(cfg Config) error {
	settings, err := cfg.Resolve()
	if err != nil {
		return err
	}

	closeLog, err := setupLogging(cfg.Log, settings.LogLevel)
	if err != nil {
		return err
	}
	defer closeLog()

	sc, title, err := loadScene(cfg.Scene)
	if err != nil {
		return err
	}
	slog.Info("scene loaded", "scene", title, "spheres", len(sc.Spheres()), "lights", len(sc.Lights()))

	if cfg.Export != "" {
		if err := scene.SaveGLTF(sc, cfg.Export); err != nil {
			return err
		}
		fmt.Printf("Exported %s to %s\n", title, cfg.Export)
		return nil
	}

	a := newApp(cfg, settings, sc, title)

	if cfg.Snapshot != "" {
		stats := a.renderFrame()
		if err := a.fb.SavePNG(cfg.Snapshot); err != nil {
			return fmt.Errorf("save snapshot: %w", err)
		}
		fmt.Printf("Rendered %s: %v\n", cfg.Snapshot, stats)
		return nil
	}

	return a.runInteractive()
}

// setupLogging points slog and the renderer at the -log file. The terminal
// owns stdout, so without -log nothing is logged.
func setupLogging(path string, level slog.Level) (func() error, error) {
	if path == "" {
		return func() error { return nil }, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	render.SetLogger(logger)
	return f.Close, nil
}

// loadScene returns the scene in path, or the built-in scene when path is
// empty, along with a title for display.
func loadScene(path string) (*scene.Scene, string, error) {
	if path == "" {
		return scene.Default(), "default scene", nil
	}
	sc, err := scene.LoadGLTF(path)
	if err != nil {
		return nil, "", fmt.Errorf("load scene: %w", err)
	}
	return sc, filepath.Base(path), nil
}

// app is the state owned by the frame loop.
type app struct {
	cfg    Config
	sc     *scene.Scene
	tracer *render.Tracer
	camera *render.Camera
	fb     *render.Framebuffer
	motion *LightMotion
	hud    *HUD
	scaler xdraw.Scaler
}

func newApp(cfg Config, settings Settings, sc *scene.Scene, title string) *app {
	tracer := render.NewTracer(cfg.Workers)
	tracer.Background = settings.Background

	camera := render.NewCamera(cfg.Width, cfg.Height)
	camera.SetFOV(cfg.FOV)

	return &app{
		cfg:    cfg,
		sc:     sc,
		tracer: tracer,
		camera: camera,
		fb:     render.NewFramebuffer(cfg.Width, cfg.Height),
		motion: NewLightMotion(cfg.FPS, cfg.Smooth),
		hud:    NewHUD(title),
		scaler: settings.Scaler,
	}
}

func (a *app) renderFrame() render.FrameStats {
	return a.tracer.RenderFrame(a.sc, a.camera.Rays(), a.fb)
}

// apply handles one command from the event goroutine.
func (a *app) apply(cmd command) error {
	switch cmd.kind {
	case cmdMove:
		if len(a.sc.Lights()) > 0 {
			a.motion.Nudge(cmd.delta)
		}
	case cmdNextLight:
		if n := len(a.sc.Lights()); n > 0 {
			if err := a.motion.Select(a.sc, (a.motion.Light()+1)%n); err != nil {
				return err
			}
		}
	case cmdToggleHUD:
		a.hud.Show = !a.hud.Show
	case cmdSnapshot:
		path := fmt.Sprintf("raylight-%s.png", time.Now().Format("20060102-150405"))
		if err := a.fb.SavePNG(path); err != nil {
			slog.Warn("snapshot failed", "path", path, "err", err)
			return nil
		}
		slog.Info("snapshot saved", "path", path)
	}
	return nil
}

// selectedLight returns the light being moved, or nil if there is none.
func (a *app) selectedLight() *scene.Light {
	l, err := a.sc.Light(a.motion.Light())
	if err != nil {
		return nil
	}
	return l
}

func (a *app) runInteractive() error {
	// Create terminal
	term := uv.DefaultTerminal()

	termWidth, termHeight, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(termWidth, termHeight)

	view := render.NewTerminalRenderer(term, termWidth, termHeight, a.scaler)
	view.Background = a.tracer.Background

	// Context for clean shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	cmds := make(chan command, 64)

	// Event handler
	go func() {
		send := func(cmd command) {
			select {
			case cmds <- cmd:
			case <-ctx.Done():
			}
		}
		for ev := range term.Events() {
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				send(command{kind: cmdResize, width: ev.Width, height: ev.Height})

			case uv.KeyPressEvent:
				switch {
				case ev.MatchString("escape", "ctrl+c"):
					cancel()
					return
				case ev.MatchString("tab"):
					send(command{kind: cmdNextLight})
				case ev.MatchString("p"):
					send(command{kind: cmdSnapshot})
				case ev.MatchString("?"), ev.MatchString("shift+/"):
					send(command{kind: cmdToggleHUD})
				default:
					for key, delta := range lightKeys {
						if ev.MatchString(key) {
							send(command{kind: cmdMove, delta: delta})
							break
						}
					}
				}
			}
		}
	}()

	cleanup := func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}
	defer cleanup()

	targetDuration := time.Second / time.Duration(a.cfg.FPS)

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		start := time.Now()

	drain:
		for {
			select {
			case cmd := <-cmds:
				if cmd.kind == cmdResize {
					termWidth, termHeight = cmd.width, cmd.height
					term.Erase()
					term.Resize(termWidth, termHeight)
					view = render.NewTerminalRenderer(term, termWidth, termHeight, a.scaler)
					view.Background = a.tracer.Background
					continue
				}
				if err := a.apply(cmd); err != nil {
					return err
				}
			default:
				break drain
			}
		}

		if _, err := a.motion.Step(a.sc); err != nil {
			return fmt.Errorf("move light: %w", err)
		}

		stats := a.renderFrame()

		view.Render(a.fb)
		if err := view.Flush(); err != nil {
			return fmt.Errorf("flush: %w", err)
		}

		// HUD overlay (always update FPS, render clears lines when HUD off)
		a.hud.Update(stats)
		a.hud.Render(termWidth, termHeight, a.motion.Light(), a.selectedLight())

		// Frame timing
		elapsed := time.Since(start)
		if elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}
