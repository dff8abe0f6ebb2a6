package main

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/chromasim/internal/config"
	"github.com/Faultbox/chromasim/internal/engine/assets"
	"github.com/Faultbox/chromasim/internal/engine/colorvision"
	"github.com/Faultbox/chromasim/internal/engine/debug"
	"github.com/Faultbox/chromasim/internal/engine/input"
	"github.com/Faultbox/chromasim/internal/engine/postprocess"
	"github.com/Faultbox/chromasim/internal/engine/render"
	"github.com/Faultbox/chromasim/internal/engine/stage"
	"github.com/Faultbox/chromasim/internal/engine/window"
	"github.com/Faultbox/chromasim/internal/logger"
)

// App wires the window, stage, pipeline, and renderer together and
// runs the frame loop. Controls: N cycles the mode, Space toggles the
// simulation, F12 captures a screenshot.
type App struct {
	window   *window.Window
	input    *input.Input
	stage    *stage.Stage
	store    *assets.Store
	pipeline *postprocess.Pipeline
	renderer *render.Renderer
	wheel    *render.ColorWheel
	capture  *debug.ScreenshotCapture

	windowID stage.WindowID
	camera   stage.CameraID
	sim      *stage.Simulation

	running bool
}

// NewApp creates the viewer and tags its camera for simulation.
func NewApp(cfg *config.Config) (*App, error) {
	mode, err := colorvision.ParseMode(cfg.Simulation.Mode)
	if err != nil {
		return nil, fmt.Errorf("invalid simulation config: %w", err)
	}

	a := &App{
		input: input.New(),
	}

	a.window, err = window.New(window.Config{
		Title:      "ChromaSim",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("creating window: %w", err)
	}

	a.stage = stage.New()
	a.store = assets.NewStore()

	// The stage tracks the window by its SDL ID at physical pixel
	// size, so resize events can be matched to the right target.
	a.windowID = stage.WindowID(a.window.ID())
	pw, ph := a.window.DrawableSize()
	a.stage.SetWindow(a.windowID, uint32(pw), uint32(ph))

	a.sim = &stage.Simulation{Mode: mode, Enabled: cfg.Simulation.Enabled}
	a.camera = a.stage.AddCamera(&stage.Camera{
		Target:     stage.WindowTarget(a.windowID),
		Priority:   0,
		Layers:     stage.Layer(stage.LayerDefault),
		ShowUI:     true,
		Simulation: a.sim,
	})

	a.pipeline = postprocess.New(a.stage, a.store, postprocess.Config{
		DefaultMode:    mode,
		Enabled:        cfg.Simulation.Enabled,
		PriorityOffset: cfg.Simulation.RelayPriorityOffset,
	}, logger.Log)

	a.renderer, err = render.New(a.store, a.stage, logger.Log)
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("creating renderer: %w", err)
	}

	a.wheel, err = render.NewColorWheel(96)
	if err != nil {
		a.renderer.Destroy()
		a.window.Close()
		return nil, fmt.Errorf("creating test scene: %w", err)
	}

	a.capture = debug.NewScreenshotCapture(cfg.Simulation.ScreenshotDir, "chromasim")

	return a, nil
}

// Run executes the frame loop until the window is closed.
func (a *App) Run() error {
	// The camera was tagged at startup; detection fires once.
	if err := a.pipeline.CameraAdded(a.camera); err != nil {
		return fmt.Errorf("setting up post-processing: %w", err)
	}
	a.updateTitle()

	a.running = true
	for a.running {
		wantScreenshot := false

		if quit := a.input.Update(); quit {
			a.running = false
		}
		for _, ev := range a.input.Events() {
			switch ev.Type {
			case input.EventWindowResize:
				if stage.WindowID(ev.WindowID) != a.windowID {
					continue
				}
				// The event reports screen coordinates; targets are
				// sized from the drawable's physical pixels.
				pw, ph := a.window.DrawableSize()
				if err := a.pipeline.WindowResized(a.windowID, uint32(pw), uint32(ph)); err != nil {
					return fmt.Errorf("propagating resize: %w", err)
				}
			case input.EventKeyDown:
				a.handleKey(ev.Key, &wantScreenshot)
			}
		}

		if err := a.pipeline.SyncModes(); err != nil {
			return fmt.Errorf("syncing simulation state: %w", err)
		}

		pw, ph := a.window.DrawableSize()
		err := a.renderer.Frame(int32(pw), int32(ph), func(*stage.Camera) {
			a.wheel.Draw()
		})
		if err != nil {
			return fmt.Errorf("rendering frame: %w", err)
		}

		if wantScreenshot {
			pixels := a.renderer.ReadWindowPixels(int32(pw), int32(ph))
			path, err := a.capture.CaptureFromPixels(pixels, pw, ph)
			if err != nil {
				logger.Warn("screenshot failed", zap.Error(err))
			} else {
				logger.Info("screenshot saved", zap.String("path", path))
			}
		}

		a.window.SwapBuffers()
	}

	return nil
}

func (a *App) handleKey(key sdl.Scancode, wantScreenshot *bool) {
	switch key {
	case sdl.SCANCODE_ESCAPE:
		a.running = false
	case sdl.SCANCODE_N:
		a.sim.Mode = a.sim.Mode.Cycle()
		a.updateTitle()
	case sdl.SCANCODE_SPACE:
		a.sim.Enabled = !a.sim.Enabled
		a.updateTitle()
	case sdl.SCANCODE_F12:
		*wantScreenshot = true
	}
}

func (a *App) updateTitle() {
	if !a.sim.Enabled {
		a.window.SetTitle("ChromaSim - simulation off")
		return
	}
	a.window.SetTitle(fmt.Sprintf("ChromaSim - %s (%s)", a.sim.Mode, a.sim.Mode.Description()))
}

// Close releases all resources.
func (a *App) Close() {
	if a.wheel != nil {
		a.wheel.Destroy()
	}
	if a.renderer != nil {
		a.renderer.Destroy()
	}
	if a.window != nil {
		a.window.Close()
	}
}
