package app

import (
	"fmt"
	"runtime"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/rajveermalviya/go-webgpu/wgpu"

	"fractalviewer/internal/camera"
	"fractalviewer/internal/config"
	"fractalviewer/internal/input"
	"fractalviewer/internal/renderer"
	"fractalviewer/internal/timing"
	"fractalviewer/internal/viewport"
)

// App owns the window, the WebGPU objects and the frame loop state. All of it
// lives on the single locked OS thread; nothing here needs a lock.
type App struct {
	window   *glfw.Window
	instance *wgpu.Instance
	surface  *wgpu.Surface
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	renderer *renderer.Renderer
	camera   *camera.Camera
	tracker  *input.Tracker
	viewport *viewport.Viewport
	clock    *timing.Clock

	// events queued by GLFW callbacks, drained once per frame.
	events []input.Event
}

// New bootstraps the window, the GPU and all render resources. The window
// stays hidden until everything is ready so no unconfigured frame flashes.
func New(cfg *config.Config) (*App, error) {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("GLFW init failed: %w", err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.CocoaRetinaFramebuffer, glfw.True)

	window, err := glfw.CreateWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("window creation failed: %w", err)
	}

	app := &App{
		window:  window,
		camera:  camera.New(),
		tracker: input.NewTracker(),
		clock:   timing.NewClock(time.Now()),
	}

	if err := app.initWebGPU(); err != nil {
		app.Cleanup()
		return nil, err
	}

	// The swap chain is sized for the drawable, which may exceed the window
	// size under pixel-density scaling.
	fbWidth, fbHeight := window.GetFramebufferSize()
	app.viewport = viewport.New(fbWidth, fbHeight)

	app.renderer, err = renderer.NewRenderer(
		app.adapter, app.device, app.queue, app.surface,
		uint32(fbWidth), uint32(fbHeight),
		cfg.Fractal.Iterations, cfg.Window.VSync,
	)
	if err != nil {
		app.Cleanup()
		return nil, fmt.Errorf("renderer creation failed: %w", err)
	}

	app.setupCallbacks()

	window.Show()

	return app, nil
}

func (app *App) initWebGPU() error {
	app.instance = wgpu.CreateInstance(&wgpu.InstanceDescriptor{
		Backends: wgpu.InstanceBackend_Metal,
	})
	if app.instance == nil {
		return fmt.Errorf("WebGPU instance creation failed")
	}

	app.surface = CreateSurface(app.instance, app.window)
	if app.surface == nil {
		return fmt.Errorf("surface creation failed")
	}

	var err error
	app.adapter, err = app.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: app.surface,
		PowerPreference:   wgpu.PowerPreference_HighPerformance,
	})
	if err != nil {
		return fmt.Errorf("adapter request failed: %w", err)
	}

	app.device, err = app.adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "FractalViewerDevice",
	})
	if err != nil {
		return fmt.Errorf("device request failed: %w", err)
	}

	app.queue = app.device.GetQueue()
	return nil
}

func (app *App) setupCallbacks() {
	app.window.SetCloseCallback(func(w *glfw.Window) {
		app.events = append(app.events, input.QuitEvent{})
	})

	app.window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		app.events = append(app.events, input.ResizeEvent{})
	})

	app.window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		logical, ok := actionFor(key)
		if !ok {
			return
		}
		switch action {
		case glfw.Press:
			app.events = append(app.events, input.KeyEvent{Action: logical, Pressed: true})
		case glfw.Release:
			app.events = append(app.events, input.KeyEvent{Action: logical, Pressed: false})
		}
	})

	app.window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		logical, ok := buttonFor(button)
		if !ok {
			return
		}
		app.events = append(app.events, input.MouseButtonEvent{
			Button:  logical,
			Pressed: action == glfw.Press,
		})
	})

	app.window.SetScrollCallback(func(w *glfw.Window, xoff, yoff float64) {
		app.events = append(app.events, input.ScrollEvent{Y: yoff})
	})
}

// actionFor maps physical keys to logical actions; WASD and the arrow keys
// alias to the same directions.
func actionFor(key glfw.Key) (input.Action, bool) {
	switch key {
	case glfw.KeyW, glfw.KeyUp:
		return input.ActionPanUp, true
	case glfw.KeyS, glfw.KeyDown:
		return input.ActionPanDown, true
	case glfw.KeyA, glfw.KeyLeft:
		return input.ActionPanLeft, true
	case glfw.KeyD, glfw.KeyRight:
		return input.ActionPanRight, true
	case glfw.KeyEscape:
		return input.ActionQuit, true
	}
	return 0, false
}

func buttonFor(button glfw.MouseButton) (input.MouseButton, bool) {
	switch button {
	case glfw.MouseButtonLeft:
		return input.ButtonLeft, true
	case glfw.MouseButtonMiddle:
		return input.ButtonMiddle, true
	case glfw.MouseButtonRight:
		return input.ButtonRight, true
	}
	return 0, false
}

// Run drives the frame loop until a quit is requested. Per iteration: advance
// the clock, resync the viewport if dirty, draw and present, drain input,
// then integrate the camera. The quit check sits at a single point so a quit
// never interrupts an in-progress draw.
func (app *App) Run() error {
	for {
		dt := app.clock.Tick(time.Now())

		if app.viewport.Sync(app.window.GetFramebufferSize) {
			if err := app.renderer.Resize(uint32(app.viewport.Width), uint32(app.viewport.Height)); err != nil {
				return err
			}
		}

		if err := app.renderer.Render(app.camera); err != nil {
			return fmt.Errorf("render failed: %w", err)
		}

		glfw.PollEvents()
		app.drainEvents()

		if app.tracker.QuitRequested() || app.window.ShouldClose() {
			break
		}

		dx, dy := app.tracker.PanDirection()
		app.camera.Pan(dx, dy, dt)
		for app.clock.ConsumeStep() {
			app.camera.StepZoom(timing.FixedStep)
		}
	}

	app.window.Hide()
	return nil
}

func (app *App) drainEvents() {
	app.tracker.ApplyAll(app.events, app.camera, app.viewport)
	app.events = app.events[:0]
}

// Cleanup releases everything in strict reverse creation order. Safe to call
// after a partial bootstrap.
func (app *App) Cleanup() {
	if app.renderer != nil {
		app.renderer.Release()
	}
	if app.queue != nil {
		app.queue.Release()
	}
	if app.device != nil {
		app.device.Release()
	}
	if app.adapter != nil {
		app.adapter.Release()
	}
	if app.surface != nil {
		app.surface.Release()
	}
	if app.instance != nil {
		app.instance.Release()
	}
	if app.window != nil {
		app.window.Destroy()
	}
	glfw.Terminate()
}
