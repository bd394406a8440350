package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/dshills/gale/internal/config"
	"github.com/dshills/gale/internal/config/notify"
	"github.com/dshills/gale/internal/engine"
	"github.com/dshills/gale/internal/renderer"
	"github.com/dshills/gale/internal/renderer/backend"
	"github.com/dshills/gale/internal/renderer/statusline"
)

// DefaultTickInterval is how often the loop runs without input, so that
// pending edits are snapshotted and the clock and messages refresh.
const DefaultTickInterval = 100 * time.Millisecond

// Options configures the application.
type Options struct {
	// Backend draws the editor and delivers input. Required by Run.
	Backend backend.Backend

	// Config supplies settings and live reloads. Nil uses defaults.
	Config *config.Config

	// Path is the file to open on startup. A missing file starts empty
	// under that name.
	Path string

	// Logger receives application logs. Nil uses GetLogger.
	Logger *Logger

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time

	// EngineOptions are applied after the configured ones.
	EngineOptions []engine.Option

	// TickInterval overrides DefaultTickInterval.
	TickInterval time.Duration

	// ScriptOutput receives script print output and messages. Nil shows
	// them on the message line only.
	ScriptOutput io.Writer
}

// Application owns one document and runs the input loop over it.
type Application struct {
	backend   backend.Backend
	renderer  *renderer.Renderer
	config    *config.Config
	settings  config.Settings
	doc       *Document
	logger    *Logger
	now       func() time.Time
	tick      time.Duration
	scriptOut io.Writer
	metrics   *Metrics

	prompt     *Prompt
	message    messageLine
	help       helpCycle
	quit       quitCounter
	highlights []renderer.Highlight

	ctx     context.Context
	reloads chan reloadResult
	sub     *notify.Subscription
	running atomic.Bool
}

type reloadResult struct {
	settings config.Settings
	err      error
}

// New creates an application and opens opts.Path.
func New(opts Options) (*Application, error) {
	settings := config.Default()
	if opts.Config != nil {
		settings = opts.Config.Settings()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = DefaultTickInterval
	}

	engineOpts := append(settings.EngineOptions(), opts.EngineOptions...)
	app := &Application{
		backend:   opts.Backend,
		config:    opts.Config,
		settings:  settings,
		doc:       NewDocument(engine.New(engineOpts...)),
		logger:    opts.Logger,
		now:       opts.Now,
		tick:      opts.TickInterval,
		scriptOut: opts.ScriptOutput,
		metrics:   NewMetrics(),
		ctx:       context.Background(),
		reloads:   make(chan reloadResult, 1),
	}
	app.applyTimings()

	if app.backend != nil {
		ropts, err := settings.RendererOptions()
		if err != nil {
			return nil, err
		}
		r, err := renderer.New(app.backend, ropts)
		if err != nil {
			return nil, err
		}
		app.renderer = r
	}

	if opts.Path != "" {
		n, err := app.doc.OpenOrCreate(opts.Path)
		if err != nil {
			return nil, err
		}
		app.Logger().WithComponent("document").Info("opened %s (%d bytes)", opts.Path, n)
	}

	if app.config != nil {
		app.sub = app.config.Subscribe(app.onConfigChange)
	}
	return app, nil
}

// Document returns the document being edited.
func (app *Application) Document() *Document {
	return app.doc
}

// Engine returns the document's engine.
func (app *Application) Engine() *engine.Engine {
	return app.doc.Engine
}

// Prompt returns the active prompt, or nil.
func (app *Application) Prompt() *Prompt {
	return app.prompt
}

// Highlights returns the find matches currently highlighted.
func (app *Application) Highlights() []renderer.Highlight {
	return app.highlights
}

// MessageLine returns the text the message line shows now.
func (app *Application) MessageLine() (string, statusline.MessageType) {
	return app.message.Current(app.now())
}

// IsRunning returns true while Run is executing.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Close releases the config subscription.
func (app *Application) Close() {
	app.sub.Unsubscribe()
}

// Run initializes the backend and processes events until quit or ctx is
// done. Quitting returns nil.
func (app *Application) Run(ctx context.Context) error {
	if app.backend == nil {
		return ErrNoBackend
	}
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if err := app.backend.Init(); err != nil {
		return fmt.Errorf("init backend: %w", err)
	}
	defer app.backend.Shutdown()

	app.ctx = ctx
	defer func() { app.ctx = context.Background() }()

	events := make(chan backend.Event, 16)
	done := make(chan struct{})
	go app.pollEvents(events, done)
	defer func() {
		close(done)
		app.backend.PostEvent(backend.Event{Type: backend.EventInterrupt})
	}()

	app.Logger().Info("editor started")
	return app.eventLoop(ctx, events)
}

// pollEvents forwards backend events until done is closed. PollEvent
// blocks, so it runs on its own goroutine.
func (app *Application) pollEvents(events chan<- backend.Event, done <-chan struct{}) {
	for {
		ev := app.backend.PollEvent()
		if ev.Type == backend.EventNone {
			return
		}
		select {
		case <-done:
			return
		default:
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

func (app *Application) eventLoop(ctx context.Context, events <-chan backend.Event) error {
	ticker := time.NewTicker(app.tick)
	defer ticker.Stop()

	app.Render()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev := <-events:
			start := time.Now()
			err := app.HandleEvent(ev)
			app.metrics.RecordEvent(time.Since(start))
			if err != nil {
				if errors.Is(err, ErrQuit) {
					app.Logger().WithFields(app.metrics.Snapshot().Fields()).Info("editor quit")
					return nil
				}
				app.logComponentError("input", err)
			}

		case r := <-app.reloads:
			app.applyReload(r)

		case <-ticker.C:
		}

		app.Step()
	}
}

// Step runs one loop cycle after input: the undo engine gets its chance
// to snapshot, then the frame is drawn.
func (app *Application) Step() {
	if app.doc.Engine.Tick() {
		app.metrics.RecordSnapshot()
	}
	app.Render()
}

// Render draws the current frame. Without a backend it does nothing.
func (app *Application) Render() {
	if app.renderer == nil {
		return
	}

	frame := renderer.Frame{
		Status: statusline.Info{
			Filename: app.doc.Name,
			Lines:    app.doc.Engine.LineCount(),
			Modified: app.doc.IsModified(),
			Row:      app.doc.Engine.Cursor().Row,
			Col:      app.doc.Engine.Cursor().Col,
			Now:      app.now(),
		},
		Highlights: app.highlights,
	}
	frame.Message, frame.MessageType = app.MessageLine()
	if app.prompt != nil {
		frame.Prompt = app.prompt.View()
	}
	app.renderer.Render(app.doc.Engine, frame)
	app.metrics.RecordRender(app.renderer.LastFrameDuration())
}

func (app *Application) setMessage(text string) {
	app.message.Set(text, statusline.MessageInfo, app.now())
}

func (app *Application) setError(text string) {
	app.message.Set(text, statusline.MessageError, app.now())
}

func (app *Application) applyTimings() {
	app.message.timeout = app.settings.Editor.MessageTimeout
	app.help.reset = app.settings.Editor.MessageTimeout
	app.quit.need = app.settings.Editor.QuitConfirmations
	app.quit.window = app.settings.Editor.MessageTimeout
}

// onConfigChange runs on the watcher goroutine and hands results to the
// loop, dropping a stale pending result.
func (app *Application) onConfigChange(c notify.Change) {
	var r reloadResult
	switch c.Type {
	case notify.ChangeReload:
		r.settings = app.config.Settings()
	case notify.ChangeError:
		r.err = c.Err
	default:
		return
	}

	for {
		select {
		case app.reloads <- r:
			return
		default:
		}
		select {
		case <-app.reloads:
		default:
		}
	}
}

func (app *Application) applyReload(r reloadResult) {
	log := app.Logger().WithComponent("config")
	if r.err != nil {
		log.Warn("reload failed, keeping previous settings: %v", r.err)
		app.setError("Config reload failed: " + r.err.Error())
		return
	}
	if err := app.ApplySettings(r.settings); err != nil {
		log.Warn("apply settings: %v", err)
		app.setError("Config reload failed: " + err.Error())
		return
	}
	log.Info("settings reloaded")
}

// ApplySettings switches the engine, renderer and message timings to s.
func (app *Application) ApplySettings(s config.Settings) error {
	if app.renderer != nil {
		ropts, err := s.RendererOptions()
		if err != nil {
			return err
		}
		if err := app.renderer.SetOptions(ropts); err != nil {
			return err
		}
	}
	s.ApplyToEngine(app.doc.Engine)
	app.settings = s
	app.applyTimings()
	return nil
}
