package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/dshills/gale/internal/config/loader"
	"github.com/dshills/gale/internal/config/notify"
	"github.com/dshills/gale/internal/config/watcher"
)

// ErrFileNotFound indicates an explicitly requested config file is missing.
var ErrFileNotFound = errors.New("config file not found")

// defaultFileNames are tried in order inside the user config directory.
var defaultFileNames = []string{"config.toml", "config.yaml", "config.yml"}

// Config loads settings from defaults, an optional file and the
// environment, and optionally reloads them when the file changes.
//
// Config is safe for concurrent use.
type Config struct {
	mu sync.RWMutex

	settings Settings
	unknown  []string

	// path is the file in use; explicit is true when it came from WithPath.
	path     string
	explicit bool

	fs        loader.FileSystem
	envPrefix string

	watcher  *watcher.Watcher
	notifier *notify.Notifier
	closed   bool
}

// Option configures a Config instance.
type Option func(*Config)

// WithPath uses path instead of the default location. A missing file is
// then an error.
func WithPath(path string) Option {
	return func(c *Config) {
		if path != "" {
			c.path = path
			c.explicit = true
		}
	}
}

// WithFileSystem reads files through fsys.
func WithFileSystem(fsys loader.FileSystem) Option {
	return func(c *Config) {
		c.fs = fsys
	}
}

// WithEnvPrefix sets the environment variable prefix. An empty prefix
// disables environment overrides.
func WithEnvPrefix(prefix string) Option {
	return func(c *Config) {
		c.envPrefix = prefix
	}
}

// New creates a Config holding the defaults. Call Load to read the file.
func New(opts ...Option) *Config {
	c := &Config{
		settings:  Default(),
		fs:        loader.DefaultFS(),
		envPrefix: loader.DefaultEnvPrefix,
		notifier:  notify.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.path == "" {
		c.path = defaultConfigPath(c.fs, defaultUserConfigDir())
	}
	return c
}

// Load reads the configuration file and environment and replaces the
// current settings. On error the current settings are kept.
func (c *Config) Load(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	settings, unknown, err := c.read()
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.settings = settings
	c.unknown = unknown
	c.mu.Unlock()
	return nil
}

// read builds settings from the file and environment without storing them.
func (c *Config) read() (Settings, []string, error) {
	l, err := loader.ForPath(c.fs, c.path)
	if err != nil {
		return Settings{}, nil, err
	}
	data, err := l.Load()
	if err != nil {
		return Settings{}, nil, err
	}
	if data == nil && c.explicit {
		return Settings{}, nil, fmt.Errorf("%w: %s", ErrFileNotFound, c.path)
	}

	if c.envPrefix != "" {
		env, err := loader.NewEnvLoader(c.envPrefix).Load()
		if err != nil {
			return Settings{}, nil, err
		}
		data = loader.DeepMerge(data, env)
	}

	settings, unknown, err := decode(Default(), data)
	if err != nil {
		return Settings{}, nil, fmt.Errorf("%s: %w", c.path, err)
	}
	if err := settings.Validate(); err != nil {
		return Settings{}, nil, fmt.Errorf("%s: %w", c.path, err)
	}
	return settings, unknown, nil
}

// Settings returns a snapshot of the current settings.
func (c *Config) Settings() Settings {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.settings
}

// Path returns the configuration file path in use.
func (c *Config) Path() string {
	return c.path
}

// Unknown returns setting paths in the file that gale does not recognise.
func (c *Config) Unknown() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.unknown...)
}

// Subscribe registers an observer for setting changes made by reloads.
func (c *Config) Subscribe(observer notify.Observer) *notify.Subscription {
	return c.notifier.Subscribe(observer)
}

// SubscribePath registers an observer for changes at or below path.
func (c *Config) SubscribePath(path string, observer notify.Observer) *notify.Subscription {
	return c.notifier.SubscribePath(path, observer)
}

// Watch starts reloading the file whenever it changes. Observers run on
// the watcher goroutine.
func (c *Config) Watch(opts ...watcher.Option) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrSystemClosed
	}
	if c.watcher != nil {
		return nil
	}

	w, err := watcher.New(opts...)
	if err != nil {
		return fmt.Errorf("creating config watcher: %w", err)
	}
	if err := w.Watch(c.path); err != nil {
		w.Stop()
		return fmt.Errorf("watching %s: %w", c.path, err)
	}
	w.OnChange(c.handleFileChange)
	w.Start()
	c.watcher = w
	return nil
}

// Reload re-reads the file and notifies observers of every changed setting.
func (c *Config) Reload() error {
	settings, unknown, err := c.read()
	if err != nil {
		c.notifier.NotifyError(c.path, err)
		return err
	}

	c.mu.Lock()
	old := c.settings
	c.settings = settings
	c.unknown = unknown
	c.mu.Unlock()

	before, after := old.Flatten(), settings.Flatten()
	for _, path := range old.Diff(settings) {
		c.notifier.NotifySet(path, before[path], after[path], c.path)
	}
	c.notifier.NotifyReload(c.path)
	return nil
}

func (c *Config) handleFileChange(event watcher.Event) {
	if event.Op == watcher.OpRemove || event.Op == watcher.OpRename {
		// Keep the last good settings until the file comes back.
		return
	}
	_ = c.Reload()
}

// Close stops watching and drops all observers.
func (c *Config) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	w := c.watcher
	c.watcher = nil
	c.mu.Unlock()

	if w != nil {
		w.Stop()
	}
	c.notifier.Close()
}

// DefaultPath returns the config file gale reads when none is given.
func DefaultPath() string {
	return defaultConfigPath(loader.DefaultFS(), defaultUserConfigDir())
}

// defaultConfigPath returns the first existing candidate in dir, or
// config.toml when none exists.
func defaultConfigPath(fsys loader.FileSystem, dir string) string {
	for _, name := range defaultFileNames {
		p := filepath.Join(dir, name)
		if _, err := fsys.Stat(p); err == nil {
			return p
		} else if !errors.Is(err, fs.ErrNotExist) {
			return p
		}
	}
	return filepath.Join(dir, defaultFileNames[0])
}

// defaultUserConfigDir returns the default user configuration directory.
func defaultUserConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "gale")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "gale")
}
