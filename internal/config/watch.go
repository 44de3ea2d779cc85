package config

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/hluengas/color-shredder/internal/logger"
)

// Watcher reloads a config file whenever it is written.
// Reloaded configs start from Default and are validated; flags are not reapplied.
type Watcher struct {
	path    string
	fs      *fsnotify.Watcher
	changes chan *Config
	errors  chan error
	done    chan struct{}
	once    sync.Once
}

// Watch starts watching path. The parent directory is watched so editors
// that replace the file on save are still seen.
func Watch(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fs.Add(filepath.Dir(abs)); err != nil {
		fs.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		path:    abs,
		fs:      fs,
		changes: make(chan *Config, 1),
		errors:  make(chan error, 1),
		done:    make(chan struct{}),
	}
	go w.run()

	logger.Debug("watching config", zap.String("path", abs))
	return w, nil
}

// Changes delivers each successfully reloaded config. Only the newest
// unread config is kept.
func (w *Watcher) Changes() <-chan *Config {
	return w.changes
}

// Errors delivers reload failures. Only the newest unread error is kept.
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Close stops watching. Safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fs.Close()
	})
	return err
}

func (w *Watcher) run() {
	for {
		select {
		case e, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(e.Name) != w.path || !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
				continue
			}
			w.reload()

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			send(w.errors, err, w.done)

		case <-w.done:
			return
		}
	}
}

func (w *Watcher) reload() {
	cfg := Default()
	err := loadFromFile(cfg, w.path)
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		// A partially written file fails here and succeeds on the next write
		logger.Debug("config reload failed", zap.String("path", w.path), zap.Error(err))
		send(w.errors, fmt.Errorf("reloading %s: %w", w.path, err), w.done)
		return
	}

	logger.Info("config reloaded", zap.String("path", w.path))
	send(w.changes, cfg, w.done)
}

// send replaces any unread value in ch with v.
func send[T any](ch chan T, v T, done <-chan struct{}) {
	for {
		select {
		case ch <- v:
			return
		case <-done:
			return
		default:
		}
		// Drop the stale value and retry
		select {
		case <-ch:
		default:
		}
	}
}
