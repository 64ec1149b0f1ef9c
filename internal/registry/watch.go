package registry

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Update is a freshly loaded registry, or the error that prevented loading.
type Update struct {
	Registry *Registry
	Err      error
}

// Watcher reloads an overlay file whenever it changes on disk.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	logger   *zap.Logger
	debounce time.Duration
	updates  chan Update
	done     chan struct{}
	wg       sync.WaitGroup
}

// Watch starts watching overlayPath. The parent directory is watched so
// editors that save by renaming a temp file are picked up too.
func Watch(overlayPath string, logger *zap.Logger) (*Watcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	abs, err := filepath.Abs(overlayPath)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", overlayPath, err)
	}
	w := &Watcher{
		path:     abs,
		watcher:  fw,
		logger:   logger,
		debounce: 100 * time.Millisecond,
		updates:  make(chan Update, 1),
		done:     make(chan struct{}),
	}
	w.wg.Add(1)
	go w.loop()
	logger.Info("registry watcher started", zap.String("path", abs))
	return w, nil
}

// Updates delivers reloaded registries. Only the newest pending update is
// kept.
func (w *Watcher) Updates() <-chan Update { return w.updates }

func (w *Watcher) Close() error {
	close(w.done)
	err := w.watcher.Close()
	w.wg.Wait()
	return err
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.logger.Debug("registry overlay changed", zap.String("event", event.String()))
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			w.publish(w.reload())
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("registry watcher error", zap.Error(err))
		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

func (w *Watcher) reload() Update {
	r, err := Load(w.path)
	if err != nil {
		w.logger.Warn("registry reload failed", zap.String("path", w.path), zap.Error(err))
		return Update{Err: err}
	}
	w.logger.Info("registry reloaded", zap.String("path", w.path), zap.Int("tools", r.Len()))
	return Update{Registry: r}
}

func (w *Watcher) publish(u Update) {
	for {
		select {
		case w.updates <- u:
			return
		default:
		}
		// Drop the stale update and retry.
		select {
		case <-w.updates:
		default:
		}
	}
}
