package scenario

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Debounce is how long a file must stay quiet before a reload
const Debounce = 100 * time.Millisecond

// Change is one reload attempt of the watched file
type Change struct {
	Path string
	File *File
	// Err is set when the new contents failed to parse or validate
	Err error
}

// Watcher reloads a scenario file whenever it is written
// The parent directory is watched so editors that replace the file are seen
type Watcher struct {
	Path    string
	Changes <-chan Change

	changes chan Change
	done    chan struct{}
	watcher *fsnotify.Watcher
	logger  *zap.Logger
}

// NewWatcher creates a watcher for the scenario at path
func NewWatcher(path string, logger *zap.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	ch := make(chan Change, 4)
	return &Watcher{
		Path:    abs,
		Changes: ch,
		changes: ch,
		done:    make(chan struct{}),
		watcher: fw,
		logger:  logger,
	}, nil
}

// Start begins watching
func (w *Watcher) Start() error {
	if err := w.watcher.Add(filepath.Dir(w.Path)); err != nil {
		return err
	}
	go w.loop()
	return nil
}

// Stop closes the watcher and the Changes channel
func (w *Watcher) Stop() {
	w.watcher.Close()
	<-w.done
	close(w.changes)
}

func (w *Watcher) loop() {
	defer close(w.done)

	var pending time.Time
	ticker := time.NewTicker(Debounce)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.Path {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				pending = time.Now()
			}

		case <-ticker.C:
			if !pending.IsZero() && time.Since(pending) >= Debounce {
				pending = time.Time{}
				w.reload()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Debug("scenario watch error", zap.Error(err))
		}
	}
}

func (w *Watcher) reload() {
	f, err := Load(w.Path)
	if err != nil {
		w.logger.Warn("scenario reload failed", zap.String("path", w.Path), zap.Error(err))
	}
	select {
	case w.changes <- Change{Path: w.Path, File: f, Err: err}:
	default:
		// Consumer is behind; the next write triggers another reload
		w.logger.Debug("scenario change dropped", zap.String("path", w.Path))
	}
}
