package config

import (
	"log"
	"path/filepath"
	"sync"
	"time"

	"roomcam/internal/camera"

	"github.com/fsnotify/fsnotify"
)

// settle is how long the file must stay quiet before it is re-read, so a
// truncate followed by a write is seen once.
const settle = 100 * time.Millisecond

// Watcher re-reads a tuning file whenever it changes and publishes each
// valid result on Updates. Invalid edits are logged and sent on Errors; the
// previous config stays in effect.
type Watcher struct {
	Updates chan camera.Config
	Errors  chan error

	path    string
	watcher *fsnotify.Watcher
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// NewWatcher watches path. The containing directory is watched so editors
// that replace the file on save are followed.
func NewWatcher(path string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	path = filepath.Clean(path)
	if err := fw.Add(filepath.Dir(path)); err != nil {
		_ = fw.Close()
		return nil, err
	}

	w := &Watcher{
		Updates: make(chan camera.Config, 4),
		Errors:  make(chan error, 4),
		path:    path,
		watcher: fw,
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
		close(w.Updates)
		close(w.Errors)
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.done)

	timer := time.NewTimer(settle)
	timer.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(settle)
		case <-timer.C:
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.send(nil, err)
		case <-w.closeCh:
			timer.Stop()
			return
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	if err != nil {
		log.Printf("Config: reload failed: %v", err)
		w.send(nil, err)
		return
	}
	log.Printf("Config: reloaded %s", filepath.Base(w.path))
	w.send(&cfg, nil)
}

// send never blocks. A full Updates channel drops its oldest config; a full
// Errors channel drops the new error.
func (w *Watcher) send(cfg *camera.Config, err error) {
	if cfg == nil {
		select {
		case w.Errors <- err:
		default:
		}
		return
	}
	for {
		select {
		case w.Updates <- *cfg:
			return
		default:
		}
		select {
		case <-w.Updates:
		default:
		}
	}
}
