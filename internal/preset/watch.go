package preset

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bitmark-inc/logger"
	"github.com/fsnotify/fsnotify"
)

// Watcher reports changes to a preset file. It watches the containing
// directory so that editors which save by rename are seen as changes.
type Watcher struct {
	log      *logger.L
	watcher  *fsnotify.Watcher
	filePath string

	change chan struct{}
	remove chan struct{}
	done   chan struct{}

	closeOnce sync.Once
	wg        sync.WaitGroup
}

// Watch starts watching path. Signals are delivered on buffered channels
// of capacity one; a signal is dropped while the previous one is unread.
func Watch(path string, log *logger.L) (*Watcher, error) {
	filePath, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("preset: %s: %w", path, err)
	}

	if _, err := os.Stat(filePath); err != nil {
		return nil, fmt.Errorf("preset: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("preset: new watcher: %w", err)
	}

	if err := fw.Add(filepath.Dir(filePath)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("preset: watch %s: %w", filepath.Dir(filePath), err)
	}

	w := &Watcher{
		log:      log,
		watcher:  fw,
		filePath: filePath,
		change:   make(chan struct{}, 1),
		remove:   make(chan struct{}, 1),
		done:     make(chan struct{}),
	}

	w.wg.Add(1)

	go w.loop()

	log.Infof("watching %s", filePath)

	return w, nil
}

// Changes receives a value after the file is written or replaced.
func (w *Watcher) Changes() <-chan struct{} { return w.change }

// Removed receives a value after the file is removed or renamed away.
func (w *Watcher) Removed() <-chan struct{} { return w.remove }

// Path returns the absolute path being watched.
func (w *Watcher) Path() string { return w.filePath }

// Close stops the watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error

	w.closeOnce.Do(func() {
		close(w.done)
		err = w.watcher.Close()
		w.wg.Wait()
	})

	return err
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	base := filepath.Base(w.filePath)

	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if filepath.Base(event.Name) != base {
				continue
			}

			w.log.Debugf("file event: %v", event)

			switch {
			case isRemove(event):
				w.log.Warnf("file %s removed", w.filePath)
				w.send(w.remove, "remove")
			case isChange(event):
				w.log.Infof("file %s changed", w.filePath)
				w.send(w.change, "change")
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}

			w.log.Errorf("watcher error: %v", err)
		}
	}
}

func (w *Watcher) send(ch chan struct{}, name string) {
	select {
	case ch <- struct{}{}:
	default:
		w.log.Debugf("event channel %s full, discard event", name)
	}
}

func isRemove(event fsnotify.Event) bool {
	return event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}

func isChange(event fsnotify.Event) bool {
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Chmod)
}
