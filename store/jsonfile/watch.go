/*
watch.go - Reload notifications for the JSON documents

PURPOSE:
  Edits made directly to constraints.json or shifts.json (hand edits,
  external tooling) should reach the running engine without a restart.
  The watcher observes the data directory and invokes the caller's
  callback with the document name after a short debounce, coalescing
  editor write bursts into one reload.

  archive.json is not watched: the archive is read on demand and
  published weeks are immutable anyway.
*/
package jsonfile

import (
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceDelay coalesces rapid successive writes to one document.
const debounceDelay = 250 * time.Millisecond

// Watcher delivers document-change callbacks until closed.
type Watcher struct {
	fw     *fsnotify.Watcher
	done   chan struct{}
	wg     sync.WaitGroup
	closed sync.Once
}

// Watch starts watching the store's directory. onChange runs on the
// watcher goroutine with the changed document's file name
// (ConstraintsFile or ShiftsFile).
func (s *Store) Watch(onChange func(doc string)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(s.dir); err != nil {
		fw.Close()
		return nil, err
	}

	w := &Watcher{fw: fw, done: make(chan struct{})}
	w.wg.Add(1)
	go w.run(onChange)
	return w, nil
}

// Close stops the watcher and waits for its goroutine.
func (w *Watcher) Close() {
	w.closed.Do(func() {
		close(w.done)
		w.fw.Close()
		w.wg.Wait()
	})
}

func (w *Watcher) run(onChange func(doc string)) {
	defer w.wg.Done()
	pending := make(map[string]*time.Timer)
	var mu sync.Mutex

	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			doc := filepath.Base(ev.Name)
			if doc != ConstraintsFile && doc != ShiftsFile {
				continue
			}
			mu.Lock()
			if t, ok := pending[doc]; ok {
				t.Stop()
			}
			pending[doc] = time.AfterFunc(debounceDelay, func() {
				mu.Lock()
				delete(pending, doc)
				mu.Unlock()
				onChange(doc)
			})
			mu.Unlock()
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			log.Printf("jsonfile: watcher error: %v", err)
		}
	}
}
