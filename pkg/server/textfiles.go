package server

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// TextFiles caches the server's text screens (connect banner, MOTD, quit
// message) and reloads them when they change on disk.
type TextFiles struct {
	mu      sync.RWMutex
	dir     string
	files   map[string]string
	watcher *fsnotify.Watcher
	// OnReload is called with the file's base name after a live reload.
	OnReload func(name string)
}

// Text screens loaded from the text directory.
var textFileNames = []string{"connect.txt", "motd.txt", "quit.txt"}

// NewTextFiles loads the text screens from dir. Missing files are left
// empty rather than treated as errors.
func NewTextFiles(dir string) *TextFiles {
	t := &TextFiles{dir: dir, files: make(map[string]string)}
	for _, name := range textFileNames {
		t.load(name)
	}
	return t
}

func (t *TextFiles) load(name string) {
	data, err := os.ReadFile(filepath.Join(t.dir, name))
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("textfiles: read %s: %v", name, err)
		}
		return
	}
	t.mu.Lock()
	t.files[name] = strings.ReplaceAll(string(data), "\r\n", "\n")
	t.mu.Unlock()
}

// Get returns a cached text screen by base name, "" if absent.
func (t *TextFiles) Get(name string) string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.files[name]
}

// Watch starts a filesystem watcher that reloads changed screens.
func (t *TextFiles) Watch() error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := w.Add(t.dir); err != nil {
		w.Close()
		return err
	}
	t.watcher = w
	go func() {
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
					continue
				}
				name := filepath.Base(ev.Name)
				known := false
				for _, n := range textFileNames {
					if n == name {
						known = true
						break
					}
				}
				if !known {
					continue
				}
				t.load(name)
				log.Printf("textfiles: reloaded %s", name)
				if t.OnReload != nil {
					t.OnReload(name)
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Printf("textfiles: watcher: %v", err)
			}
		}
	}()
	return nil
}

// Close stops the watcher.
func (t *TextFiles) Close() {
	if t.watcher != nil {
		t.watcher.Close()
	}
}
