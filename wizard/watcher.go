package wizard

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// CatalogSource supplies the current question catalog. The HTTP layer and
// the wizard controller read through this so catalog reloads are picked up
// without restarting in-flight sessions.
type CatalogSource interface {
	Catalog() *Catalog
}

// StaticSource wraps a fixed catalog; used in tests and by the offline lint
// tooling.
type StaticSource struct {
	c *Catalog
}

func NewStaticSource(c *Catalog) *StaticSource { return &StaticSource{c: c} }

func (s *StaticSource) Catalog() *Catalog { return s.c }

// Watcher hot-reloads the question catalog when pack files change on disk.
// A reload builds a complete new catalog and swaps it in atomically; if the
// changed pack fails validation the previous catalog stays live and the
// failure is logged.
type Watcher struct {
	dir     string
	log     *slog.Logger
	fs      *fsnotify.Watcher
	mu      sync.RWMutex
	current *Catalog
	done    chan struct{}
}

// NewWatcher loads the catalog under dir and starts watching for changes.
func NewWatcher(dir string, log *slog.Logger) (*Watcher, error) {
	if log == nil {
		log = slog.Default()
	}

	catalog, err := LoadCatalog(dir)
	if err != nil {
		return nil, err
	}

	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	w := &Watcher{
		dir:     dir,
		log:     log,
		fs:      fs,
		current: catalog,
		done:    make(chan struct{}),
	}

	// Watch the pack directory and any subdirectories present at start.
	if err := fs.Add(dir); err != nil {
		fs.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	entries, err := os.ReadDir(dir)
	if err == nil {
		for _, e := range entries {
			if e.IsDir() {
				if err := fs.Add(filepath.Join(dir, e.Name())); err != nil {
					w.log.Warn("failed to watch pack subdirectory",
						"dir", e.Name(), "error", err)
				}
			}
		}
	}

	go w.loop()

	return w, nil
}

// Catalog returns the currently live catalog.
func (w *Watcher) Catalog() *Catalog {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

// Close stops watching. The last loaded catalog remains readable.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fs.Close()
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if event.Op&fsnotify.Create != 0 {
				// A pack subdirectory created at runtime must be watched
				// too, or packs dropped into it would never reload.
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.fs.Add(event.Name); err != nil {
						w.log.Warn("failed to watch pack subdirectory",
							"dir", event.Name, "error", err)
					}
					continue
				}
			}
			if !isPackFile(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			w.reload(event.Name)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.Error("question pack watcher error", "error", err)
		}
	}
}

func (w *Watcher) reload(trigger string) {
	catalog, err := LoadCatalog(w.dir)
	if err != nil {
		// Keep serving the previous catalog rather than dropping
		// questions mid-session.
		w.log.Error("question pack reload failed, keeping previous catalog",
			"trigger", trigger, "error", err)
		return
	}

	w.mu.Lock()
	w.current = catalog
	w.mu.Unlock()

	w.log.Info("question catalog reloaded",
		"trigger", trigger,
		"case_types", catalog.CaseTypes(),
	)
}

func isPackFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
