package inkwell

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/shkcodes/inkwell/internal/log"
)

// debounceDelay coalesces the event bursts editors produce into a single
// rebuild.
const debounceDelay = 500 * time.Millisecond

// watcher rebuilds the descriptor when content, configuration, or theme
// files change. Directories are watched, so events for files the watch
// targets sit next to are filtered out by name.
type watcher struct {
	server *Server
	fs     *fsnotify.Watcher
	logger zerolog.Logger

	contentDir string
	configFile string
	themeFile  string

	configPending atomic.Bool
}

func newWatcher(s *Server) (*watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("inkwell: create watcher: %w", err)
	}
	cfg := s.site.Config()
	w := &watcher{
		server:     s,
		fs:         fsw,
		logger:     log.WithComponent("watch"),
		contentDir: filepath.Clean(cfg.Content.Dir),
		configFile: cleanPath(cfg.File),
		themeFile:  cleanPath(cfg.Theme.Path),
	}

	if err := w.addRecursive(w.contentDir); err != nil {
		fsw.Close()
		return nil, err
	}
	for _, f := range []string{w.configFile, w.themeFile} {
		if f == "" {
			continue
		}
		if err := fsw.Add(filepath.Dir(f)); err != nil {
			w.logger.Warn().Err(err).Str("path", f).Msg("cannot watch")
		}
	}

	w.logger.Info().
		Str("content", w.contentDir).
		Str("config", w.configFile).
		Str("theme", w.themeFile).
		Msg("watching for changes")
	return w, nil
}

func cleanPath(p string) string {
	if p == "" {
		return ""
	}
	return filepath.Clean(p)
}

// addRecursive watches dir and every non-hidden directory below it.
func (w *watcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			return fs.SkipDir
		}
		if err := w.fs.Add(path); err != nil {
			return fmt.Errorf("inkwell: watch %s: %w", path, err)
		}
		return nil
	})
}

func (w *watcher) run(ctx context.Context) {
	defer w.fs.Close()

	var debounce *time.Timer
	for {
		select {
		case <-ctx.Done():
			if debounce != nil {
				debounce.Stop()
			}
			w.logger.Info().Msg("watcher stopped")
			return

		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug().Str("op", event.Op.String()).Str("path", event.Name).Msg("change detected")
			if event.Has(fsnotify.Create) {
				w.maybeAddDir(event.Name)
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(debounceDelay, func() { w.apply(ctx) })

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.logger.Error().Err(err).Msg("watcher error")
		}
	}
}

// relevant reports whether the event touches something the watcher cares
// about, and flags configuration changes for apply.
func (w *watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	name := filepath.Clean(event.Name)
	if name == w.configFile {
		w.configPending.Store(true)
		return true
	}
	if name == w.themeFile {
		return true
	}
	return underDir(w.contentDir, name)
}

// apply runs once per debounce window: a pending configuration change is
// reloaded first, then the descriptor is rebuilt. The previous descriptor
// stays when either step fails.
func (w *watcher) apply(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if w.configPending.Swap(false) {
		if err := w.server.site.ReloadConfig(ctx); err != nil {
			w.logger.Error().Err(err).Msg("config reload failed, keeping previous")
		}
	}
	if err := w.server.rebuild(ctx); err != nil {
		w.logger.Error().Err(err).Msg("rebuild failed, keeping previous descriptor")
	}
}

// maybeAddDir starts watching a freshly created content subdirectory.
func (w *watcher) maybeAddDir(path string) {
	path = filepath.Clean(path)
	if !underDir(w.contentDir, path) {
		return
	}
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() || strings.HasPrefix(info.Name(), ".") {
		return
	}
	if err := w.addRecursive(path); err != nil {
		w.logger.Warn().Err(err).Str("path", path).Msg("cannot watch new directory")
	}
}

func underDir(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
