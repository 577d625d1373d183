package studio

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"

	"github.com/Krosebrook/Flash-n-Frame/internal/accel"
	"github.com/Krosebrook/Flash-n-Frame/internal/bootstrap/logging"
	"github.com/Krosebrook/Flash-n-Frame/internal/domain/studio"
	"github.com/Krosebrook/Flash-n-Frame/internal/errs"
)

const (
	styleFileVersion = 1

	// styleReloadQuiescence absorbs editor save storms before reloading.
	styleReloadQuiescence = 300 * time.Millisecond

	// styleListWindow is how stale a List snapshot may be.
	styleListWindow = time.Second
)

// StyleProfile is a named visual preset applied to generations.
type StyleProfile struct {
	ID           string   `toml:"id" json:"id"`
	Name         string   `toml:"name" json:"name"`
	Palette      []string `toml:"palette" json:"palette,omitempty"`
	Instructions string   `toml:"instructions" json:"instructions,omitempty"`
}

type styleFile struct {
	Version int            `toml:"version"`
	Styles  []StyleProfile `toml:"styles"`
}

// defaultProfiles back a store constructed without a styles file.
var defaultProfiles = []StyleProfile{
	{ID: "clean", Name: "Clean editorial", Palette: []string{"#1a1a2e", "#e94560", "#f5f5f5"}},
	{ID: "blueprint", Name: "Blueprint", Palette: []string{"#0b2545", "#8da9c4", "#eef4ed"},
		Instructions: "Technical drawing look with annotation callouts."},
	{ID: "playful", Name: "Playful flat", Palette: []string{"#ffb703", "#fb8500", "#023047"}},
}

// StyleStore holds the style profiles and keeps them fresh from the
// backing TOML file while watching is enabled.
type StyleStore struct {
	mu       sync.RWMutex
	path     string
	profiles []StyleProfile
	byID     map[string]StyleProfile

	// list serves reads through a throttled snapshot; callers tolerate
	// a result up to styleListWindow stale.
	list func() []StyleProfile
}

// NewStyleStore loads profiles from path; an empty path falls back to
// built-in defaults.
func NewStyleStore(path string) (*StyleStore, error) {
	s := &StyleStore{path: strings.TrimSpace(path)}
	s.list = accel.Throttle(s.snapshot, styleListWindow)

	if s.path == "" {
		s.install(defaultProfiles)
		return s, nil
	}

	if _, err := os.Stat(s.path); errors.Is(err, fs.ErrNotExist) {
		// The file may appear later; serve built-ins until it does.
		s.install(defaultProfiles)
		return s, nil
	}

	if err := s.Reload(context.Background()); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload re-reads the backing file and swaps the profile set atomically.
func (s *StyleStore) Reload(ctx context.Context) error {
	if s.path == "" {
		return nil
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		return errs.Wrapf(err, "read styles file %q", s.path)
	}

	var file styleFile
	if err := toml.Unmarshal(raw, &file); err != nil {
		return errs.Wrapf(err, "parse styles file %q", s.path)
	}
	if err := validateStyleFile(file); err != nil {
		return err
	}

	s.install(file.Styles)
	logging.Info(logging.WithAttrs(ctx, slog.String("component", "studio.styles")),
		"style profiles loaded",
		slog.String("path", s.path),
		slog.Int("count", len(file.Styles)),
	)
	return nil
}

// Watch reloads the backing file when it changes, until ctx is done.
// Reloads are debounced; a broken edit keeps the last good profile set.
func (s *StyleStore) Watch(ctx context.Context) error {
	if ctx == nil {
		return errors.New("context is required")
	}
	if s.path == "" {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errs.Wrap(err, "create styles watcher")
	}
	// Watch the directory: editors often replace the file, which drops
	// a watch registered on the file itself.
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		_ = watcher.Close()
		return errs.Wrapf(err, "watch styles directory for %q", s.path)
	}

	reload := accel.Debounce(func(string) {
		if err := s.Reload(ctx); err != nil {
			logging.Warn(ctx, "style profile reload failed, keeping previous set",
				slog.String("component", "studio.styles"),
				slog.Any("err", errs.Loggable(err)),
			)
		}
	}, styleReloadQuiescence)

	go func() {
		defer watcher.Close()
		target := filepath.Clean(s.path)
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
					reload(event.Name)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logging.Warn(ctx, "styles watcher error",
					slog.String("component", "studio.styles"),
					slog.Any("err", errs.Loggable(err)),
				)
			}
		}
	}()
	return nil
}

// Get resolves a profile by id; an empty id returns the first profile.
func (s *StyleStore) Get(id string) (StyleProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return s.profiles[0], nil
	}

	profile, ok := s.byID[trimmed]
	if !ok {
		return StyleProfile{}, fmt.Errorf("%w: style %q", studio.ErrNotFound, id)
	}
	return profile, nil
}

// List returns the profiles in file order through the throttled snapshot.
func (s *StyleStore) List() []StyleProfile {
	return s.list()
}

func (s *StyleStore) snapshot() []StyleProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]StyleProfile, len(s.profiles))
	copy(out, s.profiles)
	return out
}

func (s *StyleStore) install(profiles []StyleProfile) {
	byID := make(map[string]StyleProfile, len(profiles))
	for _, p := range profiles {
		byID[p.ID] = p
	}

	s.mu.Lock()
	s.profiles = profiles
	s.byID = byID
	s.mu.Unlock()
}

func validateStyleFile(file styleFile) error {
	if file.Version != styleFileVersion {
		return fmt.Errorf("unsupported styles file version %d, want %d", file.Version, styleFileVersion)
	}
	if len(file.Styles) == 0 {
		return errors.New("styles file defines no profiles")
	}

	seen := make(map[string]struct{}, len(file.Styles))
	for i, p := range file.Styles {
		id := strings.TrimSpace(p.ID)
		if id == "" {
			return fmt.Errorf("styles[%d].id is required", i)
		}
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("styles[%d].name is required", i)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("duplicate style id %q", id)
		}
		seen[id] = struct{}{}
	}
	return nil
}
