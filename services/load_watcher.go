package services

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/yeremiapane/table-reservation/reservation"
	"github.com/yeremiapane/table-reservation/utils"
)

// FileEvent describes a restaurant file that appeared or changed.
type FileEvent struct {
	Path    string    `json:"path"`
	ModTime time.Time `json:"mod_time"`
	Size    int64     `json:"size"`
}

type fileState struct {
	modTime time.Time
	size    int64
}

// LoadWatcher polls Dir for .txt and .csv restaurant files. Files present when
// it starts are ignored; every file created or changed afterwards is loaded
// into Manager once per distinct (modification time, size).
type LoadWatcher struct {
	Dir      string
	Interval time.Duration
	Manager  *reservation.Manager

	// OnLoad, when set, runs after each successful load.
	OnLoad func(ev FileEvent, report reservation.LoadReport)

	load func(path string) (reservation.LoadReport, error)

	mu       sync.Mutex
	seen     map[string]fileState
	stopChan chan struct{}
	done     chan struct{}
}

func NewLoadWatcher(dir string, m *reservation.Manager) *LoadWatcher {
	return &LoadWatcher{
		Dir:      dir,
		Interval: 2 * time.Second,
		Manager:  m,
		load:     m.LoadRestaurantsFromFile,
		seen:     make(map[string]fileState),
	}
}

func (w *LoadWatcher) Start() {
	w.Prime()
	w.stopChan = make(chan struct{})
	w.done = make(chan struct{})

	go func() {
		defer close(w.done)
		ticker := time.NewTicker(w.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				w.Scan()
			case <-w.stopChan:
				return
			}
		}
	}()
	utils.InfoLogger.Printf("Watching %s for restaurant files every %s", w.Dir, w.Interval)
}

// Stop ends polling and waits for an in-flight scan.
func (w *LoadWatcher) Stop() {
	if w.stopChan == nil {
		return
	}
	close(w.stopChan)
	<-w.done
	w.stopChan = nil
}

// Prime records the files currently in Dir as already handled.
func (w *LoadWatcher) Prime() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, ev := range w.list() {
		w.seen[ev.Path] = fileState{modTime: ev.ModTime, size: ev.Size}
	}
}

// Scan loads every new or changed file and returns the events it handled.
// A file that fails before any restaurant is added is retried on the next
// scan. A file that fails partway keeps what it added and is not retried,
// since reloading it would add those restaurants again.
func (w *LoadWatcher) Scan() []FileEvent {
	w.mu.Lock()
	defer w.mu.Unlock()

	var handled []FileEvent
	for _, ev := range w.list() {
		st := fileState{modTime: ev.ModTime, size: ev.Size}
		if prev, ok := w.seen[ev.Path]; ok && prev == st {
			continue
		}

		report, err := w.load(ev.Path)
		if err != nil {
			utils.ErrorLogger.Errorf("Error loading %s: %v", ev.Path, err)
			if report.Added == 0 {
				continue
			}
		}
		w.seen[ev.Path] = st
		handled = append(handled, ev)

		utils.InfoLogger.Printf("Loaded %s (%d bytes): %d restaurants added, %d lines skipped",
			ev.Path, ev.Size, report.Added, len(report.Skipped))
		if w.OnLoad != nil {
			w.OnLoad(ev, report)
		}
	}
	return handled
}

func (w *LoadWatcher) list() []FileEvent {
	entries, err := os.ReadDir(w.Dir)
	if err != nil {
		utils.ErrorLogger.Errorf("Error reading %s: %v", w.Dir, err)
		return nil
	}

	var out []FileEvent
	for _, e := range entries {
		if e.IsDir() || !isRestaurantFile(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		out = append(out, FileEvent{
			Path:    filepath.Join(w.Dir, e.Name()),
			ModTime: info.ModTime(),
			Size:    info.Size(),
		})
	}
	return out
}

func isRestaurantFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".txt", ".csv":
		return true
	}
	return false
}
