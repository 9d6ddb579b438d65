// Package watch re-plans whenever the tasks file changes: an fsnotify
// loop with debounce, singleflight-collapsed rebuilds, and a file lock
// so only one watcher plans over a workspace at a time.
package watch

import (
	"context"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/singleflight"

	"github.com/waveplan/waveplan/internal/config"
	"github.com/waveplan/waveplan/internal/lock"
	"github.com/waveplan/waveplan/internal/schedule"
	"github.com/waveplan/waveplan/internal/task"
)

type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

func parseLogLevel(s string) LogLevel {
	switch strings.ToLower(s) {
	case "debug":
		return LogLevelDebug
	case "info":
		return LogLevelInfo
	case "warn", "warning":
		return LogLevelWarn
	case "error":
		return LogLevelError
	default:
		return LogLevelInfo
	}
}

// Watcher re-plans a single tasks file on change. Planning failures are
// logged, never fatal: the previous sealed plan stays in effect until a
// valid input appears.
type Watcher struct {
	baseDir  string
	file     string
	debounce time.Duration
	logger   *log.Logger
	level    LogLevel

	fileLock *lock.FileLock
	group    singleflight.Group

	// onPlan seals and records a successfully built plan; wired by the
	// CLI so this package stays free of state/store concerns.
	onPlan func(*schedule.Plan) error
}

func New(baseDir, tasksFile string, cfg config.Config, out io.Writer, onPlan func(*schedule.Plan) error) (*Watcher, error) {
	abs, err := filepath.Abs(tasksFile)
	if err != nil {
		return nil, fmt.Errorf("resolve tasks file: %w", err)
	}

	return &Watcher{
		baseDir:  baseDir,
		file:     abs,
		debounce: time.Duration(cfg.Watch.DebounceMS) * time.Millisecond,
		logger:   log.New(out, "", log.LstdFlags),
		level:    parseLogLevel(cfg.Logging.Level),
		fileLock: lock.NewFileLock(filepath.Join(baseDir, "locks", "watch.lock")),
		onPlan:   onPlan,
	}, nil
}

// Run blocks until ctx is cancelled. It plans once at startup, then on
// every debounced change to the tasks file.
func (w *Watcher) Run(ctx context.Context) error {
	if err := w.fileLock.TryLock(); err != nil {
		return err
	}
	defer w.fileLock.Unlock()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fsnotify watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory, not the file: editors rename-and-replace,
	// which drops a direct file watch.
	if err := watcher.Add(filepath.Dir(w.file)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(w.file), err)
	}

	w.log(LogLevelInfo, "watching %s", w.file)
	w.Rebuild()

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			w.log(LogLevelInfo, "shutting down")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.file {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				w.log(LogLevelDebug, "fsnotify event=%s file=%s", event.Op, event.Name)
				timer.Reset(w.debounce)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.log(LogLevelError, "watcher error: %v", err)

		case <-timer.C:
			w.Rebuild()
		}
	}
}

// Rebuild plans the current tasks file once. Concurrent triggers share
// a single execution.
func (w *Watcher) Rebuild() {
	_, _, _ = w.group.Do(w.file, func() (any, error) {
		w.rebuildOnce()
		return nil, nil
	})
}

func (w *Watcher) rebuildOnce() {
	tasks, err := task.Load(w.file)
	if err != nil {
		w.log(LogLevelError, "load tasks: %v", err)
		return
	}

	p, err := schedule.BuildPlan(tasks)
	if err != nil {
		w.log(LogLevelError, "plan: %v", err)
		return
	}

	if err := w.onPlan(p); err != nil {
		w.log(LogLevelError, "seal plan: %v", err)
		return
	}

	w.log(LogLevelInfo, "sealed %s: %d tasks, %d layers, savings %.1f%%",
		p.ID, len(p.Tasks()), len(p.Layers), p.Estimate.SavingsPercent)
}

func (w *Watcher) log(level LogLevel, format string, args ...any) {
	if level < w.level {
		return
	}
	prefix := [...]string{"DEBUG", "INFO", "WARN", "ERROR"}[level]
	w.logger.Printf("[%s] %s", prefix, fmt.Sprintf(format, args...))
}
