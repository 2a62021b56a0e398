// Package watch wraps fsnotify to reload an Interface YAML file on write
// and dispatch reactive recomputation.
package watch

import (
	"context"
	"fmt"

	"github.com/fsnotify/fsnotify"

	"github.com/flowtable/compute/internal/dataframe"
	"github.com/flowtable/compute/internal/enginelog"
	"github.com/flowtable/compute/internal/ifacecfg"
	"github.com/flowtable/compute/internal/schedule"
)

// Watcher watches an Interface YAML file and, on a write event, re-parses
// it and drives a full RunAll over the already-loaded DataFrame and
// Scheduler. The re-parsed Interface serves only as a validity check:
// neither the DataFrame nor the compute configuration is rebuilt from it,
// and the input source file is not watched or re-read. Cell-level
// reactivity goes through Scheduler.RunOnChange, which Watcher does not
// call.
type Watcher struct {
	Path      string
	DataFrame *dataframe.DataFrame
	Scheduler *schedule.Scheduler
	Log       *enginelog.Logger

	fsw *fsnotify.Watcher
}

// New builds a Watcher over path, which must already have been loaded
// into df/scheduler by the caller.
func New(path string, df *dataframe.DataFrame, sched *schedule.Scheduler, log *enginelog.Logger) *Watcher {
	return &Watcher{Path: path, DataFrame: df, Scheduler: sched, Log: log}
}

// Run blocks, dispatching reloads until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	w.fsw = fsw
	defer fsw.Close()

	if err := fsw.Add(w.Path); err != nil {
		return fmt.Errorf("watch: add %s: %w", w.Path, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Write == fsnotify.Write {
				w.reload()
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			if w.Log != nil {
				w.Log.Fatal("watch: fsnotify error: " + err.Error())
			}
		}
	}
}

// reload re-parses the Interface (to validate it before triggering work)
// and, if that succeeds, reruns the scheduler's full compute phase.
// Parse failures are logged and otherwise ignored — a transient partial
// write should not crash the watcher.
func (w *Watcher) reload() {
	if _, err := ifacecfg.Load(w.Path); err != nil {
		if w.Log != nil {
			w.Log.Fatal("watch: reparse failed: " + err.Error())
		}
		return
	}
	if err := w.Scheduler.RunAll(); err != nil && w.Log != nil {
		w.Log.Fatal(fmt.Sprintf("watch: run_all after reload: %v", err))
	}
}
