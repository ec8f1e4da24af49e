package blog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"folio/internal/log"
)

// DefaultDebounce groups bursts of file events (editors often write a file
// several times) into one reload.
const DefaultDebounce = 100 * time.Millisecond

// ReloadEvent reports a completed reload.
type ReloadEvent struct {
	// Path is the last post file whose change triggered the reload.
	Path      string
	Op        fsnotify.Op
	Err       error
	Timestamp time.Time
}

// Watcher reloads a repository when post files change on disk.
type Watcher struct {
	dir      string
	match    func(name string) bool
	target   Reloader
	debounce time.Duration

	fsWatcher *fsnotify.Watcher
	events    chan ReloadEvent
	stopChan  chan struct{}
	done      chan struct{}

	mutex   sync.Mutex
	running bool
}

// NewWatcher watches md's directory and reloads target on changes. target is
// usually the Source returned by NewRepository so that the cache is cleared
// as well.
func NewWatcher(md *MarkdownRepository, target Reloader) (*Watcher, error) {
	info, err := os.Stat(md.Dir())
	if err != nil {
		return nil, fmt.Errorf("error accessing directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", md.Dir())
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if err := fsWatcher.Add(md.Dir()); err != nil {
		fsWatcher.Close()
		return nil, fmt.Errorf("failed to add directory %s to watcher: %w", md.Dir(), err)
	}

	return &Watcher{
		dir:       md.Dir(),
		match:     md.Matches,
		target:    target,
		debounce:  DefaultDebounce,
		fsWatcher: fsWatcher,
		events:    make(chan ReloadEvent, 10),
	}, nil
}

// Events delivers one event per reload. Events are dropped when the channel
// is full. The channel is closed by Stop.
func (w *Watcher) Events() <-chan ReloadEvent {
	return w.events
}

// Start runs the event loop until ctx is done or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if w.running {
		return fmt.Errorf("watcher already running")
	}
	if w.stopChan != nil {
		return fmt.Errorf("watcher cannot be restarted")
	}
	w.running = true
	w.stopChan = make(chan struct{})
	w.done = make(chan struct{})

	go w.loop(ctx)

	log.LogWithFields(log.F("directory", w.dir)).Info("Watching posts")
	return nil
}

func (w *Watcher) loop(ctx context.Context) {
	defer close(w.done)

	var (
		timer   *time.Timer
		fire    <-chan time.Time
		lastEv  fsnotify.Event
		pending bool
	)
	stopTimer := func() {
		if timer != nil {
			timer.Stop()
		}
	}
	defer stopTimer()

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			lastEv, pending = event, true
			stopTimer()
			timer = time.NewTimer(w.debounce)
			fire = timer.C

		case <-fire:
			fire = nil
			if !pending {
				continue
			}
			pending = false
			w.reload(ctx, lastEv)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.LogWithFields(log.F("error", err)).Error("fsnotify watcher error")

		case <-ctx.Done():
			return

		case <-w.stopChan:
			return
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) &&
		!event.Op.Has(fsnotify.Remove) && !event.Op.Has(fsnotify.Rename) {
		return false
	}
	return w.match(filepath.Base(event.Name))
}

func (w *Watcher) reload(ctx context.Context, event fsnotify.Event) {
	err := w.target.Reload(ctx)
	fields := []log.Field{log.F("file", event.Name), log.F("op", event.Op.String())}
	if err != nil {
		log.LogWithFields(fields...).WithError(err).Warn("Posts reloaded with errors")
	} else {
		log.LogWithFields(fields...).Info("Posts reloaded")
	}

	select {
	case w.events <- ReloadEvent{Path: event.Name, Op: event.Op, Err: err, Timestamp: time.Now()}:
	default:
		log.LogWithFields(log.F("file", event.Name)).Warn("Reload channel is full, dropped event")
	}
}

// Stop halts the watcher and closes the Events channel.
func (w *Watcher) Stop() {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if !w.running {
		if w.stopChan == nil {
			w.fsWatcher.Close()
		}
		return
	}
	w.running = false

	close(w.stopChan)
	if err := w.fsWatcher.Close(); err != nil {
		log.LogWithFields(log.F("error", err)).Error("Error closing fsnotify watcher")
	}
	<-w.done
	close(w.events)

	log.Info("Posts watcher stopped")
}
