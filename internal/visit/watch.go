package fsvisit

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatchEvent represents a filesystem event type
type WatchEvent string

// Watch event types
const (
	EventCreate WatchEvent = "create"
	EventModify WatchEvent = "modify"
	EventDelete WatchEvent = "delete"
	EventRename WatchEvent = "rename"
	EventChmod  WatchEvent = "chmod"
)

// ParseWatchEvent converts a user supplied event name into a WatchEvent.
func ParseWatchEvent(s string) (WatchEvent, error) {
	switch s {
	case "create":
		return EventCreate, nil
	case "write", "modify":
		return EventModify, nil
	case "remove", "delete":
		return EventDelete, nil
	case "rename":
		return EventRename, nil
	case "chmod":
		return EventChmod, nil
	default:
		return "", fmt.Errorf("unknown event type: %s", s)
	}
}

// WatchOptions defines options for watching filesystem changes
type WatchOptions struct {
	// Events to watch for. If empty, all events are watched.
	Events []WatchEvent

	// Whether to watch subdirectories recursively
	Recursive bool

	// Filter applied to the changed entry; nil accepts everything
	Filter Filter

	// Walker options used when registering subdirectories
	Walker WalkerOptions

	// Timeout duration (0 means no timeout)
	Timeout time.Duration
}

// WatchMessage contains information about a filesystem event
type WatchMessage struct {
	Entry Entry      // Changed entry; deleted entries are reported as files
	Event WatchEvent // Event type
	Time  time.Time  // When the event was received
}

// WatchResult represents a watch event result
type WatchResult struct {
	Message WatchMessage
	Error   error
}

// WatchHandler is a function that processes watch events
type WatchHandler func(ctx context.Context, result WatchResult) error

var eventOps = map[WatchEvent]fsnotify.Op{
	EventCreate: fsnotify.Create,
	EventModify: fsnotify.Write,
	EventDelete: fsnotify.Remove,
	EventRename: fsnotify.Rename,
	EventChmod:  fsnotify.Chmod,
}

// eventOrder is the precedence used when fsnotify merges several ops.
var eventOrder = []WatchEvent{EventCreate, EventModify, EventDelete, EventRename, EventChmod}

// Watch monitors root for changes and calls handler for each one until ctx
// is done or the timeout elapses. Errors from the watcher and from handler
// are passed back to handler as results carrying an Error.
func Watch(ctx context.Context, root string, opts WatchOptions, handler WatchHandler) error {
	if handler == nil {
		return fmt.Errorf("watch %s: nil handler", root)
	}

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("error creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(root); err != nil {
		return fmt.Errorf("error watching directory %s: %w", root, err)
	}
	if opts.Recursive {
		if err := addTree(watcher, root, opts.Walker); err != nil {
			return fmt.Errorf("error walking directory tree: %w", err)
		}
	}

	wanted := make(map[WatchEvent]bool)
	if len(opts.Events) == 0 {
		for _, e := range eventOrder {
			wanted[e] = true
		}
	}
	for _, e := range opts.Events {
		wanted[e] = true
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			handler(ctx, WatchResult{Error: fmt.Errorf("watcher error: %w", err)})

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			var eventType WatchEvent
			for _, e := range eventOrder {
				if wanted[e] && event.Has(eventOps[e]) {
					eventType = e
					break
				}
			}

			// New directories are registered whether or not their event was asked for.
			entry := Entry{Path: event.Name, Kind: KindFile}
			if !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					entry.Kind = KindDirectory
					if opts.Recursive && event.Has(fsnotify.Create) {
						if err := watcher.Add(event.Name); err != nil {
							handler(ctx, WatchResult{Error: fmt.Errorf("error watching new directory %s: %w", event.Name, err)})
						} else if err := addTree(watcher, event.Name, opts.Walker); err != nil {
							handler(ctx, WatchResult{Error: fmt.Errorf("error watching new directory %s: %w", event.Name, err)})
						}
					}
				}
			}

			if eventType == "" {
				continue
			}

			if opts.Filter != nil {
				ok, err := opts.Filter(entry)
				if err != nil {
					handler(ctx, WatchResult{Error: &FilterError{Entry: entry, Err: err}})
					continue
				}
				if !ok {
					continue
				}
			}

			msg := WatchMessage{Entry: entry, Event: eventType, Time: time.Now()}
			if err := handler(ctx, WatchResult{Message: msg}); err != nil {
				handler(ctx, WatchResult{Error: fmt.Errorf("error handling event: %w", err)})
			}
		}
	}
}

// addTree registers every directory below root with the watcher.
func addTree(watcher *fsnotify.Watcher, root string, opts WalkerOptions) error {
	w := NewWalker(root, opts)
	for w.Scan() {
		if e := w.Entry(); e.IsDir() {
			if err := watcher.Add(e.Path); err != nil {
				return err
			}
		}
	}
	return w.Err()
}
