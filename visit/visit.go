package visit

import (
	"context"

	internal "github.com/TFMV/fsvisit/internal/visit"
	"go.uber.org/zap"
)

// Re-export all the types from the internal package
type (
	// Entry is one filesystem node discovered during traversal.
	Entry = internal.Entry

	// Kind tells files and directories apart.
	Kind = internal.Kind

	// Visitor walks a tree, fires notifications and keeps accepted entries.
	Visitor = internal.Visitor

	// Options configures a Visitor.
	Options = internal.Options

	// Control is the run-time control surface shared with handlers.
	Control = internal.Control

	// Enumerator iterates forward over accepted entries.
	Enumerator = internal.Enumerator

	// Walker produces entries in depth-first pre-order.
	Walker = internal.Walker

	// WalkerOptions controls how directories are read.
	WalkerOptions = internal.WalkerOptions

	// Filter decides whether an entry is accepted.
	Filter = internal.Filter

	// FilterOptions defines criteria for building a Filter.
	FilterOptions = internal.FilterOptions

	// KindFilter restricts a FilterOptions to files or directories.
	KindFilter = internal.KindFilter

	// Observer receives every notification a Visitor fires.
	Observer = internal.Observer

	// NopObserver implements Observer with empty methods.
	NopObserver = internal.NopObserver

	// EventHandler handles notifications without a payload.
	EventHandler = internal.EventHandler

	// EntryHandler handles notifications carrying a path.
	EntryHandler = internal.EntryHandler

	// LogLevel defines the verbosity of logging.
	LogLevel = internal.LogLevel

	// IOError is returned when the filesystem cannot be read.
	IOError = internal.IOError

	// FilterError is returned when a Filter fails.
	FilterError = internal.FilterError

	// Re-export watch types
	WatchEvent   = internal.WatchEvent
	WatchOptions = internal.WatchOptions
	WatchMessage = internal.WatchMessage
	WatchResult  = internal.WatchResult
	WatchHandler = internal.WatchHandler
)

// Re-export all the constants
const (
	KindFile      = internal.KindFile
	KindDirectory = internal.KindDirectory

	AnyKind         = internal.AnyKind
	FilesOnly       = internal.FilesOnly
	DirectoriesOnly = internal.DirectoriesOnly

	LogLevelError = internal.LogLevelError
	LogLevelWarn  = internal.LogLevelWarn
	LogLevelInfo  = internal.LogLevelInfo
	LogLevelDebug = internal.LogLevelDebug

	EventCreate = internal.EventCreate
	EventModify = internal.EventModify
	EventDelete = internal.EventDelete
	EventRename = internal.EventRename
	EventChmod  = internal.EventChmod
)

// ErrInvalidState is returned when an Enumerator is read outside its range.
var ErrInvalidState = internal.ErrInvalidState

// New returns a Visitor rooted at root.
func New(root string, opts Options) *Visitor {
	return internal.New(root, opts)
}

// NewWalker returns a Walker rooted at root.
func NewWalker(root string, opts WalkerOptions) *Walker {
	return internal.NewWalker(root, opts)
}

// Walk returns every entry below root in traversal order.
func Walk(root string, opts WalkerOptions) ([]Entry, error) {
	return internal.Walk(root, opts)
}

// Predicate adapts a function that cannot fail into a Filter.
func Predicate(fn func(e Entry) bool) Filter {
	return internal.Predicate(fn)
}

// NewFilter builds a Filter from opts.
func NewFilter(opts FilterOptions) Filter {
	return internal.NewFilter(opts)
}

// All returns a Filter that accepts an entry only when every filter does.
func All(filters ...Filter) Filter {
	return internal.All(filters...)
}

// Format replaces placeholders in template with values from e.
func Format(template string, e Entry) string {
	return internal.Format(template, e)
}

// NewLoggingObserver returns an Observer that logs each notification.
func NewLoggingObserver(logger *zap.Logger) Observer {
	return internal.NewLoggingObserver(logger)
}

// Watch monitors a directory for filesystem changes
func Watch(ctx context.Context, root string, opts WatchOptions, handler WatchHandler) error {
	return internal.Watch(ctx, root, opts, handler)
}

// ParseWatchEvent converts an event name into a WatchEvent.
func ParseWatchEvent(s string) (WatchEvent, error) {
	return internal.ParseWatchEvent(s)
}
