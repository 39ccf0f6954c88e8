// Package fsvisit enumerates the files and directories below a root path,
// filters them and notifies subscribers as each one is discovered.
package fsvisit

import (
	"context"
	"iter"
	"slices"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Options configures a Visitor.
type Options struct {
	Filter   Filter        // nil accepts every entry
	Walker   WalkerOptions // Directory reading behaviour
	Logger   *zap.Logger   // Created from LogLevel when nil
	LogLevel LogLevel
}

// Visitor walks a directory tree, fires notifications for every entry and
// keeps the entries it accepts.
//
// Results accumulate across calls to Execute; use ClearResults to start
// over. A Visitor is not safe for concurrent use.
type Visitor struct {
	root     string
	filter   Filter
	walkOpts WalkerOptions
	logger   *zap.Logger
	handlers handlers

	control       Control
	stopRequested bool
	results       []Entry
}

// New returns a Visitor rooted at root.
func New(root string, opts Options) *Visitor {
	logger := opts.Logger
	if logger == nil {
		logger = createLogger(opts.LogLevel)
	}
	return &Visitor{
		root:     root,
		filter:   opts.Filter,
		walkOpts: opts.Walker,
		logger:   logger,
	}
}

// Root returns the path the Visitor was created with.
func (v *Visitor) Root() string {
	return v.root
}

// Control returns the control surface shared with the handlers.
func (v *Visitor) Control() *Control {
	return &v.control
}

// Execute performs one traversal pass.
//
// The start notification fires first. Each entry then fires a found
// notification (the filtered variant when a filter is configured) before
// the accept decision. An entry is accepted when it is not marked with
// Skip and the filter, if any, returns true. A Stop request is recognised
// once the current entry is done. The finish notification fires when the
// walk is exhausted or stopped.
//
// Execute clears the Control flags when it starts, so Stop or Skip set
// before the call are discarded. Accepted entries from earlier passes are
// kept; use ClearResults to drop them.
//
// A read failure returns an *IOError and a failing filter a *FilterError;
// either way the finish notification does not fire and the entries
// accepted so far are kept. A cancelled ctx aborts the same way.
func (v *Visitor) Execute(ctx context.Context) error {
	logger := v.logger.With(zap.String("root", v.root), zap.String("run_id", uuid.NewString()))
	defer logger.Sync()

	v.control = Control{}
	v.stopRequested = false
	before := len(v.results)

	logger.Debug("traversal started", zap.Bool("filtered", v.filter != nil))
	fire(v.handlers.start, &v.control)

	var processed int
	w := NewWalker(v.root, v.walkOpts)
	for !v.stopRequested && w.Scan() {
		if err := ctx.Err(); err != nil {
			logger.Warn("traversal canceled", zap.Error(err))
			return err
		}
		if err := v.process(w.Entry()); err != nil {
			logger.Error("filter failed", zap.Error(err))
			return err
		}
		processed++
	}
	if err := w.Err(); err != nil {
		logger.Error("traversal aborted", zap.Error(err), zap.Int("processed", processed))
		return err
	}

	logger.Debug("traversal finished",
		zap.Int("processed", processed),
		zap.Int("accepted", len(v.results)-before),
		zap.Bool("stopped", v.stopRequested),
	)
	fire(v.handlers.finish, &v.control)
	return nil
}

// process handles a single entry.
func (v *Visitor) process(e Entry) error {
	if v.filter == nil {
		if e.IsDir() {
			fireEntry(v.handlers.dir, &v.control, e.Path)
		} else {
			fireEntry(v.handlers.file, &v.control, e.Path)
		}
	} else {
		if e.IsDir() {
			fireEntry(v.handlers.filteredDir, &v.control, e.Path)
		} else {
			fireEntry(v.handlers.filteredFile, &v.control, e.Path)
		}
	}

	accept := !v.control.skip
	if accept && v.filter != nil {
		ok, err := v.filter(e)
		if err != nil {
			return &FilterError{Entry: e, Err: err}
		}
		accept = ok
	}
	if accept {
		v.results = append(v.results, e)
	} else {
		v.logger.Debug("entry rejected", zap.String("path", e.Path), zap.Bool("skipped", v.control.skip))
	}

	v.control.skip = false
	v.stopRequested = v.control.stop
	return nil
}

// Len returns the number of accepted entries.
func (v *Visitor) Len() int {
	return len(v.results)
}

// Results returns a copy of the accepted entries in traversal order.
func (v *Visitor) Results() []Entry {
	return slices.Clone(v.results)
}

// ClearResults drops every accepted entry.
func (v *Visitor) ClearResults() {
	v.results = nil
}

// All returns the accepted entries as a sequence.
func (v *Visitor) All() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		e := v.Enumerator()
		for e.MoveNext() {
			cur, _ := e.Current()
			if !yield(cur) {
				return
			}
		}
	}
}
