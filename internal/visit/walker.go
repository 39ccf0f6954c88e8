package fsvisit

import (
	"iter"
	"path/filepath"
	"slices"
	"strings"

	"github.com/karrick/godirwalk"
)

// scratchBufferSize is the size of the buffer reused for every directory read.
const scratchBufferSize = 16 * 1024

// WalkerOptions controls how the Walker reads directories.
type WalkerOptions struct {
	// FollowSymlinks reports symbolic links to directories as directories and
	// descends into them. There is no cycle detection: a link back to an
	// ancestor makes the walk unbounded.
	FollowSymlinks bool

	// Sorted orders files and subdirectories by name within each directory.
	// When false the order is whatever the filesystem returns.
	Sorted bool
}

// cursor tracks the walker's position inside one directory.
type cursor struct {
	dir    string
	loaded bool
	files  []Entry
	dirs   []Entry
	fi, di int
}

// Walker produces a depth-first, pre-order sequence of entries below a root
// directory. Within a directory all files come first, then each
// subdirectory followed by its own contents. The root is not yielded.
//
// Directories are read lazily, the first time the walker needs their
// contents. A Walker is single use.
type Walker struct {
	opts    WalkerOptions
	stack   []*cursor
	current Entry
	scratch []byte
	err     error
}

// NewWalker returns a Walker rooted at root.
func NewWalker(root string, opts WalkerOptions) *Walker {
	w := &Walker{opts: opts}
	abs, err := filepath.Abs(root)
	if err != nil {
		w.err = &IOError{Op: "abs", Path: root, Err: err}
		return w
	}
	w.stack = []*cursor{{dir: abs}}
	return w
}

// Scan advances to the next entry. It returns false when the tree is
// exhausted or a directory could not be read; Err tells the two apart.
func (w *Walker) Scan() bool {
	if w.err != nil {
		return false
	}
	for len(w.stack) > 0 {
		top := w.stack[len(w.stack)-1]
		if !top.loaded {
			if err := w.load(top); err != nil {
				w.err = err
				w.stack = nil
				return false
			}
		}

		if top.fi < len(top.files) {
			w.current = top.files[top.fi]
			top.fi++
			return true
		}

		if top.di < len(top.dirs) {
			w.current = top.dirs[top.di]
			top.di++
			// Descend on the next call, after the directory itself is yielded.
			w.stack = append(w.stack, &cursor{dir: w.current.Path})
			return true
		}

		w.stack = w.stack[:len(w.stack)-1]
	}
	return false
}

// Entry returns the entry produced by the last successful Scan.
func (w *Walker) Entry() Entry {
	return w.current
}

// Err returns the error that stopped the walk, if any.
func (w *Walker) Err() error {
	return w.err
}

// All returns the remaining entries as a sequence. A read failure is yielded
// once with a zero Entry and ends the sequence.
func (w *Walker) All() iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		for w.Scan() {
			if !yield(w.current, nil) {
				return
			}
		}
		if w.err != nil {
			yield(Entry{}, w.err)
		}
	}
}

// load reads a directory and splits its children into files and subdirectories.
func (w *Walker) load(c *cursor) error {
	if w.scratch == nil {
		w.scratch = make([]byte, scratchBufferSize)
	}
	dirents, err := godirwalk.ReadDirents(c.dir, w.scratch)
	if err != nil {
		return &IOError{Op: "readdir", Path: c.dir, Err: err}
	}

	for _, de := range dirents {
		path := filepath.Join(c.dir, de.Name())
		isDir := de.IsDir()
		if !isDir && w.opts.FollowSymlinks && de.IsSymlink() {
			// A dangling link stays a file.
			if ok, err := de.IsDirOrSymlinkToDir(); err == nil {
				isDir = ok
			}
		}
		if isDir {
			c.dirs = append(c.dirs, Entry{Path: path, Kind: KindDirectory})
		} else {
			c.files = append(c.files, Entry{Path: path, Kind: KindFile})
		}
	}

	if w.opts.Sorted {
		byPath := func(a, b Entry) int { return strings.Compare(a.Path, b.Path) }
		slices.SortFunc(c.files, byPath)
		slices.SortFunc(c.dirs, byPath)
	}
	c.loaded = true
	return nil
}

// Walk returns every entry below root in walker order. On failure it returns
// the entries produced before the error.
func Walk(root string, opts WalkerOptions) ([]Entry, error) {
	w := NewWalker(root, opts)
	var entries []Entry
	for w.Scan() {
		entries = append(entries, w.Entry())
	}
	return entries, w.Err()
}
