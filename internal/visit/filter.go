package fsvisit

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// Filter decides whether an entry is accepted. An error aborts the traversal.
type Filter func(e Entry) (bool, error)

// Predicate adapts a function that cannot fail into a Filter.
func Predicate(fn func(e Entry) bool) Filter {
	return func(e Entry) (bool, error) {
		return fn(e), nil
	}
}

// All returns a Filter that accepts an entry only when every filter does.
// Nil filters are ignored, and evaluation stops at the first rejection.
func All(filters ...Filter) Filter {
	return func(e Entry) (bool, error) {
		for _, f := range filters {
			if f == nil {
				continue
			}
			ok, err := f(e)
			if err != nil || !ok {
				return false, err
			}
		}
		return true, nil
	}
}

// KindFilter restricts which kinds of entries a FilterOptions accepts.
type KindFilter int

const (
	AnyKind KindFilter = iota
	FilesOnly
	DirectoriesOnly
)

// FilterOptions defines criteria for accepting entries.
type FilterOptions struct {
	Pattern        string         // Glob matched against the base name
	Regex          *regexp.Regexp // Matched against the full path
	IncludeTypes   []string       // File extensions to accept (e.g. ".txt"); directories are not affected
	ExcludeNames   []string       // Glob patterns of base names to reject
	Kind           KindFilter     // Restrict to files or directories
	ExcludeHidden  bool           // Reject names starting with "."
	MinSize        int64          // Minimum file size in bytes
	MaxSize        int64          // Maximum file size in bytes
	ModifiedAfter  time.Time      // Only accept entries modified after
	ModifiedBefore time.Time      // Only accept entries modified before
}

// needsStat reports whether evaluating the options requires an lstat call.
func (o FilterOptions) needsStat() bool {
	return o.MinSize > 0 || o.MaxSize > 0 || !o.ModifiedAfter.IsZero() || !o.ModifiedBefore.IsZero()
}

// IsZero reports whether opts accept every entry.
func (o FilterOptions) IsZero() bool {
	return o.Pattern == "" && o.Regex == nil && len(o.IncludeTypes) == 0 && len(o.ExcludeNames) == 0 &&
		o.Kind == AnyKind && !o.ExcludeHidden && !o.needsStat()
}

// NewFilter builds a Filter from opts.
func NewFilter(opts FilterOptions) Filter {
	return func(e Entry) (bool, error) {
		return matchEntry(opts, e)
	}
}

// matchEntry checks a single entry against the options.
func matchEntry(opts FilterOptions, e Entry) (bool, error) {
	name := norm.NFC.String(e.Name())

	switch opts.Kind {
	case FilesOnly:
		if e.IsDir() {
			return false, nil
		}
	case DirectoriesOnly:
		if !e.IsDir() {
			return false, nil
		}
	}

	if opts.ExcludeHidden && isHidden(name) {
		return false, nil
	}

	if opts.Pattern != "" {
		matched, err := filepath.Match(norm.NFC.String(opts.Pattern), name)
		if err != nil {
			return false, err
		}
		if !matched {
			return false, nil
		}
	}

	for _, exclude := range opts.ExcludeNames {
		matched, err := filepath.Match(norm.NFC.String(exclude), name)
		if err != nil {
			return false, err
		}
		if matched {
			return false, nil
		}
	}

	if opts.Regex != nil && !opts.Regex.MatchString(norm.NFC.String(e.Path)) {
		return false, nil
	}

	if len(opts.IncludeTypes) > 0 && !e.IsDir() {
		ext := filepath.Ext(name)
		var found bool
		for _, typ := range opts.IncludeTypes {
			if strings.EqualFold(ext, typ) {
				found = true
				break
			}
		}
		if !found {
			return false, nil
		}
	}

	if !opts.needsStat() {
		return true, nil
	}

	info, err := os.Lstat(e.Path)
	if err != nil {
		return false, err
	}

	if !e.IsDir() {
		if opts.MinSize > 0 && info.Size() < opts.MinSize {
			return false, nil
		}
		if opts.MaxSize > 0 && info.Size() > opts.MaxSize {
			return false, nil
		}
	}

	if !opts.ModifiedAfter.IsZero() && info.ModTime().Before(opts.ModifiedAfter) {
		return false, nil
	}
	if !opts.ModifiedBefore.IsZero() && info.ModTime().After(opts.ModifiedBefore) {
		return false, nil
	}
	return true, nil
}

// isHidden checks if a base name denotes a hidden file.
func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
