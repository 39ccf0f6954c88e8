package fsvisit

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFilter(t *testing.T) {
	root := makeTree(t, "small.txt", "notes.md", ".hidden.txt", "src/main.go", "caf\u00e9.txt")

	file := func(name string) Entry {
		return Entry{Path: filepath.Join(root, filepath.FromSlash(name)), Kind: KindFile}
	}
	dir := func(name string) Entry {
		return Entry{Path: filepath.Join(root, name), Kind: KindDirectory}
	}

	tests := []struct {
		name     string
		opts     FilterOptions
		entry    Entry
		expected bool
	}{
		{name: "No options", opts: FilterOptions{}, entry: file("small.txt"), expected: true},
		{name: "Hidden accepted by default", opts: FilterOptions{}, entry: file(".hidden.txt"), expected: true},
		{name: "Hidden excluded", opts: FilterOptions{ExcludeHidden: true}, entry: file(".hidden.txt"), expected: false},
		{name: "Pattern match", opts: FilterOptions{Pattern: "*.txt"}, entry: file("small.txt"), expected: true},
		{name: "Pattern miss", opts: FilterOptions{Pattern: "*.txt"}, entry: file("notes.md"), expected: false},
		{name: "Pattern applies to directories", opts: FilterOptions{Pattern: "*.txt"}, entry: dir("src"), expected: false},
		{name: "Pattern with decomposed accent", opts: FilterOptions{Pattern: "cafe\u0301.txt"}, entry: file("caf\u00e9.txt"), expected: true},
		{name: "Exclude name", opts: FilterOptions{ExcludeNames: []string{"*.md"}}, entry: file("notes.md"), expected: false},
		{name: "Exclude other name", opts: FilterOptions{ExcludeNames: []string{"*.md"}}, entry: file("small.txt"), expected: true},
		{name: "Regex on path", opts: FilterOptions{Regex: regexp.MustCompile(`src/.*\.go$`)}, entry: file("src/main.go"), expected: true},
		{name: "Regex miss", opts: FilterOptions{Regex: regexp.MustCompile(`\.rs$`)}, entry: file("src/main.go"), expected: false},
		{name: "Include type", opts: FilterOptions{IncludeTypes: []string{".go"}}, entry: file("src/main.go"), expected: true},
		{name: "Include type is case insensitive", opts: FilterOptions{IncludeTypes: []string{".TXT"}}, entry: file("small.txt"), expected: true},
		{name: "Exclude type", opts: FilterOptions{IncludeTypes: []string{".go"}}, entry: file("small.txt"), expected: false},
		{name: "Include type ignores directories", opts: FilterOptions{IncludeTypes: []string{".go"}}, entry: dir("src"), expected: true},
		{name: "Files only", opts: FilterOptions{Kind: FilesOnly}, entry: dir("src"), expected: false},
		{name: "Directories only", opts: FilterOptions{Kind: DirectoriesOnly}, entry: dir("src"), expected: true},
		{name: "Directories only rejects files", opts: FilterOptions{Kind: DirectoriesOnly}, entry: file("small.txt"), expected: false},
		{name: "Min size too large", opts: FilterOptions{MinSize: 1024}, entry: file("small.txt"), expected: false},
		{name: "Max size too small", opts: FilterOptions{MaxSize: 1}, entry: file("small.txt"), expected: false},
		{name: "Size within range", opts: FilterOptions{MinSize: 1, MaxSize: 1024}, entry: file("small.txt"), expected: true},
		{name: "Size ignores directories", opts: FilterOptions{MinSize: 1 << 30}, entry: dir("src"), expected: true},
		{name: "Modified after future", opts: FilterOptions{ModifiedAfter: time.Now().Add(time.Hour)}, entry: file("small.txt"), expected: false},
		{name: "Modified before future", opts: FilterOptions{ModifiedBefore: time.Now().Add(time.Hour)}, entry: file("small.txt"), expected: true},
		{name: "Modified before past", opts: FilterOptions{ModifiedBefore: time.Now().Add(-time.Hour)}, entry: file("small.txt"), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := NewFilter(tt.opts)(tt.entry)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ok)
		})
	}
}

func TestFilterOptionsIsZero(t *testing.T) {
	assert.True(t, FilterOptions{}.IsZero())
	assert.True(t, FilterOptions{IncludeTypes: []string{}}.IsZero())
	assert.False(t, FilterOptions{Pattern: "*"}.IsZero())
	assert.False(t, FilterOptions{ExcludeHidden: true}.IsZero())
	assert.False(t, FilterOptions{Kind: FilesOnly}.IsZero())
	assert.False(t, FilterOptions{ModifiedAfter: time.Now()}.IsZero())
	assert.False(t, FilterOptions{Regex: regexp.MustCompile(".")}.IsZero())
}

func TestNewFilterLargeFile(t *testing.T) {
	root := t.TempDir()
	big := filepath.Join(root, "big.bin")
	require.NoError(t, os.WriteFile(big, make([]byte, 4096), 0644))

	ok, err := NewFilter(FilterOptions{MinSize: 1024})(Entry{Path: big, Kind: KindFile})
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestNewFilterStatError(t *testing.T) {
	missing := Entry{Path: filepath.Join(t.TempDir(), "gone.txt"), Kind: KindFile}

	_, err := NewFilter(FilterOptions{MaxSize: 10})(missing)
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	ok, err := NewFilter(FilterOptions{Pattern: "*.txt"})(missing)
	require.NoError(t, err, "name checks do not touch the filesystem")
	assert.True(t, ok)
}

func TestNewFilterBadPattern(t *testing.T) {
	_, err := NewFilter(FilterOptions{Pattern: "["})(Entry{Path: "/x/a.txt"})
	assert.ErrorIs(t, err, filepath.ErrBadPattern)
}

func TestNewFilterBadExcludeName(t *testing.T) {
	_, err := NewFilter(FilterOptions{ExcludeNames: []string{"*.md", "["}})(Entry{Path: "/x/a.txt"})
	assert.ErrorIs(t, err, filepath.ErrBadPattern)
}

func TestAllFilters(t *testing.T) {
	e := Entry{Path: "/tmp/report.txt", Kind: KindFile}
	yes := Predicate(func(Entry) bool { return true })
	no := Predicate(func(Entry) bool { return false })
	boom := errors.New("boom")
	failing := Filter(func(Entry) (bool, error) { return false, boom })

	tests := []struct {
		name     string
		filters  []Filter
		expected bool
		err      error
	}{
		{name: "Empty", filters: nil, expected: true},
		{name: "All accept", filters: []Filter{yes, yes}, expected: true},
		{name: "One rejects", filters: []Filter{yes, no}, expected: false},
		{name: "Nil ignored", filters: []Filter{nil, yes}, expected: true},
		{name: "Error propagates", filters: []Filter{yes, failing}, expected: false, err: boom},
		{name: "Rejection short circuits", filters: []Filter{no, failing}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := All(tt.filters...)(e)
			assert.ErrorIs(t, err, tt.err)
			assert.Equal(t, tt.expected, ok)
		})
	}
}
