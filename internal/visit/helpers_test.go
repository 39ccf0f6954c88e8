package fsvisit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// makeTree creates the given paths below a temporary directory and returns
// it. Paths ending in "/" become directories, everything else a file.
func makeTree(t testing.TB, paths ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, p := range paths {
		full := filepath.Join(root, filepath.FromSlash(p))
		if strings.HasSuffix(p, "/") {
			require.NoError(t, os.MkdirAll(full, 0755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte("content of "+p), 0644))
	}
	return root
}

// sampleTree is the tree used by most tests:
//
//	a.txt
//	b.txt
//	sub/
//	sub/c.txt
func sampleTree(t testing.TB) string {
	return makeTree(t, "a.txt", "b.txt", "sub/c.txt")
}

// rel converts entries into slash separated paths relative to root.
func rel(t testing.TB, root string, entries []Entry) []string {
	t.Helper()
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		r, err := filepath.Rel(root, e.Path)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(r))
	}
	return out
}

// relPath converts a single absolute path into a slash separated relative one.
func relPath(t testing.TB, root, path string) string {
	t.Helper()
	r, err := filepath.Rel(root, path)
	require.NoError(t, err)
	return filepath.ToSlash(r)
}
