package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moyu-x/vibecleaner/internal"
)

type recorder struct {
	mu      sync.Mutex
	paths   []string
	running atomic.Int32
	overlap atomic.Bool
}

func (r *recorder) HandleCreated(path string) error {
	if r.running.Add(1) > 1 {
		r.overlap.Store(true)
	}
	defer r.running.Add(-1)

	time.Sleep(20 * time.Millisecond)
	r.mu.Lock()
	r.paths = append(r.paths, path)
	r.mu.Unlock()
	return nil
}

func (r *recorder) seen() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.paths...)
}

func start(t *testing.T, dir string, handler Handler) context.CancelFunc {
	t.Helper()
	w, err := New(dir, 10*time.Millisecond, handler)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		assert.NoError(t, w.Run(ctx))
	}()

	return func() {
		cancel()
		<-done
	}
}

func TestWatcher_HandlesCreatedFiles(t *testing.T) {
	dir := t.TempDir()
	rec := &recorder{}
	stop := start(t, dir, rec)
	defer stop()

	for _, name := range []string{"a.pdf", "b.jpg", "c.zip"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(name), 0644))
	}

	require.Eventually(t, func() bool {
		return len(rec.seen()) >= 3
	}, 5*time.Second, 20*time.Millisecond)

	assert.Contains(t, rec.seen(), filepath.Join(dir, "b.jpg"))
	assert.False(t, rec.overlap.Load(), "handler must not run concurrently")
}

func TestWatcher_IgnoresDirectories(t *testing.T) {
	dir := t.TempDir()
	rec := &recorder{}
	stop := start(t, dir, rec)
	defer stop()

	require.NoError(t, os.Mkdir(filepath.Join(dir, "Images"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "after.txt"), []byte("x"), 0644))

	require.Eventually(t, func() bool {
		return len(rec.seen()) >= 1
	}, 5*time.Second, 20*time.Millisecond)

	assert.Equal(t, []string{filepath.Join(dir, "after.txt")}, rec.seen())
}

func TestWatcher_HandlerFunc(t *testing.T) {
	dir := t.TempDir()
	got := make(chan string, 1)
	stop := start(t, dir, HandlerFunc(func(path string) error {
		got <- path
		return nil
	}))
	defer stop()

	target := filepath.Join(dir, "movie.mkv")
	require.NoError(t, os.WriteFile(target, nil, 0644))

	select {
	case path := <-got:
		assert.Equal(t, target, path)
	case <-time.After(5 * time.Second):
		t.Fatal("handler was not called")
	}
}

func TestNew_MissingDir(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing"), 0, HandlerFunc(func(string) error { return nil }))
	assert.ErrorIs(t, err, internal.ErrNotFound)
}
