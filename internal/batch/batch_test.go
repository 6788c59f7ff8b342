package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/cyclopcam/logs"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/chuckvision/internal/estimate"
	"github.com/ironsheep/chuckvision/internal/imaging"
)

// fakeAnalyzer scores each path by its name length and fails on "bad" names
type fakeAnalyzer struct {
	mu      sync.Mutex
	seen    []string
	active  atomic.Int32
	maxSeen atomic.Int32
}

func (f *fakeAnalyzer) AnalyzeFile(path string) (*estimate.Result, error) {
	n := f.active.Add(1)
	defer f.active.Add(-1)
	for {
		m := f.maxSeen.Load()
		if n <= m || f.maxSeen.CompareAndSwap(m, n) {
			break
		}
	}

	f.mu.Lock()
	f.seen = append(f.seen, path)
	f.mu.Unlock()

	if filepath.Base(path) == "bad.jpg" {
		return nil, imaging.ErrInvalidInput
	}
	return &estimate.Result{
		Frame: estimate.Frame{Reference: filepath.Base(path)},
		Score: len(path),
	}, nil
}

func TestRun_OrderAndFailures(t *testing.T) {
	paths := []string{"a/0001.jpg", "a/bad.jpg", "a/0002.jpg", "a/0003.jpg"}
	fa := &fakeAnalyzer{}

	items, err := Run(context.Background(), fa, paths, 2, logs.NewTestingLog(t))
	require.NoError(t, err)
	require.Len(t, items, 4)

	for i, it := range items {
		require.Equal(t, paths[i], it.Path)
	}
	require.ErrorIs(t, items[1].Err, imaging.ErrInvalidInput)
	require.Nil(t, items[1].Result)
	require.Equal(t, "0003.jpg", items[3].Result.Frame.Reference)

	frames := Frames(items)
	require.Len(t, frames, 3)
	require.Equal(t, "0001.jpg", frames[0].Reference)
	require.Equal(t, "0002.jpg", frames[1].Reference)
}

// recordLog keeps warnings so tests can check what a batch reported
type recordLog struct {
	mu    sync.Mutex
	warns []string
}

func (l *recordLog) Close() {}
func (l *recordLog) Debugf(format string, a ...interface{}) {}
func (l *recordLog) Infof(format string, a ...interface{}) {}
func (l *recordLog) Errorf(format string, a ...interface{}) {}
func (l *recordLog) Criticalf(format string, a ...interface{}) {}
func (l *recordLog) Warnf(format string, a ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, fmt.Sprintf(format, a...))
}

func TestRun_CompletedBatchIsNotCancelled(t *testing.T) {
	paths := []string{"a/0001.jpg", "a/bad.jpg", "a/0002.jpg"}
	rec := &recordLog{}

	for _, workers := range []int{1, 4} {
		items, err := Run(context.Background(), &fakeAnalyzer{}, paths, workers, rec)
		require.NoError(t, err)
		for _, it := range items {
			require.NotErrorIs(t, it.Err, context.Canceled, it.Path)
			require.True(t, (it.Result == nil) != (it.Err == nil), it.Path)
		}
	}

	require.Len(t, rec.warns, 2)
	require.Contains(t, rec.warns[0], "bad.jpg Skipping: ")
	require.Contains(t, rec.warns[0], imaging.ErrInvalidInput.Error())
}

func TestRun_RespectsWorkerLimit(t *testing.T) {
	var paths []string
	for i := 0; i < 16; i++ {
		paths = append(paths, filepath.Join("dir", string(rune('a'+i))+".jpg"))
	}
	fa := &fakeAnalyzer{}

	items, err := Run(context.Background(), fa, paths, 3, nil)
	require.NoError(t, err)
	require.Len(t, items, 16)
	require.LessOrEqual(t, fa.maxSeen.Load(), int32(3))
	require.Len(t, fa.seen, 16)
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	items, err := Run(ctx, &fakeAnalyzer{}, []string{"x.jpg", "y.jpg"}, 1, nil)
	require.ErrorIs(t, err, context.Canceled)
	require.Len(t, items, 2)
	for _, it := range items {
		require.True(t, errors.Is(it.Err, context.Canceled))
		require.Nil(t, it.Result)
	}
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"0002.JPG", "0001.jpg", "notes.txt", "0003.png"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.jpg"), 0o755))

	paths, err := Discover(dir)
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(dir, "0001.jpg"),
		filepath.Join(dir, "0002.JPG"),
		filepath.Join(dir, "0003.png"),
	}, paths)

	_, err = Discover(filepath.Join(dir, "missing"))
	require.Error(t, err)
}
