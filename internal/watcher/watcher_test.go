package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilters(t *testing.T) {
	assert.True(t, TemplateFilter("templates/proposal.yaml"))
	assert.False(t, TemplateFilter("templates/proposal.yml"))
	assert.False(t, TemplateFilter("templates/readme.md"))

	assert.True(t, NoFixtureFilter("templates/proposal.yaml"))
	assert.False(t, NoFixtureFilter("templates/TEMPLATE_SCHEMA.yaml"))
	assert.False(t, NoFixtureFilter("templates/readme.yaml"))
	assert.False(t, NoFixtureFilter("templates/sample.example.yaml"))
	assert.False(t, NoFixtureFilter("templates/test_one.yaml"))
	assert.False(t, NoFixtureFilter("templates/one_test.yaml"))

	assert.True(t, NoHiddenFilter("templates/proposal.yaml"))
	assert.False(t, NoHiddenFilter("templates/.proposal.yaml.swp"))
	assert.False(t, NoHiddenFilter("templates/proposal.yaml~"))
}

func TestEventTypeString(t *testing.T) {
	assert.Equal(t, "created", EventTypeCreated.String())
	assert.Equal(t, "modified", EventTypeModified.String())
	assert.Equal(t, "deleted", EventTypeDeleted.String())
	assert.Equal(t, "renamed", EventTypeRenamed.String())
	assert.Equal(t, "unknown", EventType(99).String())
}

func TestWatcher_DebouncedBatch(t *testing.T) {
	dir := t.TempDir()

	fw, err := NewFileWatcher(50 * time.Millisecond)
	require.NoError(t, err)
	defer fw.Stop()

	fw.AddFilter(TemplateFilter)

	var mu sync.Mutex
	var batches [][]ChangeEvent
	done := make(chan struct{}, 1)
	fw.AddHandler(func(events []ChangeEvent) error {
		mu.Lock()
		batches = append(batches, events)
		mu.Unlock()
		select {
		case done <- struct{}{}:
		default:
		}
		return nil
	})

	require.NoError(t, fw.AddRecursive(dir))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	fw.Start(ctx)

	// A burst of writes to one file collapses into a single event
	path := filepath.Join(dir, "proposal.yaml")
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte("template_id: x\n"), 0644))
		time.Sleep(5 * time.Millisecond)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("no debounced batch arrived")
	}

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, batches)
	first := batches[0]
	require.Len(t, first, 1)
	assert.Equal(t, path, first[0].Path)
}

func TestWatcher_FilteredEventsDropped(t *testing.T) {
	dir := t.TempDir()

	fw, err := NewFileWatcher(30 * time.Millisecond)
	require.NoError(t, err)
	defer fw.Stop()

	fw.AddFilter(TemplateFilter)
	fw.AddFilter(NoFixtureFilter)

	got := make(chan []ChangeEvent, 1)
	fw.AddHandler(func(events []ChangeEvent) error {
		select {
		case got <- events:
		default:
		}
		return nil
	})

	require.NoError(t, fw.AddRecursive(dir))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	fw.Start(ctx)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "test_fixture.yaml"), []byte("x"), 0644))

	select {
	case events := <-got:
		t.Fatalf("expected no batch, got %v", events)
	case <-time.After(300 * time.Millisecond):
	}
}
