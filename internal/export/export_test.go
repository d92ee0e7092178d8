package export

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/ozanyurt/darkroom/internal/buffer"
	"github.com/ozanyurt/darkroom/internal/document"
)

// fakeEncoder counts concurrent calls and fails on selected ids.
type fakeEncoder struct {
	mu      sync.Mutex
	active  int
	peak    int
	calls   int
	failIDs map[string]bool
}

func (e *fakeEncoder) Ext() string { return ".jpg" }

func (e *fakeEncoder) Encode(b *buffer.Buffer, path string) error {
	e.mu.Lock()
	e.calls++
	e.active++
	if e.active > e.peak {
		e.peak = e.active
	}
	id := filepath.Base(path)
	fail := e.failIDs[id]
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.active--
		e.mu.Unlock()
	}()

	if fail {
		return fmt.Errorf("refusing to encode %s", id)
	}
	return nil
}

func makeDocs(t *testing.T, n int) []*document.Document {
	t.Helper()
	docs := make([]*document.Document, n)
	for i := range docs {
		doc, err := document.Open(buffer.NewUniform(8, 8, 100, 100, 100))
		if err != nil {
			t.Fatal(err)
		}
		docs[i] = doc
	}
	return docs
}

func TestAllContinuesPastFailures(t *testing.T) {
	docs := makeDocs(t, 5)
	enc := &fakeEncoder{failIDs: map[string]bool{docs[2].ID() + ".jpg": true}}

	results := All(context.Background(), docs, t.TempDir(), enc, 2)

	if len(results) != 5 {
		t.Fatalf("got %d results, want 5", len(results))
	}
	var failed int
	for i, res := range results {
		if res.ID != docs[i].ID() {
			t.Errorf("result %d: id %s, want %s (input order)", i, res.ID, docs[i].ID())
		}
		if res.Err != nil {
			failed++
			if i != 2 {
				t.Errorf("result %d failed unexpectedly: %v", i, res.Err)
			}
		}
	}
	if failed != 1 {
		t.Errorf("got %d failures, want exactly 1", failed)
	}
	if enc.calls != 5 {
		t.Errorf("encoder ran %d times, want 5: one failure must not abort siblings", enc.calls)
	}
}

func TestAllBoundsConcurrency(t *testing.T) {
	docs := makeDocs(t, 8)
	enc := &fakeEncoder{}

	All(context.Background(), docs, t.TempDir(), enc, 3)

	if enc.peak > 3 {
		t.Errorf("peak concurrency %d exceeded the worker bound 3", enc.peak)
	}
}

func TestAllHonorsCancellation(t *testing.T) {
	docs := makeDocs(t, 4)
	enc := &fakeEncoder{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := All(ctx, docs, t.TempDir(), enc, 1)
	for i, res := range results {
		if !errors.Is(res.Err, context.Canceled) {
			t.Errorf("result %d: got %v, want context.Canceled", i, res.Err)
		}
	}
}

func TestAllEmptyBatch(t *testing.T) {
	results := All(context.Background(), nil, t.TempDir(), &fakeEncoder{}, 4)
	if len(results) != 0 {
		t.Errorf("empty batch should produce no results, got %d", len(results))
	}
}

func TestFileEncoderWritesReadableFiles(t *testing.T) {
	docs := makeDocs(t, 1)
	dir := t.TempDir()

	results := All(context.Background(), docs, dir, &FileEncoder{Format: "png"}, 1)
	if err := results[0].Err; err != nil {
		t.Fatal(err)
	}

	img, err := imaging.Open(results[0].Path)
	if err != nil {
		t.Fatalf("reopening exported file: %v", err)
	}
	got := buffer.FromImage(img)
	if !buffer.Equal(got, docs[0].Current()) {
		t.Error("PNG round trip must preserve every sample")
	}
}

func TestFileEncoderExt(t *testing.T) {
	if ext := (&FileEncoder{}).Ext(); ext != ".jpg" {
		t.Errorf("default extension: got %s, want .jpg", ext)
	}
	if ext := (&FileEncoder{Format: "png"}).Ext(); ext != ".png" {
		t.Errorf("png extension: got %s, want .png", ext)
	}
}
