// Package export writes the current buffers of a batch of documents to disk.
//
// The batch runs documents in parallel under a bounded worker pool. Failures
// are per item: one document that cannot be encoded never aborts its
// siblings, and every item comes back with its own Result. Cancelling the
// context stops items that have not started; items already encoding run to
// completion.
package export

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/disintegration/imaging"

	"github.com/ozanyurt/darkroom/internal/buffer"
	"github.com/ozanyurt/darkroom/internal/document"
)

// Result is the outcome of exporting one document.
type Result struct {
	ID   string
	Path string
	Err  error
}

// Encoder is the codec collaborator: it persists one buffer to one path and
// names the file extension it produces.
type Encoder interface {
	Encode(b *buffer.Buffer, path string) error
	Ext() string
}

// FileEncoder writes buffers through the imaging codec registry; the format
// follows the path extension.
type FileEncoder struct {
	// Format is the file extension without the dot, e.g. "jpg" or "png".
	// Empty means "jpg".
	Format string

	// JPEGQuality applies to JPEG output only; zero means 95.
	JPEGQuality int
}

// Ext returns the configured extension with a leading dot.
func (e *FileEncoder) Ext() string {
	if e.Format == "" {
		return ".jpg"
	}
	return "." + e.Format
}

// Encode writes the buffer to path.
func (e *FileEncoder) Encode(b *buffer.Buffer, path string) error {
	q := e.JPEGQuality
	if q <= 0 {
		q = 95
	}
	if err := imaging.Save(b.Image(), path, imaging.JPEGQuality(q)); err != nil {
		return fmt.Errorf("export: save %s: %w", path, err)
	}
	return nil
}

// All exports the current buffer of every document into dir, at most workers
// at a time, and returns one Result per document in input order. The output
// file of each document is named after its id.
func All(ctx context.Context, docs []*document.Document, dir string, enc Encoder, workers int) []Result {
	results := make([]Result, len(docs))
	if len(docs) == 0 {
		return results
	}
	if workers < 1 {
		workers = 1
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		err = fmt.Errorf("export: create %s: %w", dir, err)
		for i, doc := range docs {
			results[i] = Result{ID: doc.ID(), Err: err}
		}
		return results
	}

	log := slog.Default()
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	for i, doc := range docs {
		path := filepath.Join(dir, doc.ID()+enc.Ext())

		if err := ctx.Err(); err != nil {
			results[i] = Result{ID: doc.ID(), Path: path, Err: err}
			continue
		}
		select {
		case <-ctx.Done():
			results[i] = Result{ID: doc.ID(), Path: path, Err: ctx.Err()}
			continue
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(i int, doc *document.Document, path string) {
			defer wg.Done()
			defer func() { <-sem }()

			err := enc.Encode(doc.Current(), path)
			results[i] = Result{ID: doc.ID(), Path: path, Err: err}
			if err != nil {
				log.Warn("export failed", "id", doc.ID(), "path", path, "err", err)
				return
			}
			log.Info("exported", "id", doc.ID(), "path", path)
		}(i, doc, path)
	}
	wg.Wait()
	return results
}
