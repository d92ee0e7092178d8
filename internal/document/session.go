package document

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/ozanyurt/darkroom/internal/buffer"
	"github.com/ozanyurt/darkroom/internal/detect"
)

// Session-level failures.
var (
	ErrUnknownDocument  = errors.New("session: unknown document id")
	ErrNoActiveDocument = errors.New("session: no active document")
)

// Session is the collection of open documents plus one explicit active id.
// Opening a document makes it active; closing the active document leaves the
// session with no active document until the caller picks another.
//
// The session serializes its own bookkeeping but not document commands:
// callers drive each Document from one goroutine at a time.
type Session struct {
	mu       sync.RWMutex
	docs     map[string]*Document
	active   string
	detector detect.Detector
	log      *slog.Logger
}

// NewSession creates an empty session. A nil logger falls back to
// slog.Default; a nil detector falls back to the built-in skin-tone one.
func NewSession(d detect.Detector, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		docs:     make(map[string]*Document),
		detector: d,
		log:      logger,
	}
}

// Open creates a document around buf, registers it, and makes it active.
func (s *Session) Open(buf *buffer.Buffer) (*Document, error) {
	doc, err := OpenWithDetector(buf, s.detector)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.docs[doc.ID()] = doc
	s.active = doc.ID()
	s.mu.Unlock()

	s.log.Info("document opened",
		"id", doc.ID(),
		"width", doc.Original().Width,
		"height", doc.Original().Height)
	return doc, nil
}

// Close removes a document from the session. Closing the active document
// clears the active id.
func (s *Session) Close(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[id]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownDocument, id)
	}
	delete(s.docs, id)
	if s.active == id {
		s.active = ""
	}
	s.log.Info("document closed", "id", id)
	return nil
}

// Get returns the document with the given id.
func (s *Session) Get(id string) (*Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDocument, id)
	}
	return doc, nil
}

// Active returns the currently active document.
func (s *Session) Active() (*Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.active == "" {
		return nil, ErrNoActiveDocument
	}
	return s.docs[s.active], nil
}

// SetActive switches the active document.
func (s *Session) SetActive(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[id]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownDocument, id)
	}
	s.active = id
	return nil
}

// IDs returns the open document ids in sorted order.
func (s *Session) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.docs))
	for id := range s.docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Documents returns the open documents in id order.
func (s *Session) Documents() []*Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.docs))
	for id := range s.docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	docs := make([]*Document, len(ids))
	for i, id := range ids {
		docs[i] = s.docs[id]
	}
	return docs
}

// Len returns the number of open documents.
func (s *Session) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}
