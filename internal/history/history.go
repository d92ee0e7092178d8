// Package history keeps the ordered, undo/redo-capable operation log of one
// document and the replay fold that turns it back into pixels.
//
// The manager has exactly two pieces of state: the operation sequence and a
// pointer into it. The buffer a user sees is always the fold of the
// document's original buffer through the operations left of the pointer —
// never an incrementally patched copy, so rounding never compounds across
// edits.
package history

import "errors"

import "github.com/ozanyurt/darkroom/internal/ops"

// Boundary conditions on pointer movement. Both are non-fatal: the pointer
// is left where it was.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// History is the operation log plus the undo/redo pointer. The zero value is
// not ready for use; call New.
type History struct {
	seq []ops.Operation
	ptr int
}

// New returns an empty history: no operations, pointer at zero.
func New() *History {
	return &History{}
}

// Push appends an operation at the pointer. Any redo branch beyond the
// pointer is discarded — overwritten, not merged — and the pointer moves to
// the new end.
func (h *History) Push(op ops.Operation) {
	h.seq = h.seq[:h.ptr]
	op.Seq = len(h.seq)
	h.seq = append(h.seq, op)
	h.ptr = len(h.seq)
}

// Undo moves the pointer back one operation.
func (h *History) Undo() error {
	if h.ptr == 0 {
		return ErrNothingToUndo
	}
	h.ptr--
	return nil
}

// Redo moves the pointer forward one operation.
func (h *History) Redo() error {
	if h.ptr == len(h.seq) {
		return ErrNothingToRedo
	}
	h.ptr++
	return nil
}

// Rewind moves the pointer to zero, keeping the sequence intact so every
// operation stays redoable.
func (h *History) Rewind() {
	h.ptr = 0
}

// Pointer returns the current pointer position in [0, Len()].
func (h *History) Pointer() int { return h.ptr }

// Len returns the number of recorded operations, including any undone ones
// still available for redo.
func (h *History) Len() int { return len(h.seq) }

// Active returns a copy of the operations left of the pointer, i.e. the ones
// the current buffer is folded through.
func (h *History) Active() []ops.Operation {
	out := make([]ops.Operation, h.ptr)
	copy(out, h.seq[:h.ptr])
	return out
}
