package history

import (
	"fmt"

	"github.com/ozanyurt/darkroom/internal/adjust"
	"github.com/ozanyurt/darkroom/internal/buffer"
	"github.com/ozanyurt/darkroom/internal/effect"
	"github.com/ozanyurt/darkroom/internal/ops"
	"github.com/ozanyurt/darkroom/internal/portrait"
)

// Render folds the original buffer through an operation list in strict
// append order, re-dispatching on each operation's kind. Geometric effects
// may change dimensions mid-fold; every later operation simply operates on
// the new geometry.
//
// The list is expected to hold only operations that were validated when they
// were recorded; an unknown kind is a programming error and is reported as
// one.
func Render(original *buffer.Buffer, list []ops.Operation) (*buffer.Buffer, error) {
	cur := original
	for _, op := range list {
		var err error
		switch {
		case op.Kind.Tonal():
			cur, err = adjust.Apply(cur, op)
		case op.Kind.DiscreteEffect():
			cur, err = effect.Apply(cur, op)
		case op.Kind == ops.Portrait:
			cur = portrait.Apply(cur, op.Regions)
		case op.Kind == ops.AutoEnhance:
			cur = adjust.Contrast(adjust.Brightness(cur, op.Brightness), op.Contrast)
		default:
			err = fmt.Errorf("history: cannot replay operation kind %s", op.Kind)
		}
		if err != nil {
			return nil, err
		}
	}
	if cur == original {
		// Empty fold: hand back a copy so the caller can never alias the
		// document's original buffer.
		return original.Clone(), nil
	}
	return cur, nil
}

// CurrentBuffer renders the buffer visible at the history's pointer.
func (h *History) CurrentBuffer(original *buffer.Buffer) (*buffer.Buffer, error) {
	return Render(original, h.seq[:h.ptr])
}
