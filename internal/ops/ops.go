// Package ops defines the Operation record every edit is stored as.
//
// Kind is a closed enumeration: the adjustment engine, the effect library and
// the history replay all switch over it exhaustively, so adding a kind is a
// compile-time extension rather than a runtime lookup. Operations are
// immutable once created; history only ever appends them or discards them by
// pointer movement.
package ops

import (
	"fmt"

	"github.com/ozanyurt/darkroom/internal/detect"
)

// Kind identifies one edit operation.
type Kind int

const (
	// Parameterized tonal adjustments.
	Brightness Kind = iota
	Contrast
	Saturation
	WhiteBalance
	Shadows
	Highlights

	// Discrete one-click effects.
	Rotate90
	FlipHorizontal
	Sharpen
	OrangeTone
	RedTone
	BlueTone
	Brighten
	Clarity
	Vignette
	NoiseReduction

	// Composite operations.
	Portrait
	AutoEnhance
)

var kindNames = map[Kind]string{
	Brightness:     "brightness",
	Contrast:       "contrast",
	Saturation:     "saturation",
	WhiteBalance:   "white-balance",
	Shadows:        "shadows",
	Highlights:     "highlights",
	Rotate90:       "rotate-90",
	FlipHorizontal: "flip-horizontal",
	Sharpen:        "sharpen",
	OrangeTone:     "orange-tone",
	RedTone:        "red-tone",
	BlueTone:       "blue-tone",
	Brighten:       "brighten",
	Clarity:        "clarity",
	Vignette:       "vignette",
	NoiseReduction: "noise-reduction",
	Portrait:       "portrait-mode",
	AutoEnhance:    "auto-enhance",
}

// String returns the stable lowercase name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind resolves a stable lowercase name back to its Kind.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown operation kind %q", name)
}

// Tonal reports whether the kind is a parameterized tonal adjustment.
func (k Kind) Tonal() bool {
	return k >= Brightness && k <= Highlights
}

// DiscreteEffect reports whether the kind is a parameterless effect.
func (k Kind) DiscreteEffect() bool {
	return k >= Rotate90 && k <= NoiseReduction
}

// Range is the closed legal interval of a tonal parameter.
type Range struct {
	Min float64
	Max float64
}

// Contains reports whether v lies inside the range.
func (r Range) Contains(v float64) bool { return v >= r.Min && v <= r.Max }

var paramRanges = map[Kind]Range{
	Brightness:   {-100, 100},
	Contrast:     {-100, 100},
	Saturation:   {-100, 100},
	WhiteBalance: {2000, 10000},
	Shadows:      {-100, 100},
	Highlights:   {-100, 100},
}

// ParamRange returns the declared legal range of a tonal kind. ok is false
// for kinds that take no parameter.
func ParamRange(k Kind) (r Range, ok bool) {
	r, ok = paramRanges[k]
	return r, ok
}

// ValidationError reports a tonal parameter outside its declared range, or a
// kind used where it is not allowed. The core rejects rather than silently
// clamps so that caller mistakes stay visible.
type ValidationError struct {
	Kind  Kind
	Value float64
	Range Range
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s value %v outside legal range [%v, %v]",
		e.Kind, e.Value, e.Range.Min, e.Range.Max)
}

// Operation is one recorded edit: a tagged kind plus its frozen parameters.
type Operation struct {
	// Kind tags which edit this is.
	Kind Kind `json:"kind"`

	// Value is the tonal parameter for tonal kinds; unused otherwise.
	Value float64 `json:"value,omitempty"`

	// Brightness and Contrast carry the pair an auto-enhance derived at
	// push time, so replay is independent of the buffer statistics.
	Brightness float64 `json:"brightness,omitempty"`
	Contrast   float64 `json:"contrast,omitempty"`

	// Regions carries the face regions a portrait operation captured at
	// push time. Replay composites against these frozen regions and never
	// consults the detector again.
	Regions []detect.Region `json:"regions,omitempty"`

	// Seq is the operation's index in its document history.
	Seq int `json:"seq"`
}

// NewAdjustment builds a validated tonal Operation.
func NewAdjustment(k Kind, value float64) (Operation, error) {
	r, ok := ParamRange(k)
	if !ok {
		return Operation{}, fmt.Errorf("%s is not a tonal adjustment", k)
	}
	if !r.Contains(value) {
		return Operation{}, &ValidationError{Kind: k, Value: value, Range: r}
	}
	return Operation{Kind: k, Value: value}, nil
}

// NewEffect builds a parameterless effect Operation.
func NewEffect(k Kind) (Operation, error) {
	if !k.DiscreteEffect() {
		return Operation{}, fmt.Errorf("%s is not a discrete effect", k)
	}
	return Operation{Kind: k}, nil
}

// NewPortrait builds a portrait Operation over regions frozen at push time.
func NewPortrait(regions []detect.Region) Operation {
	frozen := make([]detect.Region, len(regions))
	copy(frozen, regions)
	return Operation{Kind: Portrait, Regions: frozen}
}

// NewAutoEnhance builds an auto-enhance Operation carrying the derived
// brightness/contrast pair. A (0, 0) pair is a legal explicit no-op.
func NewAutoEnhance(brightness, contrast float64) Operation {
	return Operation{Kind: AutoEnhance, Brightness: brightness, Contrast: contrast}
}
