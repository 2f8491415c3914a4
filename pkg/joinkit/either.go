package joinkit

// EitherOrBoth is the element type of outer-join result sequences: a
// left-only, right-only, or matched pair, matching the source crate's
// EitherOrBoth<L, R> (Left/Right/Both).
type EitherOrBoth[L, R any] struct {
	left     L
	right    R
	hasLeft  bool
	hasRight bool
}

// MakeLeft builds a left-only EitherOrBoth.
func MakeLeft[L, R any](l L) EitherOrBoth[L, R] {
	return EitherOrBoth[L, R]{left: l, hasLeft: true}
}

// MakeRight builds a right-only EitherOrBoth.
func MakeRight[L, R any](r R) EitherOrBoth[L, R] {
	return EitherOrBoth[L, R]{right: r, hasRight: true}
}

// MakeBoth builds a matched-pair EitherOrBoth.
func MakeBoth[L, R any](l L, r R) EitherOrBoth[L, R] {
	return EitherOrBoth[L, R]{left: l, right: r, hasLeft: true, hasRight: true}
}

// IsLeft reports whether this element carries only a left value.
func (e EitherOrBoth[L, R]) IsLeft() bool { return e.hasLeft && !e.hasRight }

// IsRight reports whether this element carries only a right value.
func (e EitherOrBoth[L, R]) IsRight() bool { return e.hasRight && !e.hasLeft }

// IsBoth reports whether this element carries both values.
func (e EitherOrBoth[L, R]) IsBoth() bool { return e.hasLeft && e.hasRight }

// Left returns the left value and whether one is present.
func (e EitherOrBoth[L, R]) Left() (L, bool) { return e.left, e.hasLeft }

// Right returns the right value and whether one is present.
func (e EitherOrBoth[L, R]) Right() (R, bool) { return e.right, e.hasRight }
