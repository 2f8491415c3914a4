package joincli

import (
	"github.com/canonica-labs/joinkit/internal/joinerr"
	"github.com/canonica-labs/joinkit/internal/key"
	"github.com/canonica-labs/joinkit/internal/record"
	"github.com/canonica-labs/joinkit/pkg/joinkit"
)

func hashCursor(src *record.Source) joinkit.Cursor[joinkit.Pair[string, string]] {
	return joinkit.CursorFunc[joinkit.Pair[string, string]](func() (joinkit.Pair[string, string], bool) {
		k, rec, ok := src.Next()
		if !ok {
			return joinkit.Pair[string, string]{}, false
		}
		return joinkit.Pair[string, string]{Key: k.Fingerprint(), Value: rec}, true
	})
}

// groupingCursor runs consecutive same-key records from src into a
// single (key, group) pair, mirroring itertools::group_by over an
// already key-sorted stream: the merge-join family's precondition is
// that each side is pre-sorted and each key appears in one contiguous
// run, never scattered across the stream.
func groupingCursor(src *record.Source) joinkit.Cursor[joinkit.Pair[key.CompositeKey, []string]] {
	var pendingKey key.CompositeKey
	var pendingRec string
	hasPending := false
	done := false

	return joinkit.CursorFunc[joinkit.Pair[key.CompositeKey, []string]](func() (joinkit.Pair[key.CompositeKey, []string], bool) {
		var groupKey key.CompositeKey
		var group []string

		for {
			var k key.CompositeKey
			var rec string
			var ok bool

			if hasPending {
				k, rec, ok = pendingKey, pendingRec, true
				hasPending = false
			} else if !done {
				k, rec, ok = src.Next()
				if !ok {
					done = true
				}
			}

			if !ok {
				break
			}

			if group == nil {
				groupKey = k
				group = append(group, rec)
				continue
			}
			if cmpCompositeKey(k, groupKey) == 0 {
				group = append(group, rec)
				continue
			}
			pendingKey, pendingRec, hasPending = k, rec, true
			break
		}

		if group == nil {
			return joinkit.Pair[key.CompositeKey, []string]{}, false
		}
		return joinkit.Pair[key.CompositeKey, []string]{Key: groupKey, Value: group}, true
	})
}

func cmpCompositeKey(a, b key.CompositeKey) int { return a.Compare(b) }

// sourceErr returns whichever of left/right failed, preferring the
// left side's error when both are set (matches the order a streaming
// reader would have noticed them in).
func sourceErr(left, right *record.Source) error {
	if left.Err() != nil {
		return left.Err()
	}
	return right.Err()
}

func wrapWrite(err error) error {
	if err != nil {
		return joinerr.NewWriteError(err)
	}
	return nil
}

// RunHash executes the hash-join strategy for mode against left/right,
// writing formatted output via w. Returns the number of output records
// written.
func RunHash(mode string, left, right *record.Source, w *record.Writer) (int64, error) {
	lc := hashCursor(left)
	rc := hashCursor(right)
	var rows int64

	switch mode {
	case "inner":
		c := joinkit.HashJoinInner[string, string, string](lc, rc)
		for {
			m, ok := c.Next()
			if !ok {
				break
			}
			for _, rv := range m.Right {
				if err := w.Both(m.Left, rv); err != nil {
					return rows, joinerr.NewWriteError(err)
				}
				rows++
			}
		}

	case "left-excl":
		// Unlike left-outer's Left arm, the dedicated difference mode
		// has no right side to pad against: it writes the bare record
		// (arity 0), matching the reference CLI.
		c := joinkit.HashJoinLeftExcl[string, string, string](lc, rc)
		for {
			lv, ok := c.Next()
			if !ok {
				break
			}
			if err := w.Left(lv, 0); err != nil {
				return rows, joinerr.NewWriteError(err)
			}
			rows++
		}

	case "left-outer":
		c := joinkit.HashJoinLeftOuter[string, string, string](lc, rc)
		for {
			e, ok := c.Next()
			if !ok {
				break
			}
			n, err := writeHashEither(e, right.NumFields(), left.NumFields(), w)
			if err != nil {
				return rows, err
			}
			rows += n
		}

	case "right-excl":
		c := joinkit.HashJoinRightExcl[string, string, string](lc, rc)
		for {
			rvs, ok := c.Next()
			if !ok {
				break
			}
			for _, rv := range rvs {
				if err := w.Right(rv, 0); err != nil {
					return rows, joinerr.NewWriteError(err)
				}
				rows++
			}
		}

	case "right-outer":
		c := joinkit.HashJoinRightOuter[string, string, string](lc, rc)
		for {
			e, ok := c.Next()
			if !ok {
				break
			}
			n, err := writeHashEither(e, right.NumFields(), left.NumFields(), w)
			if err != nil {
				return rows, err
			}
			rows += n
		}

	case "full-outer":
		c := joinkit.HashJoinFullOuter[string, string, string](lc, rc)
		for {
			e, ok := c.Next()
			if !ok {
				break
			}
			n, err := writeHashEither(e, right.NumFields(), left.NumFields(), w)
			if err != nil {
				return rows, err
			}
			rows += n
		}

	default:
		return 0, joinerr.NewConfigError("unknown mode \""+mode+"\"", nil)
	}

	if err := sourceErr(left, right); err != nil {
		return rows, err
	}
	return rows, nil
}

// writeHashEither writes one EitherOrBoth element from a hash-join
// outer mode and reports how many output records it produced.
func writeHashEither(e joinkit.EitherOrBoth[string, []string], rightArity, leftArity int, w *record.Writer) (int64, error) {
	if lv, ok := e.Left(); ok {
		if rv, ok := e.Right(); ok {
			var n int64
			for _, r := range rv {
				if err := w.Both(lv, r); err != nil {
					return n, joinerr.NewWriteError(err)
				}
				n++
			}
			return n, nil
		}
		return 1, wrapWrite(w.Left(lv, rightArity))
	}
	if rv, ok := e.Right(); ok {
		var n int64
		for _, r := range rv {
			if err := w.Right(r, leftArity); err != nil {
				return n, joinerr.NewWriteError(err)
			}
			n++
		}
		return n, nil
	}
	return 0, nil
}

// RunMerge executes the merge-join strategy for mode against left and
// right, both assumed pre-sorted ascending by key with each key
// confined to one contiguous run on that side. right-excl and
// right-outer have no dedicated merge operator: they are obtained by
// swapping the inputs through the left-excl/left-outer operators and
// relabeling the emitted arm, exactly as the reference CLI does it.
func RunMerge(mode string, left, right *record.Source, w *record.Writer) (int64, error) {
	switch mode {
	case "inner":
		return runMergeInner(left, right, w)
	case "left-excl":
		return runMergeLeftExcl(left, right, w, false)
	case "left-outer":
		return runMergeLeftOuter(left, right, w, false)
	case "right-excl":
		return runMergeLeftExcl(right, left, w, true)
	case "right-outer":
		return runMergeLeftOuter(right, left, w, true)
	case "full-outer":
		return runMergeFullOuter(left, right, w)
	default:
		return 0, joinerr.NewConfigError("unknown mode \""+mode+"\"", nil)
	}
}

func runMergeInner(left, right *record.Source, w *record.Writer) (int64, error) {
	lc := groupingCursor(left)
	rc := groupingCursor(right)
	c := joinkit.MergeJoinInnerBy[key.CompositeKey, []string, []string](lc, rc, cmpCompositeKey)
	var rows int64
	for {
		m, ok := c.Next()
		if !ok {
			break
		}
		for _, lv := range m.Left {
			for _, rv := range m.Right {
				if err := w.Both(lv, rv); err != nil {
					return rows, joinerr.NewWriteError(err)
				}
				rows++
			}
		}
	}
	if err := sourceErr(left, right); err != nil {
		return rows, err
	}
	return rows, nil
}

// runMergeLeftExcl drives MergeJoinLeftExclBy over (a, b). When
// swapped is true, a is the user's right side and the output is
// written via w.Right, relabeling per the reference CLI's
// right-excl = left-excl(right, left). Like the hash family's
// dedicated exclusive mode, there is no counterpart side to pad
// against, so records are written unpadded (arity 0).
func runMergeLeftExcl(a, b *record.Source, w *record.Writer, swapped bool) (int64, error) {
	ac := groupingCursor(a)
	bc := groupingCursor(b)
	c := joinkit.MergeJoinLeftExclBy[key.CompositeKey, []string, []string](ac, bc, cmpCompositeKey)
	var rows int64
	for {
		group, ok := c.Next()
		if !ok {
			break
		}
		for _, v := range group {
			var err error
			if swapped {
				err = w.Right(v, 0)
			} else {
				err = w.Left(v, 0)
			}
			if err != nil {
				return rows, joinerr.NewWriteError(err)
			}
			rows++
		}
	}
	if err := sourceErr(a, b); err != nil {
		return rows, err
	}
	return rows, nil
}

// runMergeLeftOuter drives MergeJoinLeftOuterBy over (a, b). When
// swapped, a is the user's right side: Left arms (a-only groups)
// become Right output, and Both arms still write in (left, right)
// user-facing order.
func runMergeLeftOuter(a, b *record.Source, w *record.Writer, swapped bool) (int64, error) {
	ac := groupingCursor(a)
	bc := groupingCursor(b)
	c := joinkit.MergeJoinLeftOuterBy[key.CompositeKey, []string, []string](ac, bc, cmpCompositeKey)
	var rows int64
	for {
		e, ok := c.Next()
		if !ok {
			break
		}
		if av, ok := e.Left(); ok {
			if bv, ok := e.Right(); ok {
				for _, l := range av {
					for _, r := range bv {
						var err error
						if swapped {
							err = w.Both(r, l)
						} else {
							err = w.Both(l, r)
						}
						if err != nil {
							return rows, joinerr.NewWriteError(err)
						}
						rows++
					}
				}
				continue
			}
			for _, v := range av {
				var err error
				if swapped {
					err = w.Right(v, b.NumFields())
				} else {
					err = w.Left(v, b.NumFields())
				}
				if err != nil {
					return rows, joinerr.NewWriteError(err)
				}
				rows++
			}
		}
	}
	if err := sourceErr(a, b); err != nil {
		return rows, err
	}
	return rows, nil
}

func runMergeFullOuter(left, right *record.Source, w *record.Writer) (int64, error) {
	lc := groupingCursor(left)
	rc := groupingCursor(right)
	c := joinkit.MergeJoinFullOuterBy[key.CompositeKey, []string, []string](lc, rc, cmpCompositeKey)
	var rows int64
	for {
		e, ok := c.Next()
		if !ok {
			break
		}
		lv, hasLeft := e.Left()
		rv, hasRight := e.Right()
		switch {
		case hasLeft && hasRight:
			for _, l := range lv {
				for _, r := range rv {
					if err := w.Both(l, r); err != nil {
						return rows, joinerr.NewWriteError(err)
					}
					rows++
				}
			}
		case hasLeft:
			for _, l := range lv {
				if err := w.Left(l, right.NumFields()); err != nil {
					return rows, joinerr.NewWriteError(err)
				}
				rows++
			}
		default:
			for _, r := range rv {
				if err := w.Right(r, left.NumFields()); err != nil {
					return rows, joinerr.NewWriteError(err)
				}
				rows++
			}
		}
	}
	if err := sourceErr(left, right); err != nil {
		return rows, err
	}
	return rows, nil
}
