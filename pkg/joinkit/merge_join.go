package joinkit

// fused is the one-shot cache of which side is known exhausted, so a
// merge operator stops re-invoking cmp once either side has run dry.
// Holds fusedLess when the right side is exhausted (left continues, as
// if every remaining left key compared Less), fusedGreater when the
// left side is exhausted (right continues).
type fused int

const (
	fusedNone fused = iota
	fusedLess
	fusedGreater
)

// MergeJoinInnerBy is the intersection of two comparator-sorted
// (key, group) sequences: it drops either side on inequality and emits
// the pair on a tie, per the "Inner" bullet of the merge-join family.
func MergeJoinInnerBy[K, LV, RV any](left Cursor[Pair[K, LV]], right Cursor[Pair[K, RV]], cmp func(K, K) int) Cursor[Matched[LV, RV]] {
	lp := newPeekable(left)
	rp := newPeekable(right)

	return CursorFunc[Matched[LV, RV]](func() (Matched[LV, RV], bool) {
		for {
			lv, lok := lp.Peek()
			rv, rok := rp.Peek()
			if !lok || !rok {
				var zero Matched[LV, RV]
				return zero, false
			}
			switch c := cmp(lv.Key, rv.Key); {
			case c < 0:
				lp.Next()
			case c > 0:
				rp.Next()
			default:
				l, _ := lp.Next()
				r, _ := rp.Next()
				return Matched[LV, RV]{Left: l.Value, Right: r.Value}, true
			}
		}
	})
}

// MergeJoinLeftExclBy emits the left groups whose key never appears on
// the right side — a difference, not expressible directly in SQL.
func MergeJoinLeftExclBy[K, LV, RV any](left Cursor[Pair[K, LV]], right Cursor[Pair[K, RV]], cmp func(K, K) int) Cursor[LV] {
	lp := newPeekable(left)
	rp := newPeekable(right)
	state := fusedNone

	return CursorFunc[LV](func() (LV, bool) {
		for {
			ord, ok := leftExclOrder(lp, rp, cmp, &state)
			if !ok {
				var zero LV
				return zero, false
			}
			switch {
			case ord < 0:
				v, _ := lp.Next()
				return v.Value, true
			case ord > 0:
				rp.Next()
			default:
				lp.Next()
				rp.Next()
			}
		}
	})
}

func leftExclOrder[K, LV, RV any](lp *peekable[Pair[K, LV]], rp *peekable[Pair[K, RV]], cmp func(K, K) int, state *fused) (int, bool) {
	if *state == fusedLess {
		if _, lok := lp.Peek(); !lok {
			return 0, false
		}
		return -1, true
	}
	lv, lok := lp.Peek()
	rv, rok := rp.Peek()
	switch {
	case lok && rok:
		return cmp(lv.Key, rv.Key), true
	case lok && !rok:
		*state = fusedLess
		return -1, true
	default:
		return 0, false
	}
}

// MergeJoinLeftOuterBy emits Both(l,r) on a key match, Left(l) when the
// left key has no right-side counterpart. Once the right side exhausts,
// the remaining left groups drain as Left.
func MergeJoinLeftOuterBy[K, LV, RV any](left Cursor[Pair[K, LV]], right Cursor[Pair[K, RV]], cmp func(K, K) int) Cursor[EitherOrBoth[LV, RV]] {
	lp := newPeekable(left)
	rp := newPeekable(right)
	state := fusedNone

	return CursorFunc[EitherOrBoth[LV, RV]](func() (EitherOrBoth[LV, RV], bool) {
		for {
			ord, ok := leftExclOrder(lp, rp, cmp, &state)
			if !ok {
				var zero EitherOrBoth[LV, RV]
				return zero, false
			}
			switch {
			case ord < 0:
				v, _ := lp.Next()
				return MakeLeft[LV, RV](v.Value), true
			case ord > 0:
				rp.Next()
			default:
				l, _ := lp.Next()
				r, _ := rp.Next()
				return MakeBoth[LV, RV](l.Value, r.Value), true
			}
		}
	})
}

// MergeJoinFullOuterBy is symmetric to MergeJoinLeftOuterBy: it also
// emits Right(r) for right groups with no left counterpart, fusing on
// whichever side exhausts first and draining the other.
func MergeJoinFullOuterBy[K, LV, RV any](left Cursor[Pair[K, LV]], right Cursor[Pair[K, RV]], cmp func(K, K) int) Cursor[EitherOrBoth[LV, RV]] {
	lp := newPeekable(left)
	rp := newPeekable(right)
	state := fusedNone

	return CursorFunc[EitherOrBoth[LV, RV]](func() (EitherOrBoth[LV, RV], bool) {
		for {
			var ord int
			switch state {
			case fusedLess:
				ord = -1
			case fusedGreater:
				ord = 1
			default:
				lv, lok := lp.Peek()
				rv, rok := rp.Peek()
				switch {
				case lok && rok:
					ord = cmp(lv.Key, rv.Key)
				case lok && !rok:
					state = fusedLess
					ord = -1
				case !lok && rok:
					state = fusedGreater
					ord = 1
				default:
					var zero EitherOrBoth[LV, RV]
					return zero, false
				}
			}

			switch {
			case ord < 0:
				v, ok := lp.Next()
				if !ok {
					var zero EitherOrBoth[LV, RV]
					return zero, false
				}
				return MakeLeft[LV, RV](v.Value), true
			case ord > 0:
				v, ok := rp.Next()
				if !ok {
					var zero EitherOrBoth[LV, RV]
					return zero, false
				}
				return MakeRight[LV, RV](v.Value), true
			default:
				l, _ := lp.Next()
				r, _ := rp.Next()
				return MakeBoth[LV, RV](l.Value, r.Value), true
			}
		}
	})
}
