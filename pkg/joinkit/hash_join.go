package joinkit

// bucket is the value slot of the hash-build map: the insertion-ordered
// list of right values sharing a key, plus the matched flag the
// right-side-revisiting modes (right-excl, right-outer, full-outer)
// need during their drain phase.
type bucket[RV any] struct {
	values  []RV
	matched bool
}

// buildRight eagerly drains the right cursor into an insertion-ordered
// multimap. This is the one construction-time cost every hash-join
// operator pays before its first Next() call, per the "Construction
// contract" in the hash-join family design.
func buildRight[K comparable, RV any](right Cursor[Pair[K, RV]]) map[K]*bucket[RV] {
	m := make(map[K]*bucket[RV])
	for {
		p, ok := right.Next()
		if !ok {
			break
		}
		b, exists := m[p.Key]
		if !exists {
			b = &bucket[RV]{}
			m[p.Key] = b
		}
		b.values = append(b.values, p.Value)
	}
	return m
}

// HashJoinInner emits (lv, matching right values) for every left item
// whose key is present on the right; unmatched left items are skipped.
func HashJoinInner[K comparable, LV, RV any](left Cursor[Pair[K, LV]], right Cursor[Pair[K, RV]]) Cursor[Matched[LV, []RV]] {
	m := buildRight(right)
	return CursorFunc[Matched[LV, []RV]](func() (Matched[LV, []RV], bool) {
		for {
			p, ok := left.Next()
			if !ok {
				var zero Matched[LV, []RV]
				return zero, false
			}
			if b, found := m[p.Key]; found {
				return Matched[LV, []RV]{Left: p.Value, Right: b.values}, true
			}
		}
	})
}

// HashJoinLeftExcl emits left values whose key is absent on the right.
func HashJoinLeftExcl[K comparable, LV, RV any](left Cursor[Pair[K, LV]], right Cursor[Pair[K, RV]]) Cursor[LV] {
	m := buildRight(right)
	return CursorFunc[LV](func() (LV, bool) {
		for {
			p, ok := left.Next()
			if !ok {
				var zero LV
				return zero, false
			}
			if _, found := m[p.Key]; !found {
				return p.Value, true
			}
		}
	})
}

// HashJoinLeftOuter emits Both(lv, matches) when the left key is
// present on the right, Left(lv) otherwise.
func HashJoinLeftOuter[K comparable, LV, RV any](left Cursor[Pair[K, LV]], right Cursor[Pair[K, RV]]) Cursor[EitherOrBoth[LV, []RV]] {
	m := buildRight(right)
	return CursorFunc[EitherOrBoth[LV, []RV]](func() (EitherOrBoth[LV, []RV], bool) {
		p, ok := left.Next()
		if !ok {
			var zero EitherOrBoth[LV, []RV]
			return zero, false
		}
		if b, found := m[p.Key]; found {
			return MakeBoth[LV, []RV](p.Value, b.values), true
		}
		return MakeLeft[LV, []RV](p.Value), true
	})
}

// HashJoinRightExcl drains the left side marking matches, then emits
// the value list of every right key never probed. Drain order is
// unspecified (spec.md §9 "Unmatched-drain order"): it follows Go's
// native map iteration, which happens to already satisfy the documented
// freedom without reimplementing an insertion-ordered container.
func HashJoinRightExcl[K comparable, LV, RV any](left Cursor[Pair[K, LV]], right Cursor[Pair[K, RV]]) Cursor[[]RV] {
	m := buildRight(right)
	draining := false
	var drainKeys []K
	drainIdx := 0

	return CursorFunc[[]RV](func() ([]RV, bool) {
		if !draining {
			for {
				p, ok := left.Next()
				if !ok {
					break
				}
				if b, found := m[p.Key]; found {
					b.matched = true
				}
			}
			draining = true
			for k, b := range m {
				if !b.matched {
					drainKeys = append(drainKeys, k)
				}
			}
		}
		for drainIdx < len(drainKeys) {
			k := drainKeys[drainIdx]
			drainIdx++
			return m[k].values, true
		}
		var zero []RV
		return zero, false
	})
}

// HashJoinRightOuter emits Both(lv, matches) while marking matched keys
// as left streams; once left is exhausted it drains every unmatched
// right key as Right(values).
func HashJoinRightOuter[K comparable, LV, RV any](left Cursor[Pair[K, LV]], right Cursor[Pair[K, RV]]) Cursor[EitherOrBoth[LV, []RV]] {
	m := buildRight(right)
	draining := false
	var drainKeys []K
	drainIdx := 0

	return CursorFunc[EitherOrBoth[LV, []RV]](func() (EitherOrBoth[LV, []RV], bool) {
		if !draining {
			for {
				p, ok := left.Next()
				if !ok {
					draining = true
					for k, b := range m {
						if !b.matched {
							drainKeys = append(drainKeys, k)
						}
					}
					break
				}
				if b, found := m[p.Key]; found {
					b.matched = true
					return MakeBoth[LV, []RV](p.Value, b.values), true
				}
				// unmatched left items are silently dropped in right-outer
			}
		}
		for drainIdx < len(drainKeys) {
			k := drainKeys[drainIdx]
			drainIdx++
			return MakeRight[LV, []RV](m[k].values), true
		}
		var zero EitherOrBoth[LV, []RV]
		return zero, false
	})
}

// HashJoinFullOuter behaves like HashJoinRightOuter but additionally
// emits Left(lv) for unmatched left items during the streaming phase,
// instead of silently dropping them.
func HashJoinFullOuter[K comparable, LV, RV any](left Cursor[Pair[K, LV]], right Cursor[Pair[K, RV]]) Cursor[EitherOrBoth[LV, []RV]] {
	m := buildRight(right)
	draining := false
	var drainKeys []K
	drainIdx := 0

	return CursorFunc[EitherOrBoth[LV, []RV]](func() (EitherOrBoth[LV, []RV], bool) {
		if !draining {
			for {
				p, ok := left.Next()
				if !ok {
					draining = true
					for k, b := range m {
						if !b.matched {
							drainKeys = append(drainKeys, k)
						}
					}
					break
				}
				if b, found := m[p.Key]; found {
					b.matched = true
					return MakeBoth[LV, []RV](p.Value, b.values), true
				}
				return MakeLeft[LV, []RV](p.Value), true
			}
		}
		for drainIdx < len(drainKeys) {
			k := drainKeys[drainIdx]
			drainIdx++
			return MakeRight[LV, []RV](m[k].values), true
		}
		var zero EitherOrBoth[LV, []RV]
		return zero, false
	})
}
