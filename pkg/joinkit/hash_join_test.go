package joinkit

import (
	"reflect"
	"testing"
)

func pairs[K, V any](kvs ...Pair[K, V]) Cursor[Pair[K, V]] {
	return SliceCursor(kvs)
}

func drain[T any](c Cursor[T]) []T {
	var out []T
	for {
		v, ok := c.Next()
		if !ok {
			return out
		}
		out = append(out, v)
	}
}

func TestHashJoinInnerFanOut(t *testing.T) {
	left := pairs(
		Pair[string, string]{Key: "0", Value: "0;A"},
		Pair[string, string]{Key: "1", Value: "1;B"},
	)
	right := pairs(
		Pair[string, string]{Key: "1", Value: "1;X"},
		Pair[string, string]{Key: "2", Value: "2;Z"},
		Pair[string, string]{Key: "1", Value: "1;Y"},
	)

	got := drain(HashJoinInner[string, string, string](left, right))
	want := []Matched[string, []string]{
		{Left: "1;B", Right: []string{"1;X", "1;Y"}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("hash inner = %+v, want %+v", got, want)
	}
}

func TestHashJoinFullOuterOrdering(t *testing.T) {
	left := pairs(
		Pair[string, string]{Key: "0", Value: "0;A"},
		Pair[string, string]{Key: "1", Value: "1;B"},
	)
	right := pairs(
		Pair[string, string]{Key: "1", Value: "1;X"},
		Pair[string, string]{Key: "2", Value: "2;Z"},
		Pair[string, string]{Key: "1", Value: "1;Y"},
	)

	got := drain(HashJoinFullOuter[string, string, string](left, right))
	if len(got) != 3 {
		t.Fatalf("expected 3 elements, got %d: %+v", len(got), got)
	}
	if l, ok := got[0].Left(); !ok || l != "0;A" {
		t.Errorf("element 0 = %+v, want Left(0;A)", got[0])
	}
	if lv, lok := got[1].Left(); !lok || lv != "1;B" {
		t.Errorf("element 1 left = %+v", got[1])
	}
	if rv, rok := got[1].Right(); !rok || !reflect.DeepEqual(rv, []string{"1;X", "1;Y"}) {
		t.Errorf("element 1 right = %+v", got[1])
	}
	if rv, rok := got[2].Right(); !rok || !reflect.DeepEqual(rv, []string{"2;Z"}) {
		t.Errorf("element 2 = %+v, want Right([2;Z])", got[2])
	}
}

func TestHashJoinLeftExcl(t *testing.T) {
	left := pairs(
		Pair[int, string]{Key: 1, Value: "a"},
		Pair[int, string]{Key: 2, Value: "b"},
	)
	right := pairs(Pair[int, string]{Key: 1, Value: "x"})

	got := drain(HashJoinLeftExcl[int, string, string](left, right))
	want := []string{"b"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("hash left-excl = %v, want %v", got, want)
	}
}

func TestHashJoinLeftOuterPartitioning(t *testing.T) {
	left := pairs(
		Pair[int, string]{Key: 1, Value: "a"},
		Pair[int, string]{Key: 2, Value: "b"},
		Pair[int, string]{Key: 1, Value: "c"},
	)
	right := pairs(Pair[int, string]{Key: 1, Value: "x"})

	got := drain(HashJoinLeftOuter[int, string, string](left, right))
	var recombined []string
	for _, e := range got {
		if l, ok := e.Left(); ok {
			recombined = append(recombined, l)
		}
	}
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(recombined, want) {
		t.Fatalf("left-outer partitioning broken: got %v, want %v", recombined, want)
	}
	if !got[0].IsBoth() || !got[2].IsBoth() {
		t.Errorf("expected keys 1 matched as Both: %+v", got)
	}
	if !got[1].IsLeft() {
		t.Errorf("expected key 2 unmatched as Left: %+v", got[1])
	}
}

func TestHashJoinRightOuterCompleteness(t *testing.T) {
	left := pairs(Pair[int, string]{Key: 1, Value: "a"})
	right := pairs(
		Pair[int, string]{Key: 1, Value: "x"},
		Pair[int, string]{Key: 2, Value: "y"},
	)

	got := drain(HashJoinRightOuter[int, string, string](left, right))
	seenKeys := map[string]bool{}
	for _, e := range got {
		if e.IsBoth() {
			seenKeys["matched"] = true
		}
		if e.IsRight() {
			seenKeys["unmatched"] = true
		}
	}
	if !seenKeys["matched"] || !seenKeys["unmatched"] {
		t.Fatalf("expected both a Both and a Right arm, got %+v", got)
	}
}

func TestHashJoinRightExclEmpty(t *testing.T) {
	left := pairs[int, string]()
	right := pairs[int, string]()
	got := drain(HashJoinRightExcl[int, string, string](left, right))
	if len(got) != 0 {
		t.Fatalf("expected no output on empty inputs, got %+v", got)
	}
}

func TestHashJoinBothEmpty(t *testing.T) {
	left := pairs[int, string]()
	right := pairs[int, string]()
	if got := drain(HashJoinInner[int, string, string](left, right)); len(got) != 0 {
		t.Fatalf("expected empty inner join, got %+v", got)
	}
}
