package joinkit

import (
	"reflect"
	"strings"
	"testing"
)

func cmpStrings(a, b string) int { return strings.Compare(a, b) }

func TestMergeJoinLeftOuterScenario(t *testing.T) {
	left := pairs(
		Pair[string, []string]{Key: "0", Value: []string{"0;A"}},
		Pair[string, []string]{Key: "1", Value: []string{"1;B"}},
	)
	right := pairs(
		Pair[string, []string]{Key: "1", Value: []string{"1;X", "1;Y"}},
		Pair[string, []string]{Key: "2", Value: []string{"2;Z"}},
	)

	got := drain(MergeJoinLeftOuterBy[string, []string, []string](left, right, cmpStrings))
	if len(got) != 2 {
		t.Fatalf("expected 2 elements, got %d: %+v", len(got), got)
	}
	if l, ok := got[0].Left(); !ok || !reflect.DeepEqual(l, []string{"0;A"}) {
		t.Errorf("element 0 = %+v, want Left([0;A])", got[0])
	}
	lv, lok := got[1].Left()
	rv, rok := got[1].Right()
	if !lok || !rok || !reflect.DeepEqual(lv, []string{"1;B"}) || !reflect.DeepEqual(rv, []string{"1;X", "1;Y"}) {
		t.Errorf("element 1 = %+v, want Both(1;B, [1;X,1;Y])", got[1])
	}
}

func TestMergeJoinInnerMonotone(t *testing.T) {
	left := pairs(
		Pair[int, string]{Key: 1, Value: "a"},
		Pair[int, string]{Key: 3, Value: "c"},
		Pair[int, string]{Key: 5, Value: "e"},
	)
	right := pairs(
		Pair[int, string]{Key: 2, Value: "x"},
		Pair[int, string]{Key: 3, Value: "y"},
		Pair[int, string]{Key: 5, Value: "z"},
	)
	cmp := func(a, b int) int { return a - b }

	got := drain(MergeJoinInnerBy[int, string, string](left, right, cmp))
	want := []Matched[string, string]{
		{Left: "c", Right: "y"},
		{Left: "e", Right: "z"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("merge inner = %+v, want %+v", got, want)
	}
}

func TestMergeJoinFullOuterDrainsBothSides(t *testing.T) {
	left := pairs(
		Pair[int, string]{Key: 1, Value: "a"},
		Pair[int, string]{Key: 2, Value: "b"},
	)
	right := pairs(
		Pair[int, string]{Key: 2, Value: "x"},
		Pair[int, string]{Key: 3, Value: "y"},
	)
	cmp := func(a, b int) int { return a - b }

	got := drain(MergeJoinFullOuterBy[int, string, string](left, right, cmp))
	if len(got) != 3 {
		t.Fatalf("expected 3 elements, got %d: %+v", len(got), got)
	}
	if l, ok := got[0].Left(); !ok || l != "a" {
		t.Errorf("element 0 = %+v, want Left(a)", got[0])
	}
	if !got[1].IsBoth() {
		t.Errorf("element 1 = %+v, want Both", got[1])
	}
	if r, ok := got[2].Right(); !ok || r != "y" {
		t.Errorf("element 2 = %+v, want Right(y)", got[2])
	}
}

func TestMergeJoinLeftExclDifference(t *testing.T) {
	left := pairs(
		Pair[int, string]{Key: 1, Value: "a"},
		Pair[int, string]{Key: 2, Value: "b"},
		Pair[int, string]{Key: 3, Value: "c"},
	)
	right := pairs(Pair[int, string]{Key: 2, Value: "x"})
	cmp := func(a, b int) int { return a - b }

	got := drain(MergeJoinLeftExclBy[int, string, string](left, right, cmp))
	want := []string{"a", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("merge left-excl = %v, want %v", got, want)
	}
}

func TestMergeJoinEmptySides(t *testing.T) {
	cmp := func(a, b int) int { return a - b }
	l := pairs[int, string]()
	r := pairs[int, string]()
	if got := drain(MergeJoinInnerBy[int, string, string](l, r, cmp)); len(got) != 0 {
		t.Fatalf("expected empty, got %+v", got)
	}
}

// duality: right_excl(L,R) == left_excl(R,L) with arms relabeled — here
// both sides already speak the L/R-agnostic MergeJoinLeftExclBy, so the
// duality check is: swapping inputs produces the complementary difference.
func TestMergeJoinDuality(t *testing.T) {
	left := pairs(
		Pair[int, string]{Key: 1, Value: "a"},
		Pair[int, string]{Key: 2, Value: "b"},
	)
	right := pairs(Pair[int, string]{Key: 2, Value: "x"})
	cmp := func(a, b int) int { return a - b }

	leftExcl := drain(MergeJoinLeftExclBy[int, string, string](left, right, cmp))
	if !reflect.DeepEqual(leftExcl, []string{"a"}) {
		t.Fatalf("left-excl(L,R) = %v, want [a]", leftExcl)
	}

	left2 := pairs(
		Pair[int, string]{Key: 1, Value: "a"},
		Pair[int, string]{Key: 2, Value: "b"},
	)
	right2 := pairs(Pair[int, string]{Key: 2, Value: "x"})
	rightExcl := drain(MergeJoinLeftExclBy[int, string, string](right2, left2, cmp))
	if len(rightExcl) != 0 {
		t.Fatalf("right-excl(L,R) = %v, want empty (every right key matches)", rightExcl)
	}
}
