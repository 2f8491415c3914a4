package joincli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/canonica-labs/joinkit/internal/fieldspec"
	"github.com/canonica-labs/joinkit/internal/record"
)

func mustPlan(t *testing.T, spec string, allowTags bool) fieldspec.Plan {
	t.Helper()
	p, err := fieldspec.Parse(spec, allowTags)
	if err != nil {
		t.Fatalf("Parse(%q): %v", spec, err)
	}
	return p
}

func newTestSource(t *testing.T, path, content, fieldSep string, plan fieldspec.Plan) *record.Source {
	t.Helper()
	tok := record.NewTokenizer(strings.NewReader(content), '\n')
	return record.NewSource(path, tok, fieldSep, plan)
}

// TestRunHashInnerFanOut reproduces spec.md §8 scenario 1: a left key
// matching multiple right values in insertion order fans out into one
// emission carrying the whole right group.
func TestRunHashInnerFanOut(t *testing.T) {
	plan := mustPlan(t, "1", false)
	left := newTestSource(t, "left", "0;A\n1;B", ";", plan)
	right := newTestSource(t, "right", "1;X\n2;Z\n1;Y", ";", plan)

	var buf bytes.Buffer
	w := record.NewWriter(&buf, ",", "\n")

	rows, err := RunHash("inner", left, right, w)
	if err != nil {
		t.Fatalf("RunHash: %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	want := "1;B,1;X\n1;B,1;Y\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
	if rows != 2 {
		t.Fatalf("got %d rows, want 2", rows)
	}
}

// TestRunHashFullOuterOrdering reproduces spec.md §8 scenario 2: the
// same inputs as scenario 1 under full-outer, expecting Left, then
// Both, then the unmatched-right drain, in that order.
func TestRunHashFullOuterOrdering(t *testing.T) {
	plan := mustPlan(t, "1", false)
	left := newTestSource(t, "left", "0;A\n1;B", ";", plan)
	right := newTestSource(t, "right", "1;X\n2;Z\n1;Y", ";", plan)

	var buf bytes.Buffer
	w := record.NewWriter(&buf, ",", "\n")

	rows, err := RunHash("full-outer", left, right, w)
	if err != nil {
		t.Fatalf("RunHash: %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	want := "0;A,,\n" + "1;B,1;X\n" + "1;B,1;Y\n" + ",,2;Z\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
	if rows != 4 {
		t.Fatalf("got %d rows, want 4", rows)
	}
}

// TestRunHashFullOuterPaddingArities reproduces spec.md §8 scenario 6:
// output padding widths come from the first record's field count on
// each side, independent of the matched side's own width.
func TestRunHashFullOuterPaddingArities(t *testing.T) {
	plan := mustPlan(t, "1", false)
	left := newTestSource(t, "left", "9;p", ";", plan)
	right := newTestSource(t, "right", "8;x;y", ";", plan)

	var buf bytes.Buffer
	w := record.NewWriter(&buf, ",", "\n")

	if _, err := RunHash("full-outer", left, right, w); err != nil {
		t.Fatalf("RunHash: %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	want := "9;p,,,\n" + ",,8;x;y\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}

func TestRunHashLeftExclIsUnpadded(t *testing.T) {
	plan := mustPlan(t, "1", false)
	left := newTestSource(t, "left", "0;A\n1;B", ";", plan)
	right := newTestSource(t, "right", "1;X", ";", plan)

	var buf bytes.Buffer
	w := record.NewWriter(&buf, ",", "\n")

	if _, err := RunHash("left-excl", left, right, w); err != nil {
		t.Fatalf("RunHash: %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	want := "0;A\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}

// TestRunMergeLeftOuterGroups reproduces spec.md §8 scenario 3: groups
// on each side (pre-sorted, run-length grouped by groupingCursor) and
// a left-outer drive over them.
func TestRunMergeLeftOuterGroups(t *testing.T) {
	plan := mustPlan(t, "1", true)
	left := newTestSource(t, "left", "0;A\n1;B", ";", plan)
	right := newTestSource(t, "right", "1;X\n1;Y\n2;Z", ";", plan)

	var buf bytes.Buffer
	w := record.NewWriter(&buf, ",", "\n")

	rows, err := RunMerge("left-outer", left, right, w)
	if err != nil {
		t.Fatalf("RunMerge: %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	want := "0;A,,\n" + "1;B,1;X\n" + "1;B,1;Y\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
	if rows != 3 {
		t.Fatalf("got %d rows, want 3", rows)
	}
}

// TestRunMergeRightExclSwapsAndRelabels checks that right-excl is
// computed by swapping the two sides through the left-excl operator
// and relabeling the emitted arm as Right, per the merge family's
// documented duality (spec.md §8 "Duality").
func TestRunMergeRightExclSwapsAndRelabels(t *testing.T) {
	plan := mustPlan(t, "1", true)
	left := newTestSource(t, "left", "1;B", ";", plan)
	right := newTestSource(t, "right", "1;X\n2;Z", ";", plan)

	var buf bytes.Buffer
	w := record.NewWriter(&buf, ",", "\n")

	rows, err := RunMerge("right-excl", left, right, w)
	if err != nil {
		t.Fatalf("RunMerge: %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	want := "2;Z\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
	if rows != 1 {
		t.Fatalf("got %d rows, want 1", rows)
	}
}

func TestRunMergeFullOuterBothArms(t *testing.T) {
	plan := mustPlan(t, "1", true)
	left := newTestSource(t, "left", "0;A\n1;B", ";", plan)
	right := newTestSource(t, "right", "1;X\n2;Z", ";", plan)

	var buf bytes.Buffer
	w := record.NewWriter(&buf, ",", "\n")

	if _, err := RunMerge("full-outer", left, right, w); err != nil {
		t.Fatalf("RunMerge: %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	want := "0;A,,\n" + "1;B,1;X\n" + ",,2;Z\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}

func TestRunHashUnknownModeIsConfigError(t *testing.T) {
	plan := mustPlan(t, "1", false)
	left := newTestSource(t, "left", "0;A", ";", plan)
	right := newTestSource(t, "right", "0;A", ";", plan)
	var buf bytes.Buffer
	w := record.NewWriter(&buf, ",", "\n")

	if _, err := RunHash("bogus", left, right, w); err == nil {
		t.Fatalf("expected an error for an unknown mode")
	}
}
