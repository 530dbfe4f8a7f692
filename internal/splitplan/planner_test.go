package splitplan

import (
	"errors"
	"testing"

	"github.com/dgallion1/docsplit/internal/chapter"
)

// checkCoverage asserts the planner invariant: contiguous, ordered,
// non-empty ranges covering [0, total) exactly once.
func checkCoverage(t *testing.T, ranges []Range, total int) {
	t.Helper()
	if total == 0 {
		if len(ranges) != 0 {
			t.Fatalf("expected no ranges for empty input, got %d", len(ranges))
		}
		return
	}
	if len(ranges) == 0 {
		t.Fatalf("expected ranges covering %d units, got none", total)
	}
	if ranges[0].Start != 0 {
		t.Errorf("first range starts at %d, want 0", ranges[0].Start)
	}
	for i, r := range ranges {
		if r.Len() <= 0 {
			t.Errorf("range %d is empty: %+v", i, r)
		}
		if i > 0 && r.Start != ranges[i-1].End {
			t.Errorf("range %d starts at %d, previous ended at %d", i, r.Start, ranges[i-1].End)
		}
	}
	if last := ranges[len(ranges)-1].End; last != total {
		t.Errorf("last range ends at %d, want %d", last, total)
	}
}

func TestFixedRanges(t *testing.T) {
	ranges, err := FixedRanges(1000, 300)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	checkCoverage(t, ranges, 1000)
	if len(ranges) != 4 {
		t.Fatalf("expected 4 ranges, got %d", len(ranges))
	}
	if ranges[3].Len() != 100 {
		t.Errorf("last range should absorb the remainder: got %d units", ranges[3].Len())
	}
}

func TestFixedRanges_SmallerThanSize(t *testing.T) {
	ranges, err := FixedRanges(50, 300)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ranges) != 1 || ranges[0] != (Range{0, 50}) {
		t.Errorf("expected single range {0 50}, got %+v", ranges)
	}
}

func TestEqualRanges_BalancedSizes(t *testing.T) {
	ranges, err := EqualRanges(1000, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	checkCoverage(t, ranges, 1000)
	want := []int{334, 333, 333}
	if len(ranges) != len(want) {
		t.Fatalf("expected %d ranges, got %d", len(want), len(ranges))
	}
	for i, w := range want {
		if ranges[i].Len() != w {
			t.Errorf("range %d: expected %d units, got %d", i, w, ranges[i].Len())
		}
	}
}

func TestEqualRanges_PartsExceedTotal(t *testing.T) {
	ranges, err := EqualRanges(3, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	checkCoverage(t, ranges, 3)
	if len(ranges) != 3 {
		t.Errorf("expected one range per unit, got %d", len(ranges))
	}
}

func TestEqualRanges_SinglePart(t *testing.T) {
	ranges, err := EqualRanges(42, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ranges) != 1 || ranges[0] != (Range{0, 42}) {
		t.Errorf("expected single range {0 42}, got %+v", ranges)
	}
}

func TestInvalidGranularity(t *testing.T) {
	if _, err := FixedRanges(10, 0); !errors.Is(err, ErrInvalidGranularity) {
		t.Errorf("FixedRanges(10, 0): expected ErrInvalidGranularity, got %v", err)
	}
	if _, err := EqualRanges(10, -1); !errors.Is(err, ErrInvalidGranularity) {
		t.Errorf("EqualRanges(10, -1): expected ErrInvalidGranularity, got %v", err)
	}
	if _, err := UnitRanges(10, 0, nil, false); !errors.Is(err, ErrInvalidGranularity) {
		t.Errorf("UnitRanges(10, 0): expected ErrInvalidGranularity, got %v", err)
	}
	if _, err := CharRanges(10, 0, nil, nil, false); !errors.Is(err, ErrInvalidGranularity) {
		t.Errorf("CharRanges(10, 0): expected ErrInvalidGranularity, got %v", err)
	}
}

func TestUnitRanges_BoundaryEndsRangeEarly(t *testing.T) {
	bounds := []chapter.Boundary{{Unit: 7, Title: "第二章"}}
	ranges, err := UnitRanges(20, 10, bounds, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	checkCoverage(t, ranges, 20)
	if ranges[0].End != 7 {
		t.Errorf("first range should end at the boundary: got end %d, want 7", ranges[0].End)
	}
	if ranges[1].Start != 7 {
		t.Errorf("boundary unit should start the next range: got start %d", ranges[1].Start)
	}
}

func TestUnitRanges_BoundaryAtWindowStart(t *testing.T) {
	// A boundary already at a range start must not produce an empty range.
	bounds := []chapter.Boundary{{Unit: 10, Title: "Chapter 2"}}
	ranges, err := UnitRanges(20, 10, bounds, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	checkCoverage(t, ranges, 20)
	if len(ranges) != 2 {
		t.Errorf("expected 2 even ranges, got %+v", ranges)
	}
}

func TestUnitRanges_NoPreserveIgnoresBoundaries(t *testing.T) {
	bounds := []chapter.Boundary{{Unit: 3, Title: "x"}}
	ranges, err := UnitRanges(20, 10, bounds, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ranges) != 2 || ranges[0].End != 10 {
		t.Errorf("expected fixed chunking, got %+v", ranges)
	}
}

func TestCharRanges_SnapToEarlierBoundary(t *testing.T) {
	// Boundary at 90, target at 100, window 50: cut snaps back to 90.
	bounds := []chapter.Boundary{{Unit: 90, Title: "第二章"}}
	ranges, err := CharRanges(200, 100, bounds, nil, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	checkCoverage(t, ranges, 200)
	if ranges[0].End != 90 {
		t.Errorf("expected cut at the boundary 90, got %d", ranges[0].End)
	}
}

func TestCharRanges_BoundaryAfterTargetCutsAtLineBreak(t *testing.T) {
	// Boundary at 110, target 100. The heading must start the next part, so
	// the cut moves to the last line break before it.
	bounds := []chapter.Boundary{{Unit: 110, Title: "第二章"}}
	lineBreaks := []int{40, 109}
	ranges, err := CharRanges(200, 100, bounds, lineBreaks, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	checkCoverage(t, ranges, 200)
	if ranges[0].End != 109 {
		t.Errorf("expected cut at line break 109 before the heading, got %d", ranges[0].End)
	}
}

func TestCharRanges_BoundaryOutsideWindowIgnored(t *testing.T) {
	// Window is size/2 = 50; a boundary 60 past the target is out of reach.
	bounds := []chapter.Boundary{{Unit: 160, Title: "第二章"}}
	ranges, err := CharRanges(400, 100, bounds, nil, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	checkCoverage(t, ranges, 400)
	if ranges[0].End != 100 {
		t.Errorf("expected plain cut at 100, got %d", ranges[0].End)
	}
}

func TestCharRanges_ForwardProgress(t *testing.T) {
	// A dense cluster of boundaries must never stall the planner.
	bounds := []chapter.Boundary{
		{Unit: 1, Title: "a"}, {Unit: 2, Title: "b"}, {Unit: 3, Title: "c"},
	}
	ranges, err := CharRanges(10, 2, bounds, []int{0, 1, 2, 3}, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	checkCoverage(t, ranges, 10)
	for i, r := range ranges {
		if r.Len() <= 0 {
			t.Fatalf("range %d did not advance: %+v", i, r)
		}
	}
}

func TestCharRanges_NoPreserve(t *testing.T) {
	bounds := []chapter.Boundary{{Unit: 90, Title: "第二章"}}
	ranges, err := CharRanges(200, 100, bounds, nil, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ranges) != 2 || ranges[0].End != 100 {
		t.Errorf("expected fixed chunking without preserve, got %+v", ranges)
	}
}
