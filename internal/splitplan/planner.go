// Package splitplan turns a granularity request into concrete split ranges.
//
// All planners produce ranges that are contiguous, ordered, and cover
// [0, total) exactly once, with every range non-empty.
package splitplan

import (
	"errors"
	"fmt"
	"sort"

	"github.com/dgallion1/docsplit/internal/chapter"
)

// Mode is the unit a split request is expressed in.
type Mode string

const (
	ModeChars      Mode = "chars"
	ModeLines      Mode = "lines"
	ModePages      Mode = "pages"
	ModeParagraphs Mode = "paragraphs"
	ModeEqual      Mode = "equal"
)

// ErrInvalidGranularity is returned for non-positive sizes or part counts.
var ErrInvalidGranularity = errors.New("split granularity must be a positive integer")

// Range is a half-open interval of units assigned to one output file.
type Range struct {
	Start int
	End   int
}

// Len returns the number of units in the range.
func (r Range) Len() int { return r.End - r.Start }

// FixedRanges chunks [0, total) into windows of size units; the last window
// absorbs the remainder. total <= size yields a single range.
func FixedRanges(total, size int) ([]Range, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: size %d", ErrInvalidGranularity, size)
	}
	var out []Range
	for start := 0; start < total; start += size {
		end := start + size
		if end > total {
			end = total
		}
		out = append(out, Range{Start: start, End: end})
	}
	return out, nil
}

// EqualRanges divides [0, total) into parts ranges of near-equal size using
// ceil-based sizing: the first total%parts ranges carry one extra unit, so
// 1000 units over 3 parts yields sizes 334, 333, 333. If parts exceeds
// total, one range per unit is produced. Equal-parts planning does not
// combine with boundary preservation for page granularity; callers reject
// that combination explicitly.
func EqualRanges(total, parts int) ([]Range, error) {
	if parts <= 0 {
		return nil, fmt.Errorf("%w: parts %d", ErrInvalidGranularity, parts)
	}
	if parts > total {
		parts = total
	}
	if parts <= 1 {
		if total <= 0 {
			return nil, nil
		}
		return []Range{{Start: 0, End: total}}, nil
	}
	base := total / parts
	extra := total % parts
	out := make([]Range, 0, parts)
	start := 0
	for i := 0; i < parts; i++ {
		size := base
		if i < extra {
			size++
		}
		out = append(out, Range{Start: start, End: start + size})
		start += size
	}
	return out, nil
}

// UnitRanges chunks [0, total) into windows of size units. With preserve
// set, a boundary lying strictly inside a window (not at its start) ends
// the range early, so no window contains an interior heading it did not
// start with. Range sizes may be uneven as a result.
func UnitRanges(total, size int, boundaries []chapter.Boundary, preserve bool) ([]Range, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: size %d", ErrInvalidGranularity, size)
	}
	if !preserve || len(boundaries) == 0 {
		return FixedRanges(total, size)
	}
	var out []Range
	current := 0
	for current < total {
		end := current + size
		if end > total {
			end = total
		}
		for _, b := range boundaries {
			if b.Unit > current && b.Unit < end {
				end = b.Unit
				break
			}
		}
		out = append(out, Range{Start: current, End: end})
		current = end
	}
	return out, nil
}

// CharRanges plans rune-space cuts of size units each. With preserve set it
// snaps each cut toward the nearest boundary within half a window of the
// target: a boundary at or before the target becomes the cut; a boundary
// after it moves the cut to the nearest line break strictly before the
// heading so a heading is never severed from its section. lineBreaks holds
// the rune offsets of newline characters in ascending order. Every cut is
// strictly past the previous one even when that overrides the structural
// preference.
func CharRanges(total, size int, boundaries []chapter.Boundary, lineBreaks []int, preserve bool) ([]Range, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: size %d", ErrInvalidGranularity, size)
	}
	if !preserve || len(boundaries) == 0 {
		return FixedRanges(total, size)
	}
	var out []Range
	current := 0
	for current < total {
		target := current + size
		if target >= total {
			out = append(out, Range{Start: current, End: total})
			break
		}
		cut := target
		if b, ok := nearestBoundary(boundaries, target, size/2, current); ok {
			if b <= target {
				cut = b
			} else if nl := lastLineBreakBefore(lineBreaks, b); nl > current {
				cut = nl
			} else {
				cut = b
			}
		}
		if cut <= current || cut > total {
			cut = target
		}
		out = append(out, Range{Start: current, End: cut})
		current = cut
	}
	return out, nil
}

// nearestBoundary picks the boundary closest to target within +-window,
// ignoring boundaries at or before the current cut.
func nearestBoundary(boundaries []chapter.Boundary, target, window, current int) (int, bool) {
	best, bestDist := -1, window+1
	for _, b := range boundaries {
		if b.Unit <= current {
			continue
		}
		dist := b.Unit - target
		if dist < 0 {
			dist = -dist
		}
		if dist <= window && dist < bestDist {
			best, bestDist = b.Unit, dist
		}
	}
	return best, best >= 0
}

func lastLineBreakBefore(lineBreaks []int, pos int) int {
	i := sort.SearchInts(lineBreaks, pos)
	if i == 0 {
		return -1
	}
	return lineBreaks[i-1]
}
