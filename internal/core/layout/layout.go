// Package layout contains the pure measure-key model: canonical lookup keys
// for grid cells and the absolute measure numbering derived from a song's
// page/line layout. Absolute numbers exist only to support range selection.
package layout

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Page is one page of a song's layout: an ordered list of line lengths.
type Page struct {
	Number int
	Lines  []int // measures per line, in print order
}

// Key returns the canonical lookup key for a grid cell. Page, line and
// measure are all integers, so "-" cannot collide.
func Key(page, line, measure int) string {
	return fmt.Sprintf("%d-%d-%d", page, line, measure)
}

// ParseKey splits a canonical lookup key back into its components.
func ParseKey(key string) (page, line, measure int, err error) {
	parts := strings.Split(key, "-")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("invalid measure key %q", key)
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, convErr := strconv.Atoi(p)
		if convErr != nil {
			return 0, 0, 0, fmt.Errorf("invalid measure key %q", key)
		}
		nums[i] = n
	}
	return nums[0], nums[1], nums[2], nil
}

// Index maps lookup keys to song-wide absolute measure numbers and back.
// Absolute numbers start at 1 and increase strictly in document order.
type Index struct {
	absByKey map[string]int
	keyByAbs map[int]string
	total    int
}

// NewIndex builds the bidirectional index for a layout. Pages must be in
// document order; lines within a page are 1-based.
func NewIndex(pages []Page) *Index {
	ix := &Index{
		absByKey: make(map[string]int),
		keyByAbs: make(map[int]string),
	}
	abs := 0
	for _, p := range pages {
		for lineIdx, numMeasures := range p.Lines {
			for m := 1; m <= numMeasures; m++ {
				abs++
				key := Key(p.Number, lineIdx+1, m)
				ix.absByKey[key] = abs
				ix.keyByAbs[abs] = key
			}
		}
	}
	ix.total = abs
	return ix
}

// Abs returns the absolute measure number for a lookup key.
func (ix *Index) Abs(key string) (int, bool) {
	n, ok := ix.absByKey[key]
	return n, ok
}

// KeyAt returns the lookup key at an absolute measure number.
func (ix *Index) KeyAt(abs int) (string, bool) {
	key, ok := ix.keyByAbs[abs]
	return key, ok
}

// Total returns the number of measures in the layout.
func (ix *Index) Total() int {
	return ix.total
}

// RangeKeys returns every lookup key whose absolute number falls in the
// inclusive range spanned by the two endpoint keys, in document order.
// Endpoint order does not matter.
func (ix *Index) RangeKeys(a, b string) ([]string, error) {
	absA, ok := ix.absByKey[a]
	if !ok {
		return nil, fmt.Errorf("measure key %q not in layout", a)
	}
	absB, ok := ix.absByKey[b]
	if !ok {
		return nil, fmt.Errorf("measure key %q not in layout", b)
	}

	lo, hi := absA, absB
	if lo > hi {
		lo, hi = hi, lo
	}

	keys := make([]string, 0, hi-lo+1)
	for n := lo; n <= hi; n++ {
		keys = append(keys, ix.keyByAbs[n])
	}
	return keys, nil
}

// SortKeys orders lookup keys by their absolute position. Keys not present in
// the layout sort last, by string value, so callers get a stable order even
// for stale selections.
func (ix *Index) SortKeys(keys []string) {
	sort.SliceStable(keys, func(i, j int) bool {
		ai, iok := ix.absByKey[keys[i]]
		aj, jok := ix.absByKey[keys[j]]
		switch {
		case iok && jok:
			return ai < aj
		case iok:
			return true
		case jok:
			return false
		default:
			return keys[i] < keys[j]
		}
	})
}

// StartingMeasures returns the absolute number of the first measure on each
// page, keyed by page number. This mirrors the running total the grid header
// shows.
func StartingMeasures(pages []Page) map[int]int {
	starts := make(map[int]int, len(pages))
	abs := 1
	for _, p := range pages {
		starts[p.Number] = abs
		for _, numMeasures := range p.Lines {
			abs += numMeasures
		}
	}
	return starts
}
