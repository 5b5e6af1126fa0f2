package layout

import "slices"

// minDistribute is the smallest selection that has an inner item to move.
const minDistribute = 3

// Distribute spaces items along the axis so all gaps between neighbouring
// edges are equal. The first and last items by centre stay where they are.
//
// It reports whether the operation was dispatched. Selections of fewer than
// three items are left untouched and Distribute returns false; callers use
// this to skip recording history.
func Distribute(items []Item, axis Axis) bool {
	if len(items) < minDistribute {
		return false
	}

	ordered := sortByCenter(items, axis)
	first, last := ordered[0], ordered[len(ordered)-1]

	span := (last.Center(axis) + last.Extent(axis)/2) - (first.Center(axis) - first.Extent(axis)/2)
	var occupied float64
	for _, it := range ordered {
		occupied += it.Extent(axis)
	}
	gap := Gap(span, occupied, len(ordered))

	trailing := first.Center(axis) + first.Extent(axis)/2
	for _, it := range ordered[1 : len(ordered)-1] {
		half := it.Extent(axis) / 2
		c := trailing + gap + half
		it.SetCenter(axis, c)
		trailing = c + half
	}
	return true
}

// Gap returns the uniform spacing between n items occupying occupied units
// inside span. It is negative when the items do not fit. n must be at least 2.
func Gap(span, occupied float64, n int) float64 {
	return (span - occupied) / float64(n-1)
}

// sortByCenter returns a copy of items ordered by centre. Equal centres keep
// their input order.
func sortByCenter(items []Item, axis Axis) []Item {
	ordered := slices.Clone(items)
	slices.SortStableFunc(ordered, func(a, b Item) int {
		ca, cb := a.Center(axis), b.Center(axis)
		switch {
		case ca < cb:
			return -1
		case ca > cb:
			return 1
		}
		return 0
	})
	return ordered
}
