// Package layout repositions selections of canvas objects along one axis.
//
// The package knows nothing about rendering. A selection is any slice of
// [Item] values; each item reports its centre and its effective extent
// (size after scaling) along an [Axis] and accepts a new centre.
//
// # Distribution
//
// [Distribute] spaces a selection so every gap between neighbouring edges is
// the same. The outermost items (the anchors) never move, so the bounding
// extent of the selection is preserved:
//
//	first  [==]      [==]            [==]  last
//	   =>  [==]        [==]          [==]
//
// The gap may come out negative when the items already occupy more than the
// span between the anchors. It is applied as-is and produces overlap.
//
// Items are ordered by centre with ties kept in input order, so calling
// Distribute again on a distributed selection moves nothing.
//
// # Alignment
//
// [Align] snaps every item to the start, centre or end of the selection's
// bounding extent, as returned by [Bounds].
package layout
