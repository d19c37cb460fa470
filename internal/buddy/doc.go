// Package buddy implements the square-slot allocator behind tileatlas.
//
// Slots are power-of-two squares addressed in level-0 pixel coordinates of
// a single growable page. A [Pool] keeps per-class stacks of free slots,
// subdivides a larger slot into four children when a class runs dry, and
// merges four free siblings back into their parent on release. When no
// larger slot exists the pool asks its [Grower] for more page area.
//
// At any time the free slots plus the checked-out slots tile the grown page
// area exactly, with no overlaps and no gaps.
package buddy
