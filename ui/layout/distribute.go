package layout

import (
	"masonry/box"
)

// Column is one vertical stack of boxes and its accumulated height.
type Column struct {
	Boxes  []box.Box
	Height float64
}

// Columns assigns each box, in order, to the column with the smallest
// accumulated height. Ties go to the lowest column index. A non-positive
// numberOfColumns yields no columns.
func Columns(numberOfColumns int, boxes []box.Box) []Column {
	if numberOfColumns <= 0 {
		return []Column{}
	}

	columns := make([]Column, numberOfColumns)
	for _, b := range boxes {
		shortest := 0
		for i := 1; i < len(columns); i++ {
			if columns[i].Height < columns[shortest].Height {
				shortest = i
			}
		}
		columns[shortest].Boxes = append(columns[shortest].Boxes, b)
		columns[shortest].Height += b.Height
	}
	return columns
}

// Flatten concatenates the columns in index order.
func Flatten(columns []Column) []box.Box {
	n := 0
	for _, c := range columns {
		n += len(c.Boxes)
	}
	flat := make([]box.Box, 0, n)
	for _, c := range columns {
		flat = append(flat, c.Boxes...)
	}
	return flat
}

// Distribute returns the render order of boxes spread over numberOfColumns:
// every box exactly once, grouped by column. It returns an empty slice when
// numberOfColumns is not positive.
func Distribute(numberOfColumns int, boxes []box.Box) []box.Box {
	return Flatten(Columns(numberOfColumns, boxes))
}

type memoKey struct {
	first   *box.Box
	length  int
	columns int
}

// Distributor memoizes the last distribution. It recomputes only when the box
// slice (by identity) or the column count changes.
type Distributor struct {
	key     memoKey
	valid   bool
	columns []Column
	flat    []box.Box

	computed int
}

// Distribute returns the flattened render order and the columns behind it.
// Callers must not modify the returned slices.
func (d *Distributor) Distribute(numberOfColumns int, boxes []box.Box) ([]box.Box, []Column) {
	key := memoKey{length: len(boxes), columns: numberOfColumns}
	if len(boxes) > 0 {
		key.first = &boxes[0]
	}

	if d.valid && d.key == key {
		return d.flat, d.columns
	}

	d.columns = Columns(numberOfColumns, boxes)
	d.flat = Flatten(d.columns)
	d.key = key
	d.valid = true
	d.computed++
	return d.flat, d.columns
}

// Computations returns how many times the distribution was computed.
func (d *Distributor) Computations() int {
	return d.computed
}

// Invalidate forces the next call to recompute.
func (d *Distributor) Invalidate() {
	d.valid = false
}
