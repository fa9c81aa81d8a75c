// Package grid provides a sparse, dynamically growing character canvas.
//
// A [Canvas] accepts character placements at arbitrary non-negative
// coordinates, in any order, and grows to fit them. It is the assembly
// stage between a table of (x, y, character) triples and the final text
// rendering of the message they encode.
//
// # Coordinates
//
// Coordinates are 0-indexed. X grows rightward and Y grows upward, so the
// data's y-axis is mathematical while the rendering is visual:
//
//	y=1  B
//	y=0  A
//
// renders as "B\nA\n". Row 0 is always the last line of output.
//
// # Growth
//
// A new canvas is 1×1 and holds only the fill character. [Canvas.Insert]
// pads every existing row when x reaches past the current width and appends
// fill rows when y reaches past the current height, so the backing rows are
// always rectangular and the canvas never shrinks.
//
// # Usage
//
//	c := grid.New(grid.WithFill('.'))
//	_ = c.Insert(2, 0, 'X')
//	_ = c.Insert(0, 0, 'Y')
//	fmt.Print(c) // "Y.X\n"
//
// A Canvas is not safe for concurrent use. Insertions are expected to
// happen sequentially from a single consumer.
package grid
