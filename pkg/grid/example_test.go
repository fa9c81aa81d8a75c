package grid_test

import (
	"fmt"

	"github.com/matzehuels/glyphgrid/pkg/grid"
)

func ExampleCanvas_Insert() {
	c := grid.New()
	_ = c.Insert(2, 0, 'X')
	_ = c.Insert(0, 0, 'Y')
	fmt.Printf("%dx%d %q\n", c.Width(), c.Height(), c.String())
	// Output: 3x1 "Y X\n"
}

func ExampleCanvas_String() {
	c := grid.New(grid.WithFill('.'))
	_ = c.Insert(0, 0, 'A')
	_ = c.Insert(1, 1, 'B')
	fmt.Print(c)
	// Output:
	// .B
	// A.
}

func ExampleCanvas_Get() {
	c := grid.New()
	_ = c.Insert(1, 0, 'Z')
	_, err := c.Get(2, 0)
	fmt.Println(err)
	// Output: coordinate out of range: (2, 0) outside 2x1
}
