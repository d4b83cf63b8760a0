// Package shapes describes geometric shapes.
package shapes

// Unit is the default scale.
const Unit = 1

const (
	// Small is a tiny side length.
	Small = 0.5

	large = 10
)

// Shape is anything with an area.
type Shape interface {
	Area() float64
}

// Square is a Shape with four equal sides.
//
// # Attributes
// Side (float64): the side length.
type Square struct {
	Side float64
}

// NewSquare returns a square with side s.
func NewSquare(s float64) *Square {
	return &Square{Side: s}
}

// Area returns the area of #Square.
func (q *Square) Area() float64 {
	return q.Side * q.Side
}

func undocumented() {}

// helper is not exported.
func helper() {}
