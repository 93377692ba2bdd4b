package game

import "math"

// Position :
// Describes a location in the galaxy as an integer-indexed 2D
// vector. Distances are measured in light-years.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// DistanceTo :
// Computes the Euclidean distance between this position and
// the input one. Every rule of the engine measures distances
// this way, there is no Manhattan shortcut anywhere.
//
// The `other` defines the position to measure to.
//
// Returns the distance in light-years.
func (p Position) DistanceTo(other Position) float64 {
	dx := float64(p.X - other.X)
	dy := float64(p.Y - other.Y)

	return math.Sqrt(dx*dx + dy*dy)
}

// DistanceSquaredTo :
// Computes the square of the Euclidean distance between this
// position and the input one. Useful for range comparisons
// that do not need the square root.
//
// The `other` defines the position to measure to.
//
// Returns the squared distance.
func (p Position) DistanceSquaredTo(other Position) int {
	dx := p.X - other.X
	dy := p.Y - other.Y

	return dx*dx + dy*dy
}
