package dataflow

import "math"

// Metadata stores arbitrary key-value pairs. Nodes use it as their opaque,
// type-specific state blob. Metadata maps are never nil after a node is
// created.
type Metadata map[string]any

// Clone returns a shallow copy of m. A nil map clones to an empty map.
func (m Metadata) Clone() Metadata {
	out := make(Metadata, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Value is the payload carried along an edge during propagation.
type Value = any

// NodeID identifies a node for the lifetime of a diagram.
type NodeID string

// PortID identifies a port within its owning node.
type PortID string

// EdgeID identifies an edge within a diagram.
type EdgeID string

// PortRef addresses a port through the diagram.
type PortRef struct {
	Node NodeID
	Port PortID
}

func (r PortRef) String() string { return string(r.Node) + "." + string(r.Port) }

// Direction tells inputs and outputs apart.
type Direction int

const (
	// Input ports receive values. They are the target side of an edge.
	Input Direction = iota
	// Output ports emit values. They are the source side of an edge.
	Output
)

func (d Direction) String() string {
	if d == Output {
		return "output"
	}
	return "input"
}

// AnyType is the port type tag compatible with every other tag.
const AnyType = "any"

// Point is a position in diagram space.
type Point struct {
	X, Y float64
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// IsZero reports whether both coordinates are zero.
func (p Point) IsZero() bool { return p.X == 0 && p.Y == 0 }

// Angle returns the direction of the vector from p to q in radians.
func (p Point) Angle(q Point) float64 { return math.Atan2(q.Y-p.Y, q.X-p.X) }

// Box is an axis-aligned rectangle in diagram space. Width and Height are
// never negative once normalized.
type Box struct {
	X, Y          float64
	Width, Height float64
}

// BoxFrom returns the normalized rectangle spanned by two corners.
func BoxFrom(a, b Point) Box {
	return Box{
		X:      math.Min(a.X, b.X),
		Y:      math.Min(a.Y, b.Y),
		Width:  math.Abs(b.X - a.X),
		Height: math.Abs(b.Y - a.Y),
	}
}

// Intersects reports whether b and o overlap. Touching edges count.
func (b Box) Intersects(o Box) bool {
	return b.X <= o.X+o.Width && o.X <= b.X+b.Width &&
		b.Y <= o.Y+o.Height && o.Y <= b.Y+b.Height
}

// Contains reports whether p lies inside b, borders included.
func (b Box) Contains(p Point) bool {
	return p.X >= b.X && p.X <= b.X+b.Width && p.Y >= b.Y && p.Y <= b.Y+b.Height
}

// Center returns the midpoint of b.
func (b Box) Center() Point { return Point{X: b.X + b.Width/2, Y: b.Y + b.Height/2} }
