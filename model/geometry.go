package model

import "math"

// BBox is an axis-aligned bounding box in page coordinates.
type BBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// NewBBox creates a bounding box from an origin and dimensions.
func NewBBox(x, y, width, height float64) BBox {
	return BBox{X: x, Y: y, Width: width, Height: height}
}

// Left returns the left edge X coordinate.
func (b BBox) Left() float64 {
	return b.X
}

// Right returns the right edge X coordinate.
func (b BBox) Right() float64 {
	return b.X + b.Width
}

// Bottom returns the bottom edge Y coordinate.
func (b BBox) Bottom() float64 {
	return b.Y
}

// Top returns the top edge Y coordinate.
func (b BBox) Top() float64 {
	return b.Y + b.Height
}

// Area returns the area of the bounding box.
func (b BBox) Area() float64 {
	return b.Width * b.Height
}

// AspectRatio returns width divided by height, or 0 for a degenerate box.
func (b BBox) AspectRatio() float64 {
	if b.Height <= 0 {
		return 0
	}
	return b.Width / b.Height
}

// Intersects checks if two bounding boxes overlap on both axes.
func (b BBox) Intersects(other BBox) bool {
	return !(b.Right() < other.Left() ||
		b.Left() > other.Right() ||
		b.Top() < other.Bottom() ||
		b.Bottom() > other.Top())
}

// Union returns the smallest bounding box covering both boxes.
func (b BBox) Union(other BBox) BBox {
	x := math.Min(b.Left(), other.Left())
	y := math.Min(b.Bottom(), other.Bottom())
	right := math.Max(b.Right(), other.Right())
	top := math.Max(b.Top(), other.Top())

	return BBox{
		X:      x,
		Y:      y,
		Width:  right - x,
		Height: top - y,
	}
}

// Expand grows the bounding box by a margin on all sides.
func (b BBox) Expand(margin float64) BBox {
	return BBox{
		X:      b.X - margin,
		Y:      b.Y - margin,
		Width:  b.Width + 2*margin,
		Height: b.Height + 2*margin,
	}
}

// IsValid returns true if the bounding box has positive dimensions.
func (b BBox) IsValid() bool {
	return b.Width > 0 && b.Height > 0
}
