package storage

import (
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/springsim/internal/dynamo"
)

// Point is one vertex of an SVG polyline.
type Point struct{ X, Y float64 }

// ValuePoints plots value over time.
func ValuePoints(samples []dynamo.Sample) []Point {
	pts := make([]Point, len(samples))
	for i, s := range samples {
		pts[i] = Point{X: s.Time, Y: s.Value}
	}
	return pts
}

// PhasePoints plots velocity against value.
func PhasePoints(samples []dynamo.Sample) []Point {
	pts := make([]Point, len(samples))
	for i, s := range samples {
		pts[i] = Point{X: s.Value, Y: s.Velocity}
	}
	return pts
}

// WriteSVG renders points as a single path scaled into a width x height
// viewport with 10% padding on each axis.
func WriteSVG(w io.Writer, points []Point, width, height int, stroke string) error {
	if len(points) < 2 {
		return fmt.Errorf("need at least 2 points, got %d", len(points))
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}

	rangeX, rangeY := maxX-minX, maxY-minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, stroke)

	for i, p := range points {
		x := (p.X - minX) / rangeX * float64(width)
		y := float64(height) - (p.Y-minY)/rangeY*float64(height)
		if i > 0 {
			sb.WriteString(" L")
		}
		fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
	}
	sb.WriteString("\"/>\n</svg>\n")

	_, err := io.WriteString(w, sb.String())
	return err
}
