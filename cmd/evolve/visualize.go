package main

import (
	"fmt"
	"math"
	"os"
	"strings"
)

// visualizeTSP renders route as an SVG line drawing, adapted from the
// teacher's TSP visualizer to the City/route types produced by the
// Unique-genotype demo.
func visualizeTSP(route []City, filename string) error {
	if len(route) == 0 {
		return fmt.Errorf("empty route")
	}

	minX, maxX := route[0].X, route[0].X
	minY, maxY := route[0].Y, route[0].Y
	for _, city := range route {
		minX, maxX = math.Min(minX, city.X), math.Max(maxX, city.X)
		minY, maxY = math.Min(minY, city.Y), math.Max(maxY, city.Y)
	}

	const padding = 80.0
	const canvasWidth = 800.0
	const canvasHeight = 600.0

	spanX, spanY := maxX-minX, maxY-minY
	if spanX == 0 {
		spanX = 1
	}
	if spanY == 0 {
		spanY = 1
	}
	scale := math.Min((canvasWidth-2*padding)/spanX, (canvasHeight-2*padding)/spanY)

	transformX := func(x float64) float64 { return padding + (x-minX)*scale }
	transformY := func(y float64) float64 { return padding + (y-minY)*scale }

	var svg strings.Builder
	fmt.Fprintf(&svg, `<svg width="%.0f" height="%.0f" xmlns="http://www.w3.org/2000/svg">`, canvasWidth, canvasHeight)
	svg.WriteString(`<defs><marker id="arrowhead" markerWidth="10" markerHeight="7" refX="9" refY="3.5" orient="auto">`)
	svg.WriteString(`<polygon points="0 0, 10 3.5, 0 7" fill="blue" /></marker></defs>`)

	totalDistance := 0.0
	for i := range route {
		current := route[i]
		next := route[(i+1)%len(route)]

		dx, dy := current.X-next.X, current.Y-next.Y
		totalDistance += math.Sqrt(dx*dx + dy*dy)

		x1, y1 := transformX(current.X), transformY(current.Y)
		x2, y2 := transformX(next.X), transformY(next.Y)
		lineDx, lineDy := x2-x1, y2-y1
		length := math.Sqrt(lineDx*lineDx + lineDy*lineDy)
		if length == 0 {
			continue
		}
		const circleRadius = 6.0
		offsetX, offsetY := lineDx/length*circleRadius, lineDy/length*circleRadius
		fmt.Fprintf(&svg, `<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="blue" stroke-width="2" marker-end="url(#arrowhead)" />`,
			x1+offsetX, y1+offsetY, x2-offsetX, y2-offsetY)
	}

	for _, city := range route {
		x, y := transformX(city.X), transformY(city.Y)
		fmt.Fprintf(&svg, `<circle cx="%.2f" cy="%.2f" r="6" fill="red" stroke="black" stroke-width="1" />`, x, y)
	}

	for _, city := range route {
		x, y := transformX(city.X), transformY(city.Y)
		textY := y - 12
		fmt.Fprintf(&svg, `<text x="%.2f" y="%.2f" text-anchor="middle" font-family="Arial, sans-serif" font-size="12" font-weight="bold" fill="black">%s</text>`,
			x, textY, city.Name)
		coordY := textY - 14
		fmt.Fprintf(&svg, `<text x="%.2f" y="%.2f" text-anchor="middle" font-family="Arial, sans-serif" font-size="10" fill="gray">(%.1f,%.1f)</text>`,
			x, coordY, city.X, city.Y)
	}

	fmt.Fprintf(&svg, `<text x="%.2f" y="25" text-anchor="middle" font-family="Arial, sans-serif" font-size="18" font-weight="bold" fill="black">TSP Route Visualization</text>`,
		canvasWidth/2)
	fmt.Fprintf(&svg, `<text x="%.2f" y="%.2f" text-anchor="middle" font-family="Arial, sans-serif" font-size="14" fill="black">Total Distance: %.2f</text>`,
		canvasWidth/2, canvasHeight-15, totalDistance)

	svg.WriteString(`</svg>`)
	return os.WriteFile(filename, []byte(svg.String()), 0644)
}
