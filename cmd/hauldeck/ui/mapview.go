package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"hauldeck/internal/hos"
	"hauldeck/internal/trip"
)

// mapWidth and mapHeight size the character canvas the route is projected
// onto. The canvas is purely schematic; it preserves relative geometry,
// not scale.
const (
	mapWidth  = 56
	mapHeight = 14
)

// RenderRouteMap draws a schematic route map: current, pickup and dropoff
// positions projected onto a character grid, connected by a path, with the
// trip aggregates and the planned stops beside it.
func RenderRouteMap(t *trip.Trip, styles Styles) string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render("Route Map"))
	sb.WriteString("\n")

	canvas := plotRoute(t, styles)
	sb.WriteString(styles.Card.Render(canvas))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("%s %s    %s %s    %s %s\n",
		styles.Info.Render("C"), styles.Body.Render(t.CurrentLocation),
		styles.Success.Render("P"), styles.Body.Render(t.PickupLocation),
		styles.Error.Render("D"), styles.Body.Render(t.DropoffLocation)))
	sb.WriteString("\n")

	stats := NewSimpleTable("", "Distance", "Duration", "Fuel Stops", "Rest Stops").AlignRight(0, 1, 2, 3)
	stats.AddRow(
		fmt.Sprintf("%.0f mi", t.TotalDistance()),
		hos.FormatDuration(t.TotalDuration()),
		fmt.Sprintf("%d", t.CountSegments(trip.SegmentFuel)),
		fmt.Sprintf("%d", t.CountSegments(trip.SegmentRest)))
	sb.WriteString(stats.View(styles))

	stops := plannedStops(t)
	if len(stops) > 0 {
		sb.WriteString("\n")
		sb.WriteString(styles.Bold.Render("Planned Stops"))
		sb.WriteString("\n")
		for _, s := range stops {
			sb.WriteString(styles.Body.Render(fmt.Sprintf("  %s %s — %s (%s)",
				s.Type.Icon(), titleCase(string(s.Type)), s.StartLocation, hos.FormatDuration(s.DurationHours))))
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

// plannedStops filters the non-driving legs that represent stops along the
// way, in backend order.
func plannedStops(t *trip.Trip) []trip.RouteSegment {
	var stops []trip.RouteSegment
	for _, s := range t.Segments {
		switch s.Type {
		case trip.SegmentRest, trip.SegmentFuel, trip.SegmentBreak:
			stops = append(stops, s)
		}
	}
	return stops
}

type mapPoint struct {
	x, y   int
	marker string
}

// plotRoute projects the three trip coordinates into the canvas and joins
// them with a line path. Degenerate geometry (identical points) still
// renders the markers.
func plotRoute(t *trip.Trip, styles Styles) string {
	lats := []float64{t.CurrentLat, t.PickupLat, t.DropoffLat}
	lngs := []float64{t.CurrentLng, t.PickupLng, t.DropoffLng}

	minLat, maxLat := minMax(lats)
	minLng, maxLng := minMax(lngs)

	project := func(lat, lng float64) (int, int) {
		x, y := 0, 0
		if maxLng > minLng {
			x = int(math.Round((lng - minLng) / (maxLng - minLng) * float64(mapWidth-1)))
		}
		if maxLat > minLat {
			// Latitude grows north; the canvas grows down.
			y = int(math.Round((maxLat - lat) / (maxLat - minLat) * float64(mapHeight-1)))
		}
		return x, y
	}

	grid := make([][]rune, mapHeight)
	for i := range grid {
		grid[i] = make([]rune, mapWidth)
		for j := range grid[i] {
			grid[i][j] = ' '
		}
	}

	points := make([]mapPoint, 3)
	markers := []string{"C", "P", "D"}
	for i := range markers {
		x, y := project(lats[i], lngs[i])
		points[i] = mapPoint{x: x, y: y, marker: markers[i]}
	}

	drawPath(grid, points[0], points[1])
	drawPath(grid, points[1], points[2])

	markerStyles := []lipgloss.Style{styles.Info, styles.Success, styles.Error}

	var sb strings.Builder
	for y := 0; y < mapHeight; y++ {
		for x := 0; x < mapWidth; x++ {
			cell := string(grid[y][x])
			rendered := false
			for i, p := range points {
				if p.x == x && p.y == y {
					sb.WriteString(markerStyles[i].Render(p.marker))
					rendered = true
					break
				}
			}
			if !rendered {
				if cell == " " {
					sb.WriteString(cell)
				} else {
					sb.WriteString(styles.Muted.Render(cell))
				}
			}
		}
		if y < mapHeight-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// drawPath connects two points with a stepped line.
func drawPath(grid [][]rune, a, b mapPoint) {
	dx := abs(b.x - a.x)
	dy := abs(b.y - a.y)
	sx, sy := 1, 1
	if a.x > b.x {
		sx = -1
	}
	if a.y > b.y {
		sy = -1
	}

	x, y := a.x, a.y
	err := dx - dy
	for {
		if y >= 0 && y < len(grid) && x >= 0 && x < len(grid[y]) && grid[y][x] == ' ' {
			grid[y][x] = '·'
		}
		if x == b.x && y == b.y {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
}

func minMax(vals []float64) (min, max float64) {
	min, max = vals[0], vals[0]
	for _, v := range vals[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
