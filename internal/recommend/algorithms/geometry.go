// BookOptimal - Book Catalog Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookoptimal

package algorithms

import "math"

// Point is a coordinate on the preference plane.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NeutralPoint is the preference center assumed when there is no history.
var NeutralPoint = Point{X: 80, Y: 85}

// Centroid returns the arithmetic mean of points, or NeutralPoint when
// points is empty.
func Centroid(points []Point) Point {
	if len(points) == 0 {
		return NeutralPoint
	}

	var sumX, sumY float64
	for _, p := range points {
		sumX += p.X
		sumY += p.Y
	}

	n := float64(len(points))
	return Point{X: sumX / n, Y: sumY / n}
}

// CentroidOf returns the centroid of the items' positions.
func CentroidOf[T Positioned](items []T) Point {
	points := make([]Point, len(items))
	for i, item := range items {
		points[i] = item.Position()
	}
	return Centroid(points)
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// Closest returns the item nearest to target. Ties resolve to the earliest
// item. The second return value is false for empty input.
func Closest[T Positioned](items []T, target Point) (T, bool) {
	var best T
	if len(items) == 0 {
		return best, false
	}

	bestDist := math.Inf(1)
	for _, item := range items {
		if d := Distance(item.Position(), target); d < bestDist {
			best, bestDist = item, d
		}
	}

	return best, true
}
