// Package geomath holds the planning geometry used by the router: projecting
// coordinates onto the unit sphere, sampling points between two coordinates
// and measuring how much of a line an alternative destination covers.
//
// None of this is navigation grade. Intermediate points are interpolated on
// the chord between two points rather than on the great circle.
package geomath

import (
	"errors"
	"fmt"
	"math"
)

// EarthRadiusKm is the mean earth radius used by Haversine.
const EarthRadiusKm = 6371.0088

var ErrZeroDistance = errors.New("zero distance between start and end")

type LatLon struct {
	Lat float64
	Lon float64
}

type Vector struct {
	X float64
	Y float64
	Z float64
}

func ToCartesian(coord LatLon) Vector {
	latRad := degreesToRadians(coord.Lat)
	lonRad := degreesToRadians(coord.Lon)

	return Vector{
		X: math.Cos(latRad) * math.Cos(lonRad),
		Y: math.Cos(latRad) * math.Sin(lonRad),
		Z: math.Sin(latRad),
	}
}

func ToLatLon(vector Vector) LatLon {
	return LatLon{
		Lat: radiansToDegrees(math.Asin(vector.Z)),
		Lon: radiansToDegrees(math.Atan2(vector.Y, vector.X)),
	}
}

// IntermediateCoordinates returns count evenly spaced points strictly between
// from and to, ordered from from towards to.
//
// The points are interpolated linearly in cartesian space and are not
// renormalised onto the sphere before being projected back.
func IntermediateCoordinates(from LatLon, to LatLon, count int) []LatLon {
	if count <= 0 {
		return []LatLon{}
	}

	a := ToCartesian(from)
	b := ToCartesian(to)

	steps := float64(count + 1)
	increment := Vector{
		X: (b.X - a.X) / steps,
		Y: (b.Y - a.Y) / steps,
		Z: (b.Z - a.Z) / steps,
	}

	coordinates := make([]LatLon, 0, count)
	for i := 1; i <= count; i++ {
		current := Vector{
			X: a.X + increment.X*float64(i),
			Y: a.Y + increment.Y*float64(i),
			Z: a.Z + increment.Z*float64(i),
		}

		coordinates = append(coordinates, ToLatLon(current))
	}

	return coordinates
}

// Haversine returns the great circle distance between a and b in kilometres.
func Haversine(a LatLon, b LatLon) float64 {
	lat1 := degreesToRadians(a.Lat)
	lat2 := degreesToRadians(b.Lat)
	deltaLat := lat2 - lat1
	deltaLon := degreesToRadians(b.Lon - a.Lon)

	h := math.Pow(math.Sin(deltaLat/2), 2) + math.Cos(lat1)*math.Cos(lat2)*math.Pow(math.Sin(deltaLon/2), 2)

	return 2 * EarthRadiusKm * math.Asin(math.Sqrt(h))
}

// CoveragePercentage is the distance start->current as a fraction of the
// distance start->end. The value is not clamped, a current point beyond end
// gives a value above 1.
func CoveragePercentage(start LatLon, end LatLon, current LatLon) (float64, error) {
	totalDistance := Haversine(start, end)
	if totalDistance == 0 {
		return 0, fmt.Errorf("coverage of %v between %v and %v: %w", current, start, end, ErrZeroDistance)
	}

	return Haversine(start, current) / totalDistance, nil
}

func degreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

func radiansToDegrees(radians float64) float64 {
	return radians * 180 / math.Pi
}
