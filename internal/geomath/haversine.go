// Package geomath provides great-circle distance math for nearby searches.
package geomath

import "math"

// earthRadiusMiles is the mean Earth radius used by the haversine formula.
const earthRadiusMiles = 3958.8

// DistanceMiles computes the great-circle distance in miles between two
// points given in WGS84 degrees. Inputs are not range-validated;
// out-of-range degrees produce mathematically valid but domain-meaningless
// results. The function is deterministic and symmetric in its two points.
func DistanceMiles(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	a := sinLat*sinLat + math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*sinLon*sinLon
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMiles * c
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
