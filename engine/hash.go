// Package engine holds the pure issue lifecycle rules: location hashing,
// priority scoring, deadline computation and the escalation filters.
package engine

import "fmt"

// LocationHash normalizes GPS coordinates into a coarse identity key used to
// detect duplicate reports of the same physical problem. Coordinates are
// rounded to 4 decimal places (~11 m); two reports inside the same bucket
// collide on purpose — that is the duplicate-detection granularity.
func LocationHash(lat, lon float64) string {
	return fmt.Sprintf("loc-%.4f-%.4f", lat, lon)
}
