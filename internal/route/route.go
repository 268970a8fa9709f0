// Package route models a ride's ordered city sequence and the
// direction-preserving overlap test used for matching.
package route

import "fmt"

// Build returns the full route of a ride: pickup, waypoints in order, drop.
func Build(pickup string, waypoints []string, drop string) []string {
	r := make([]string, 0, len(waypoints)+2)
	r = append(r, pickup)
	r = append(r, waypoints...)
	r = append(r, drop)
	return r
}

// Overlaps reports whether riderPickup and riderDrop both occur in route
// with the pickup strictly before the drop. Equal cities or either city
// absent yields false; a rider travelling against the published direction
// never matches.
func Overlaps(route []string, riderPickup, riderDrop string) bool {
	pi := indexOf(route, riderPickup)
	di := indexOf(route, riderDrop)
	return pi >= 0 && di >= 0 && pi < di
}

// Segment returns the [start, end] indices of a rider's sub-route within
// route, or ok=false if the pair is not a valid direction-preserving
// sub-segment.
func Segment(route []string, riderPickup, riderDrop string) (start, end int, ok bool) {
	pi := indexOf(route, riderPickup)
	di := indexOf(route, riderDrop)
	if pi < 0 || di < 0 || pi >= di {
		return 0, 0, false
	}
	return pi, di, true
}

// SegmentsIntersect reports whether two sub-routes share at least one leg of
// the ride, i.e. their index intervals overlap.
func SegmentsIntersect(aStart, aEnd, bStart, bEnd int) bool {
	return max(aStart, bStart) < min(aEnd, bEnd)
}

// ValidateWaypoints checks the ride route invariant: waypoints contain
// neither endpoint and no duplicates.
func ValidateWaypoints(pickup, drop string, waypoints []string) error {
	seen := make(map[string]bool, len(waypoints))
	for _, city := range waypoints {
		if city == pickup {
			return fmt.Errorf("waypoint %q duplicates the pickup city", city)
		}
		if city == drop {
			return fmt.Errorf("waypoint %q duplicates the drop city", city)
		}
		if seen[city] {
			return fmt.Errorf("duplicate waypoint %q", city)
		}
		seen[city] = true
	}
	if pickup == drop {
		return fmt.Errorf("pickup and drop city must differ")
	}
	return nil
}

func indexOf(route []string, city string) int {
	for i, c := range route {
		if c == city {
			return i
		}
	}
	return -1
}
