package routing

import (
	"cmp"

	"github.com/travigo/transitrouter/pkg/transport"
	"golang.org/x/exp/slices"
)

const missingDistance = 999999

// FilterSuitableLocations drops placeholder locations without an identifier
// and, when nearness is set, every location that is not further than nearness
// metres away. With sort the result is ordered by ascending distance and
// locations without a distance come last.
//
// Keeping only the stations beyond nearness means the ones right next to a
// sample point are skipped. Callers rely on this, do not invert it without
// checking the routing results.
func FilterSuitableLocations(locations []transport.Location, sort bool, nearness *int) []transport.Location {
	filtered := []transport.Location{}

	for _, location := range locations {
		if !location.Valid() {
			continue
		}

		if nearness != nil && *nearness > 0 {
			if location.Distance == nil || *location.Distance <= float64(*nearness) {
				continue
			}
		}

		filtered = append(filtered, location)
	}

	if sort {
		slices.SortStableFunc(filtered, func(a, b transport.Location) int {
			return cmp.Compare(distanceOrMissing(a), distanceOrMissing(b))
		})
	}

	return filtered
}

func distanceOrMissing(location transport.Location) float64 {
	if location.Distance == nil {
		return missingDistance
	}

	return *location.Distance
}
