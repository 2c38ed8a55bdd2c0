package cache

import "fmt"

// Key builders for the cached read models. Availability and board entries
// are invalidated on every booking or cancellation touching the flight.

const keyPrefix = "flytau"

// FlightBoardKey caches the public flight board listing.
func FlightBoardKey() string {
	return keyPrefix + ":flights:board"
}

// FlightSearchKey caches one search result set per (origin, destination, date) filter.
func FlightSearchKey(origin, destination, date string) string {
	return fmt.Sprintf("%s:flights:search:%s:%s:%s", keyPrefix, origin, destination, date)
}

// AvailabilityKey caches the seats-by-class view of one flight.
func AvailabilityKey(flightID string) string {
	return fmt.Sprintf("%s:flights:%s:availability", keyPrefix, flightID)
}

// FlightCachePattern matches every cached entry derived from flight state.
func FlightCachePattern() string {
	return keyPrefix + ":flights:*"
}
