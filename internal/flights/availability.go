package flights

import (
	"flytau/internal/fleet"
)

// ComputeAvailability partitions a plane's seat map into free and occupied
// seats per class. Occupied seats come from tickets of Active or Completed
// orders; canceled orders have already released theirs. Business class is
// dropped from the result for Small planes even if stray data exists.
func ComputeAvailability(seats []fleet.Seat, occupied []SeatRef, planeSize fleet.PlaneSize) (available, taken map[fleet.ClassType][]string) {
	occupiedSet := make(map[string]struct{}, len(occupied))
	for _, ref := range occupied {
		occupiedSet[fleet.SeatKey(ref.ClassType, ref.SeatNumber)] = struct{}{}
	}

	available = make(map[fleet.ClassType][]string)
	taken = make(map[fleet.ClassType][]string)

	for _, seat := range seats {
		if planeSize == fleet.PlaneSizeSmall && seat.ClassType == fleet.ClassBusiness {
			continue
		}
		if _, ok := occupiedSet[fleet.SeatKey(seat.ClassType, seat.SeatNumber)]; ok {
			taken[seat.ClassType] = append(taken[seat.ClassType], seat.SeatNumber)
		} else {
			available[seat.ClassType] = append(available[seat.ClassType], seat.SeatNumber)
		}
	}
	return available, taken
}
