package fleet

import (
	"fmt"

	"flytau/internal/shared/faults"
)

const maxColumns = 26

// BuildSeats derives the seat grid of one cabin class: rows 1..rowsCount
// crossed with the first colsCount column letters. Seat numbers read
// "{row}{letter}", e.g. 12C.
func BuildSeats(planeID int, classType ClassType, rowsCount, colsCount int) ([]Seat, error) {
	if rowsCount <= 0 || colsCount <= 0 {
		return nil, faults.Validation("rows and columns must be positive, got %dx%d", rowsCount, colsCount)
	}
	if colsCount > maxColumns {
		return nil, faults.Validation("at most %d columns supported, got %d", maxColumns, colsCount)
	}

	seats := make([]Seat, 0, rowsCount*colsCount)
	for row := 1; row <= rowsCount; row++ {
		for col := 0; col < colsCount; col++ {
			seats = append(seats, Seat{
				PlaneID:    planeID,
				ClassType:  classType,
				SeatNumber: fmt.Sprintf("%d%c", row, 'A'+col),
			})
		}
	}
	return seats, nil
}

// Capacity is the total seat count over all configured classes.
func Capacity(classes []PlaneClass) int {
	total := 0
	for _, pc := range classes {
		total += pc.RowsCount * pc.ColsCount
	}
	return total
}

// SeatKey folds a seat coordinate into a single map key. Used by the
// availability computation to intersect seat sets without nested maps.
func SeatKey(classType ClassType, seatNumber string) string {
	return string(classType) + "/" + seatNumber
}

// SeatSet builds a lookup set over a seat slice keyed by SeatKey.
func SeatSet(seats []Seat) map[string]struct{} {
	set := make(map[string]struct{}, len(seats))
	for _, s := range seats {
		set[SeatKey(s.ClassType, s.SeatNumber)] = struct{}{}
	}
	return set
}
