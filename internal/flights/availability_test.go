package flights

import (
	"testing"

	"flytau/internal/fleet"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seatGrid(t *testing.T, classType fleet.ClassType, rows, cols int) []fleet.Seat {
	t.Helper()
	seats, err := fleet.BuildSeats(1, classType, rows, cols)
	require.NoError(t, err)
	return seats
}

func TestComputeAvailability(t *testing.T) {
	t.Run("available and occupied are disjoint and cover the map", func(t *testing.T) {
		seats := seatGrid(t, fleet.ClassEconomy, 3, 2)
		occupied := []SeatRef{
			{ClassType: fleet.ClassEconomy, SeatNumber: "1A"},
			{ClassType: fleet.ClassEconomy, SeatNumber: "3B"},
		}

		available, taken := ComputeAvailability(seats, occupied, fleet.PlaneSizeLarge)

		assert.ElementsMatch(t, []string{"1B", "2A", "2B", "3A"}, available[fleet.ClassEconomy])
		assert.ElementsMatch(t, []string{"1A", "3B"}, taken[fleet.ClassEconomy])

		seen := map[string]struct{}{}
		for _, n := range available[fleet.ClassEconomy] {
			seen[n] = struct{}{}
		}
		for _, n := range taken[fleet.ClassEconomy] {
			_, dup := seen[n]
			assert.False(t, dup, "seat %s both available and occupied", n)
		}
		assert.Equal(t, len(seats), len(available[fleet.ClassEconomy])+len(taken[fleet.ClassEconomy]))
	})

	t.Run("partitions by class", func(t *testing.T) {
		seats := append(seatGrid(t, fleet.ClassEconomy, 1, 2), seatGrid(t, fleet.ClassBusiness, 1, 2)...)
		occupied := []SeatRef{{ClassType: fleet.ClassBusiness, SeatNumber: "1A"}}

		available, taken := ComputeAvailability(seats, occupied, fleet.PlaneSizeLarge)

		assert.ElementsMatch(t, []string{"1A", "1B"}, available[fleet.ClassEconomy])
		assert.ElementsMatch(t, []string{"1B"}, available[fleet.ClassBusiness])
		assert.ElementsMatch(t, []string{"1A"}, taken[fleet.ClassBusiness])
		assert.Empty(t, taken[fleet.ClassEconomy])
	})

	t.Run("suppresses business class on small planes", func(t *testing.T) {
		seats := append(seatGrid(t, fleet.ClassEconomy, 1, 2), seatGrid(t, fleet.ClassBusiness, 1, 2)...)

		available, taken := ComputeAvailability(seats, nil, fleet.PlaneSizeSmall)

		_, hasBusiness := available[fleet.ClassBusiness]
		assert.False(t, hasBusiness)
		_, hasBusiness = taken[fleet.ClassBusiness]
		assert.False(t, hasBusiness)
		assert.Len(t, available[fleet.ClassEconomy], 2)
	})

	t.Run("identical occupied seat number in another class stays free", func(t *testing.T) {
		seats := append(seatGrid(t, fleet.ClassEconomy, 1, 1), seatGrid(t, fleet.ClassBusiness, 1, 1)...)
		occupied := []SeatRef{{ClassType: fleet.ClassEconomy, SeatNumber: "1A"}}

		available, _ := ComputeAvailability(seats, occupied, fleet.PlaneSizeLarge)

		assert.Empty(t, available[fleet.ClassEconomy])
		assert.ElementsMatch(t, []string{"1A"}, available[fleet.ClassBusiness])
	})
}

func TestFlightLineIsLongHaul(t *testing.T) {
	assert.False(t, (&FlightLine{DurationHours: 6}).IsLongHaul())
	assert.True(t, (&FlightLine{DurationHours: 6.5}).IsLongHaul())
	assert.False(t, (&FlightLine{DurationHours: 2}).IsLongHaul())
}

func TestStatusBookable(t *testing.T) {
	assert.True(t, StatusActive.Bookable())
	assert.True(t, StatusFull.Bookable())
	assert.False(t, StatusLanded.Bookable())
	assert.False(t, StatusCanceled.Bookable())
}
