package fleet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSeats(t *testing.T) {
	t.Run("generates row by column grid", func(t *testing.T) {
		seats, err := BuildSeats(7, ClassEconomy, 3, 4)
		require.NoError(t, err)
		require.Len(t, seats, 12)

		assert.Equal(t, "1A", seats[0].SeatNumber)
		assert.Equal(t, "1D", seats[3].SeatNumber)
		assert.Equal(t, "2A", seats[4].SeatNumber)
		assert.Equal(t, "3D", seats[11].SeatNumber)
		for _, s := range seats {
			assert.Equal(t, 7, s.PlaneID)
			assert.Equal(t, ClassEconomy, s.ClassType)
		}
	})

	t.Run("double digit rows keep format", func(t *testing.T) {
		seats, err := BuildSeats(1, ClassBusiness, 12, 2)
		require.NoError(t, err)
		assert.Equal(t, "12B", seats[len(seats)-1].SeatNumber)
	})

	t.Run("rejects non-positive counts", func(t *testing.T) {
		_, err := BuildSeats(1, ClassEconomy, 0, 4)
		assert.Error(t, err)

		_, err = BuildSeats(1, ClassEconomy, 4, -1)
		assert.Error(t, err)
	})

	t.Run("rejects more than 26 columns", func(t *testing.T) {
		_, err := BuildSeats(1, ClassEconomy, 1, 27)
		assert.Error(t, err)

		seats, err := BuildSeats(1, ClassEconomy, 1, 26)
		require.NoError(t, err)
		assert.Equal(t, "1Z", seats[25].SeatNumber)
	})
}

func TestCapacity(t *testing.T) {
	classes := []PlaneClass{
		{ClassType: ClassEconomy, RowsCount: 20, ColsCount: 6},
		{ClassType: ClassBusiness, RowsCount: 5, ColsCount: 4},
	}
	assert.Equal(t, 140, Capacity(classes))
	assert.Equal(t, 0, Capacity(nil))
}

func TestSeatSet(t *testing.T) {
	seats, err := BuildSeats(1, ClassEconomy, 2, 2)
	require.NoError(t, err)

	set := SeatSet(seats)
	assert.Len(t, set, 4)
	_, ok := set[SeatKey(ClassEconomy, "2B")]
	assert.True(t, ok)
	_, ok = set[SeatKey(ClassBusiness, "2B")]
	assert.False(t, ok)
}
