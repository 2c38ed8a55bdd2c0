package crew

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequiredCrew(t *testing.T) {
	t.Run("short haul gets 2 pilots and 3 attendants", func(t *testing.T) {
		req := RequiredCrew(2.5)
		assert.Equal(t, 2, req.Pilots)
		assert.Equal(t, 3, req.Attendants)
	})

	t.Run("exactly six hours is still short haul", func(t *testing.T) {
		req := RequiredCrew(6)
		assert.Equal(t, 2, req.Pilots)
		assert.Equal(t, 3, req.Attendants)
	})

	t.Run("over six hours gets 3 pilots and 6 attendants", func(t *testing.T) {
		req := RequiredCrew(6.5)
		assert.Equal(t, 3, req.Pilots)
		assert.Equal(t, 6, req.Attendants)
	})

	t.Run("seven hour flight gets 3 pilots and 6 attendants", func(t *testing.T) {
		req := RequiredCrew(7)
		assert.Equal(t, 3, req.Pilots)
		assert.Equal(t, 6, req.Attendants)
	})
}

func TestDedupe(t *testing.T) {
	t.Run("removes repeats and keeps order", func(t *testing.T) {
		out := Dedupe([]string{"111111111", "222222222", "111111111", "333333333", "222222222"})
		assert.Equal(t, []string{"111111111", "222222222", "333333333"}, out)
	})

	t.Run("empty input stays empty", func(t *testing.T) {
		assert.Empty(t, Dedupe(nil))
	})

	t.Run("unique input passes through", func(t *testing.T) {
		in := []string{"111111111", "222222222"}
		assert.Equal(t, in, Dedupe(in))
	})
}
