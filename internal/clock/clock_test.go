package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemClock_StampFormat(t *testing.T) {
	c := System()

	stamp := c.Stamp()
	_, err := time.Parse(StampFormat, stamp)
	require.NoError(t, err)
}

func TestSystemClock_StampsNeverDecrease(t *testing.T) {
	c := System()

	prev := c.Stamp()
	for i := 0; i < 100; i++ {
		next := c.Stamp()
		assert.LessOrEqual(t, prev, next)
		prev = next
	}
}

func TestManualClock_Advance(t *testing.T) {
	start := time.Date(2025, 5, 31, 17, 0, 0, 0, time.UTC)
	c := Manual(start)

	assert.Equal(t, "2025-05-31 17:00:00", c.Stamp())

	c.Advance(90 * time.Second)
	assert.Equal(t, "2025-05-31 17:01:30", c.Stamp())
	assert.Equal(t, start.Add(90*time.Second), c.Now())
}
