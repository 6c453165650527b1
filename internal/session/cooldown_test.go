package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCooldownStartsInactive(t *testing.T) {
	c := NewCooldown()
	assert.False(t, c.Active())
	assert.Equal(t, 0, c.Remaining())
}

func TestCooldownCountsDownToZero(t *testing.T) {
	c := newCooldownWithTick(time.Millisecond)
	c.Arm(3)
	assert.True(t, c.Active())

	require.Eventually(t, func() bool { return !c.Active() }, time.Second, time.Millisecond)
	assert.Equal(t, 0, c.Remaining())
}

func TestCooldownRearmResets(t *testing.T) {
	c := newCooldownWithTick(50 * time.Millisecond)
	c.Arm(2)
	c.Arm(1000)
	assert.GreaterOrEqual(t, c.Remaining(), 999)
}
