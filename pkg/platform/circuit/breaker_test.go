package circuit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBreaker(t *testing.T) {
	t.Run("opens after consecutive failures", func(t *testing.T) {
		b := New(WithFailureThreshold(3))

		assert.False(t, b.Failure())
		assert.False(t, b.Failure())
		assert.True(t, b.Failure()) // third failure trips it
		assert.True(t, b.IsOpen())
		assert.False(t, b.Failure()) // already open, no new transition
	})

	t.Run("a success resets the failure streak while closed", func(t *testing.T) {
		b := New(WithFailureThreshold(3))

		b.Failure()
		b.Failure()
		b.Success()
		assert.False(t, b.Failure())
		assert.False(t, b.Failure())
		assert.False(t, b.IsOpen())
	})

	t.Run("closes after consecutive successes", func(t *testing.T) {
		b := New(WithFailureThreshold(1), WithSuccessThreshold(2))

		assert.True(t, b.Failure())
		assert.False(t, b.Success())
		assert.True(t, b.Success())
		assert.False(t, b.IsOpen())
	})

	t.Run("failure while recovering restarts the success streak", func(t *testing.T) {
		b := New(WithFailureThreshold(1), WithSuccessThreshold(2))

		b.Failure()
		b.Success()
		b.Failure()
		assert.False(t, b.Success())
		assert.True(t, b.IsOpen())
	})
}
