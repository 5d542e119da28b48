package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewDeadlineFormula(t *testing.T) {
	// 60s left, 2s increment: 60/20 + 2/2 = 4s, inside the clamp range.
	d := NewDeadline(60*time.Second, 2*time.Second)
	require.Equal(t, 4*time.Second, d.budget)
}

func TestNewDeadlineClampsLow(t *testing.T) {
	d := NewDeadline(300*time.Millisecond, 0)
	require.Equal(t, 50*time.Millisecond, d.budget)
}

func TestNewDeadlineClampsHigh(t *testing.T) {
	// 1s left with a huge increment: the budget may not eat into the last
	// 100ms of the clock.
	d := NewDeadline(1*time.Second, 1*time.Minute)
	require.Equal(t, 900*time.Millisecond, d.budget)
}

func TestUnboundedDeadlineNeverExpires(t *testing.T) {
	d := NewUnboundedDeadline()
	require.False(t, d.Expired())
	require.False(t, d.MoreThanHalfSpent())
}

func TestDeadlineStop(t *testing.T) {
	d := NewUnboundedDeadline()
	d.Stop()
	require.True(t, d.Expired())
}

func TestDeadlineExpires(t *testing.T) {
	d := NewDeadline(0, 0) // clamps to the 50ms floor
	require.False(t, d.Expired())
	time.Sleep(60 * time.Millisecond)
	require.True(t, d.Expired())
}
