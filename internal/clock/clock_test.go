package clock

import (
	"testing"
	"time"
)

func TestRealClockNow(t *testing.T) {
	c := &RealClock{}
	before := time.Now()
	got := c.Now()
	after := time.Now()
	if got.Before(before) || got.After(after) {
		t.Errorf("RealClock.Now() = %v, outside [%v, %v]", got, before, after)
	}
}

func TestMockClock(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := NewMockClock(base)

	if !c.Now().Equal(base) {
		t.Errorf("Now() = %v, want %v", c.Now(), base)
	}

	c.Advance(90 * time.Second)
	want := base.Add(90 * time.Second)
	if !c.Now().Equal(want) {
		t.Errorf("after Advance, Now() = %v, want %v", c.Now(), want)
	}

	if d := c.Since(base); d != 90*time.Second {
		t.Errorf("Since(base) = %v, want 90s", d)
	}

	c.Set(base)
	if !c.Now().Equal(base) {
		t.Errorf("after Set, Now() = %v, want %v", c.Now(), base)
	}
}
