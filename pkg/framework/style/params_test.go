package style

import (
	"math"
	"testing"
)

func TestParametersClamped(t *testing.T) {
	tests := []struct {
		name string
		in   Parameters
		want Parameters
	}{
		{
			"in range untouched",
			Parameters{SwingRatio: 0.7, AccentAmount: 20, HumanizeTiming: 0.3, HumanizeVelocity: 1},
			Parameters{SwingRatio: 0.7, AccentAmount: 20, HumanizeTiming: 0.3, HumanizeVelocity: 1},
		},
		{
			"above range clamped",
			Parameters{SwingRatio: 1.5, AccentAmount: 200, HumanizeTiming: 2, HumanizeVelocity: 2},
			Parameters{SwingRatio: 1, AccentAmount: 50, HumanizeTiming: 1, HumanizeVelocity: 1},
		},
		{
			"below range clamped",
			Parameters{SwingRatio: -1, AccentAmount: -200, HumanizeTiming: -0.1, HumanizeVelocity: -0.1},
			Parameters{SwingRatio: 0, AccentAmount: -50, HumanizeTiming: 0, HumanizeVelocity: 0},
		},
		{
			"NaN collapses to minimum",
			Parameters{SwingRatio: math.NaN(), AccentAmount: math.NaN()},
			Parameters{SwingRatio: 0, AccentAmount: -50},
		},
	}

	for _, tt := range tests {
		if got := tt.in.Clamped(); got != tt.want {
			t.Errorf("%s: Clamped() = %+v, want %+v", tt.name, got, tt.want)
		}
	}
}

func TestStorePublishClamps(t *testing.T) {
	s := NewStore(Default())

	s.Publish(Parameters{SwingRatio: 9, AccentAmount: 10})
	got := s.Load()
	if got.SwingRatio != 1 {
		t.Errorf("SwingRatio = %v, want 1 (clamped)", got.SwingRatio)
	}
	if got.AccentAmount != 10 {
		t.Errorf("AccentAmount = %v, want 10", got.AccentAmount)
	}
}

func TestStoreLoadIsACopy(t *testing.T) {
	s := NewStore(Default())

	a := s.Load()
	a.SwingRatio = 0.9 // mutate the copy

	if s.Load().SwingRatio != DefaultSwingRatio {
		t.Error("mutating a loaded snapshot changed the store")
	}
}
