package clock

import (
	"testing"
	"time"
)

func TestRealClock_Now(t *testing.T) {
	clock := RealClock{}

	before := time.Now()
	now := clock.Now()
	after := time.Now()

	if now.Before(before) {
		t.Errorf("Clock time %v is before measurement time %v", now, before)
	}
	if now.After(after) {
		t.Errorf("Clock time %v is after measurement time %v", now, after)
	}
}

func TestMockClock_Now(t *testing.T) {
	fixedTime := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	clock := &MockClock{CurrentTime: fixedTime}

	first := clock.Now()
	second := clock.Now()

	if !first.Equal(fixedTime) {
		t.Errorf("Expected %v, got %v", fixedTime, first)
	}
	if !first.Equal(second) {
		t.Errorf("Mock clock should return consistent time: first=%v, second=%v", first, second)
	}
}

func TestMockClock_Advance(t *testing.T) {
	initialTime := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	clock := &MockClock{CurrentTime: initialTime}

	testCases := []struct {
		name     string
		duration time.Duration
		expected time.Time
	}{
		{
			name:     "advance by one poll interval",
			duration: 10 * time.Second,
			expected: initialTime.Add(10 * time.Second),
		},
		{
			name:     "advance by one tick",
			duration: 1 * time.Second,
			expected: initialTime.Add(11 * time.Second),
		},
		{
			name:     "zero advance",
			duration: 0,
			expected: initialTime.Add(11 * time.Second),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			clock.Advance(tc.duration)
			if !clock.Now().Equal(tc.expected) {
				t.Errorf("Expected %v, got %v", tc.expected, clock.Now())
			}
		})
	}
}

func TestMockClock_Set(t *testing.T) {
	clock := &MockClock{}
	target := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)

	clock.Set(target)

	if !clock.Now().Equal(target) {
		t.Errorf("Expected %v, got %v", target, clock.Now())
	}
}

func TestClockInterface(t *testing.T) {
	var _ Clock = RealClock{}
	var _ Clock = &MockClock{}
}
