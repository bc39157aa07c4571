package mathutil

import "testing"

func TestClamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		val, low, high int
		want           int
	}{
		{name: "within", val: 5, low: 0, high: 10, want: 5},
		{name: "below", val: -3, low: 0, high: 10, want: 0},
		{name: "above", val: 42, low: 0, high: 10, want: 10},
		{name: "at-low", val: 0, low: 0, high: 10, want: 0},
		{name: "at-high", val: 10, low: 0, high: 10, want: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Clamp(tt.val, tt.low, tt.high); got != tt.want {
				t.Fatalf("Clamp(%d, %d, %d) = %d, want %d", tt.val, tt.low, tt.high, got, tt.want)
			}
		})
	}
}

func TestClampFloat(t *testing.T) {
	t.Parallel()

	if got := Clamp(1.5, 0.0, 1.0); got != 1.0 {
		t.Fatalf("Clamp(1.5, 0, 1) = %v, want 1", got)
	}
}
