package stripe

import "testing"

func TestMinorUnits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		major float64
		want  int64
	}{
		{major: 0, want: 0},
		{major: 1, want: 100},
		{major: 10.5, want: 1050},
		{major: 19.25, want: 1925},
		// Truncation, not rounding.
		{major: 0.999, want: 99},
	}

	for _, tt := range tests {
		if got := MinorUnits(tt.major); got != tt.want {
			t.Fatalf("MinorUnits(%v) = %d, want %d", tt.major, got, tt.want)
		}
	}
}
