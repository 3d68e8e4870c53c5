package severity

import "testing"

func TestClassify_boundaries(t *testing.T) {
	tests := []struct {
		pct          float64
		limitReached bool
		want         Level
	}{
		{0, false, LevelOK},
		{69.9, false, LevelOK},
		{70, false, LevelElevated},
		{89.99, false, LevelElevated},
		{90, false, LevelCritical},
		{99.9, false, LevelCritical},
		{100, false, LevelExhausted},
		{140, false, LevelExhausted},
		{10, true, LevelExhausted},
	}
	for _, tt := range tests {
		if got := Classify(tt.pct, tt.limitReached); got != tt.want {
			t.Errorf("Classify(%v, %v) = %v, want %v", tt.pct, tt.limitReached, got, tt.want)
		}
	}
}

func TestLevel_summaryDistinct(t *testing.T) {
	seen := map[string]Level{}
	for _, l := range []Level{LevelOK, LevelElevated, LevelCritical, LevelExhausted} {
		s := l.Summary()
		if prev, ok := seen[s]; ok {
			t.Fatalf("levels %v and %v share summary %q", prev, l, s)
		}
		seen[s] = l
	}
}
