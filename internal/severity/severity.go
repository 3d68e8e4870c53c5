package severity

// Thresholds in used percent. Each boundary is inclusive.
const (
	ElevatedPct  = 70.0
	CriticalPct  = 90.0
	ExhaustedPct = 100.0
)

type Level int

const (
	LevelOK Level = iota
	LevelElevated
	LevelCritical
	LevelExhausted
)

// Classify maps a used percentage to a level. limitReached forces
// LevelExhausted regardless of the percentage.
func Classify(pct float64, limitReached bool) Level {
	switch {
	case limitReached || pct >= ExhaustedPct:
		return LevelExhausted
	case pct >= CriticalPct:
		return LevelCritical
	case pct >= ElevatedPct:
		return LevelElevated
	default:
		return LevelOK
	}
}

func (l Level) String() string {
	switch l {
	case LevelOK:
		return "ok"
	case LevelElevated:
		return "elevated"
	case LevelCritical:
		return "critical"
	case LevelExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// Indicator returns a short glyph for the level.
func (l Level) Indicator() string {
	switch l {
	case LevelExhausted:
		return "✗"
	case LevelCritical:
		return "⚠"
	case LevelElevated:
		return "△"
	default:
		return "✓"
	}
}

// Summary returns the closing line for a report at this level.
func (l Level) Summary() string {
	switch l {
	case LevelExhausted:
		return "Limit reached. Check your reset time above."
	case LevelCritical:
		return "Nearly at your limit. Check reset time above."
	case LevelElevated:
		return "Usage is elevated. Consider pacing your session."
	default:
		return "Looking good. Plenty of capacity remaining."
	}
}
