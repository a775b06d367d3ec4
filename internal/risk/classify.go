package risk

// Level is the discrete risk tier derived from a stored cancellation
// probability. Read-side only: it never feeds back into scoring or
// inventory.
type Level string

const (
	LevelHigh    Level = "High"
	LevelMedium  Level = "Medium"
	LevelLow     Level = "Low"
	LevelUnknown Level = "Unknown"
)

// Tier thresholds.
const (
	highThreshold   = 0.7
	mediumThreshold = 0.4
)

// ClassifyProbability maps a stored probability to its risk tier.
// A nil probability (e.g. a row predating the classifier) is Unknown.
func ClassifyProbability(p *float64) Level {
	if p == nil {
		return LevelUnknown
	}
	switch {
	case *p >= highThreshold:
		return LevelHigh
	case *p >= mediumThreshold:
		return LevelMedium
	default:
		return LevelLow
	}
}

// ValidLevel reports whether s names a risk tier, for filter validation.
func ValidLevel(s string) bool {
	switch Level(s) {
	case LevelHigh, LevelMedium, LevelLow, LevelUnknown:
		return true
	}
	return false
}
