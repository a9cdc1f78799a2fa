package domain

// ConnectivityLevel is the ordinal classification derived from a count of available
// network generations.
type ConnectivityLevel string

// Connectivity levels, best first.
const (
	LevelHigh       ConnectivityLevel = "High (2G-5G)"
	LevelMediumHigh ConnectivityLevel = "Medium-High (no 5G)"
	LevelMedium     ConnectivityLevel = "Medium"
	LevelLow        ConnectivityLevel = "Low"
	LevelNone       ConnectivityLevel = "None"
)

// MaxCoverages is the number of coverage flags a unit can have.
const MaxCoverages = 4

// ConnectivityLevelFor classifies a count of YES coverage flags.
// It is the only place the mapping is defined; every derived level goes through it.
// Counts outside [0,4] classify as LevelNone.
func ConnectivityLevelFor(yesCount int) ConnectivityLevel {
	switch yesCount {
	case 4:
		return LevelHigh
	case 3:
		return LevelMediumHigh
	case 2:
		return LevelMedium
	case 1:
		return LevelLow
	default:
		return LevelNone
	}
}

// ConnectivityLevels returns all levels ordered from best to worst, for legends.
func ConnectivityLevels() []ConnectivityLevel {
	return []ConnectivityLevel{LevelHigh, LevelMediumHigh, LevelMedium, LevelLow, LevelNone}
}

func (l ConnectivityLevel) String() string {
	return string(l)
}
