package models

// CareerPhase is a coarse classification of a player's trajectory,
// derived once per evaluation from season-level scoring trend. It selects
// how aggressively recency decay is applied.
type CareerPhase string

const (
	PhaseEarly   CareerPhase = "early"
	PhaseRising  CareerPhase = "rising"
	PhasePeak    CareerPhase = "peak"
	PhaseLate    CareerPhase = "late"
	PhaseUnknown CareerPhase = "unknown"
)

// Valid reports whether the phase is one of the recognized variants.
func (p CareerPhase) Valid() bool {
	switch p {
	case PhaseEarly, PhaseRising, PhasePeak, PhaseLate, PhaseUnknown:
		return true
	}
	return false
}
