package recommendations

// Candidate is one proposed recommendation: either model-proposed (untrusted
// until reconciled) or produced by the deterministic fallback scorer.
type Candidate struct {
	WorkoutID string `json:"workout_id"`
	Title     string `json:"title"`
	Reasoning string `json:"reasoning"`
}

// Input is the user state the scorer ranks against.
type Input struct {
	EnergyLevel int
	Symptoms    []string
	Moods       []string
}

// TopPicks is how many recommendations a check-in response carries.
const TopPicks = 3

// FallbackReasoning is the fixed explanation attached to heuristic picks. The
// generative path writes personalized reasoning; the safety net does not.
const FallbackReasoning = "Chosen by our safety-first matching rules for your current energy level, symptoms, and mood."

// FallbackMessage is the overall message used when the generative path is down.
const FallbackMessage = "We picked gentle, first-trimester-safe workouts matched to how you're feeling today. Listen to your body and rest whenever you need to."
