package gemini

import (
	"fmt"
	"strings"

	"materna-backend/internal/llm"
)

// BuildPrompt renders the single recommendation prompt. The catalog rides along
// as JSON so the model ranks real entries instead of inventing its own.
func BuildPrompt(input llm.RecommendInput) string {
	var b strings.Builder

	b.WriteString("You are a certified prenatal fitness expert helping a pregnant woman in her first trimester find safe workout videos.\n\n")
	b.WriteString("User's Current State:\n")
	fmt.Fprintf(&b, "- Energy Level: %d/5 (1=very low, 5=very high)\n", input.EnergyLevel)
	fmt.Fprintf(&b, "- Symptoms: %s\n", strings.Join(input.Symptoms, ", "))
	fmt.Fprintf(&b, "- Moods: %s\n", strings.Join(input.Moods, ", "))
	if input.PreferredWorkoutType != "" {
		fmt.Fprintf(&b, "- Preferred Workout Type: %s\n", input.PreferredWorkoutType)
	}

	b.WriteString("\nAvailable Workouts (JSON):\n")
	b.Write(input.CatalogJSON)
	b.WriteString("\n\nBased on the user's energy level, symptoms, and moods, recommend the TOP 3 most suitable workouts from the list above.\n\n")
	b.WriteString(`Consider:
1. Energy level: Low energy (1-2) -> low intensity, Medium (3) -> medium intensity, High (4-5) -> medium/high intensity
2. Symptoms: Match workouts that specifically help with their symptoms
3. Moods: If anxious/fear -> calming yoga/stretching, If energetic/productive -> higher intensity
4. Preferred workout type: Prioritize if specified
5. Safety: Always prioritize first-trimester safety

Respond in this EXACT JSON format (no markdown, just valid JSON):
{
  "recommendations": [
    {
      "workout_id": "uuid-here",
      "title": "workout title",
      "reasoning": "why this workout is perfect for them (2-3 sentences)"
    },
    {
      "workout_id": "uuid-here",
      "title": "workout title",
      "reasoning": "why this workout is perfect for them (2-3 sentences)"
    },
    {
      "workout_id": "uuid-here",
      "title": "workout title",
      "reasoning": "why this workout is perfect for them (2-3 sentences)"
    }
  ],
  "overall_message": "A supportive, encouraging message for the user (2-3 sentences)"
}`)

	return b.String()
}
