package cycle

// Recommendation is the static self-care guidance shown for a phase.
type Recommendation struct {
	Phase     Phase    `json:"phase"`
	Title     string   `json:"title"`
	Exercises []string `json:"exercises"`
	Nutrition []string `json:"nutrition"`
	Tips      []string `json:"tips"`
}

var phaseRecommendations = map[Phase]Recommendation{
	PhaseMenstruation: {
		Phase: PhaseMenstruation,
		Title: "Menstruation",
		Exercises: []string{
			"Gentle yoga and stretching",
			"Walking or light cardio",
			"Pelvic floor exercises",
			"Restorative pilates",
		},
		Nutrition: []string{
			"Iron-rich foods (spinach, lentils)",
			"Vitamin C for iron absorption",
			"Magnesium-rich foods (dark chocolate, nuts)",
			"Hydrating foods (watermelon, cucumber)",
		},
		Tips: []string{"Rest and prioritize sleep", "Stay hydrated", "Manage pain with heat therapy", "Listen to your body"},
	},
	PhaseFollicular: {
		Phase:     PhaseFollicular,
		Title:     "Follicular",
		Exercises: []string{"High-intensity interval training", "Strength training", "Running or cycling", "Group fitness classes"},
		Nutrition: []string{"Lean proteins", "Complex carbohydrates", "Fresh vegetables", "Whole grains"},
		Tips:      []string{"Take advantage of high energy", "Start new projects", "Push your fitness limits", "Social activities"},
	},
	PhaseOvulation: {
		Phase:     PhaseOvulation,
		Title:     "Ovulation",
		Exercises: []string{"Peak performance workouts", "Competitive sports", "High-intensity training", "Challenging yoga"},
		Nutrition: []string{"Antioxidant-rich foods", "Berries and leafy greens", "Lean proteins", "Healthy fats"},
		Tips: []string{
			"Peak confidence and energy",
			"Great time for important meetings",
			"Maximum strength and endurance",
			"Social engagement",
		},
	},
	PhaseLuteal: {
		Phase:     PhaseLuteal,
		Title:     "Luteal",
		Exercises: []string{"Moderate-intensity workouts", "Yoga and pilates", "Swimming", "Walking"},
		Nutrition: []string{"Complex carbohydrates", "Calcium-rich foods", "Magnesium supplements", "Omega-3 fatty acids"},
		Tips:      []string{"Prioritize self-care", "Plan and organize", "Reduce stress", "Get extra sleep"},
	},
}

// RecommendationFor returns a copy of the guidance for phase.
func RecommendationFor(phase Phase) (Recommendation, bool) {
	recommendation, ok := phaseRecommendations[phase]
	if !ok {
		return Recommendation{}, false
	}
	recommendation.Exercises = append([]string(nil), recommendation.Exercises...)
	recommendation.Nutrition = append([]string(nil), recommendation.Nutrition...)
	recommendation.Tips = append([]string(nil), recommendation.Tips...)
	return recommendation, true
}
