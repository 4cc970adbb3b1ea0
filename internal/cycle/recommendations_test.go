package cycle

import "testing"

func TestRecommendationForEveryPhase(t *testing.T) {
	for _, phase := range []Phase{PhaseMenstruation, PhaseFollicular, PhaseOvulation, PhaseLuteal} {
		recommendation, ok := RecommendationFor(phase)
		if !ok {
			t.Fatalf("expected recommendation for %s", phase)
		}
		if recommendation.Phase != phase || recommendation.Title == "" {
			t.Fatalf("unexpected recommendation for %s: %#v", phase, recommendation)
		}
		if len(recommendation.Exercises) == 0 || len(recommendation.Nutrition) == 0 || len(recommendation.Tips) == 0 {
			t.Fatalf("expected complete catalog entry for %s", phase)
		}
	}

	if _, ok := RecommendationFor(Phase("unknown")); ok {
		t.Fatal("expected no recommendation for unknown phase")
	}
}

func TestRecommendationForReturnsCopy(t *testing.T) {
	first, _ := RecommendationFor(PhaseLuteal)
	first.Tips[0] = "changed"

	second, _ := RecommendationFor(PhaseLuteal)
	if second.Tips[0] == "changed" {
		t.Fatal("expected catalog to be isolated from caller mutations")
	}
}
