package services

import "testing"

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func TestScore_BaseOnly(t *testing.T) {
	scorer := NewPriorityScorer(DefaultScorerConfig())

	score := scorer.Score(strPtr("garbage pile on the corner"), floatPtr(10), floatPtr(20), nil)
	if score != 1 {
		t.Fatalf("plain complaint: got %d, want base score 1", score)
	}
}

func TestScore_KeywordBonus(t *testing.T) {
	scorer := NewPriorityScorer(DefaultScorerConfig())

	// Far from any overflow bin, sensitive-zone keyword present.
	score := scorer.Score(strPtr("Overflow near the school"), floatPtr(10), floatPtr(20), nil)
	if score != 3 {
		t.Fatalf("keyword complaint: got %d, want 3 (base 1 + keyword 2)", score)
	}

	// Matching is case-insensitive.
	score = scorer.Score(strPtr("NEXT TO THE HOSPITAL"), nil, nil, nil)
	if score != 3 {
		t.Fatalf("uppercase keyword: got %d, want 3", score)
	}

	// Multiple keywords still award the bonus once.
	score = scorer.Score(strPtr("between the school and the market"), nil, nil, nil)
	if score != 3 {
		t.Fatalf("two keywords: got %d, want 3", score)
	}
}

func TestScore_ProximityBonus(t *testing.T) {
	scorer := NewPriorityScorer(DefaultScorerConfig())

	overflow := []OverflowPoint{
		{Latitude: floatPtr(12.9720), Longitude: floatPtr(77.5946)}, // ~45m north
	}

	score := scorer.Score(strPtr("trash everywhere"), floatPtr(12.9716), floatPtr(77.5946), overflow)
	if score != 4 {
		t.Fatalf("near overflow bin: got %d, want 4 (base 1 + proximity 3)", score)
	}

	// Bonus applies at most once even with several nearby bins.
	overflow = append(overflow, OverflowPoint{Latitude: floatPtr(12.9717), Longitude: floatPtr(77.5946)})
	score = scorer.Score(strPtr("trash everywhere"), floatPtr(12.9716), floatPtr(77.5946), overflow)
	if score != 4 {
		t.Fatalf("two nearby overflow bins: got %d, want 4", score)
	}
}

func TestScore_BothBonuses(t *testing.T) {
	scorer := NewPriorityScorer(DefaultScorerConfig())

	overflow := []OverflowPoint{
		{Latitude: floatPtr(12.9720), Longitude: floatPtr(77.5946)},
	}
	score := scorer.Score(strPtr("overflowing bin at the market"), floatPtr(12.9716), floatPtr(77.5946), overflow)
	if score != 6 {
		t.Fatalf("keyword + proximity: got %d, want 6", score)
	}
}

func TestScore_FarOverflowBinNoBonus(t *testing.T) {
	scorer := NewPriorityScorer(DefaultScorerConfig())

	overflow := []OverflowPoint{
		{Latitude: floatPtr(13.0827), Longitude: floatPtr(80.2707)}, // hundreds of km away
	}
	score := scorer.Score(strPtr("trash everywhere"), floatPtr(12.9716), floatPtr(77.5946), overflow)
	if score != 1 {
		t.Fatalf("distant overflow bin: got %d, want 1", score)
	}
}

func TestScore_MissingInputsSkipBonuses(t *testing.T) {
	scorer := NewPriorityScorer(DefaultScorerConfig())

	overflow := []OverflowPoint{
		{Latitude: floatPtr(12.9716), Longitude: floatPtr(77.5946)},
	}

	// Missing coordinate skips the proximity bonus, not an error.
	score := scorer.Score(strPtr("trash"), nil, nil, overflow)
	if score != 1 {
		t.Fatalf("missing coordinate: got %d, want 1", score)
	}

	// Missing description skips the keyword bonus.
	score = scorer.Score(nil, floatPtr(12.9716), floatPtr(77.5946), overflow)
	if score != 4 {
		t.Fatalf("missing description: got %d, want 4", score)
	}

	// Overflow bin without a coordinate never matches.
	score = scorer.Score(nil, floatPtr(12.9716), floatPtr(77.5946), []OverflowPoint{{}})
	if score != 1 {
		t.Fatalf("overflow bin without coords: got %d, want 1", score)
	}
}

func TestScore_Monotonic(t *testing.T) {
	scorer := NewPriorityScorer(DefaultScorerConfig())

	lat, lng := floatPtr(12.9716), floatPtr(77.5946)
	plain := scorer.Score(strPtr("trash pile"), lat, lng, nil)
	withKeyword := scorer.Score(strPtr("trash pile near the school"), lat, lng, nil)
	if withKeyword < plain {
		t.Fatalf("adding a keyword decreased the score: %d -> %d", plain, withKeyword)
	}

	nearby := []OverflowPoint{{Latitude: floatPtr(12.9717), Longitude: floatPtr(77.5946)}}
	withOverflow := scorer.Score(strPtr("trash pile"), lat, lng, nearby)
	if withOverflow < plain {
		t.Fatalf("adding a nearby overflow bin decreased the score: %d -> %d", plain, withOverflow)
	}
}

func TestScorerConfig_CustomConstants(t *testing.T) {
	cfg := DefaultScorerConfig()
	cfg.KeywordBonus = 5
	cfg.Keywords = []string{"playground"}
	scorer := NewPriorityScorer(cfg)

	if score := scorer.Score(strPtr("near the playground"), nil, nil, nil); score != 6 {
		t.Fatalf("custom keyword bonus: got %d, want 6", score)
	}
	// The stock keywords no longer apply once overridden.
	if score := scorer.Score(strPtr("near the school"), nil, nil, nil); score != 1 {
		t.Fatalf("replaced keyword list: got %d, want 1", score)
	}
}
