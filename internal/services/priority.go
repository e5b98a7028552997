package services

import (
	"os"
	"strconv"
	"strings"
)

// ScorerConfig holds the tunable constants for complaint priority scoring.
// The keyword list and bonus magnitudes are configuration, not logic.
type ScorerConfig struct {
	BaseScore       int
	KeywordBonus    int
	ProximityBonus  int
	ProximityMeters float64
	Keywords        []string
}

// DefaultScorerConfig returns the stock scoring constants.
func DefaultScorerConfig() ScorerConfig {
	return ScorerConfig{
		BaseScore:       1,
		KeywordBonus:    2,
		ProximityBonus:  3,
		ProximityMeters: 300,
		Keywords:        []string{"school", "hospital", "market", "temple", "mosque", "church"},
	}
}

// ScorerConfigFromEnv loads scoring constants from the environment,
// falling back to defaults for anything unset.
//
// PRIORITY_KEYWORDS is a comma-separated list; PRIORITY_PROXIMITY_METERS,
// PRIORITY_KEYWORD_BONUS and PRIORITY_PROXIMITY_BONUS are integers.
func ScorerConfigFromEnv() ScorerConfig {
	cfg := DefaultScorerConfig()

	if raw := os.Getenv("PRIORITY_KEYWORDS"); raw != "" {
		keywords := []string{}
		for _, k := range strings.Split(raw, ",") {
			k = strings.ToLower(strings.TrimSpace(k))
			if k != "" {
				keywords = append(keywords, k)
			}
		}
		if len(keywords) > 0 {
			cfg.Keywords = keywords
		}
	}
	if v, err := strconv.Atoi(os.Getenv("PRIORITY_KEYWORD_BONUS")); err == nil {
		cfg.KeywordBonus = v
	}
	if v, err := strconv.Atoi(os.Getenv("PRIORITY_PROXIMITY_BONUS")); err == nil {
		cfg.ProximityBonus = v
	}
	if v, err := strconv.ParseFloat(os.Getenv("PRIORITY_PROXIMITY_METERS"), 64); err == nil && v > 0 {
		cfg.ProximityMeters = v
	}

	return cfg
}

// OverflowPoint is a snapshot of an overflowing bin's location used for
// the proximity bonus.
type OverflowPoint struct {
	Latitude  *float64
	Longitude *float64
}

// PriorityScorer derives a complaint's urgency score at creation time.
type PriorityScorer struct {
	cfg ScorerConfig
}

// NewPriorityScorer creates a scorer with the given configuration.
func NewPriorityScorer(cfg ScorerConfig) *PriorityScorer {
	return &PriorityScorer{cfg: cfg}
}

// Score computes a non-negative priority score from the complaint
// description and coordinate against a snapshot of overflow bins.
//
// A missing description skips the keyword bonus and a missing coordinate
// skips the proximity bonus; neither is an error. Each bonus applies at
// most once, so the bonuses are independent and additive.
func (s *PriorityScorer) Score(description *string, lat, lng *float64, overflow []OverflowPoint) int {
	score := s.cfg.BaseScore

	if description != nil {
		desc := strings.ToLower(*description)
		for _, keyword := range s.cfg.Keywords {
			if strings.Contains(desc, keyword) {
				score += s.cfg.KeywordBonus
				break
			}
		}
	}

	if lat != nil && lng != nil {
		for _, point := range overflow {
			// DistanceMeters returns +Inf for points without coordinates,
			// which never satisfies the threshold comparison.
			if DistanceMeters(lat, lng, point.Latitude, point.Longitude) <= s.cfg.ProximityMeters {
				score += s.cfg.ProximityBonus
				break
			}
		}
	}

	return score
}
