package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/mkarlsen/focusplaces/internal/nlp"
	"gopkg.in/yaml.v3"
)

// ErrInvalid marks configuration values rejected at load time. Scoring never
// sees an invalid config.
var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	Scoring  ScoringConfig `yaml:"scoring"`
	Search   SearchConfig  `yaml:"search"`
	Display  DisplayConfig `yaml:"display"`
	Keywords []Keyword     `yaml:"keywords,omitempty"`
	APIs     APIConfig     `yaml:"apis"`
}

// ScoringConfig controls how the focus score is blended. RatingWeight and
// KeywordWeight must sum to 1.0.
type ScoringConfig struct {
	RatingWeight      float64 `yaml:"rating_weight"`
	KeywordWeight     float64 `yaml:"keyword_weight"`
	RecencyWindowDays int     `yaml:"recency_window_days"`
	MinRecentReviews  int     `yaml:"min_recent_reviews"`
	SigmoidSteepness  float64 `yaml:"sigmoid_steepness"`
}

// Keyword is one user-supplied vocabulary entry. When Keywords is non-empty
// it replaces the built-in table.
type Keyword struct {
	Term   string  `yaml:"term"`
	Factor string  `yaml:"factor,omitempty"`
	Weight float64 `yaml:"weight"`
}

type SearchConfig struct {
	RadiusMeters       int `yaml:"radius_meters"`
	MaxCandidates      int `yaml:"max_candidates"`
	MaxReviewsPerPlace int `yaml:"max_reviews_per_place"`
	Concurrency        int `yaml:"concurrency"`
	TimeoutSeconds     int `yaml:"timeout_seconds"`
}

type DisplayConfig struct {
	MaxExcerpts  int `yaml:"max_excerpts"`
	ContextChars int `yaml:"context_chars"`
}

type APIConfig struct {
	PlacesKeyEnv string `yaml:"places_key_env"`
}

func Default() *Config {
	return &Config{
		Scoring: ScoringConfig{
			RatingWeight:      0.5,
			KeywordWeight:     0.5,
			RecencyWindowDays: 365,
			MinRecentReviews:  3,
			SigmoidSteepness:  0.6,
		},
		Search: SearchConfig{
			RadiusMeters:       12000,
			MaxCandidates:      10,
			MaxReviewsPerPlace: 5,
			Concurrency:        5,
			TimeoutSeconds:     30,
		},
		Display: DisplayConfig{
			MaxExcerpts:  5,
			ContextChars: 120,
		},
		APIs: APIConfig{
			PlacesKeyEnv: "GOOGLE_PLACES_API_KEY",
		},
	}
}

// Validate checks every option's range and fails rather than clamping.
func (c *Config) Validate() error {
	s := c.Scoring
	if s.RatingWeight < 0 || s.RatingWeight > 1 {
		return fmt.Errorf("%w: rating_weight %.3f outside [0,1]", ErrInvalid, s.RatingWeight)
	}
	if s.KeywordWeight < 0 || s.KeywordWeight > 1 {
		return fmt.Errorf("%w: keyword_weight %.3f outside [0,1]", ErrInvalid, s.KeywordWeight)
	}
	if math.Abs(s.RatingWeight+s.KeywordWeight-1.0) > 1e-9 {
		return fmt.Errorf("%w: rating_weight (%.3f) and keyword_weight (%.3f) must sum to 1.0",
			ErrInvalid, s.RatingWeight, s.KeywordWeight)
	}
	if s.RecencyWindowDays <= 0 {
		return fmt.Errorf("%w: recency_window_days must be positive, got %d", ErrInvalid, s.RecencyWindowDays)
	}
	if s.MinRecentReviews < 0 {
		return fmt.Errorf("%w: min_recent_reviews must not be negative, got %d", ErrInvalid, s.MinRecentReviews)
	}
	if s.SigmoidSteepness <= 0 {
		return fmt.Errorf("%w: sigmoid_steepness must be positive, got %.3f", ErrInvalid, s.SigmoidSteepness)
	}
	if c.Search.MaxReviewsPerPlace <= 0 {
		return fmt.Errorf("%w: max_reviews_per_place must be positive, got %d", ErrInvalid, c.Search.MaxReviewsPerPlace)
	}
	if c.Search.MaxCandidates <= 0 {
		return fmt.Errorf("%w: max_candidates must be positive, got %d", ErrInvalid, c.Search.MaxCandidates)
	}
	if c.Search.Concurrency <= 0 {
		return fmt.Errorf("%w: concurrency must be positive, got %d", ErrInvalid, c.Search.Concurrency)
	}
	if c.Search.TimeoutSeconds <= 0 {
		return fmt.Errorf("%w: timeout_seconds must be positive, got %d", ErrInvalid, c.Search.TimeoutSeconds)
	}
	if c.Search.RadiusMeters <= 0 {
		return fmt.Errorf("%w: radius_meters must be positive, got %d", ErrInvalid, c.Search.RadiusMeters)
	}
	if c.Display.MaxExcerpts <= 0 {
		return fmt.Errorf("%w: max_excerpts must be positive, got %d", ErrInvalid, c.Display.MaxExcerpts)
	}
	if c.Display.ContextChars < 0 {
		return fmt.Errorf("%w: context_chars must not be negative, got %d", ErrInvalid, c.Display.ContextChars)
	}
	for _, k := range c.Keywords {
		if k.Term == "" {
			return fmt.Errorf("%w: keyword entry with empty term", ErrInvalid)
		}
		// The matcher works on single lemmas; a term that normalizes to
		// anything else would never match and must not pass silently.
		if lemmas := nlp.Normalize(k.Term); len(lemmas) != 1 {
			return fmt.Errorf("%w: keyword term %q must normalize to a single word", ErrInvalid, k.Term)
		}
	}
	return nil
}

func Dir() string {
	if dir := os.Getenv("FOCUSPLACES_HOME"); dir != "" {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".focusplaces")
}

func DBPath() string {
	return filepath.Join(Dir(), "focusplaces.db")
}

func configPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

func Load() (*Config, error) {
	data, err := os.ReadFile(configPath())
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(cfg *Config) error {
	if err := os.MkdirAll(Dir(), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath(), data, 0644)
}
