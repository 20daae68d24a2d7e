// Package typing plays values into form controls character by character,
// mimicking human input: randomized inter-key delays, synthetic typos with
// corrections, thinking pauses, and cooperative pause/resume/abort control.
package typing

import "time"

// Config tunes one typing simulation.
type Config struct {
	// BaseDelay is the nominal wait after each correct character.
	BaseDelay time.Duration

	// DelayVariance jitters the base delay uniformly in ±variance.
	DelayVariance time.Duration

	// TypoChance is the per-character probability, in [0,1], of typing an
	// adjacent-key substitute first. Only alphanumeric characters typo.
	TypoChance float64

	// TypoFixDelay is the pause before a typo is noticed and backspaced.
	TypoFixDelay time.Duration

	// PunctuationDelay is added after sentence punctuation.
	PunctuationDelay time.Duration

	// WordDelay is added after a space.
	WordDelay time.Duration

	// StartDelay is the thinking time before the first character.
	StartDelay time.Duration

	// SpeedMultiplier divides every wait. Values <= 0 are treated as 1.
	SpeedMultiplier float64
}

// Named presets, ordered slowest to fastest.
var (
	PresetSlow = Config{
		BaseDelay:        220 * time.Millisecond,
		DelayVariance:    120 * time.Millisecond,
		TypoChance:       0.06,
		TypoFixDelay:     450 * time.Millisecond,
		PunctuationDelay: 350 * time.Millisecond,
		WordDelay:        150 * time.Millisecond,
		StartDelay:       900 * time.Millisecond,
		SpeedMultiplier:  1,
	}

	PresetNormal = Config{
		BaseDelay:        110 * time.Millisecond,
		DelayVariance:    60 * time.Millisecond,
		TypoChance:       0.03,
		TypoFixDelay:     300 * time.Millisecond,
		PunctuationDelay: 200 * time.Millisecond,
		WordDelay:        80 * time.Millisecond,
		StartDelay:       500 * time.Millisecond,
		SpeedMultiplier:  1,
	}

	PresetFast = Config{
		BaseDelay:        40 * time.Millisecond,
		DelayVariance:    20 * time.Millisecond,
		TypoChance:       0,
		TypoFixDelay:     100 * time.Millisecond,
		PunctuationDelay: 50 * time.Millisecond,
		WordDelay:        20 * time.Millisecond,
		StartDelay:       120 * time.Millisecond,
		SpeedMultiplier:  1,
	}

	// PresetInstant keeps every wait at the 5ms floor. Callers wanting true
	// zero-latency fills use the orchestrator's instant mode instead of the
	// simulator.
	PresetInstant = Config{
		SpeedMultiplier: 1,
	}
)

// Preset returns the named preset (slow, normal, fast, instant).
func Preset(name string) (Config, bool) {
	switch name {
	case "slow":
		return PresetSlow, true
	case "normal":
		return PresetNormal, true
	case "fast":
		return PresetFast, true
	case "instant":
		return PresetInstant, true
	}
	return Config{}, false
}
