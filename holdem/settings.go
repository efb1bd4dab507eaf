package holdem

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	Preset_Cash = "cash"
	Preset_Deep = "deep"
)

// NewPresetConfig returns a named table preset.
func NewPresetConfig(name string) (Config, error) {
	switch name {
	case Preset_Cash:
		return Config{StartingChips: 1000, SmallBlind: 10, BigBlind: 20, MaxHands: 100}, nil
	case Preset_Deep:
		return Config{StartingChips: 10000, SmallBlind: 50, BigBlind: 100, MaxHands: 100}, nil
	default:
		return Config{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
}

// LoadConfigFile reads a YAML table config. Missing fields fall back to the
// table defaults at reset time.
func LoadConfigFile(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// BotWeights is an action-kind weighting for weighted-random table bots.
// The shape follows the usual tendency split: mostly passive, occasionally
// aggressive.
func BotWeights(a Action) float64 {
	switch a.Kind {
	case Action_Check:
		return 0.35
	case Action_Call:
		return 0.30
	case Action_Fold:
		return 0.15
	case Action_Bet:
		return 0.10
	case Action_Raise:
		return 0.08
	case Action_AllIn:
		return 0.02
	}
	return 0
}
