package arena

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment knobs honored by ApplyEnv:
//
//	TURN_TIMEOUT_MS     per-turn decide deadline
//	ELO_K_FACTOR        Elo K
//	ELO_INITIAL_RATING  Elo starting rating

// LoadEnv loads .env files into the process environment. A missing file is
// not an error.
func LoadEnv(filenames ...string) {
	_ = godotenv.Load(filenames...)
}

// ApplyEnv overrides options from the process environment.
func (o *MatchEngineOptions[C]) ApplyEnv() {
	if v, ok := envInt64("TURN_TIMEOUT_MS"); ok && v > 0 {
		o.TurnTimeoutMs = v
	}
}

// ApplyEnv overrides options from the process environment.
func (o *EloOptions) ApplyEnv() {
	if v, ok := envFloat("ELO_K_FACTOR"); ok && v > 0 {
		o.KFactor = v
	}
	if v, ok := envInt64("ELO_INITIAL_RATING"); ok && v > 0 {
		o.InitialRating = int(v)
	}
}

func envInt64(key string) (int64, bool) {
	s := os.Getenv(key)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func envFloat(key string) (float64, bool) {
	s := os.Getenv(key)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
