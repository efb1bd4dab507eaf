// Package actor provides ready-made agents and wrappers for the match
// engine: a deterministic weighted-random bot, a scripted agent for
// regression harnesses, and a guard that degrades agent failures into the
// engine's fallback path.
package actor

import "fmt"

func botSeed(matchID string, turnIndex int) string {
	return fmt.Sprintf("%s:%d", matchID, turnIndex)
}
