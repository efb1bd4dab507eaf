package arena

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/wakesync/cmax-arena/canonical"
)

type decision[A any] struct {
	out      DecideOutput[A]
	timedOut bool
	agentErr error
}

func (me *matchEngine[S, A, O, C]) Run(ctx context.Context) (*MatchReport, error) {
	me.mu.Lock()
	if me.ran {
		me.mu.Unlock()
		return nil, ErrMatchAlreadyRun
	}
	me.ran = true
	me.mu.Unlock()

	refs, err := me.agentRefs()
	if err != nil {
		return nil, err
	}

	configRaw, err := canonical.Marshal(me.opts.GameConfig)
	if err != nil {
		return nil, err
	}

	state, err := me.game.Reset(ResetInput[C]{
		Seed:       me.opts.Seed,
		NumPlayers: len(me.agents),
		Config:     me.opts.GameConfig,
	})
	if err != nil {
		return nil, err
	}

	started := time.Now()
	seedCommit := me.seedCommit()

	me.logger.Info("match started",
		zap.String("game_id", me.game.ID()),
		zap.String("seed_commit", seedCommit),
		zap.Int("num_players", len(me.agents)))

	me.emit(&MatchStartEvent{
		Type:        EventType_MatchStart,
		MatchID:     me.matchID,
		StartedAt:   started.UTC().Format(time.RFC3339),
		GameID:      me.game.ID(),
		GameVersion: me.game.Version(),
		Agents:      refs,
		SeedCommit:  seedCommit,
		Config:      configRaw,
	})

	totalTurns := 0
	for turnIndex := 0; ; turnIndex++ {
		if me.game.IsTerminal(state) {
			break
		}
		pid := me.game.CurrentPlayer(state)
		if pid == UnsetValue {
			break
		}

		obs, err := me.game.Observe(state, pid)
		if err != nil {
			return nil, err
		}
		obsHash, err := canonical.Hash(obs)
		if err != nil {
			return nil, err
		}
		legal := me.game.LegalActions(state, pid)
		if len(legal) == 0 {
			return nil, fmt.Errorf("%w: turn %d player %d", ErrMatchNoLegalActions, turnIndex, pid)
		}

		meta := DecideMeta{TurnIndex: turnIndex}
		if hn, ok := any(me.game).(HandNumbered[S]); ok {
			hand := hn.HandNumber(state)
			meta.HandNumber = &hand
		}
		input := DecideInput[A, O]{
			MatchID:      me.matchID,
			GameID:       me.game.ID(),
			GameVersion:  me.game.Version(),
			PlayerIndex:  pid,
			Observation:  obs,
			LegalActions: legal,
			Clock:        Clock{TurnTimeoutMs: me.opts.TurnTimeoutMs},
			Meta:         meta,
		}

		decideStart := time.Now()
		d, err := me.decide(ctx, me.agents[pid], input)
		if err != nil {
			return nil, err
		}
		timingMs := time.Since(decideStart).Milliseconds()

		action, illegal, originalRaw, err := me.resolveAction(state, pid, legal, d)
		if err != nil {
			return nil, err
		}

		actionRaw, err := canonical.Marshal(action)
		if err != nil {
			return nil, err
		}

		stepOut, err := me.game.Step(StepInput[S, A]{
			State:       state,
			PlayerIndex: pid,
			Action:      action,
			Rng:         me.rng,
		})
		if err != nil {
			// Fatal to the match: close the log with what is known, then
			// surface the failure.
			me.logger.Error("game step failed", zap.Int("turn", turnIndex), zap.Error(err))
			me.emit(&MatchEndEvent{
				Type:        EventType_MatchEnd,
				SeedReveal:  me.opts.Seed,
				Results:     MatchResults{Players: []PlayerResult{}},
				TotalTurns:  totalTurns,
				TotalTimeMs: time.Since(started).Milliseconds(),
			})
			return nil, fmt.Errorf("%w: turn %d: %v", ErrGameStepFailed, turnIndex, err)
		}
		state = stepOut.State

		me.emit(&TurnEvent{
			Type:            EventType_Turn,
			TurnIndex:       turnIndex,
			PlayerIndex:     pid,
			ObservationHash: obsHash,
			Action:          json.RawMessage(actionRaw),
			TimingMs:        timingMs,
			TimedOut:        d.timedOut,
			IllegalAction:   illegal,
			OriginalAction:  originalRaw,
			Events:          stepOut.Events,
		})
		totalTurns++

		me.logger.Debug("turn",
			zap.Int("turn", turnIndex),
			zap.Int("player", pid),
			zap.Bool("timed_out", d.timedOut),
			zap.Bool("illegal_action", illegal),
			zap.String("reason", SanitizeReason(d.out.Reason)))
	}

	results, err := me.game.Results(state)
	if err != nil {
		return nil, err
	}
	totalTimeMs := time.Since(started).Milliseconds()

	me.emit(&MatchEndEvent{
		Type:        EventType_MatchEnd,
		SeedReveal:  me.opts.Seed,
		Results:     results,
		TotalTurns:  totalTurns,
		TotalTimeMs: totalTimeMs,
	})

	me.logger.Info("match finished",
		zap.Int("total_turns", totalTurns),
		zap.Int64("total_time_ms", totalTimeMs))

	return &MatchReport{
		MatchID:     me.matchID,
		GameID:      me.game.ID(),
		GameVersion: me.game.Version(),
		Seed:        me.opts.Seed,
		SeedCommit:  seedCommit,
		Agents:      refs,
		Results:     results,
		Events:      me.events,
		TotalTurns:  totalTurns,
		TotalTimeMs: totalTimeMs,
	}, nil
}

// decide invokes the agent on its own goroutine and waits for completion or
// the turn deadline, whichever comes first. Timeout is a soft cancellation:
// the decide context is cancelled, the eventual response is discarded, and
// the engine moves on without blocking.
func (me *matchEngine[S, A, O, C]) decide(ctx context.Context, agent Agent[A, O], in DecideInput[A, O]) (decision[A], error) {
	dctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type result struct {
		out DecideOutput[A]
		err error
	}
	resultCh := make(chan result, 1)
	timeoutCh := make(chan struct{}, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				resultCh <- result{err: fmt.Errorf("agent panic: %v", r)}
			}
		}()
		out, err := agent.Decide(dctx, in)
		resultCh <- result{out: out, err: err}
	}()

	if err := me.tb.NewTask(time.Duration(in.Clock.TurnTimeoutMs)*time.Millisecond, func(isCancelled bool) {
		if isCancelled {
			return
		}
		timeoutCh <- struct{}{}
	}); err != nil {
		return decision[A]{}, err
	}

	select {
	case r := <-resultCh:
		me.tb.Cancel()
		return decision[A]{out: r.out, agentErr: r.err}, nil
	case <-timeoutCh:
		return decision[A]{timedOut: true}, nil
	case <-ctx.Done():
		me.tb.Cancel()
		return decision[A]{}, ctx.Err()
	}
}

// resolveAction turns the raw decision into the action actually stepped:
// timeouts and agent failures fall back to legal[0]; an action outside the
// legal set is replaced by legal[0] with the original recorded alongside.
func (me *matchEngine[S, A, O, C]) resolveAction(state S, pid int, legal []A, d decision[A]) (action A, illegal bool, originalRaw json.RawMessage, err error) {
	if d.timedOut {
		return legal[0], false, nil, nil
	}
	if d.agentErr != nil {
		me.logger.Warn("agent decide failed", zap.Int("player", pid), zap.Error(d.agentErr))
		return legal[0], true, nil, nil
	}
	raw := d.out.Action
	ok, err := me.isLegal(state, pid, raw, legal)
	if err != nil {
		return legal[0], false, nil, err
	}
	if ok {
		return raw, false, nil, nil
	}
	encoded, err := canonical.Marshal(raw)
	if err != nil {
		// The raw action is not even encodable; drop it.
		me.logger.Warn("agent action not encodable", zap.Int("player", pid), zap.Error(err))
		return legal[0], true, nil, nil
	}
	return legal[0], true, json.RawMessage(encoded), nil
}

func (me *matchEngine[S, A, O, C]) isLegal(state S, pid int, action A, legal []A) (bool, error) {
	if v, ok := any(me.game).(ActionValidator[S, A]); ok {
		return v.ValidateAction(state, pid, action), nil
	}
	encoded, err := canonical.Marshal(action)
	if err != nil {
		return false, nil
	}
	for _, la := range legal {
		lb, err := canonical.Marshal(la)
		if err != nil {
			return false, err
		}
		if bytes.Equal(encoded, lb) {
			return true, nil
		}
	}
	return false, nil
}
