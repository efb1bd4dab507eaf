package arena

import (
	"context"
	"fmt"
	"time"

	"github.com/thoas/go-funk"
	"github.com/weedbox/syncsaga"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const DefaultWarmupTimeout = 30 * time.Second

type LadderOptions struct {
	BaseSeed       string
	MatchesPerPair int
	// Concurrency > 1 runs matches in parallel. Each match owns its PRNG,
	// state and event buffer; only the Elo table is shared, and its updates
	// are serialized internally.
	Concurrency   int
	Elo           *EloOptions
	WarmupTimeout time.Duration
	Logger        *zap.Logger
}

func NewLadderOptions() *LadderOptions {
	return &LadderOptions{
		BaseSeed:       "ladder",
		MatchesPerPair: 2,
		Concurrency:    1,
		Elo:            NewEloOptions(),
		WarmupTimeout:  DefaultWarmupTimeout,
		Logger:         zap.NewNop(),
	}
}

// LadderMatchRecord is the outcome of one rated pair match.
type LadderMatchRecord struct {
	MatchID     string `json:"matchId"`
	Seed        string `json:"seed"`
	AgentA      string `json:"agentA"`
	AgentB      string `json:"agentB"`
	MatchNumber int    `json:"matchNumber"`
	// Seats maps seat index to agent id; odd-numbered matches swap seats.
	Seats    [2]string `json:"seats"`
	WinnerID string    `json:"winnerId,omitempty"`
	IsDraw   bool      `json:"isDraw"`
}

type LadderResult struct {
	Standings []EloPlayer         `json:"standings"`
	Matches   []LadderMatchRecord `json:"matches"`
}

// Ladder runs a round-robin tournament: every pair (i, j) with i < j plays
// MatchesPerPair matches with alternating seating, each under a sub-seed
// derived from the base seed and the pair, and outcomes feed the Elo table.
// The whole tournament is a pure function of (base seed, agents, config).
type Ladder[S, A, O, C any] struct {
	game         GameDefinition[S, A, O, C]
	agents       []Agent[A, O]
	opts         *LadderOptions
	matchOptions *MatchEngineOptions[C]
	elo          *EloTable
	logger       *zap.Logger
}

func NewLadder[S, A, O, C any](game GameDefinition[S, A, O, C], agents []Agent[A, O], options *LadderOptions, matchOptions *MatchEngineOptions[C]) (*Ladder[S, A, O, C], error) {
	if options == nil {
		options = NewLadderOptions()
	}
	if matchOptions == nil {
		matchOptions = NewMatchEngineOptions[C]()
	}
	if len(agents) < 2 {
		return nil, ErrLadderTooFewAgents
	}
	if !game.PlayerCount().Contains(2) {
		return nil, ErrMatchInvalidPlayerCount
	}
	ids := make([]string, 0, len(agents))
	for _, a := range agents {
		id := a.Meta().ID
		if funk.ContainsString(ids, id) {
			return nil, fmt.Errorf("%w: %s", ErrLadderDuplicateAgentID, id)
		}
		ids = append(ids, id)
	}
	if options.MatchesPerPair <= 0 {
		options.MatchesPerPair = 1
	}
	if options.Concurrency <= 0 {
		options.Concurrency = 1
	}
	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	l := &Ladder[S, A, O, C]{
		game:         game,
		agents:       agents,
		opts:         options,
		matchOptions: matchOptions,
		elo:          NewEloTable(options.Elo),
		logger:       logger,
	}
	for _, id := range ids {
		l.elo.AddPlayer(id)
	}
	return l, nil
}

// Elo exposes the shared rating table.
func (l *Ladder[S, A, O, C]) Elo() *EloTable {
	return l.elo
}

// Pairs enumerates {(i, j) : i < j} in lexicographic order.
func (l *Ladder[S, A, O, C]) Pairs() [][2]int {
	pairs := make([][2]int, 0, len(l.agents)*(len(l.agents)-1)/2)
	for i := 0; i < len(l.agents); i++ {
		for j := i + 1; j < len(l.agents); j++ {
			pairs = append(pairs, [2]int{i, j})
		}
	}
	return pairs
}

// SubSeed derives the per-match seed for the canonical (i < j) pair ids.
// Seat alternation never changes the seed, so the deal is a function of the
// pair, not of who sits where.
func (l *Ladder[S, A, O, C]) SubSeed(idA, idB string, matchNumber int) string {
	return fmt.Sprintf("%s:%s:%s:%d", l.opts.BaseSeed, idA, idB, matchNumber)
}

func (l *Ladder[S, A, O, C]) Run(ctx context.Context) (*LadderResult, error) {
	if err := l.warmup(ctx); err != nil {
		return nil, err
	}

	type task struct {
		slot        int
		a, b        int
		matchNumber int
	}
	tasks := make([]task, 0)
	for _, pair := range l.Pairs() {
		for m := 0; m < l.opts.MatchesPerPair; m++ {
			tasks = append(tasks, task{slot: len(tasks), a: pair[0], b: pair[1], matchNumber: m})
		}
	}

	records := make([]LadderMatchRecord, len(tasks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.opts.Concurrency)
	for _, tk := range tasks {
		tk := tk
		g.Go(func() error {
			rec, err := l.runPairMatch(gctx, tk.a, tk.b, tk.matchNumber)
			if err != nil {
				return err
			}
			records[tk.slot] = *rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Outcomes feed the ratings in schedule order, not completion order, so
	// the final table is identical whatever the concurrency.
	for _, rec := range records {
		if rec.IsDraw {
			l.elo.RecordDraw(rec.AgentA, rec.AgentB)
			continue
		}
		loserID := rec.AgentA
		if rec.WinnerID == rec.AgentA {
			loserID = rec.AgentB
		}
		l.elo.RecordWin(rec.WinnerID, loserID)
	}

	return &LadderResult{
		Standings: l.elo.Standings(),
		Matches:   records,
	}, nil
}

func (l *Ladder[S, A, O, C]) runPairMatch(ctx context.Context, a, b, matchNumber int) (*LadderMatchRecord, error) {
	idA := l.agents[a].Meta().ID
	idB := l.agents[b].Meta().ID
	seed := l.SubSeed(idA, idB, matchNumber)

	seatAgents := []Agent[A, O]{l.agents[a], l.agents[b]}
	seats := [2]string{idA, idB}
	if matchNumber%2 == 1 {
		seatAgents[0], seatAgents[1] = seatAgents[1], seatAgents[0]
		seats[0], seats[1] = seats[1], seats[0]
	}

	opts := *l.matchOptions
	opts.Seed = seed
	// The sub-seed doubles as the match id so agents that derive their
	// randomness from (matchId, turnIndex) keep the tournament reproducible.
	opts.MatchID = seed
	opts.Logger = l.logger

	engine, err := NewMatchEngine[S, A, O, C](l.game, seatAgents, &opts)
	if err != nil {
		return nil, err
	}
	report, err := engine.Run(ctx)
	if err != nil {
		return nil, err
	}

	rec := &LadderMatchRecord{
		MatchID:     report.MatchID,
		Seed:        seed,
		AgentA:      idA,
		AgentB:      idB,
		MatchNumber: matchNumber,
		Seats:       seats,
	}
	if report.Results.IsDraw || report.Results.Winner == nil {
		rec.IsDraw = true
	} else {
		rec.WinnerID = seats[*report.Results.Winner]
	}

	l.logger.Info("ladder match finished",
		zap.String("seed", seed),
		zap.String("winner", rec.WinnerID),
		zap.Bool("is_draw", rec.IsDraw))

	return rec, nil
}

// warmup gates the tournament on agents that need preparation (transports,
// model warm caches). Agents without the Warmer capability are ready
// immediately.
func (l *Ladder[S, A, O, C]) warmup(ctx context.Context) error {
	warmers := make(map[int]Warmer)
	for i, a := range l.agents {
		if w, ok := any(a).(Warmer); ok {
			warmers[i] = w
		}
	}
	if len(warmers) == 0 {
		return nil
	}

	done := make(chan struct{})
	rg := syncsaga.NewReadyGroup()
	rg.OnCompleted(func(rg *syncsaga.ReadyGroup) {
		close(done)
	})
	rg.ResetParticipants()
	for i := range warmers {
		rg.Add(int64(i), false)
	}
	rg.Start()

	for i, w := range warmers {
		i, w := i, w
		go func() {
			if err := w.Warmup(ctx); err != nil {
				l.logger.Warn("agent warmup failed", zap.Int("agent", i), zap.Error(err))
			}
			rg.Ready(int64(i))
		}()
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		rg.Stop()
		return ctx.Err()
	case <-time.After(l.opts.WarmupTimeout):
		rg.Stop()
		return ErrLadderWarmupTimeout
	}
}
