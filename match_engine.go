package arena

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/weedbox/timebank"
	"go.uber.org/zap"

	"github.com/wakesync/cmax-arena/canonical"
	"github.com/wakesync/cmax-arena/prng"
)

const DefaultTurnTimeoutMs int64 = 5000

// MatchEngine runs one match between a game and a set of agents under a
// seed-committed PRNG, emitting a totally ordered event log. An engine is
// single-use: Run may be called once.
type MatchEngine[S, A, O, C any] interface {
	// OnEvent registers a callback invoked synchronously for every emitted
	// event, in emission order, before the turn loop advances.
	OnEvent(fn func(Event))

	Run(ctx context.Context) (*MatchReport, error)
}

type MatchEngineOptions[C any] struct {
	// MatchID is generated when empty.
	MatchID       string
	Seed          string
	TurnTimeoutMs int64
	GameConfig    C
	Logger        *zap.Logger
}

func NewMatchEngineOptions[C any]() *MatchEngineOptions[C] {
	return &MatchEngineOptions[C]{
		TurnTimeoutMs: DefaultTurnTimeoutMs,
		Logger:        zap.NewNop(),
	}
}

type matchEngine[S, A, O, C any] struct {
	game    GameDefinition[S, A, O, C]
	agents  []Agent[A, O]
	opts    *MatchEngineOptions[C]
	matchID string
	logger  *zap.Logger
	tb      *timebank.TimeBank
	rng     *prng.Rng

	mu      sync.Mutex
	ran     bool
	onEvent func(Event)
	events  []Event
}

// NewMatchEngine validates the configuration and prepares a single-use
// engine. Configuration problems (missing seed, unsupported player count)
// surface here; no match runs.
func NewMatchEngine[S, A, O, C any](game GameDefinition[S, A, O, C], agents []Agent[A, O], options *MatchEngineOptions[C]) (MatchEngine[S, A, O, C], error) {
	if options == nil {
		options = NewMatchEngineOptions[C]()
	}
	if options.Seed == "" {
		return nil, ErrMatchMissingSeed
	}
	if !game.PlayerCount().Contains(len(agents)) {
		return nil, ErrMatchInvalidPlayerCount
	}
	if options.TurnTimeoutMs <= 0 {
		options.TurnTimeoutMs = DefaultTurnTimeoutMs
	}
	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	matchID := options.MatchID
	if matchID == "" {
		matchID = uuid.New().String()
	}
	return &matchEngine[S, A, O, C]{
		game:    game,
		agents:  agents,
		opts:    options,
		matchID: matchID,
		logger:  logger.With(zap.String("match_id", matchID)),
		tb:      timebank.NewTimeBank(),
		rng:     prng.New(options.Seed),
		onEvent: func(Event) {},
	}, nil
}

func (me *matchEngine[S, A, O, C]) OnEvent(fn func(Event)) {
	me.mu.Lock()
	defer me.mu.Unlock()
	if fn != nil {
		me.onEvent = fn
	}
}

func (me *matchEngine[S, A, O, C]) agentRefs() ([]AgentRef, error) {
	refs := make([]AgentRef, 0, len(me.agents))
	for _, a := range me.agents {
		meta := a.Meta()
		fp, err := meta.Fingerprint()
		if err != nil {
			return nil, err
		}
		refs = append(refs, AgentRef{
			ID:          meta.ID,
			Version:     meta.Version,
			DisplayName: meta.DisplayName,
			Fingerprint: fp,
		})
	}
	return refs, nil
}

func (me *matchEngine[S, A, O, C]) emit(ev Event) {
	me.events = append(me.events, ev)
	me.onEvent(ev)
}

func (me *matchEngine[S, A, O, C]) seedCommit() string {
	return canonical.Commit(me.opts.Seed)
}
