// Package paths counts the legal move sequences of a fixed length that a
// snake can perform on a board.
//
// A sequence of depth moves from {L, R, D, U} counts iff every move in it is
// legal in order. Legality is decided by the snake package: the snake must
// stay on the board and its occupancy mass must not change. The search is a
// pure function of (board, snake, depth); no state survives a computation.
package paths

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/snake-paths/internal/core"
	"github.com/vovakirdan/snake-paths/internal/snake"
)

// Depth limits, inclusive.
const (
	MinDepth = 1
	MaxDepth = 20
)

// Input is the raw caller input, checked in order board, snake, depth.
type Input struct {
	Board []int
	Snake [][]int
	Depth int
}

// Stats describes the last computation.
type Stats struct {
	Strategy core.Strategy
	Workers  int
	Space    uint64 // 4^depth candidate sequences
	Replayed uint64 // sequences replayed move by move (exhaustive only)
	States   uint64 // distinct (snake, remaining) states expanded (memo only)
	Legal    uint64
	Elapsed  time.Duration
}

// Result is a count together with how it was obtained.
type Result struct {
	Count uint64
	Stats Stats
}

// Enumerator holds validated inputs for one path count.
type Enumerator struct {
	board  core.Board
	start  snake.Snake
	depth  int
	cfg    core.RuntimeConfig
	logger *log.Logger
}

// Option configures an Enumerator.
type Option func(*Enumerator)

// WithRuntime replaces the whole runtime config.
func WithRuntime(cfg core.RuntimeConfig) Option {
	return func(e *Enumerator) { e.cfg = cfg }
}

// WithStrategy forces a search strategy.
func WithStrategy(s core.Strategy) Option {
	return func(e *Enumerator) { e.cfg.Strategy = s }
}

// WithWorkers sets the number of parallel shards. 0 means one per CPU.
func WithWorkers(n int) Option {
	return func(e *Enumerator) { e.cfg.Workers = n }
}

// WithLogger sets the logger for shard and summary debug lines.
func WithLogger(l *log.Logger) Option {
	return func(e *Enumerator) {
		if l != nil {
			e.logger = l
		}
	}
}

// New checks b, then s against b, then the depth range, and joins the
// constraint errors in that order. The snake is only checked against a
// valid board.
func New(b core.Board, s snake.Snake, depth int, opts ...Option) (*Enumerator, error) {
	_, boardErr := core.NewBoard(b.Rows(), b.Cols())

	var snakeErr error
	if boardErr == nil {
		_, snakeErr = snake.New(s.Cells(), b)
	}

	if err := errors.Join(boardErr, snakeErr, ValidateDepth(depth)); err != nil {
		return nil, err
	}
	return newEnumerator(b, s, depth, opts), nil
}

// FromInput validates raw input in order board, snake, depth. All three are
// checked, and the constraint errors are joined in that order. The snake can
// only be checked once the board is valid.
func FromInput(in Input, opts ...Option) (*Enumerator, error) {
	b, boardErr := core.ParseBoard(in.Board)

	var s snake.Snake
	var snakeErr error
	if boardErr == nil {
		s, snakeErr = snake.FromPairs(in.Snake, b)
	}

	if err := errors.Join(boardErr, snakeErr, ValidateDepth(in.Depth)); err != nil {
		return nil, err
	}
	return newEnumerator(b, s, in.Depth, opts), nil
}

func newEnumerator(b core.Board, s snake.Snake, depth int, opts []Option) *Enumerator {
	e := &Enumerator{
		board:  b,
		start:  s,
		depth:  depth,
		cfg:    core.DefaultConfig(),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ValidateDepth checks that depth is in [MinDepth, MaxDepth].
func ValidateDepth(depth int) error {
	v := core.NewViolations(core.KindDepthRange)
	if depth < MinDepth || depth > MaxDepth {
		v.Addf("depth number must be an integer between %d and %d, got %d", MinDepth, MaxDepth, depth)
	}
	return v.Err()
}

// ComputePaths validates in and returns the number of legal paths.
func ComputePaths(ctx context.Context, in Input, opts ...Option) (uint64, error) {
	e, err := FromInput(in, opts...)
	if err != nil {
		return 0, err
	}
	return e.Compute(ctx)
}

// Board returns the validated board.
func (e *Enumerator) Board() core.Board { return e.board }

// Snake returns the validated start snake.
func (e *Enumerator) Snake() snake.Snake { return e.start }

// Depth returns the validated depth.
func (e *Enumerator) Depth() int { return e.depth }

// Compute returns the number of legal paths. The only possible error is
// the context's.
func (e *Enumerator) Compute(ctx context.Context) (uint64, error) {
	res, err := e.Run(ctx)
	if err != nil {
		return 0, err
	}
	return res.Count, nil
}

// Run is Compute with statistics.
func (e *Enumerator) Run(ctx context.Context) (Result, error) {
	strategy := e.cfg.Resolve(e.depth)
	workers := e.cfg.EffectiveWorkers()
	started := time.Now()

	var (
		res Result
		err error
	)
	switch strategy {
	case core.StrategyMemo:
		res, err = e.runMemo(ctx, workers)
	default:
		res, err = e.runExhaustive(ctx, workers)
	}
	if err != nil {
		return Result{}, err
	}

	res.Stats.Strategy = strategy
	res.Stats.Workers = workers
	res.Stats.Space = pow4(e.depth)
	res.Stats.Legal = res.Count
	res.Stats.Elapsed = time.Since(started)

	e.logger.Debug("paths counted",
		"board", []int{e.board.Rows(), e.board.Cols()},
		"snake", e.start.String(),
		"depth", e.depth,
		"strategy", strategy,
		"workers", workers,
		"count", res.Count,
		"elapsed", res.Stats.Elapsed,
	)
	return res, nil
}

// pow4 returns 4^n.
func pow4(n int) uint64 {
	return uint64(1) << (2 * uint(n))
}
