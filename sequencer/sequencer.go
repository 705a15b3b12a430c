// Package sequencer serializes ledger submissions from the gateway's single
// signing identity. The chain assigns each transaction from an identity a
// strictly sequential nonce, so concurrent submissions from request handlers
// would race on nonce assignment and get rejected; instead all write-path
// calls funnel through one bounded FIFO queue drained by a single worker.
package sequencer

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/mintgate/mintgate"
	"github.com/mintgate/mintgate/ledger"
)

const (
	defaultQueueDepth    = 64
	defaultSubmitTimeout = 2 * time.Minute
)

// Outcome is the terminal result of one enqueued call: a receipt or an error,
// never both.
type Outcome struct {
	Receipt *ledger.Receipt
	Err     error
}

type job struct {
	call   ledger.Call
	result chan Outcome
}

// Sequencer owns the write path to the signing identity. Submission order
// equals enqueue order; at most one submission is in flight at a time; a
// failed call resolves its own outcome and never blocks the next one.
type Sequencer struct {
	ledger        ledger.Ledger
	queue         chan job
	submitTimeout time.Duration
	log           *slog.Logger

	mu     sync.Mutex
	closed bool
	done   chan struct{}
}

// Option configures a Sequencer.
type Option func(*Sequencer)

// WithQueueDepth bounds the pending-call queue. Enqueue fails with
// ErrQueueFull once the bound is reached.
func WithQueueDepth(depth int) Option {
	return func(s *Sequencer) {
		if depth > 0 {
			s.queue = make(chan job, depth)
		}
	}
}

// WithSubmitTimeout bounds the submit-plus-confirmation time of a single call.
func WithSubmitTimeout(d time.Duration) Option {
	return func(s *Sequencer) {
		if d > 0 {
			s.submitTimeout = d
		}
	}
}

// WithLogger sets the logger used by the worker loop.
func WithLogger(log *slog.Logger) Option {
	return func(s *Sequencer) {
		if log != nil {
			s.log = log
		}
	}
}

// New creates a Sequencer and starts its worker loop.
func New(l ledger.Ledger, opts ...Option) *Sequencer {
	s := &Sequencer{
		ledger:        l,
		queue:         make(chan job, defaultQueueDepth),
		submitTimeout: defaultSubmitTimeout,
		log:           slog.Default(),
		done:          make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	go s.run()
	return s
}

// Enqueue appends a call to the queue and returns the channel its outcome
// will be delivered on. The channel receives exactly one Outcome and is then
// closed. Enqueue never blocks: a full queue fails with ErrQueueFull, a
// closed sequencer with ErrSequencerClosed.
func (s *Sequencer) Enqueue(call ledger.Call) (<-chan Outcome, error) {
	j := job{call: call, result: make(chan Outcome, 1)}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, mintgate.ErrSequencerClosed
	}

	select {
	case s.queue <- j:
		return j.result, nil
	default:
		return nil, mintgate.ErrQueueFull
	}
}

// Close stops intake, lets the worker finish the already-queued calls, and
// waits for it to exit.
func (s *Sequencer) Close() {
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		close(s.queue)
	}
	s.mu.Unlock()
	<-s.done
}

// run drains the queue one call at a time. The next call is not submitted
// until the previous one's outcome is known, which keeps the externally
// observed submission order equal to enqueue order and the identity's nonce
// stream gapless. Confirmation waits run on the worker's own context, not a
// request context: a disconnected client does not cancel an in-flight mint.
func (s *Sequencer) run() {
	defer close(s.done)

	for j := range s.queue {
		outcome := s.execute(j.call)
		if outcome.Err != nil {
			s.log.Error("ledger submission failed", "recipient", j.call.Recipient, "error", outcome.Err)
		} else {
			s.log.Info("ledger submission confirmed",
				"recipient", j.call.Recipient,
				"tx", outcome.Receipt.TxHash,
				"block", outcome.Receipt.BlockNumber)
		}
		j.result <- outcome
		close(j.result)
	}
}

func (s *Sequencer) execute(call ledger.Call) Outcome {
	ctx, cancel := context.WithTimeout(context.Background(), s.submitTimeout)
	defer cancel()

	pending, err := s.ledger.Submit(ctx, call)
	if err != nil {
		return Outcome{Err: err}
	}

	receipt, err := s.ledger.AwaitConfirmation(ctx, pending)
	if err != nil {
		return Outcome{Err: err}
	}
	return Outcome{Receipt: receipt}
}
