package session

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/korjavin/triviabot/models"
)

var (
	ErrSubmitted       = errors.New("session already submitted")
	ErrLoading         = errors.New("session is loading")
	ErrUnknownQuestion = errors.New("question is not part of this session")
	ErrSuperseded      = errors.New("load superseded by a newer load")
	ErrInvalidOptions  = errors.New("invalid session options")
)

// DefaultTickInterval is the countdown cadence: one second of budget per tick
const DefaultTickInterval = time.Second

// QuestionSource fetches the questions for a session
type QuestionSource interface {
	Fetch(ctx context.Context, opts models.SessionOptions) ([]*models.Question, error)
}

// TimerState is the countdown state of the current load
type TimerState int

const (
	TimerIdle    TimerState = iota // no countdown for this load
	TimerRunning                   // counting down
	TimerStopped                   // expired or submitted
)

func (s TimerState) String() string {
	switch s {
	case TimerRunning:
		return "running"
	case TimerStopped:
		return "stopped"
	}
	return "idle"
}

// EventSink receives countdown events. Methods are called with the
// controller's lock held: they must not block and must not call back into
// the controller.
type EventSink interface {
	OnTick(remaining int)
	OnExpire(snap Snapshot)
}

// Option configures a Controller
type Option func(*Controller)

// WithTickInterval overrides the real-time length of one countdown unit
func WithTickInterval(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.tickInterval = d
		}
	}
}

// WithEvents registers a sink for countdown events
func WithEvents(sink EventSink) Option {
	return func(c *Controller) {
		c.events = sink
	}
}

// Controller runs one trivia session: load, answer, submit, score.
//
// The host is expected to drive it from a single logical thread of control.
// The internal lock exists because the countdown ticks on its own goroutine.
type Controller struct {
	source       QuestionSource
	tickInterval time.Duration
	events       EventSink

	mu            sync.Mutex
	opts          models.SessionOptions
	questions     []*models.Question
	selections    map[uuid.UUID]string
	submitted     bool
	autoSubmitted bool
	loading       bool
	err           error
	timeBudget    int
	remaining     int
	timer         TimerState
	loadGen       uint64
	timerGen      uint64
	cancelTimer   context.CancelFunc
}

// NewController creates an empty session backed by source
func NewController(source QuestionSource, opts ...Option) *Controller {
	c := &Controller{
		source:       source,
		tickInterval: DefaultTickInterval,
		selections:   make(map[uuid.UUID]string),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load replaces the session with freshly fetched questions. The lock is not
// held while fetching, so other calls proceed meanwhile. If another Load
// starts before this one finishes, this result is dropped and ErrSuperseded
// is returned. On failure, invalid options included, the session is left
// empty with Err set. At most opts.Amount questions are kept.
func (c *Controller) Load(ctx context.Context, opts models.SessionOptions) error {
	invalid := opts.TimeBudget < 0 || opts.TimeBudget > models.MaxTimeBudget
	opts = opts.Normalized()

	c.mu.Lock()
	c.stopTimerLocked()
	c.loadGen++
	gen := c.loadGen
	c.opts = opts
	c.loading = true
	c.err = nil
	c.questions = nil
	c.selections = make(map[uuid.UUID]string)
	c.submitted = false
	c.autoSubmitted = false
	c.timeBudget = 0
	c.remaining = 0
	c.timer = TimerIdle
	if invalid {
		c.loading = false
		c.err = ErrInvalidOptions
		c.mu.Unlock()
		return ErrInvalidOptions
	}
	c.mu.Unlock()

	questions, err := c.source.Fetch(ctx, opts)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.loadGen {
		log.Printf("Discarding stale load result (generation %d, current %d)", gen, c.loadGen)
		return ErrSuperseded
	}

	c.loading = false
	if err != nil {
		c.err = err
		return err
	}

	if len(questions) > opts.Amount {
		questions = questions[:opts.Amount]
	}
	c.questions = questions
	c.timeBudget = opts.TimeBudget
	c.remaining = opts.TimeBudget
	if c.timeBudget > 0 {
		c.startTimerLocked()
	}
	return nil
}

// SelectAnswer records answer for the question. The answer text is not
// checked against the question's choices.
func (c *Controller) SelectAnswer(questionID uuid.UUID, answer string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.submitted {
		return ErrSubmitted
	}
	if c.loading {
		return ErrLoading
	}
	if c.questionLocked(questionID) == nil {
		return ErrUnknownQuestion
	}
	c.selections[questionID] = answer
	return nil
}

// Submit freezes the session and stops the countdown. It reports whether
// this call performed the transition; repeated calls and calls while a load
// is in flight do nothing.
func (c *Controller) Submit() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loading {
		return false
	}
	return c.submitLocked(false)
}

// Close stops the countdown and drops any load still in flight
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopTimerLocked()
	c.loadGen++
	c.loading = false
}

// Score is the number of questions answered with the decoded correct answer.
// It stays 0 until the session is submitted.
func (c *Controller) Score() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scoreLocked()
}

func (c *Controller) Submitted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitted
}

func (c *Controller) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Questions returns the loaded questions in display order
func (c *Controller) Questions() []*models.Question {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*models.Question(nil), c.questions...)
}

// Selection returns the recorded answer for a question
func (c *Controller) Selection(questionID uuid.UUID) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	answer, ok := c.selections[questionID]
	return answer, ok
}

// Snapshot returns a consistent copy of the whole session state
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) submitLocked(auto bool) bool {
	if c.submitted {
		return false
	}
	c.stopTimerLocked()
	c.submitted = true
	c.autoSubmitted = auto
	return true
}

func (c *Controller) scoreLocked() int {
	if !c.submitted {
		return 0
	}
	score := 0
	for _, q := range c.questions {
		if selected, ok := c.selections[q.ID]; ok && selected == q.DecodedCorrect() {
			score++
		}
	}
	return score
}

func (c *Controller) questionLocked(id uuid.UUID) *models.Question {
	for _, q := range c.questions {
		if q.ID == id {
			return q
		}
	}
	return nil
}

func (c *Controller) snapshotLocked() Snapshot {
	selections := make(map[uuid.UUID]string, len(c.selections))
	for id, answer := range c.selections {
		selections[id] = answer
	}
	return Snapshot{
		Options:       c.opts,
		Questions:     append([]*models.Question(nil), c.questions...),
		Selections:    selections,
		Submitted:     c.submitted,
		AutoSubmitted: c.autoSubmitted,
		Loading:       c.loading,
		Err:           c.err,
		TimeBudget:    c.timeBudget,
		Remaining:     c.remaining,
		Timer:         c.timer,
		Score:         c.scoreLocked(),
	}
}
