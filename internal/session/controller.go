// Package session runs one questionnaire: it samples the questions, counts
// answers per category and submits the resulting preference vector exactly
// once.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/tourpref/internal/category"
	"github.com/abhisek/tourpref/internal/identity"
	"github.com/abhisek/tourpref/internal/questionbank"
	"github.com/abhisek/tourpref/internal/store"
	"github.com/abhisek/tourpref/internal/submission"
)

var (
	// ErrNoQuestions is returned when sampling produced an empty set.
	ErrNoQuestions = errors.New("no questions available")

	// ErrInvalidOption is returned for an option index outside the current
	// question's options.
	ErrInvalidOption = errors.New("invalid option")

	// ErrNotInProgress is returned when answering after the last question.
	ErrNotInProgress = errors.New("session is not accepting answers")
)

// Config controls session sizing.
type Config struct {
	QuestionsPerSession int
	OptionsPerQuestion  int
}

// DefaultConfig returns the standard 12 questions of 4 options.
func DefaultConfig() Config {
	return Config{
		QuestionsPerSession: 12,
		OptionsPerQuestion:  4,
	}
}

// Deps are the collaborators a Controller needs.
type Deps struct {
	Identity  identity.Provider
	Navigator Navigator // optional
	Bank      *questionbank.Bank
	Sampler   Sampler // nil uses DefaultSampler
	Submitter submission.Submitter
	Recorder  store.EventRepo // optional
	Logger    *zap.Logger     // optional
}

// Controller is the state machine for one questionnaire session. All methods
// are safe for concurrent use.
type Controller struct {
	id        string
	touristID string
	set       QuestionSet

	submitter submission.Submitter
	navigator Navigator
	recorder  store.EventRepo
	logger    *zap.Logger

	mu            sync.Mutex
	index         int
	answered      int
	scores        Scores
	phase         Phase
	submitStarted bool
	err           error
	listeners     []func(State)

	done chan struct{}
}

// New starts a session for the current tourist. When no one is signed in,
// the navigator is sent home and identity.ErrNotAuthenticated is returned.
func New(ctx context.Context, deps Deps, cfg Config) (*Controller, error) {
	touristID, err := identity.Require(ctx, deps.Identity)
	if err != nil {
		if deps.Navigator != nil {
			deps.Navigator.Navigate(DestinationHome)
		}
		return nil, err
	}
	if deps.Bank == nil {
		return nil, ErrNoQuestions
	}
	if deps.Submitter == nil {
		return nil, errors.New("session: submitter is required")
	}

	sampler := deps.Sampler
	if sampler == nil {
		sampler = DefaultSampler()
	}
	set := sampler.Sample(deps.Bank.Questions(), cfg.QuestionsPerSession, cfg.OptionsPerQuestion)
	if set.Len() == 0 {
		return nil, ErrNoQuestions
	}

	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Controller{
		id:        uuid.NewString(),
		touristID: touristID,
		set:       set,
		submitter: deps.Submitter,
		navigator: deps.Navigator,
		recorder:  deps.Recorder,
		scores:    Scores{},
		phase:     PhaseInProgress,
		done:      make(chan struct{}),
	}
	c.logger = logger.With(zap.String("session_id", c.id), zap.String("tourist_id", touristID))

	c.logger.Info("session started", zap.Int("questions", set.Len()))
	c.record(ctx, store.ActionStart, 0, nil)
	return c, nil
}

// ID returns the session's unique identifier.
func (c *Controller) ID() string { return c.id }

// TouristID returns the identity the session was started for.
func (c *Controller) TouristID() string { return c.touristID }

// Current returns the question awaiting an answer.
func (c *Controller) Current() (questionbank.Question, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != PhaseInProgress {
		return questionbank.Question{}, false
	}
	return c.set.At(c.index)
}

// Progress returns the 0-based current index and the set size.
func (c *Controller) Progress() (index, total int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index, c.set.Len()
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// OnChange registers fn to be called with the new state after every
// transition. fn runs on the goroutine that caused the transition.
func (c *Controller) OnChange(fn func(State)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

// Answer records the option chosen for the current question. Answering the
// last question completes the session and starts the submission.
func (c *Controller) Answer(ctx context.Context, optionIndex int) error {
	c.mu.Lock()
	if c.phase != PhaseInProgress || c.answered >= c.set.Len() {
		c.mu.Unlock()
		return ErrNotInProgress
	}
	q := c.set.questions[c.index]
	if optionIndex < 0 || optionIndex >= len(q.Options) {
		c.mu.Unlock()
		return ErrInvalidOption
	}

	c.scores = Increment(c.scores, q.Options[optionIndex].Category)
	c.answered++

	if c.answered < c.set.Len() {
		c.index++
		state := c.snapshotLocked()
		c.mu.Unlock()
		c.notify(state)
		return nil
	}
	c.mu.Unlock()

	c.Complete(ctx)
	return nil
}

// Complete starts the submission once every question is answered. It starts
// it at most once per session regardless of how many times or from how
// many goroutines it is called, and reports whether this call started it.
func (c *Controller) Complete(ctx context.Context) bool {
	c.mu.Lock()
	if c.submitStarted || c.answered < c.set.Len() {
		c.mu.Unlock()
		return false
	}
	c.submitStarted = true
	c.phase = PhaseSubmitting
	scores := c.scores.Clone()
	state := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(state)
	c.record(ctx, store.ActionComplete, state.Answered, scores)

	payload := category.Expand(scores, c.touristID)
	c.logger.Info("session completed, submitting preferences", zap.Int("total", payload.Total()))

	go c.submit(submission.WithSessionID(ctx, c.id), payload)
	return true
}

func (c *Controller) submit(ctx context.Context, payload category.Payload) {
	err := c.submitter.Submit(ctx, payload)
	c.finish(err)
}

// finish moves the session to its terminal state.
func (c *Controller) finish(err error) {
	c.mu.Lock()
	if c.phase.Terminal() {
		c.mu.Unlock()
		return
	}
	c.err = err
	if err != nil {
		c.phase = PhaseFailed
	} else {
		c.phase = PhaseSucceeded
	}
	state := c.snapshotLocked()
	c.mu.Unlock()

	if err != nil {
		c.logger.Warn("preferences not saved", zap.String("message", state.FailureMessage), zap.Error(err))
	} else {
		c.logger.Info("preferences saved")
	}
	c.notify(state)
	close(c.done)
}

// Done is closed once the submission outcome is known and every OnChange
// listener has seen the terminal state.
func (c *Controller) Done() <-chan struct{} {
	return c.done
}

// Wait blocks until the submission finishes or ctx ends, returning the
// submission error (nil on success) or ctx's error.
func (c *Controller) Wait(ctx context.Context) error {
	select {
	case <-c.done:
		c.mu.Lock()
		defer c.mu.Unlock()
		return c.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Leave sends the user to their profile. Leaving mid-questionnaire abandons
// the session; nothing is submitted.
func (c *Controller) Leave(ctx context.Context) {
	c.mu.Lock()
	answered := c.answered
	scores := c.scores.Clone()
	c.mu.Unlock()

	c.record(ctx, store.ActionLeave, answered, scores)
	if c.navigator != nil {
		c.navigator.Navigate(DestinationProfile)
	}
}

func (c *Controller) snapshotLocked() State {
	s := State{
		SessionID: c.id,
		TouristID: c.touristID,
		Index:     c.index,
		Total:     c.set.Len(),
		Answered:  c.answered,
		Phase:     c.phase,
		Err:       c.err,
		Scores:    c.scores.Clone(),
	}
	if c.phase == PhaseInProgress {
		s.Question, s.HasQuestion = c.set.At(c.index)
	}
	if c.phase == PhaseFailed {
		s.FailureMessage = submission.Message(c.err)
	}
	return s
}

func (c *Controller) notify(state State) {
	c.mu.Lock()
	listeners := append([]func(State){}, c.listeners...)
	c.mu.Unlock()
	for _, fn := range listeners {
		fn(state)
	}
}

// record appends a session event. Failures are logged, never returned.
func (c *Controller) record(ctx context.Context, action string, answered int, scores Scores) {
	if c.recorder == nil {
		return
	}
	err := c.recorder.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID:         c.id,
		TouristID:         c.touristID,
		Action:            action,
		QuestionsTotal:    c.set.Len(),
		QuestionsAnswered: answered,
		Scores:            scores.Keyed(),
	})
	if err != nil {
		c.logger.Error("record session event", zap.String("action", action), zap.Error(err))
	}
}
