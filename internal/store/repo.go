package store

import (
	"context"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit     int       // max results (0 = unlimited)
	After     int64     // sequence > After
	Before    int64     // sequence < Before
	From      time.Time // timestamp >= From
	To        time.Time // timestamp <= To
	SessionID string    // exact match when non-empty
	Outcome   string    // exact match when non-empty (submission events only)
}

// Session event actions.
const (
	ActionStart    = "start"
	ActionComplete = "complete"
	ActionLeave    = "leave"
)

// Submission outcomes as recorded in submission_events.outcome.
const (
	OutcomeSuccess   = "success"
	OutcomeRejected  = "rejected"
	OutcomeMalformed = "malformed"
	OutcomeTransport = "transport"
)

// SessionEventData captures a questionnaire session lifecycle transition.
type SessionEventData struct {
	SessionID         string
	TouristID         string
	Action            string // "start", "complete" or "leave"
	QuestionsTotal    int
	QuestionsAnswered int
	Scores            map[string]int
}

// SessionEventRecord is a persisted session event.
type SessionEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	SessionEventData
}

// SubmissionEventData captures one attempt to deliver a preference payload.
type SubmissionEventData struct {
	SessionID    string
	TouristID    string
	Endpoint     string
	Payload      string // JSON body as sent
	StatusCode   int    // 0 when no HTTP response was received
	Outcome      string
	ErrorMessage string
	LatencyMs    int64
}

// SubmissionEventRecord is a persisted submission event.
type SubmissionEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	SubmissionEventData
}

// SubmissionStats aggregates submission events by outcome.
type SubmissionStats struct {
	Outcome      string
	Count        int
	AvgLatencyMs int64
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendSessionEvent records a session lifecycle event.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// AppendSubmissionEvent records a submission attempt.
	AppendSubmissionEvent(ctx context.Context, data SubmissionEventData) error

	// QuerySessionEvents returns session events ordered by sequence.
	QuerySessionEvents(ctx context.Context, opts QueryOpts) ([]SessionEventRecord, error)

	// QuerySubmissionEvents returns submission events, newest first.
	QuerySubmissionEvents(ctx context.Context, opts QueryOpts) ([]SubmissionEventRecord, error)

	// GetSubmissionEvent returns a single submission event, or nil if absent.
	GetSubmissionEvent(ctx context.Context, id int) (*SubmissionEventRecord, error)

	// SubmissionStatsByOutcome aggregates submission events per outcome.
	SubmissionStatsByOutcome(ctx context.Context) ([]SubmissionStats, error)
}

// eventRepo implements EventRepo on ent's SQL builder and the global
// sequence counter.
type eventRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
}

// applyOpts adds the common QueryOpts predicates to a selector.
func applyOpts(s *entsql.Selector, opts QueryOpts) {
	if opts.After > 0 {
		s.Where(entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		s.Where(entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		s.Where(entsql.GTE("timestamp", formatTime(opts.From)))
	}
	if !opts.To.IsZero() {
		s.Where(entsql.LTE("timestamp", formatTime(opts.To)))
	}
	if opts.SessionID != "" {
		s.Where(entsql.EQ("session_id", opts.SessionID))
	}
	if opts.Limit > 0 {
		s.Limit(opts.Limit)
	}
}
