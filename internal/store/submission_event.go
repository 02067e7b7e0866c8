package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	entschema "github.com/abhisek/tourpref/ent/schema"
)

const submissionEventsTable = "submission_events"

var submissionEventColumns = eventColumns(entschema.SubmissionEvent{})

func (r *eventRepo) AppendSubmissionEvent(ctx context.Context, data SubmissionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(submissionEventsTable).
		Columns(submissionEventColumns[1:]...).
		Values(seqNum, formatTime(time.Now()), data.SessionID, data.TouristID, data.Endpoint,
			data.Payload, data.StatusCode, data.Outcome, data.ErrorMessage, data.LatencyMs).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save submission event: %w", err)
	}
	return nil
}

func (r *eventRepo) QuerySubmissionEvents(ctx context.Context, opts QueryOpts) ([]SubmissionEventRecord, error) {
	b := entsql.Dialect(dialect.SQLite)
	s := b.Select(submissionEventColumns...).
		From(b.Table(submissionEventsTable)).
		OrderBy(entsql.Desc("sequence"))
	if opts.Outcome != "" {
		s.Where(entsql.EQ("outcome", opts.Outcome))
	}
	applyOpts(s, opts)

	query, args := s.Query()
	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query submission events: %w", err)
	}
	defer rows.Close()

	var out []SubmissionEventRecord
	for rows.Next() {
		rec, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate submission events: %w", err)
	}
	return out, nil
}

func (r *eventRepo) GetSubmissionEvent(ctx context.Context, id int) (*SubmissionEventRecord, error) {
	b := entsql.Dialect(dialect.SQLite)
	query, args := b.Select(submissionEventColumns...).
		From(b.Table(submissionEventsTable)).
		Where(entsql.EQ("id", id)).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("get submission event: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("get submission event: %w", err)
		}
		return nil, nil
	}
	return scanSubmission(rows)
}

func (r *eventRepo) SubmissionStatsByOutcome(ctx context.Context) ([]SubmissionStats, error) {
	b := entsql.Dialect(dialect.SQLite)
	query, args := b.Select("outcome", entsql.Count("*"), entsql.Avg("latency_ms")).
		From(b.Table(submissionEventsTable)).
		GroupBy("outcome").
		OrderBy("outcome").
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query submission stats: %w", err)
	}
	defer rows.Close()

	var out []SubmissionStats
	for rows.Next() {
		var (
			st  SubmissionStats
			avg sql.NullFloat64
		)
		if err := rows.Scan(&st.Outcome, &st.Count, &avg); err != nil {
			return nil, fmt.Errorf("scan submission stats: %w", err)
		}
		if avg.Valid {
			st.AvgLatencyMs = int64(avg.Float64 + 0.5)
		}
		out = append(out, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate submission stats: %w", err)
	}
	return out, nil
}

func scanSubmission(rows entsql.Rows) (*SubmissionEventRecord, error) {
	var (
		rec SubmissionEventRecord
		ts  string
	)
	if err := rows.Scan(&rec.ID, &rec.Sequence, &ts, &rec.SessionID, &rec.TouristID,
		&rec.Endpoint, &rec.Payload, &rec.StatusCode, &rec.Outcome,
		&rec.ErrorMessage, &rec.LatencyMs); err != nil {
		return nil, fmt.Errorf("scan submission event: %w", err)
	}
	t, err := parseTime(ts)
	if err != nil {
		return nil, err
	}
	rec.Timestamp = t
	return &rec, nil
}
