package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	entschema "github.com/abhisek/tourpref/ent/schema"
)

const sessionEventsTable = "session_events"

var sessionEventColumns = eventColumns(entschema.SessionEvent{})

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	scores := data.Scores
	if scores == nil {
		scores = map[string]int{}
	}
	scoresJSON, err := json.Marshal(scores)
	if err != nil {
		return fmt.Errorf("encode scores: %w", err)
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(sessionEventsTable).
		Columns(sessionEventColumns[1:]...).
		Values(seqNum, formatTime(time.Now()), data.SessionID, data.TouristID, data.Action,
			data.QuestionsTotal, data.QuestionsAnswered, string(scoresJSON)).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) QuerySessionEvents(ctx context.Context, opts QueryOpts) ([]SessionEventRecord, error) {
	b := entsql.Dialect(dialect.SQLite)
	s := b.Select(sessionEventColumns...).
		From(b.Table(sessionEventsTable)).
		OrderBy(entsql.Asc("sequence"))
	applyOpts(s, opts)

	query, args := s.Query()
	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query session events: %w", err)
	}
	defer rows.Close()

	var out []SessionEventRecord
	for rows.Next() {
		var (
			rec        SessionEventRecord
			ts, scores string
		)
		if err := rows.Scan(&rec.ID, &rec.Sequence, &ts, &rec.SessionID, &rec.TouristID,
			&rec.Action, &rec.QuestionsTotal, &rec.QuestionsAnswered, &scores); err != nil {
			return nil, fmt.Errorf("scan session event: %w", err)
		}
		t, err := parseTime(ts)
		if err != nil {
			return nil, err
		}
		rec.Timestamp = t
		if err := json.Unmarshal([]byte(scores), &rec.Scores); err != nil {
			return nil, fmt.Errorf("decode scores for event %d: %w", rec.ID, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate session events: %w", err)
	}
	return out, nil
}
