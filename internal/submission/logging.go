package submission

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/tourpref/internal/category"
	"github.com/abhisek/tourpref/internal/store"
)

// LoggingSubmitter is a decorator that records every submission attempt as
// an event and a log line.
type LoggingSubmitter struct {
	inner     Submitter
	eventRepo store.EventRepo
	logger    *zap.Logger
}

// WithLogging wraps a Submitter with event logging. A nil logger discards
// log lines; a nil repo skips event records.
func WithLogging(s Submitter, repo store.EventRepo, logger *zap.Logger) Submitter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoggingSubmitter{inner: s, eventRepo: repo, logger: logger}
}

func (l *LoggingSubmitter) Submit(ctx context.Context, payload category.Payload) error {
	start := time.Now()
	err := l.inner.Submit(ctx, payload)
	latency := time.Since(start)

	body, _ := json.Marshal(payload)
	data := store.SubmissionEventData{
		SessionID:  SessionIDFrom(ctx),
		TouristID:  payload.TouristID,
		Endpoint:   l.inner.Endpoint(),
		Payload:    string(body),
		StatusCode: StatusCode(err),
		Outcome:    Outcome(err),
		LatencyMs:  latency.Milliseconds(),
	}
	if err != nil {
		data.ErrorMessage = Message(err)
	}

	fields := []zap.Field{
		zap.String("session_id", data.SessionID),
		zap.String("tourist_id", data.TouristID),
		zap.String("endpoint", data.Endpoint),
		zap.String("outcome", data.Outcome),
		zap.Int("status", data.StatusCode),
		zap.Duration("latency", latency),
	}
	if err != nil {
		l.logger.Warn("preferences submission failed", append(fields, zap.Error(err))...)
	} else {
		l.logger.Info("preferences submitted", fields...)
	}

	// Record the event but never fail the submission because of it.
	if l.eventRepo != nil {
		if logErr := l.eventRepo.AppendSubmissionEvent(ctx, data); logErr != nil {
			l.logger.Error("record submission event", zap.Error(logErr))
		}
	}

	return err
}

func (l *LoggingSubmitter) Endpoint() string {
	return l.inner.Endpoint()
}
