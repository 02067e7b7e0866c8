package submission

import "context"

type contextKey int

const sessionIDKey contextKey = iota

// WithSessionID returns a context carrying the questionnaire session ID so
// decorators can attribute a submission to its session.
func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionIDKey, id)
}

// SessionIDFrom extracts the session ID from the context, or "" if unset.
func SessionIDFrom(ctx context.Context) string {
	if v, ok := ctx.Value(sessionIDKey).(string); ok {
		return v
	}
	return ""
}
