package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// SubmissionEvent records every preferences POST for debugging.
type SubmissionEvent struct {
	ent.Schema
}

func (SubmissionEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (SubmissionEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			Comment("Session that produced the payload; empty outside a session"),
		field.String("tourist_id").
			Comment("Identity carried in the payload"),
		field.String("endpoint").
			Comment("URL the payload was posted to"),
		field.Text("payload").
			Comment("JSON body sent"),
		field.Int("status_code").
			Default(0).
			Comment("HTTP status, 0 when no response was received"),
		field.String("outcome").
			Comment("success, rejected, malformed or transport"),
		field.String("error_message").
			Default("").
			Comment("Failure message shown to the user"),
		field.Int64("latency_ms").
			Default(0).
			Comment("Wall-clock time for the request"),
	}
}

func (SubmissionEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
		index.Fields("outcome"),
	}
}
