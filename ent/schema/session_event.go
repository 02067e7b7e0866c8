package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// SessionEvent records questionnaire lifecycle events (start, complete, leave).
type SessionEvent struct {
	ent.Schema
}

func (SessionEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (SessionEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty().
			Comment("UUID grouping events in a session"),
		field.String("tourist_id").
			NotEmpty().
			Comment("Identity the session was started for"),
		field.String("action").
			NotEmpty().
			Comment("start, complete or leave"),
		field.Int("questions_total").
			Default(0).
			Comment("Questions sampled for the session"),
		field.Int("questions_answered").
			Default(0).
			Comment("Questions answered when the event was recorded"),
		field.JSON("scores", map[string]int{}).
			Comment("Per-category scores keyed by short key"),
	}
}

func (SessionEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
	}
}
