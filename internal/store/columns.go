package store

import (
	"entgo.io/ent"
)

// eventSchema is implemented by the event entities in ent/schema.
type eventSchema interface {
	Mixin() []ent.Mixin
	Fields() []ent.Field
}

// eventColumns lists an event entity's table columns in declaration order:
// id, the mixin fields, then the entity's own fields.
func eventColumns(s eventSchema) []string {
	cols := []string{"id"}
	for _, m := range s.Mixin() {
		for _, f := range m.Fields() {
			cols = append(cols, f.Descriptor().Name)
		}
	}
	for _, f := range s.Fields() {
		cols = append(cols, f.Descriptor().Name)
	}
	return cols
}
