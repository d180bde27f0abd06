package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// SharedPathway is a pathway published for read-only access by its id.
type SharedPathway struct {
	ent.Schema
}

func (SharedPathway) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			MaxLen(64).
			Comment("Share id, equal to the pathway id"),
		field.JSON("data", map[string]any{}),
		field.Int("views").
			Default(0),
		field.Time("created_at").
			Default(time.Now).
			Immutable(),
	}
}
