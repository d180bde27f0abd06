package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// KVRecord is an opaque text record under a string key. The remembered
// session lives here.
type KVRecord struct {
	ent.Schema
}

func (KVRecord) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			StorageKey("record_key").
			MaxLen(255).
			Comment("Record key, e.g. skillNavigatorUser"),
		field.Text("value"),
		field.Time("updated_at").
			Default(time.Now).
			UpdateDefault(time.Now),
	}
}
