package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Account is a registered user of the local account registry.
type Account struct {
	ent.Schema
}

func (Account) Fields() []ent.Field {
	return []ent.Field{
		field.String("email").
			Unique().
			MaxLen(320).
			Comment("Normalized (trimmed, lower-cased) email"),
		field.String("name").
			Default(""),
		field.String("password_hash").
			Sensitive().
			Comment("bcrypt hash"),
		field.Time("created_at").
			Default(time.Now).
			Immutable(),
	}
}

// SavedPathway is a pathway saved to an account, kept as raw JSON.
type SavedPathway struct {
	ent.Schema
}

func (SavedPathway) Fields() []ent.Field {
	return []ent.Field{
		field.String("account_email").
			MaxLen(320),
		field.String("pathway_id").
			MaxLen(64),
		field.JSON("data", map[string]any{}),
		field.Time("saved_at").
			Default(time.Now).
			Immutable(),
	}
}

func (SavedPathway) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("account_email", "pathway_id").Unique(),
	}
}
