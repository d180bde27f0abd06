package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// FeedbackEvent records a learner's comment on a pathway.
type FeedbackEvent struct {
	ent.Schema
}

func (FeedbackEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (FeedbackEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("pathway_id").
			MaxLen(64),
		field.String("account_email").
			Default("").
			Comment("Empty for feedback on a shared pathway"),
		field.Text("message"),
	}
}

func (FeedbackEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("pathway_id"),
	}
}
