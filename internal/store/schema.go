package store

import (
	"fmt"
	"strings"

	"entgo.io/ent"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"

	entity "github.com/abhisek/skillnav/ent/schema"
)

// Tables are built from the entity declarations in ent/schema: an implicit
// auto-increment id unless the entity declares its own, then mixin fields,
// then the entity's fields.
var (
	KVRecordsTable        = table("kv_records", "kvrecord", entity.KVRecord{})
	AccountsTable         = table("accounts", "account", entity.Account{})
	SavedPathwaysTable    = table("saved_pathways", "savedpathway", entity.SavedPathway{})
	SharedPathwaysTable   = table("shared_pathways", "sharedpathway", entity.SharedPathway{})
	FeedbackEventsTable   = table("feedback_events", "feedbackevent", entity.FeedbackEvent{})
	LLMRequestEventsTable = table("llm_request_events", "llmrequestevent", entity.LLMRequestEvent{})

	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		KVRecordsTable,
		AccountsTable,
		SavedPathwaysTable,
		SharedPathwaysTable,
		FeedbackEventsTable,
		LLMRequestEventsTable,
	}
)

func table(name, label string, e ent.Interface) *schema.Table {
	var fields []ent.Field
	for _, m := range e.Mixin() {
		fields = append(fields, m.Fields()...)
	}
	fields = append(fields, e.Fields()...)

	t := &schema.Table{Name: name}
	byField := map[string]*schema.Column{}
	for _, f := range fields {
		d := f.Descriptor()
		if d.Err != nil {
			panic(fmt.Sprintf("store: entity %s field %s: %v", label, d.Name, d.Err))
		}
		col := column(d)
		byField[d.Name] = col
		if d.Name == "id" {
			t.PrimaryKey = []*schema.Column{col}
			t.Columns = append([]*schema.Column{col}, t.Columns...)
			continue
		}
		t.Columns = append(t.Columns, col)
	}
	if t.PrimaryKey == nil {
		id := &schema.Column{Name: "id", Type: field.TypeInt, Increment: true}
		t.PrimaryKey = []*schema.Column{id}
		t.Columns = append([]*schema.Column{id}, t.Columns...)
	}

	for _, ix := range e.Indexes() {
		d := ix.Descriptor()
		idx := &schema.Index{Unique: d.Unique, Name: d.StorageKey}
		var names []string
		for _, f := range d.Fields {
			col, ok := byField[f]
			if !ok {
				panic(fmt.Sprintf("store: entity %s index on unknown field %s", label, f))
			}
			idx.Columns = append(idx.Columns, col)
			names = append(names, col.Name)
		}
		if idx.Name == "" {
			idx.Name = label + "_" + strings.Join(names, "_")
		}
		t.Indexes = append(t.Indexes, idx)
	}
	return t
}

func column(d *field.Descriptor) *schema.Column {
	col := &schema.Column{
		Name:     d.Name,
		Type:     d.Info.Type,
		Size:     int64(d.Size),
		Unique:   d.Unique,
		Nullable: d.Optional,
	}
	if d.StorageKey != "" {
		col.Name = d.StorageKey
	}
	// Function defaults such as time.Now are applied by the repos.
	switch v := d.Default.(type) {
	case string, bool, int, int64:
		col.Default = v
	}
	return col
}

// columnNames lists the storage column names of t in order.
func columnNames(t *schema.Table) []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}
