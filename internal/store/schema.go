package store

import (
	"strings"

	"entgo.io/ent"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"

	eventschema "github.com/abhisek/adaptiq/ent/schema"
)

const llmEventsTable = "llm_request_events"

var (
	// llmEvents is the request log table as ent's migrator sees it, built
	// from the declarative schema in ent/schema.
	llmEvents = entTable(llmEventsTable, "llmrequestevent", eventschema.LLMRequestEvent{})

	// llmEventFields lists the columns in the order scanLLMEvent reads them.
	llmEventFields = columnNames(llmEvents)

	tables = []*schema.Table{llmEvents}
)

// entSchema is the part of ent.Interface the migrator table needs.
type entSchema interface {
	Mixin() []ent.Mixin
	Fields() []ent.Field
	Indexes() []ent.Index
}

// entTable lays out an integer id, then mixin fields, then the schema's
// own fields, and names indexes prefix_field the way entc does.
func entTable(name, prefix string, s entSchema) *schema.Table {
	t := &schema.Table{Name: name}
	t.Columns = append(t.Columns, &schema.Column{Name: "id", Type: field.TypeInt, Increment: true})
	t.PrimaryKey = []*schema.Column{t.Columns[0]}

	var fields []ent.Field
	var indexes []ent.Index
	for _, m := range s.Mixin() {
		fields = append(fields, m.Fields()...)
		indexes = append(indexes, m.Indexes()...)
	}
	fields = append(fields, s.Fields()...)
	indexes = append(indexes, s.Indexes()...)

	byName := make(map[string]*schema.Column, len(fields))
	for _, f := range fields {
		d := f.Descriptor()
		c := &schema.Column{
			Name:     d.Name,
			Type:     d.Info.Type,
			Unique:   d.Unique,
			Size:     int64(d.Size),
			Nullable: d.Optional || d.Nillable,
			Default:  d.Default,
		}
		byName[d.Name] = c
		t.Columns = append(t.Columns, c)
	}
	for _, idx := range indexes {
		d := idx.Descriptor()
		i := &schema.Index{Name: prefix + "_" + strings.Join(d.Fields, "_"), Unique: d.Unique}
		for _, f := range d.Fields {
			c, ok := byName[f]
			if !ok {
				panic("store: index on unknown column " + f)
			}
			i.Columns = append(i.Columns, c)
		}
		t.Indexes = append(t.Indexes, i)
	}
	return t
}

func columnNames(t *schema.Table) []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}
