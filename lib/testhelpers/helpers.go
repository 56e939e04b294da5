package testhelpers

import (
	"gitlab.mdcatapult.io/informatics/software-engineering/annotation-validation/lib/schema"
)

// Builders for interchange documents used across the validation test
// suites.

func Passage(id, passageType, text string, start, end int) schema.Passage {
	return schema.Passage{
		ID:      id,
		Type:    passageType,
		Text:    []string{text},
		Offsets: []schema.Span{{start, end}},
	}
}

func Ent(id, entityType, text string, start, end int) schema.Entity {
	return schema.Entity{
		ID:      id,
		Type:    entityType,
		Text:    []string{text},
		Offsets: []schema.Span{{start, end}},
	}
}

func Rel(id, relationType, arg1, arg2 string) schema.Relation {
	return schema.Relation{
		ID:     id,
		Type:   relationType,
		Arg1ID: arg1,
		Arg2ID: arg2,
	}
}

func Evt(id, eventType, trigger string, start, end int, args ...schema.EventArgument) schema.Event {
	return schema.Event{
		ID:   id,
		Type: eventType,
		Trigger: schema.Trigger{
			Text:    []string{trigger},
			Offsets: []schema.Span{{start, end}},
		},
		Arguments: args,
	}
}

func Arg(role, refID string) schema.EventArgument {
	return schema.EventArgument{Role: role, RefID: refID}
}

func Coref(id string, entityIDs ...string) schema.Coreference {
	return schema.Coreference{ID: id, EntityIDs: entityIDs}
}

// TitleDoc builds a document with a single title passage covering the
// whole text.
func TitleDoc(id, title string) *schema.Document {
	return &schema.Document{
		ID:       id,
		Passages: []schema.Passage{Passage("p-"+id, "title", title, 0, len([]rune(title)))},
	}
}

func Records(docs ...*schema.Document) []schema.Record {
	records := make([]schema.Record, len(docs))
	for i, doc := range docs {
		records[i] = doc
	}
	return records
}
