package schema

// The kb interchange schema ties five annotation layers to a document's text
// by character offsets. Loaders emit documents in this shape; the validator
// treats them as read-only.

// Span is a half-open [start, end) pair of character offsets into the
// reconstructed document text.
type Span [2]int

func (s Span) Start() int {
	return s[0]
}

func (s Span) End() int {
	return s[1]
}

// Normalized is a grounding link into an external database. It carries no
// offsets and declares no id of its own.
type Normalized struct {
	DBName string `json:"db_name"`
	DBID   string `json:"db_id"`
}

type Passage struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	// Exactly one string, kept as a sequence for schema uniformity.
	Text    []string `json:"text"`
	Offsets []Span   `json:"offsets"`
}

// Entity is a typed mention. Discontiguous mentions are packed into one
// record: text and offsets are parallel lists, one element per mention.
type Entity struct {
	ID         string       `json:"id"`
	Type       string       `json:"type"`
	Text       []string     `json:"text"`
	Offsets    []Span       `json:"offsets"`
	Normalized []Normalized `json:"normalized"`
}

// Trigger anchors an event in the text. It declares no id of its own.
type Trigger struct {
	Text    []string `json:"text"`
	Offsets []Span   `json:"offsets"`
}

// EventArgument references an entity or another event by id. The referenced
// kind is not recorded, so resolution must accept either.
type EventArgument struct {
	Role  string `json:"role"`
	RefID string `json:"ref_id"`
}

type Event struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Trigger   Trigger         `json:"trigger"`
	Arguments []EventArgument `json:"arguments"`
}

type Relation struct {
	ID         string       `json:"id"`
	Type       string       `json:"type"`
	Arg1ID     string       `json:"arg1_id"`
	Arg2ID     string       `json:"arg2_id"`
	Normalized []Normalized `json:"normalized"`
}

// Coreference is a cluster of entity ids denoting the same referent.
type Coreference struct {
	ID        string   `json:"id"`
	EntityIDs []string `json:"entity_ids"`
}

// Document is the unit of validation. Its id must be unique across the
// dataset; document_id is the source-corpus key and carries no uniqueness
// guarantee.
type Document struct {
	ID           string        `json:"id"`
	DocumentID   string        `json:"document_id"`
	Passages     []Passage     `json:"passages"`
	Entities     []Entity      `json:"entities"`
	Events       []Event       `json:"events"`
	Relations    []Relation    `json:"relations"`
	Coreferences []Coreference `json:"coreferences"`
}

// Layer names an annotation layer of the kb schema. The "normalized" layer
// is virtual: it is populated when any entity or relation carries a
// grounding link.
type Layer string

const (
	LayerPassages     Layer = "passages"
	LayerEntities     Layer = "entities"
	LayerEvents       Layer = "events"
	LayerRelations    Layer = "relations"
	LayerCoreferences Layer = "coreferences"
	LayerNormalized   Layer = "normalized"
)

// RefKind is the kind of annotation a reference must resolve to.
type RefKind string

const (
	KindEntity RefKind = "entity"
	KindEvent  RefKind = "event"
	// KindAny is used for event arguments, whose ref_id may name an entity
	// or another event.
	KindAny RefKind = "any"
)

// AnnotationID is one declared identifier together with the layer that
// declared it.
type AnnotationID struct {
	ID    string
	Layer Layer
}

// Reference is one identifier referenced by an annotation, together with
// the kind it must resolve to and the id of the referring annotation.
type Reference struct {
	ID     string
	Kind   RefKind
	Source string
	Field  string
}

// AnnotationIDs yields every identifier the document declares, passage ids
// included. Triggers, arguments and grounding links declare no ids and do
// not appear here.
func (d *Document) AnnotationIDs() []AnnotationID {
	ids := make([]AnnotationID, 0, len(d.Passages)+len(d.Entities)+len(d.Events)+len(d.Relations)+len(d.Coreferences))
	for _, p := range d.Passages {
		ids = append(ids, AnnotationID{ID: p.ID, Layer: LayerPassages})
	}
	for _, e := range d.Entities {
		ids = append(ids, AnnotationID{ID: e.ID, Layer: LayerEntities})
	}
	for _, e := range d.Events {
		ids = append(ids, AnnotationID{ID: e.ID, Layer: LayerEvents})
	}
	for _, r := range d.Relations {
		ids = append(ids, AnnotationID{ID: r.ID, Layer: LayerRelations})
	}
	for _, c := range d.Coreferences {
		ids = append(ids, AnnotationID{ID: c.ID, Layer: LayerCoreferences})
	}
	return ids
}

// References yields every identifier the document's relations, coreferences
// and event arguments point at.
func (d *Document) References() []Reference {
	var refs []Reference
	for _, r := range d.Relations {
		refs = append(refs,
			Reference{ID: r.Arg1ID, Kind: KindEntity, Source: r.ID, Field: "arg1_id"},
			Reference{ID: r.Arg2ID, Kind: KindEntity, Source: r.ID, Field: "arg2_id"},
		)
	}
	for _, c := range d.Coreferences {
		for _, id := range c.EntityIDs {
			refs = append(refs, Reference{ID: id, Kind: KindEntity, Source: c.ID, Field: "entity_ids"})
		}
	}
	for _, e := range d.Events {
		for _, a := range e.Arguments {
			refs = append(refs, Reference{ID: a.RefID, Kind: KindAny, Source: e.ID, Field: "ref_id"})
		}
	}
	return refs
}

// maxPassageGap bounds the space fill between the text built so far and a
// passage's declared start offset. Declared offsets come from loaders and
// cannot be trusted to be sane.
const maxPassageGap = 1 << 16

// Text reconstructs the canonical document text. Passages are placed at
// their declared offsets, with gaps filled by spaces, so that entity and
// trigger offsets (which are document-absolute) line up. A passage span
// without declared offsets, or with a start more than maxPassageGap runes
// beyond the text built so far, is appended after the text so far,
// separated by a single space; the offset check then reports the mismatch.
func (d *Document) Text() string {
	var runes []rune
	for _, p := range d.Passages {
		for i, t := range p.Text {
			tr := []rune(t)
			if i >= len(p.Offsets) || !placeable(p.Offsets[i].Start(), len(runes)) {
				if len(runes) > 0 {
					runes = append(runes, ' ')
				}
				runes = append(runes, tr...)
				continue
			}
			start := p.Offsets[i].Start()
			end := start + len(tr)
			for len(runes) < end {
				runes = append(runes, ' ')
			}
			copy(runes[start:end], tr)
		}
	}
	return string(runes)
}

func placeable(start, built int) bool {
	return start >= 0 && start-built <= maxPassageGap
}

// Key implements Record.
func (d *Document) Key() string {
	return d.ID
}

// PopulatedFeatures implements Record. Passages are text, not annotations,
// and are excluded.
func (d *Document) PopulatedFeatures() []string {
	var features []string
	if len(d.Entities) > 0 {
		features = append(features, string(LayerEntities))
	}
	if len(d.Events) > 0 {
		features = append(features, string(LayerEvents))
	}
	if len(d.Relations) > 0 {
		features = append(features, string(LayerRelations))
	}
	if len(d.Coreferences) > 0 {
		features = append(features, string(LayerCoreferences))
	}
	if d.hasNormalized() {
		features = append(features, string(LayerNormalized))
	}
	return features
}

func (d *Document) hasNormalized() bool {
	for _, e := range d.Entities {
		if len(e.Normalized) > 0 {
			return true
		}
	}
	for _, r := range d.Relations {
		if len(r.Normalized) > 0 {
			return true
		}
	}
	return false
}
