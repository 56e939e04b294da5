package validate

import (
	"fmt"
	"sort"
	"strings"

	"gitlab.mdcatapult.io/informatics/software-engineering/annotation-validation/lib/schema"
)

// CheckReferences verifies that every id referenced by relations,
// coreferences and event arguments resolves to a legally referable
// annotation: entities for relation arguments and coreference members,
// entities or events for event arguments. Unresolved references are
// warnings, not errors. The finding records the referable id set for
// diagnosis.
func CheckReferences(doc *schema.Document) []Finding {
	existing := make(map[string]schema.RefKind, len(doc.Entities)+len(doc.Events))
	for _, e := range doc.Entities {
		existing[e.ID] = schema.KindEntity
	}
	for _, e := range doc.Events {
		existing[e.ID] = schema.KindEvent
	}

	var findings []Finding
	for _, ref := range doc.References() {
		if resolves(existing, ref) {
			continue
		}
		findings = append(findings, Finding{
			Severity:  Warning,
			Component: ComponentReferences,
			Document:  doc.ID,
			ID:        ref.Source,
			Message:   fmt.Sprintf("%s %q does not resolve to %s", ref.Field, ref.ID, kindLabel(ref.Kind)),
			Expected:  referableIDs(existing),
			Actual:    ref.ID,
		})
	}
	return findings
}

func resolves(existing map[string]schema.RefKind, ref schema.Reference) bool {
	kind, ok := existing[ref.ID]
	if !ok {
		return false
	}
	if ref.Kind == schema.KindAny {
		return kind == schema.KindEntity || kind == schema.KindEvent
	}
	return kind == ref.Kind
}

func kindLabel(kind schema.RefKind) string {
	if kind == schema.KindAny {
		return "an entity or event"
	}
	return "an " + string(kind)
}

func referableIDs(existing map[string]schema.RefKind) string {
	if len(existing) == 0 {
		return "(none)"
	}
	ids := make([]string, 0, len(existing))
	for id, kind := range existing {
		ids = append(ids, fmt.Sprintf("%s(%s)", id, kind))
	}
	sort.Strings(ids)
	return strings.Join(ids, ", ")
}
