package validate

import (
	"fmt"

	"gitlab.mdcatapult.io/informatics/software-engineering/annotation-validation/lib/schema"
)

// CheckIdentifiers collects every id the document declares and fails on
// duplicates. Ids are only observed, never minted or rewritten. The
// returned set is scoped to this document and holds every id seen, first
// occurrence or not.
func CheckIdentifiers(doc *schema.Document) (map[string]struct{}, []Finding) {
	seen := make(map[string]struct{})
	layers := make(map[string]schema.Layer)
	var findings []Finding
	for _, aid := range doc.AnnotationIDs() {
		if aid.ID == "" {
			findings = append(findings, Finding{
				Severity:  Warning,
				Component: ComponentIdentity,
				Document:  doc.ID,
				Message:   fmt.Sprintf("annotation in %s layer has no id", aid.Layer),
			})
			continue
		}
		if _, ok := seen[aid.ID]; ok {
			findings = append(findings, Finding{
				Severity:  Error,
				Component: ComponentIdentity,
				Document:  doc.ID,
				ID:        aid.ID,
				Message:   fmt.Sprintf("duplicate identifier declared by %s layer (first declared by %s layer)", aid.Layer, layers[aid.ID]),
			})
			continue
		}
		seen[aid.ID] = struct{}{}
		layers[aid.ID] = aid.Layer
	}
	return seen, findings
}
