package validate

import (
	"fmt"

	"gitlab.mdcatapult.io/informatics/software-engineering/annotation-validation/lib/schema"
)

// CheckOffsets confirms that the document text at each offset pair equals
// the claimed span text. Comparison is exact: no case folding, no
// whitespace collapsing. A length mismatch between offsets and texts is
// reported as a warning and checking continues; the unpaired elements are
// compared against the empty string rather than suppressed.
func CheckOffsets(docText []rune, owner string, offsets []schema.Span, texts []string) []Finding {
	if len(offsets) == 0 && len(texts) == 0 {
		return []Finding{{
			Severity:  Warning,
			Component: ComponentOffsets,
			ID:        owner,
			Message:   "no spans declared",
		}}
	}

	var findings []Finding
	if len(offsets) != len(texts) {
		findings = append(findings, Finding{
			Severity:  Warning,
			Component: ComponentOffsets,
			ID:        owner,
			Message:   fmt.Sprintf("ragged spans: %d offsets for %d texts", len(offsets), len(texts)),
		})
	}

	n := len(offsets)
	if len(texts) > n {
		n = len(texts)
	}
	for i := 0; i < n; i++ {
		var claimed string
		if i < len(texts) {
			claimed = texts[i]
		}
		var actual string
		if i < len(offsets) {
			actual = slice(docText, offsets[i])
		}
		if actual != claimed {
			findings = append(findings, Finding{
				Severity:  Warning,
				Component: ComponentOffsets,
				ID:        owner,
				Message:   fmt.Sprintf("span %d does not match document text", i),
				Expected:  claimed,
				Actual:    actual,
			})
		}
	}
	return findings
}

// slice clamps the span to the text bounds so that out-of-range offsets
// surface as mismatches instead of panics.
func slice(docText []rune, span schema.Span) string {
	start, end := span.Start(), span.End()
	if start < 0 {
		start = 0
	}
	if end > len(docText) {
		end = len(docText)
	}
	if start >= end {
		return ""
	}
	return string(docText[start:end])
}
