package validate

import (
	"fmt"
	"io"
	"sort"
)

// SplitReport groups everything the validator found in one split.
type SplitReport struct {
	Split         string    `json:"split"`
	Documents     int       `json:"documents"`
	Tokens        int       `json:"tokens"`
	Findings      []Finding `json:"findings"`
	HasFatalError bool      `json:"has_fatal_error"`
}

// Report is the result of a full validation run.
type Report struct {
	Dataset string        `json:"dataset,omitempty"`
	Splits  []SplitReport `json:"splits"`
}

// HasFatalError reports whether any split contains an error-severity
// finding. This drives the process exit code.
func (r *Report) HasFatalError() bool {
	for _, s := range r.Splits {
		if s.HasFatalError {
			return true
		}
	}
	return false
}

// Sort orders splits by name and findings by (split, document, component,
// id) so that CI logs are diffable. Collection order is unspecified
// because documents are validated concurrently.
func (r *Report) Sort() {
	sort.Slice(r.Splits, func(i, j int) bool { return r.Splits[i].Split < r.Splits[j].Split })
	for i := range r.Splits {
		findings := r.Splits[i].Findings
		sort.Slice(findings, func(a, b int) bool {
			fa, fb := findings[a], findings[b]
			if fa.Split != fb.Split {
				return fa.Split < fb.Split
			}
			if fa.Document != fb.Document {
				return fa.Document < fb.Document
			}
			if fa.Component != fb.Component {
				return fa.Component < fb.Component
			}
			return fa.ID < fb.ID
		})
	}
}

// WriteSummary prints a human-readable report: per-severity and
// per-component counts, up to maxExamples sample findings per category so
// large corpora do not flood logs, and a PASS/FAIL verdict.
func (r *Report) WriteSummary(w io.Writer, maxExamples int) error {
	for _, split := range r.Splits {
		if _, err := fmt.Fprintf(w, "split %s: %d documents, %d tokens\n", split.Split, split.Documents, split.Tokens); err != nil {
			return err
		}
		if len(split.Findings) == 0 {
			if _, err := fmt.Fprintln(w, "  no findings"); err != nil {
				return err
			}
			continue
		}
		byCategory := make(map[string][]Finding)
		var categories []string
		for _, f := range split.Findings {
			key := fmt.Sprintf("%s/%s", f.Severity, f.Component)
			if _, ok := byCategory[key]; !ok {
				categories = append(categories, key)
			}
			byCategory[key] = append(byCategory[key], f)
		}
		sort.Strings(categories)
		for _, category := range categories {
			findings := byCategory[category]
			if _, err := fmt.Fprintf(w, "  %s: %d\n", category, len(findings)); err != nil {
				return err
			}
			for i, f := range findings {
				if maxExamples >= 0 && i >= maxExamples {
					if _, err := fmt.Fprintf(w, "    ... %d more\n", len(findings)-maxExamples); err != nil {
						return err
					}
					break
				}
				if _, err := fmt.Fprintf(w, "    %s\n", f.String()); err != nil {
					return err
				}
			}
		}
	}

	verdict := "PASS"
	if r.HasFatalError() {
		verdict = "FAIL"
	}
	_, err := fmt.Fprintln(w, verdict)
	return err
}
