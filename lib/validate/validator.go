/*
 * Copyright 2022 Medicines Discovery Catapult
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *     http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package validate

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"sync"

	"gitlab.mdcatapult.io/informatics/software-engineering/annotation-validation/lib/schema"
	"gitlab.mdcatapult.io/informatics/software-engineering/annotation-validation/lib/text"
)

// Config configures a Validator. Tasks is the owning dataset's declared
// task list. Workers bounds the per-split worker pool; zero or negative
// means NumCPU. Strict upgrades offset findings, ragged spans included, to
// errors for callers with zero tolerance for span drift.
type Config struct {
	Tasks   []schema.Task
	Workers int
	Strict  bool
}

// Validator runs the per-document checks and the split-level conformance
// check, accumulating findings without aborting on the first failure. It
// holds no state between runs: all working sets are document-local and the
// report is the only thing that survives a split.
type Validator struct {
	conf Config
}

func NewValidator(conf Config) *Validator {
	return &Validator{conf: conf}
}

// Validate checks every split and returns the aggregated report, sorted
// for deterministic output. The context bounds the whole run; when it is
// cancelled the report covers whatever completed and the context error is
// returned alongside it.
func (v *Validator) Validate(ctx context.Context, kind schema.Kind, splits map[string][]schema.Record) (*Report, error) {
	names := make([]string, 0, len(splits))
	for name := range splits {
		names = append(names, name)
	}
	sort.Strings(names)

	report := &Report{}
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			report.Sort()
			return report, err
		}
		report.Splits = append(report.Splits, v.ValidateSplit(ctx, kind, name, splits[name]))
	}
	report.Sort()
	return report, ctx.Err()
}

// ValidateSplit checks one split's documents over a bounded worker pool
// and runs the conformance check once for the split. Documents share no
// mutable state; findings are merged under a single mutex.
func (v *Validator) ValidateSplit(ctx context.Context, kind schema.Kind, name string, records []schema.Record) SplitReport {
	workers := v.conf.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	jobs := make(chan schema.Record)
	var mu sync.Mutex
	var findings []Finding
	var tokens int
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for rec := range jobs {
				fs, n := v.checkRecord(rec)
				mu.Lock()
				findings = append(findings, fs...)
				tokens += n
				mu.Unlock()
			}
		}()
	}

feed:
	for _, rec := range records {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- rec:
		}
	}
	close(jobs)
	wg.Wait()

	findings = append(findings, CheckConformance(name, kind, records, v.conf.Tasks)...)

	for i := range findings {
		findings[i].Split = name
		if v.conf.Strict && findings[i].Component == ComponentOffsets {
			findings[i].Severity = Error
		}
	}

	report := SplitReport{
		Split:     name,
		Documents: len(records),
		Tokens:    tokens,
		Findings:  findings,
	}
	for _, f := range findings {
		if f.Severity == Error {
			report.HasFatalError = true
			break
		}
	}
	return report
}

// checkRecord runs the per-document checks and counts the record's tokens.
// Only kb documents carry the layered annotation checks; sibling schema
// records are covered by the split-level conformance check alone. A panic
// while checking one record becomes an error finding for that record; it
// never takes down the run.
func (v *Validator) checkRecord(rec schema.Record) (findings []Finding, tokens int) {
	defer func() {
		if r := recover(); r != nil {
			findings = append(findings, Finding{
				Severity:  Error,
				Component: ComponentInternal,
				Document:  rec.Key(),
				Message:   fmt.Sprintf("record check panicked: %v", r),
			})
		}
	}()

	tokens = text.CountTokens(rec.Text())

	doc, ok := rec.(*schema.Document)
	if !ok {
		return nil, tokens
	}

	_, findings = CheckIdentifiers(doc)
	findings = append(findings, CheckReferences(doc)...)

	docText := []rune(doc.Text())
	for _, p := range doc.Passages {
		findings = append(findings, withDocument(doc.ID, CheckOffsets(docText, p.ID, p.Offsets, p.Text))...)
	}
	for _, e := range doc.Entities {
		findings = append(findings, withDocument(doc.ID, CheckOffsets(docText, e.ID, e.Offsets, e.Text))...)
	}
	for _, e := range doc.Events {
		// Events without anchored triggers occur in real corpora; only
		// declared trigger spans are checked.
		if len(e.Trigger.Offsets) == 0 && len(e.Trigger.Text) == 0 {
			continue
		}
		findings = append(findings, withDocument(doc.ID, CheckOffsets(docText, e.ID, e.Trigger.Offsets, e.Trigger.Text))...)
	}
	return findings, tokens
}

func withDocument(docID string, findings []Finding) []Finding {
	for i := range findings {
		findings[i].Document = docID
	}
	return findings
}
