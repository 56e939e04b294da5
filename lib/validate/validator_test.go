package validate

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.mdcatapult.io/informatics/software-engineering/annotation-validation/lib/schema"
	"gitlab.mdcatapult.io/informatics/software-engineering/annotation-validation/lib/testhelpers"
)

// The scenario from the interchange contract: a well-formed document with
// one dangling relation argument. The offset checks pass, the reference
// check warns once, and the run still passes because nothing is an error.
func TestValidateDanglingReference(t *testing.T) {
	doc := &schema.Document{
		ID:        "d0",
		Passages:  []schema.Passage{testhelpers.Passage("p0", "title", "Gene X causes Y", 0, 15)},
		Entities:  []schema.Entity{testhelpers.Ent("e0", "gene", "Gene X", 0, 6)},
		Relations: []schema.Relation{testhelpers.Rel("r0", "causes", "e0", "e1")},
	}

	v := NewValidator(Config{Tasks: []schema.Task{schema.TaskNamedEntityRecognition, schema.TaskRelationExtraction}})
	report, err := v.Validate(context.Background(), schema.KB, map[string][]schema.Record{
		"train": testhelpers.Records(doc),
	})

	require.NoError(t, err)
	require.Len(t, report.Splits, 1)
	assert.False(t, report.HasFatalError())

	split := report.Splits[0]
	assert.Equal(t, 1, split.Documents)
	require.Len(t, split.Findings, 1)
	assert.Equal(t, Warning, split.Findings[0].Severity)
	assert.Equal(t, ComponentReferences, split.Findings[0].Component)
	assert.Equal(t, "r0", split.Findings[0].ID)
	assert.Equal(t, "train", split.Findings[0].Split)
}

func TestValidateDuplicateIDIsFatal(t *testing.T) {
	doc := testhelpers.TitleDoc("d0", "Gene X causes Y")
	doc.Entities = []schema.Entity{
		testhelpers.Ent("e0", "gene", "Gene X", 0, 6),
		testhelpers.Ent("e0", "disease", "Y", 14, 15),
	}

	v := NewValidator(Config{Tasks: []schema.Task{schema.TaskNamedEntityRecognition}})
	report, err := v.Validate(context.Background(), schema.KB, map[string][]schema.Record{
		"train": testhelpers.Records(doc),
	})

	require.NoError(t, err)
	assert.True(t, report.HasFatalError())

	var errors []Finding
	for _, f := range report.Splits[0].Findings {
		if f.Severity == Error {
			errors = append(errors, f)
		}
	}
	require.Len(t, errors, 1)
	assert.Equal(t, ComponentIdentity, errors[0].Component)
	assert.Equal(t, "e0", errors[0].ID)
}

func TestValidateNeverShortCircuits(t *testing.T) {
	// A fatal finding on the first document must not stop the second
	// document from being checked.
	bad := testhelpers.TitleDoc("d0", "Gene X causes Y")
	bad.Entities = []schema.Entity{
		testhelpers.Ent("e0", "gene", "Gene X", 0, 6),
		testhelpers.Ent("e0", "gene", "Gene X", 0, 6),
	}
	alsoOff := testhelpers.TitleDoc("d1", "Gene X causes Y")
	alsoOff.Entities = []schema.Entity{testhelpers.Ent("e1", "gene", "Gene", 0, 6)}

	v := NewValidator(Config{Tasks: []schema.Task{schema.TaskNamedEntityRecognition}, Workers: 1})
	report, err := v.Validate(context.Background(), schema.KB, map[string][]schema.Record{
		"train": testhelpers.Records(bad, alsoOff),
	})

	require.NoError(t, err)
	documents := make(map[string]bool)
	for _, f := range report.Splits[0].Findings {
		documents[f.Document] = true
	}
	assert.True(t, documents["d0"])
	assert.True(t, documents["d1"])
}

func TestValidateStrictUpgradesOffsetFindings(t *testing.T) {
	doc := testhelpers.TitleDoc("d0", "Gene X causes Y")
	doc.Entities = []schema.Entity{testhelpers.Ent("e0", "gene", "Gene", 0, 6)}

	relaxed := NewValidator(Config{Tasks: []schema.Task{schema.TaskNamedEntityRecognition}})
	report, err := relaxed.Validate(context.Background(), schema.KB, map[string][]schema.Record{
		"train": testhelpers.Records(doc),
	})
	require.NoError(t, err)
	assert.False(t, report.HasFatalError())

	strict := NewValidator(Config{Tasks: []schema.Task{schema.TaskNamedEntityRecognition}, Strict: true})
	report, err = strict.Validate(context.Background(), schema.KB, map[string][]schema.Record{
		"train": testhelpers.Records(doc),
	})
	require.NoError(t, err)
	assert.True(t, report.HasFatalError())
}

func TestValidateIdempotent(t *testing.T) {
	doc := testhelpers.TitleDoc("d0", "Gene X causes Y")
	doc.Entities = []schema.Entity{testhelpers.Ent("e0", "gene", "Gene", 0, 6)}
	doc.Relations = []schema.Relation{testhelpers.Rel("r0", "causes", "e0", "missing")}
	splits := map[string][]schema.Record{
		"train":      testhelpers.Records(doc),
		"validation": testhelpers.Records(testhelpers.TitleDoc("d1", "Nothing here")),
	}

	v := NewValidator(Config{Tasks: []schema.Task{schema.TaskNamedEntityRecognition}, Workers: 4})
	first, err := v.Validate(context.Background(), schema.KB, splits)
	require.NoError(t, err)
	second, err := v.Validate(context.Background(), schema.KB, splits)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestValidateCancelledContext(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	time.Sleep(time.Millisecond)

	docs := make([]schema.Record, 100)
	for i := range docs {
		docs[i] = testhelpers.TitleDoc("d0", "Gene X causes Y")
	}

	v := NewValidator(Config{Workers: 2})
	_, err := v.Validate(ctx, schema.KB, map[string][]schema.Record{"train": docs})

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestValidateCountsTokens(t *testing.T) {
	v := NewValidator(Config{})
	report := v.ValidateSplit(context.Background(), schema.KB, "train", testhelpers.Records(
		testhelpers.TitleDoc("d0", "Gene X causes Y"),
		testhelpers.TitleDoc("d1", "Protein Z"),
	))

	assert.Equal(t, 6, report.Tokens)
}

func TestValidatePathologicalPassageOffset(t *testing.T) {
	// A loader bug declaring an absurd start offset must surface as a
	// finding against that document, not abort the run.
	doc := &schema.Document{
		ID: "d0",
		Passages: []schema.Passage{{
			ID:      "p0",
			Type:    "title",
			Text:    []string{"causes"},
			Offsets: []schema.Span{{1 << 62, 1<<62 + 6}},
		}},
	}

	v := NewValidator(Config{Workers: 2})
	report, err := v.Validate(context.Background(), schema.KB, map[string][]schema.Record{
		"train": testhelpers.Records(doc, testhelpers.TitleDoc("d1", "Gene X causes Y")),
	})

	require.NoError(t, err)
	require.Len(t, report.Splits, 1)
	assert.Equal(t, 2, report.Splits[0].Documents)
	assert.False(t, report.HasFatalError())

	var offsetFindings []Finding
	for _, f := range report.Splits[0].Findings {
		if f.Component == ComponentOffsets && f.Document == "d0" {
			offsetFindings = append(offsetFindings, f)
		}
	}
	require.NotEmpty(t, offsetFindings)
	assert.Equal(t, Warning, offsetFindings[0].Severity)
}

type panickyRecord struct{}

func (panickyRecord) Key() string                 { return "bad" }
func (panickyRecord) Text() string                { panic("corrupt record") }
func (panickyRecord) PopulatedFeatures() []string { return nil }

func TestValidateRecoversFromPanickingRecord(t *testing.T) {
	v := NewValidator(Config{Workers: 1})
	report, err := v.Validate(context.Background(), schema.KB, map[string][]schema.Record{
		"train": {panickyRecord{}, testhelpers.TitleDoc("d0", "Gene X causes Y")},
	})

	require.NoError(t, err)
	require.Len(t, report.Splits, 1)
	assert.True(t, report.HasFatalError())

	var internal []Finding
	for _, f := range report.Splits[0].Findings {
		if f.Component == ComponentInternal {
			internal = append(internal, f)
		}
	}
	require.Len(t, internal, 1)
	assert.Equal(t, Error, internal[0].Severity)
	assert.Equal(t, "bad", internal[0].Document)
}

func TestReportSortIsDeterministic(t *testing.T) {
	report := &Report{Splits: []SplitReport{
		{Split: "train", Findings: []Finding{
			{Split: "train", Document: "d1", Component: ComponentReferences, ID: "r1"},
			{Split: "train", Document: "d0", Component: ComponentOffsets, ID: "e0"},
			{Split: "train", Document: "d0", Component: ComponentIdentity, ID: "e0"},
		}},
		{Split: "test"},
	}}

	report.Sort()

	assert.Equal(t, "test", report.Splits[0].Split)
	findings := report.Splits[1].Findings
	assert.Equal(t, "d0", findings[0].Document)
	assert.Equal(t, ComponentIdentity, findings[0].Component)
	assert.Equal(t, ComponentOffsets, findings[1].Component)
	assert.Equal(t, "d1", findings[2].Document)
}
