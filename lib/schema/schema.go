package schema

import (
	"fmt"
	"strings"
)

// Kind is the closed set of interchange schemas loaders converge to.
type Kind string

const (
	KB         Kind = "kb"
	QA         Kind = "qa"
	Pairs      Kind = "pairs"
	TextToText Kind = "text_to_text"
	Entailment Kind = "entailment"
	Text       Kind = "text"
)

func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KB, QA, Pairs, TextToText, Entailment, Text:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("unknown schema kind %q", s)
	}
}

// Record is one loader-produced record of any interchange schema. Key is
// the record's unique id, Text its primary textual content (used only for
// token statistics), and PopulatedFeatures the names of the non-empty
// features the conformance check tallies per split.
type Record interface {
	Key() string
	Text() string
	PopulatedFeatures() []string
}

// QADocument is a question-answering record: a question over an optional
// context, with one or more gold answers.
type QADocument struct {
	ID         string   `json:"id"`
	QuestionID string   `json:"question_id"`
	DocumentID string   `json:"document_id"`
	Type       string   `json:"type"`
	Question   string   `json:"question"`
	Context    string   `json:"context"`
	Choices    []string `json:"choices"`
	Answer     []string `json:"answer"`
}

func (d *QADocument) Key() string {
	return d.ID
}

func (d *QADocument) Text() string {
	return strings.TrimSpace(d.Question + " " + d.Context)
}

func (d *QADocument) PopulatedFeatures() []string {
	var features []string
	if d.Question != "" {
		features = append(features, "question")
	}
	if d.Context != "" {
		features = append(features, "context")
	}
	if len(d.Choices) > 0 {
		features = append(features, "choices")
	}
	if len(d.Answer) > 0 {
		features = append(features, "answer")
	}
	return features
}

// PairsDocument is a labelled text pair (similarity, paraphrase).
type PairsDocument struct {
	ID         string `json:"id"`
	DocumentID string `json:"document_id"`
	Text1      string `json:"text_1"`
	Text2      string `json:"text_2"`
	Label      string `json:"label"`
}

func (d *PairsDocument) Key() string {
	return d.ID
}

func (d *PairsDocument) Text() string {
	return strings.TrimSpace(d.Text1 + " " + d.Text2)
}

func (d *PairsDocument) PopulatedFeatures() []string {
	var features []string
	if d.Text1 != "" {
		features = append(features, "text_1")
	}
	if d.Text2 != "" {
		features = append(features, "text_2")
	}
	if d.Label != "" {
		features = append(features, "label")
	}
	return features
}

// TextToTextDocument is a generation pair (translation, summarisation).
type TextToTextDocument struct {
	ID         string `json:"id"`
	DocumentID string `json:"document_id"`
	Text1      string `json:"text_1"`
	Text2      string `json:"text_2"`
	Text1Name  string `json:"text_1_name"`
	Text2Name  string `json:"text_2_name"`
}

func (d *TextToTextDocument) Key() string {
	return d.ID
}

func (d *TextToTextDocument) Text() string {
	return strings.TrimSpace(d.Text1 + " " + d.Text2)
}

func (d *TextToTextDocument) PopulatedFeatures() []string {
	var features []string
	if d.Text1 != "" {
		features = append(features, "text_1")
	}
	if d.Text2 != "" {
		features = append(features, "text_2")
	}
	return features
}

// EntailmentDocument is a premise/hypothesis pair with a label.
type EntailmentDocument struct {
	ID         string `json:"id"`
	DocumentID string `json:"document_id"`
	Premise    string `json:"premise"`
	Hypothesis string `json:"hypothesis"`
	Label      string `json:"label"`
}

func (d *EntailmentDocument) Key() string {
	return d.ID
}

func (d *EntailmentDocument) Text() string {
	return strings.TrimSpace(d.Premise + " " + d.Hypothesis)
}

func (d *EntailmentDocument) PopulatedFeatures() []string {
	var features []string
	if d.Premise != "" {
		features = append(features, "premise")
	}
	if d.Hypothesis != "" {
		features = append(features, "hypothesis")
	}
	if d.Label != "" {
		features = append(features, "label")
	}
	return features
}

// TextDocument is a classification record: one text with zero or more
// labels.
type TextDocument struct {
	ID         string   `json:"id"`
	DocumentID string   `json:"document_id"`
	TextValue  string   `json:"text"`
	Labels     []string `json:"labels"`
}

func (d *TextDocument) Key() string {
	return d.ID
}

func (d *TextDocument) Text() string {
	return d.TextValue
}

func (d *TextDocument) PopulatedFeatures() []string {
	var features []string
	if d.TextValue != "" {
		features = append(features, "text")
	}
	if len(d.Labels) > 0 {
		features = append(features, "labels")
	}
	return features
}
