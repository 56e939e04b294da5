package schema

import (
	"fmt"
	"sort"
)

// Task is a task identifier a dataset may declare support for. Each task
// implies a set of features its schema must populate; the conformance
// check compares those against what the data actually contains.
type Task string

const (
	TaskNamedEntityRecognition    Task = "named_entity_recognition"
	TaskNamedEntityDisambiguation Task = "named_entity_disambiguation"
	TaskRelationExtraction        Task = "relation_extraction"
	TaskCoreferenceResolution     Task = "coreference_resolution"
	TaskEventExtraction           Task = "event_extraction"
	TaskQuestionAnswering         Task = "question_answering"
	TaskSemanticSimilarity        Task = "semantic_textual_similarity"
	TaskParaphrasing              Task = "paraphrasing"
	TaskTextualEntailment         Task = "textual_entailment"
	TaskTranslation               Task = "translation"
	TaskSummarization             Task = "summarization"
	TaskTextClassification        Task = "text_classification"
)

type taskSpec struct {
	kind     Kind
	features []string
}

var taskSpecs = map[Task]taskSpec{
	TaskNamedEntityRecognition:    {KB, []string{"entities"}},
	TaskNamedEntityDisambiguation: {KB, []string{"entities", "normalized"}},
	TaskRelationExtraction:        {KB, []string{"entities", "relations"}},
	TaskCoreferenceResolution:     {KB, []string{"entities", "coreferences"}},
	TaskEventExtraction:           {KB, []string{"events"}},
	TaskQuestionAnswering:         {QA, []string{"question", "answer"}},
	TaskSemanticSimilarity:        {Pairs, []string{"text_1", "text_2", "label"}},
	TaskParaphrasing:              {Pairs, []string{"text_1", "text_2"}},
	TaskTextualEntailment:         {Entailment, []string{"premise", "hypothesis", "label"}},
	TaskTranslation:               {TextToText, []string{"text_1", "text_2"}},
	TaskSummarization:             {TextToText, []string{"text_1", "text_2"}},
	TaskTextClassification:        {Text, []string{"text", "labels"}},
}

// SchemaKind returns the interchange schema that serves the task.
func (t Task) SchemaKind() Kind {
	return taskSpecs[t].kind
}

// RequiredFeatures returns the feature names the task's schema must
// populate somewhere in each split.
func (t Task) RequiredFeatures() []string {
	return taskSpecs[t].features
}

func ParseTask(s string) (Task, error) {
	if _, ok := taskSpecs[Task(s)]; !ok {
		return "", fmt.Errorf("unknown task %q", s)
	}
	return Task(s), nil
}

func ParseTasks(names []string) ([]Task, error) {
	tasks := make([]Task, 0, len(names))
	for _, name := range names {
		t, err := ParseTask(name)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// KnownTasks lists every task identifier in a stable order.
func KnownTasks() []Task {
	tasks := make([]Task, 0, len(taskSpecs))
	for t := range taskSpecs {
		tasks = append(tasks, t)
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i] < tasks[j] })
	return tasks
}
