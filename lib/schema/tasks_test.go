package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTasks(t *testing.T) {
	tasks, err := ParseTasks([]string{"named_entity_recognition", "relation_extraction"})
	assert.NoError(t, err)
	assert.Equal(t, []Task{TaskNamedEntityRecognition, TaskRelationExtraction}, tasks)

	_, err = ParseTasks([]string{"named_entity_recognition", "mind_reading"})
	assert.EqualError(t, err, `unknown task "mind_reading"`)
}

func TestRequiredFeatures(t *testing.T) {
	assert.Equal(t, []string{"entities", "relations"}, TaskRelationExtraction.RequiredFeatures())
	assert.Equal(t, []string{"entities", "normalized"}, TaskNamedEntityDisambiguation.RequiredFeatures())
	assert.Equal(t, KB, TaskEventExtraction.SchemaKind())
	assert.Equal(t, QA, TaskQuestionAnswering.SchemaKind())
}

func TestParseKind(t *testing.T) {
	kind, err := ParseKind("kb")
	assert.NoError(t, err)
	assert.Equal(t, KB, kind)

	_, err = ParseKind("spreadsheet")
	assert.Error(t, err)
}
