package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.mdcatapult.io/informatics/software-engineering/annotation-validation/lib/schema"
)

func TestLoadCard(t *testing.T) {
	path := writeTempFile(t, "card.yml", `
name: chem_dis_gene
schema: kb
tasks:
  - named_entity_recognition
  - relation_extraction
splits:
  train: train.jsonl
  test: test.jsonl
`)

	card, err := LoadCard(path)

	require.NoError(t, err)
	assert.Equal(t, "chem_dis_gene", card.Name)
	assert.Equal(t, schema.KB, card.Schema)
	assert.Equal(t, JSONLinesFormat, card.Format)
	assert.Equal(t, []schema.Task{schema.TaskNamedEntityRecognition, schema.TaskRelationExtraction}, card.Tasks)
	assert.Equal(t, "train.jsonl", card.Splits["train"])
	assert.False(t, card.Strict)
}

func TestLoadCardDefaultsToKBSchema(t *testing.T) {
	path := writeTempFile(t, "card.yml", `
name: minimal
tasks: [named_entity_recognition]
splits: {train: train.jsonl}
`)

	card, err := LoadCard(path)

	require.NoError(t, err)
	assert.Equal(t, schema.KB, card.Schema)
}

func TestLoadCardErrors(t *testing.T) {
	for _, test := range []struct {
		name string
		yaml string
	}{
		{
			name: "unknown task",
			yaml: "name: x\ntasks: [mind_reading]\nsplits: {train: t.jsonl}\n",
		},
		{
			name: "unknown schema",
			yaml: "name: x\nschema: spreadsheet\ntasks: [named_entity_recognition]\nsplits: {train: t.jsonl}\n",
		},
		{
			name: "no tasks",
			yaml: "name: x\nsplits: {train: t.jsonl}\n",
		},
		{
			name: "no splits",
			yaml: "name: x\ntasks: [named_entity_recognition]\n",
		},
		{
			name: "bad format",
			yaml: "name: x\nformat: csv\ntasks: [named_entity_recognition]\nsplits: {train: t.csv}\n",
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			_, err := LoadCard(writeTempFile(t, "card.yml", test.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadCardMissingFile(t *testing.T) {
	_, err := LoadCard("/nonexistent/card.yml")
	assert.Error(t, err)
}
