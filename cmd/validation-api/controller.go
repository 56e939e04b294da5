package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gitlab.mdcatapult.io/informatics/software-engineering/annotation-validation/lib/dataset"
	"gitlab.mdcatapult.io/informatics/software-engineering/annotation-validation/lib/schema"
	"gitlab.mdcatapult.io/informatics/software-engineering/annotation-validation/lib/validate"
)

type controller struct {
	workers int
	timeout time.Duration
}

// validateRequest is the POST /validate body: a dataset declaration plus
// the split documents to check, documents kept raw so they can be decoded
// according to the declared schema.
type validateRequest struct {
	Dataset   string                       `json:"dataset"`
	Schema    string                       `json:"schema"`
	Tasks     []string                     `json:"tasks"`
	Strict    bool                         `json:"strict"`
	Documents map[string][]json.RawMessage `json:"documents"`
}

type taskInfo struct {
	Task             schema.Task `json:"task"`
	Schema           schema.Kind `json:"schema"`
	RequiredFeatures []string    `json:"required_features"`
}

func (c controller) ListTasks() []taskInfo {
	tasks := schema.KnownTasks()
	infos := make([]taskInfo, len(tasks))
	for i, t := range tasks {
		infos[i] = taskInfo{
			Task:             t,
			Schema:           t.SchemaKind(),
			RequiredFeatures: t.RequiredFeatures(),
		}
	}
	return infos
}

func (c controller) Validate(ctx context.Context, req validateRequest) (*validate.Report, error) {
	if req.Schema == "" {
		req.Schema = string(schema.KB)
	}
	kind, err := schema.ParseKind(req.Schema)
	if err != nil {
		return nil, NewHttpError(400, err)
	}

	tasks, err := schema.ParseTasks(req.Tasks)
	if err != nil {
		return nil, NewHttpError(400, err)
	}
	if len(tasks) == 0 {
		return nil, NewHttpError(400, fmt.Errorf("at least one task must be declared"))
	}
	if len(req.Documents) == 0 {
		return nil, NewHttpError(400, fmt.Errorf("at least one split must contain documents"))
	}

	splits := make(map[string][]schema.Record, len(req.Documents))
	for split, raws := range req.Documents {
		records := make([]schema.Record, 0, len(raws))
		for i, raw := range raws {
			rec, err := dataset.DecodeRecord(kind, raw)
			if err != nil {
				return nil, NewHttpError(400, fmt.Errorf("split %s document %d: %v", split, i, err))
			}
			records = append(records, rec)
		}
		splits[split] = records
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	validator := validate.NewValidator(validate.Config{
		Tasks:   tasks,
		Workers: c.workers,
		Strict:  req.Strict,
	})
	report, err := validator.Validate(ctx, kind, splits)
	if err != nil {
		return nil, NewHttpError(503, fmt.Errorf("validation aborted: %v", err))
	}
	report.Dataset = req.Dataset
	return report, nil
}
