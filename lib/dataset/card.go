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

package dataset

import (
	"fmt"
	"io/ioutil"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v2"

	"gitlab.mdcatapult.io/informatics/software-engineering/annotation-validation/lib/schema"
)

// Card is a dataset's declaration: which interchange schema its loader
// emits, which tasks it claims to support, and where each split's records
// live. Validation is measured against this declaration.
type Card struct {
	Name   string            `yaml:"name"`
	Schema schema.Kind       `yaml:"schema"`
	Format Format            `yaml:"format"`
	Tasks  []schema.Task     `yaml:"tasks"`
	Splits map[string]string `yaml:"splits"`
	Strict bool              `yaml:"strict"`
}

// LoadCard returns an unmarshalled dataset card from a YAML file at the given path.
func LoadCard(path string) (*Card, error) {
	bytes, err := ioutil.ReadFile(path)
	if err != nil {
		log.Error().Msg(fmt.Sprintf("could not find dataset card at %v", path))
		return nil, err
	}

	type yamlCard struct {
		Name   string            `yaml:"name"`
		Schema string            `yaml:"schema"`
		Format string            `yaml:"format"`
		Tasks  []string          `yaml:"tasks"`
		Splits map[string]string `yaml:"splits"`
		Strict bool              `yaml:"strict"`
	}

	yc := yamlCard{}
	if err := yaml.Unmarshal(bytes, &yc); err != nil {
		log.Error().Msg(fmt.Sprintf("could not load dataset card from %v", path))
		return nil, err
	}

	if yc.Schema == "" {
		yc.Schema = string(schema.KB)
	}
	kind, err := schema.ParseKind(yc.Schema)
	if err != nil {
		return nil, err
	}

	tasks, err := schema.ParseTasks(yc.Tasks)
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return nil, fmt.Errorf("dataset card %v declares no tasks", path)
	}

	if len(yc.Splits) == 0 {
		return nil, fmt.Errorf("dataset card %v declares no splits", path)
	}

	format := Format(yc.Format)
	if format == "" {
		format = JSONLinesFormat
	}
	if format != JSONLinesFormat && format != JSONFormat {
		return nil, fmt.Errorf("unsupported split file format %v", format)
	}

	return &Card{
		Name:   yc.Name,
		Schema: kind,
		Format: format,
		Tasks:  tasks,
		Splits: yc.Splits,
		Strict: yc.Strict,
	}, nil
}
