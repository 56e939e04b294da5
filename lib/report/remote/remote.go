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

package remote

import (
	"gitlab.mdcatapult.io/informatics/software-engineering/annotation-validation/lib/validate"
)

// Backend selects where validation reports are exported to for CI
// dashboards. The validator itself stays stateless; sinks only receive the
// final report.
type Backend string

const (
	Redis         Backend = "redis"
	Elasticsearch Backend = "elasticsearch"
)

type Client interface {
	Push(dataset string, report *validate.Report) error
	Ready() bool
}
