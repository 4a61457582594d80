// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package query

import "github.com/aracbul/aracbul/core"

// QueryMonitor observes the stages of a query as it moves through the
// engine. Implementations must be cheap; hooks run synchronously on the
// query path.
type QueryMonitor interface {
	// Start fires before extraction with the raw query and catalog size.
	Start(query string, catalogSize int)

	// AfterExtraction fires with the recognized criteria.
	AfterExtraction(criteria *core.Criteria)

	// AfterFiltering fires with the number of surviving candidates.
	AfterFiltering(matches int)

	// AfterRanking fires with the policy that ordered the candidates.
	AfterRanking(policy core.SortPolicy)

	// Finish fires with the completed result.
	Finish(result *core.QueryResult)
}

// NoopMonitor ignores every event.
type NoopMonitor struct{}

var _ QueryMonitor = (*NoopMonitor)(nil)

func (NoopMonitor) Start(string, int)              {}
func (NoopMonitor) AfterExtraction(*core.Criteria) {}
func (NoopMonitor) AfterFiltering(int)             {}
func (NoopMonitor) AfterRanking(core.SortPolicy)   {}
func (NoopMonitor) Finish(*core.QueryResult)       {}
