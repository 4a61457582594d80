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


// Package explain renders query results into human-readable Turkish text.
//
// The Explainer has two rendering paths:
//
//   - Local: a deterministic template enumerating the recognized criteria,
//     the total/shown counts, and one line per shortlisted listing.
//   - Delegated: an optional text-completion collaborator receives the
//     shortlist and the original query under a system instruction that
//     forbids inventing listings, and its response is returned verbatim.
//
// Any collaborator failure (timeout, transport error, empty response) falls
// back silently to the local renderer; callers never see a collaborator
// error. A zero-candidate result and an empty query each produce a fixed
// message; both are first-class outcomes, not errors.
package explain
