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


// Package ai provides the text-completion collaborator boundary.
//
// The query engine itself is fully deterministic; the only generative piece
// is the optional explanation text, produced by an external completion
// service. This package defines that boundary:
//
//   - Completer: produces free-form text from a system instruction plus
//     user content
//   - Provider: aggregates collaborator services for initialization and
//     lifecycle management
//
// The engine must treat any collaborator failure identically to "not
// configured": callers fall back to the local deterministic renderer and
// never surface a collaborator error.
//
// Concrete implementations live in subpackages: openai (OpenAI-compatible
// chat APIs, including local Ollama) and mock (test doubles).
package ai
