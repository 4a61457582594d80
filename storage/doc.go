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


// Package storage provides the catalog storage abstraction layer.
//
// This package defines repository interfaces that decouple the query engine
// from the persistence of listings. The engine itself only ever consumes an
// ordered sequence of core.Listing values; how that sequence is stored is a
// backend concern (BadgerDB, in-memory, etc.).
//
// Public constructors in backend packages return these interfaces rather than
// concrete types, so consumers never couple to a specific backend and tests
// can substitute in-memory implementations freely.
//
// Serialization helpers in this package use the MUS binary format for
// compact, schema-free storage of listings and ingest checkpoints.
package storage
