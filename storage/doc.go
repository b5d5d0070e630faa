// Copyright 2026 Convodex Systems
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

// Package storage provides the storage abstraction layer for convodex.
//
// This package defines repository interfaces that decouple storage
// implementation from business logic, so different backends (BadgerDB,
// in-memory) can be used interchangeably.
//
// The storage layer follows the Repository pattern:
//
//   - MessageRepository: archived messages, keyed by platform ID
//   - ChunkRepository: derived conversation chunk records
//   - SyncRepository: sync run records, watermark, synced-channel marks
//
// Public constructors in backend packages return these interfaces rather
// than concrete types, to prevent accidental coupling to BadgerDB
// specifics and to let tests substitute fakes without modification.
//
// All repository implementations must be thread-safe, and all methods
// accept a context.Context for cancellation. Record bytes on disk use the
// mus-format codecs generated into the core package; deserialization
// failures surface as errors at this boundary rather than producing
// half-populated records.
package storage
