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


// Package rank orders candidate materials against a query intent.
//
// Overdue work always sorts first, whatever was asked. Remaining ties are
// broken by an additive relevance score, then by completion, due date and
// grade signals, and finally by title so that output is reproducible.
// Rank is a pure function and safe for concurrent use.
package rank
