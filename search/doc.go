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


// Package search answers a student's free-text query with a ranked list of
// their materials.
//
// A Searcher runs one pipeline per request:
//
//	classify -> resolve scope -> build criteria -> fetch candidates
//	         -> residual filter -> rank -> truncate
//
// Criteria are split by what the store can evaluate natively. The store
// receives the pushed-down part and the searcher applies the rest with
// filter.Criteria.Matches, so grade-ratio filters work even against stores
// that cannot compute a ratio.
//
// Store calls are retried with linear backoff. When retries run out the
// search still succeeds: the Response is empty and flagged Degraded, which
// lets callers tell "nothing found" from "store unavailable".
package search
