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

package index

import (
	"encoding/json"
	"regexp"
	"strings"
)

// answerResultV1 is the wire shape of one result in an answer. Older
// model outputs used "message_id"; current ones use "id".
type answerResultV1 struct {
	Id        string `json:"id"`
	MessageId string `json:"message_id"`
	Reason    string `json:"reason"`
	Highlight string `json:"highlight"`
}

// answerV1 is the wrapper structure for the model's JSON answer.
type answerV1 struct {
	Results []answerResultV1 `json:"results"`
}

var docRefPattern = regexp.MustCompile(`(?:msg_\d+|chunk_[0-9a-fA-F-]+)`)

// ParseAnswer extracts document candidates from a raw query answer.
//
// The expected shape is a JSON object with a "results" list, possibly
// wrapped in markdown code fences. When JSON parsing fails, any document
// IDs mentioned in the text are scavenged instead, without reasons or
// highlights. A completely unusable answer yields an empty slice, never
// an error — query-path callers degrade to "no results".
func ParseAnswer(raw string) []AnswerResult {
	text := stripCodeFences(raw)

	var parsed answerV1
	if err := json.Unmarshal([]byte(text), &parsed); err == nil && len(parsed.Results) > 0 {
		results := make([]AnswerResult, 0, len(parsed.Results))
		for _, r := range parsed.Results {
			id := r.Id
			if id == "" {
				id = r.MessageId
			}
			if id == "" {
				continue
			}
			results = append(results, AnswerResult{
				Id:        id,
				Reason:    r.Reason,
				Highlight: r.Highlight,
			})
		}
		if len(results) > 0 {
			return results
		}
	}

	// Fallback: scavenge document IDs out of free text
	var results []AnswerResult
	seen := make(map[string]bool)
	for _, id := range docRefPattern.FindAllString(raw, -1) {
		if seen[id] {
			continue
		}
		seen[id] = true
		results = append(results, AnswerResult{Id: id})
	}
	return results
}

// stripCodeFences removes markdown code fences around a JSON payload.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
