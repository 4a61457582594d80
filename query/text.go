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

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const tokenCutset = ".,!?;:'\"-()[]{}"

// lowerTurkish lowercases with Turkish casing rules, so that dotted and
// dotless I fold correctly (İ to i, I to ı).
func lowerTurkish(s string) string {
	return strings.ToLowerSpecial(unicode.TurkishCase, s)
}

// tokenize splits on whitespace and trims surrounding punctuation from
// each token. Empty tokens are dropped.
func tokenize(s string) []string {
	fields := strings.Fields(s)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		t := strings.Trim(f, tokenCutset)
		if t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// containsWholeWord reports whether word occurs in text bounded by
// non-letter, non-digit runes. Both arguments must already be lowercased.
func containsWholeWord(text, word string) bool {
	if word == "" {
		return false
	}
	for start := 0; ; {
		idx := strings.Index(text[start:], word)
		if idx < 0 {
			return false
		}
		idx += start
		end := idx + len(word)
		if boundaryBefore(text, idx) && boundaryAfter(text, end) {
			return true
		}
		start = idx + 1
	}
}

func boundaryBefore(text string, idx int) bool {
	if idx == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:idx])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

func boundaryAfter(text string, idx int) bool {
	if idx >= len(text) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(text[idx:])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

// anySubstring reports whether value contains any member of set as a
// substring. Value and set members must already be lowercased.
func anySubstring(value string, set []string) bool {
	for _, s := range set {
		if s != "" && strings.Contains(value, s) {
			return true
		}
	}
	return false
}

// containsAny reports whether text contains any of the phrases.
func containsAny(text string, phrases ...string) bool {
	for _, p := range phrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}
