// Package canned implements the predefined answer table and the fuzzy
// matcher that decides whether a user message should be answered with a
// fixed reply instead of calling the generation backend.
package canned

import "strings"

// similarityThreshold is the minimum ratio for the fallback similarity pass.
const similarityThreshold = 0.55

// Entry is one canned answer: a short lowercase topic phrase and the fixed
// reply returned for it.
type Entry struct {
	Key    string
	Answer string
}

// Table is an ordered set of canned answers. Iteration order is definition
// order and is significant for tie-breaking. The table is built once at
// startup and never mutated.
type Table []Entry

// Match returns the canned answer for the given message, if any. The message
// is lowercased, then each key is tested for substring containment in table
// order, first hit wins. If no key is contained, a similarity pass scores
// every key against the full message and the best key wins if its ratio
// reaches the threshold. Best tracking uses a strictly-greater comparison,
// so on exact score ties the earliest key in table order is kept.
func (t Table) Match(message string) (string, bool) {
	if message == "" {
		return "", false
	}
	m := strings.ToLower(message)

	for _, e := range t {
		if strings.Contains(m, e.Key) {
			return e.Answer, true
		}
	}

	var bestAnswer string
	bestScore := 0.0
	for _, e := range t {
		if ratio := Ratio(m, e.Key); ratio > bestScore {
			bestScore = ratio
			bestAnswer = e.Answer
		}
	}

	if bestScore >= similarityThreshold && bestAnswer != "" {
		return bestAnswer, true
	}
	return "", false
}
