package interview

import "strings"

// questionWords extracts the comparison vocabulary of a question: lowercased
// words longer than three characters, punctuation trimmed.
func questionWords(q string) []string {
	fields := strings.Fields(strings.ToLower(q))
	words := make([]string, 0, len(fields))
	for _, f := range fields {
		w := strings.Trim(f, ".,!?;:()\"'")
		if len(w) > 3 {
			words = append(words, w)
		}
	}
	return words
}

// similarity scores two questions as the fraction of shared words relative
// to the shorter question's word count. A heuristic duplicate guard, not
// semantic comparison.
func similarity(a, b string) float64 {
	wordsA := questionWords(a)
	wordsB := questionWords(b)
	if len(wordsA) == 0 || len(wordsB) == 0 {
		return 0
	}

	seen := make(map[string]bool, len(wordsA))
	for _, w := range wordsA {
		seen[w] = true
	}

	shared := 0
	counted := make(map[string]bool, len(wordsB))
	for _, w := range wordsB {
		if seen[w] && !counted[w] {
			shared++
			counted[w] = true
		}
	}

	return float64(shared) / float64(min(len(wordsA), len(wordsB)))
}

// tooSimilar reports whether a candidate question duplicates any question
// already asked.
func tooSimilar(candidate string, asked []string, threshold float64) bool {
	for _, q := range asked {
		if similarity(candidate, q) > threshold {
			return true
		}
	}
	return false
}
