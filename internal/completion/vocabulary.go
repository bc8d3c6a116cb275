// Package completion provides the console's tab-completion vocabulary.
// It implements the readline.AutoCompleter interface so it can be handed to the line editor directly.
package completion

import (
	"strings"

	"liveconsole/internal/macro"
)

// PathSegments are the AbletonOSC address words offered for completion.
var PathSegments = []string{"live", "song", "track", "clip", "device", "parameter", "parameters"}

// Vocabulary is an immutable, ordered set of completion candidates.
type Vocabulary struct {
	words []string
}

// New builds a vocabulary from words, keeping declaration order and dropping duplicates.
func New(words ...string) *Vocabulary {
	seen := make(map[string]struct{}, len(words))
	unique := make([]string, 0, len(words))
	for _, w := range words {
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		unique = append(unique, w)
	}
	return &Vocabulary{words: unique}
}

// Default returns the path segments followed by the macro keywords.
func Default() *Vocabulary {
	words := make([]string, 0, len(PathSegments)+2)
	words = append(words, PathSegments...)
	words = append(words, macro.Keywords()...)
	return New(words...)
}

// Words returns a copy of the vocabulary in declaration order.
func (v *Vocabulary) Words() []string {
	out := make([]string, len(v.words))
	copy(out, v.words)
	return out
}

// Matches returns every word starting with prefix, in declaration order.
// Matching is case-sensitive.
func (v *Vocabulary) Matches(prefix string) []string {
	matches := make([]string, 0)
	for _, w := range v.words {
		if strings.HasPrefix(w, prefix) {
			matches = append(matches, w)
		}
	}
	return matches
}

// Complete returns the index-th word matching prefix. The second result is false
// once index runs past the matches.
func (v *Vocabulary) Complete(prefix string, index int) (string, bool) {
	if index < 0 {
		return "", false
	}
	for _, w := range v.words {
		if !strings.HasPrefix(w, prefix) {
			continue
		}
		if index == 0 {
			return w, true
		}
		index--
	}
	return "", false
}

// Do implements readline.AutoCompleter. It completes the word under the cursor,
// where words are separated by spaces and OSC path slashes.
func (v *Vocabulary) Do(line []rune, pos int) (newLine [][]rune, offset int) {
	if pos > len(line) {
		pos = len(line)
	}
	if pos < 0 {
		pos = 0
	}

	start := findWordStart(line, pos)
	current := string(line[start:pos])

	var suggestions [][]rune
	for _, candidate := range v.Matches(current) {
		suggestions = append(suggestions, []rune(strings.TrimPrefix(candidate, current)))
	}
	return suggestions, pos - start
}

// findWordStart walks back from pos to the nearest separator.
func findWordStart(line []rune, pos int) int {
	for i := pos - 1; i >= 0; i-- {
		switch line[i] {
		case ' ', '\t', '/':
			return i + 1
		}
	}
	return 0
}
