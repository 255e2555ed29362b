package chunking

import (
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// controlMax is the highest code point treated as a separator.
const controlMax = 32

// tokenize splits NFC-normalized text into words and single separator
// characters. Two adjacent separators yield an empty word between them; an
// empty trailing word is never emitted. Tokens are substrings of the
// normalized text, so bytes that are not valid UTF-8 pass through unchanged.
func tokenize(text string) []string {
	normalized := norm.NFC.String(text)
	tokens := make([]string, 0, len(normalized)/4+1)

	start := 0
	for i := 0; i < len(normalized); {
		r, size := utf8.DecodeRuneInString(normalized[i:])
		if r <= controlMax {
			tokens = append(tokens, normalized[start:i], normalized[i:i+size])
			start = i + size
		}
		i += size
	}
	if start < len(normalized) {
		tokens = append(tokens, normalized[start:])
	}
	return tokens
}

// chunkTokens replaces every token longer than size code points with
// consecutive slices of size code points, the last holding the remainder.
// A byte that is not valid UTF-8 counts as one code point.
func chunkTokens(tokens []string, size int) []string {
	out := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if utf8.RuneCountInString(token) <= size {
			out = append(out, token)
			continue
		}
		start, count := 0, 0
		for i := 0; i < len(token); {
			if count == size {
				out = append(out, token[start:i])
				start, count = i, 0
			}
			_, width := utf8.DecodeRuneInString(token[i:])
			i += width
			count++
		}
		out = append(out, token[start:])
	}
	return out
}
