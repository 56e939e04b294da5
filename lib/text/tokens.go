package text

import (
	"github.com/blevesearch/segment"
	"golang.org/x/text/unicode/norm"
)

const nonWordSegment = 0

// CountTokens counts the word tokens in text. The text is NFC-normalised
// first so that decomposed accents do not split tokens. Token counts are
// informational only; they ride on the report summary and never produce
// findings.
func CountTokens(text string) int {
	segmenter := segment.NewWordSegmenterDirect([]byte(norm.NFC.String(text)))
	count := 0
	for segmenter.Segment() {
		if segmenter.Type() != nonWordSegment {
			count++
		}
	}
	// A segmentation error truncates the count; tokens are best effort.
	return count
}
