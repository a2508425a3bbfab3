package services

import (
	"html"
	"regexp"
	"strings"

	"github.com/kljensen/snowball/english"
)

type TextNormalizer interface {
	Normalize(text string) string
}

type textNormalizer struct{}

func NewTextNormalizer() TextNormalizer {
	return &textNormalizer{}
}

var (
	htmlTagPattern  = regexp.MustCompile(`<[^>]+>`)
	nonAlphaPattern = regexp.MustCompile(`[^a-z\s]`)
)

// Normalize implements TextNormalizer.
//
// Pipeline: strip markup tags, decode entities, lowercase, drop non-alphabetic
// characters, tokenize on whitespace, drop stopwords and tokens shorter than
// four characters, stem the survivors, rejoin with single spaces. Total on
// any input; empty input yields an empty string.
func (n *textNormalizer) Normalize(text string) string {
	if text == "" {
		return ""
	}

	text = htmlTagPattern.ReplaceAllString(text, " ")
	text = html.UnescapeString(text)
	text = strings.ToLower(text)
	text = nonAlphaPattern.ReplaceAllString(text, " ")

	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return ""
	}

	out := make([]string, 0, len(tokens))
	for _, token := range tokens {
		// Filters apply to the surface token; stemming happens after, so
		// "requirements" and "required" both survive and collapse together.
		if stopWords[token] || len(token) <= 3 {
			continue
		}
		out = append(out, english.Stem(token, true))
	}

	return strings.Join(out, " ")
}
