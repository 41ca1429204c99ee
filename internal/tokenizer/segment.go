package tokenizer

import (
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/kailas-cloud/lexdex/internal/domain/token"
)

// Normalize applies canonical decomposition and drops non-spacing marks,
// so "café" and "cafe" segment identically.
func Normalize(text string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	out, _, err := transform.String(t, text)
	if err != nil {
		return text
	}
	return out
}

// SplitSentence segments normalized text into word, space and separator tokens.
// Every non-word rune is its own token; the tokens cover the input without gaps.
// Offsets are rune positions in the normalized text.
func SplitSentence(text string) []token.Token {
	rs := []rune(Normalize(text))
	toks := make([]token.Token, 0, len(rs)/2+1)

	wordStart := 0
	for i, r := range rs {
		if isWordRune(r) {
			continue
		}
		if wordStart < i {
			toks = append(toks, token.Token{
				Text: string(rs[wordStart:i]), Start: wordStart, End: i, Category: token.Word,
			})
		}
		cat := token.Separator
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			cat = token.Space
		}
		toks = append(toks, token.Token{Text: string(r), Start: i, End: i + 1, Category: cat})
		wordStart = i + 1
	}
	if wordStart < len(rs) {
		toks = append(toks, token.Token{
			Text: string(rs[wordStart:]), Start: wordStart, End: len(rs), Category: token.Word,
		})
	}
	return toks
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
