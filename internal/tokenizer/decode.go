package tokenizer

import "strings"

// Decode turns ids back into text. Continuation pieces are glued to the previous
// piece, special tokens are skipped and ids outside both vocabularies render as
// the unknown token.
func (t *Tokenizer) Decode(ids []int) string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var sb strings.Builder
	for _, id := range ids {
		if t.loaded && t.specials.Contains(id) {
			continue
		}
		tok, ok := t.idToken(id)
		if !ok {
			tok = t.specialTokens.Unk
		}
		if bare, isCont := strings.CutPrefix(tok, ContinuationMarker); isCont && ok {
			sb.WriteString(bare)
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(tok)
	}
	return sb.String()
}
