package tokenizer

import "github.com/kailas-cloud/lexdex/internal/domain"

// SpecialTokens names the structural vocabulary entries.
type SpecialTokens struct {
	Pad  string
	Unk  string
	Sep  string
	Cls  string
	Mask string
}

// DefaultSpecialTokens returns the BERT-style special token strings.
func DefaultSpecialTokens() SpecialTokens {
	return SpecialTokens{
		Pad:  "[PAD]",
		Unk:  "[UNK]",
		Sep:  "[SEP]",
		Cls:  "[CLS]",
		Mask: "[MASK]",
	}
}

// SpecialIDs holds the resolved ids of the special tokens.
type SpecialIDs struct {
	Pad  int
	Unk  int
	Sep  int
	Cls  int
	Mask int
}

// All returns the ids in pad, unk, sep, cls, mask order.
func (s SpecialIDs) All() []int {
	return []int{s.Pad, s.Unk, s.Sep, s.Cls, s.Mask}
}

// Contains reports whether id is one of the special ids.
func (s SpecialIDs) Contains(id int) bool {
	return id == s.Pad || id == s.Unk || id == s.Sep || id == s.Cls || id == s.Mask
}

// Resolve looks up every special token in v. The first token that is absent
// is reported as a MissingSpecialTokenError.
func (s SpecialTokens) Resolve(v *Vocabulary) (SpecialIDs, error) {
	var ids SpecialIDs
	specials := []struct {
		name string
		dest *int
	}{
		{s.Pad, &ids.Pad},
		{s.Unk, &ids.Unk},
		{s.Sep, &ids.Sep},
		{s.Cls, &ids.Cls},
		{s.Mask, &ids.Mask},
	}
	for _, sp := range specials {
		id, ok := v.ID(sp.name)
		if !ok {
			return SpecialIDs{}, domain.NewMissingSpecialToken(sp.name)
		}
		*sp.dest = id
	}
	return ids, nil
}
