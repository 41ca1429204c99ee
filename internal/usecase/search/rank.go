package search

import (
	"sort"

	"github.com/kailas-cloud/lexdex/internal/domain/search/result"
	"github.com/kailas-cloud/lexdex/internal/domain/sparse"
)

// rank scores all documents against q, stable-sorts by descending score, keeps
// the first topK and then drops hits that scored exactly zero.
func (s *Service) rank(q sparse.Vector, topK int) []result.Result {
	type scored struct {
		idx   int
		score float64
	}

	dims := q.Dims()
	all := make([]scored, len(s.docs))
	for i := range s.docs {
		all[i] = scored{idx: i, score: sparse.DotDims(dims, q, s.docs[i].Vector())}
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].score > all[j].score
	})

	if len(all) > topK {
		all = all[:topK]
	}

	results := make([]result.Result, 0, len(all))
	for _, sc := range all {
		if sc.score == 0 {
			continue
		}
		d := &s.docs[sc.idx]
		results = append(results, result.New(d.ID(), d.Text(), sc.score))
	}
	return results
}
