package search

import (
	"sort"

	"github.com/kailas-cloud/lexdex/internal/domain/search/result"
)

// rrfK is the Reciprocal Rank Fusion constant (standard value from Cormack et al. 2009).
const rrfK = 60

// fuseRRF merges ranked lists via Reciprocal Rank Fusion.
// score(d) = sum of 1/(k + rank_i(d)) for each list where d appears.
// Ties are broken by first appearance across the lists.
func fuseRRF(lists [][]result.Result, topK int) []result.Result {
	type scored struct {
		res   result.Result
		score float64
		first int
	}

	merged := make(map[string]*scored)
	seen := 0
	for _, list := range lists {
		for rank, r := range list {
			s := 1.0 / float64(rrfK+rank+1)
			if existing, ok := merged[r.ID()]; ok {
				existing.score += s
				continue
			}
			merged[r.ID()] = &scored{res: r, score: s, first: seen}
			seen++
		}
	}

	all := make([]*scored, 0, len(merged))
	for _, s := range merged {
		all = append(all, s)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].score != all[j].score {
			return all[i].score > all[j].score
		}
		return all[i].first < all[j].first
	})

	if len(all) > topK {
		all = all[:topK]
	}

	results := make([]result.Result, 0, len(all))
	for _, s := range all {
		results = append(results, result.New(s.res.ID(), s.res.Text(), s.score))
	}
	return results
}
