package weighting

// Weighting decides how a query term that occurs more than once contributes
// to its dimension in the query vector.
type Weighting string

// Weighting constants.
const (
	// Overwrite sets the dimension to idf once, however often the term repeats.
	Overwrite Weighting = "overwrite"
	// Accumulate adds idf for every occurrence.
	Accumulate Weighting = "accumulate"
)

// IsValid checks if the weighting is one of the supported values.
func (w Weighting) IsValid() bool {
	return w == Overwrite || w == Accumulate
}
