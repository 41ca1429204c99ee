package result

// Result is a single search hit.
type Result struct {
	id    string
	text  string
	score float64
}

// New creates a search result.
func New(id, text string, score float64) Result {
	return Result{id: id, text: text, score: score}
}

// ID returns the document identifier.
func (r *Result) ID() string { return r.id }

// Text returns the document text.
func (r *Result) Text() string { return r.text }

// Score returns the relevance score.
func (r *Result) Score() float64 { return r.score }

// View is the serializable form of a Result.
type View struct {
	ID    string  `json:"id"`
	Text  string  `json:"text"`
	Score float64 `json:"score"`
}

// View returns the serializable form.
func (r *Result) View() View {
	return View{ID: r.id, Text: r.text, Score: r.score}
}
