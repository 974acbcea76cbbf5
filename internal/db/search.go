package db

// TimeRange is an inclusive numeric window on a unix-seconds field.
type TimeRange struct {
	From int64
	To   int64
}

// TextQuery is the input for the lexical should-match search: the query
// terms are matched against each listed TEXT field, OR-combined, with an
// optional mandatory facet tag and date window.
type TextQuery struct {
	IndexName    string
	Fields       []string // TEXT fields for the should group
	Query        string   // normalized query text; "" = filters only
	FilterTag    string   // value for the filters TAG field; "" = none
	Dates        *TimeRange
	TopK         int
	ReturnFields []string
}

// KNNQuery is the input for vector similarity search.
type KNNQuery struct {
	IndexName    string
	Vector       []float32
	K            int
	FilterTag    string
	Dates        *TimeRange
	ReturnFields []string
}

// HistogramQuery is the input for the per-year date histogram: the same
// lexical should-match as TextQuery, bucketed by calendar year of TimeField.
type HistogramQuery struct {
	IndexName string
	Fields    []string
	Query     string
	TimeField string
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search. For KNN queries the
// Score carries the raw cosine distance reported by the index.
type SearchEntry struct {
	Key    string
	Score  float64
	Fields map[string]string
}
