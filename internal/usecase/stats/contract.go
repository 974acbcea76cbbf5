package stats

import "context"

// YearCounter buckets matching documents by calendar year.
type YearCounter interface {
	YearHistogram(ctx context.Context, normalizedText string) (map[string]int, error)
}
