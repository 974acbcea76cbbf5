package redis

import (
	"context"
	"fmt"

	"github.com/redis/rueidis"

	"github.com/astroseek/astroseek/internal/db"
)

// AggregateYearCounts buckets matching documents by calendar year via
// FT.AGGREGATE, returning yyyy label -> count. An aggregation response
// without buckets yields an empty map, not an error.
func (s *Store) AggregateYearCounts(ctx context.Context, q *db.HistogramQuery) (map[string]int, error) {
	if q.IndexName == "" {
		return nil, fmt.Errorf("index name is required")
	}

	queryStr := buildTextQueryString(&db.TextQuery{
		Fields: q.Fields,
		Query:  q.Query,
	})

	applyExpr := fmt.Sprintf("year(@%s)", q.TimeField)

	cmd := s.b().Arbitrary("FT.AGGREGATE").Args(
		q.IndexName, queryStr,
		"APPLY", applyExpr, "AS", "year",
		"GROUPBY", "1", "@year",
		"REDUCE", "COUNT", "0", "AS", "count",
		"LIMIT", "0", "1000",
		"DIALECT", "2",
	).Build()

	raw, err := s.do(ctx, cmd).ToArray()
	if err != nil {
		return nil, &db.Error{Op: db.OpAggregate, Err: err}
	}

	return parseYearBuckets(raw), nil
}

// parseYearBuckets reads the RESP2 aggregate reply:
// [total, [field, value, field, value, ...], ...].
func parseYearBuckets(raw []rueidis.RedisMessage) map[string]int {
	counts := make(map[string]int)
	if len(raw) < 2 {
		return counts
	}

	for _, row := range raw[1:] {
		pairs, err := row.ToArray()
		if err != nil {
			continue
		}
		fields := parseFieldPairs(pairs)

		year, ok := fields["year"]
		if !ok || year == "" {
			continue
		}
		countStr, ok := fields["count"]
		if !ok {
			continue
		}
		var count int
		if _, err := fmt.Sscanf(countStr, "%d", &count); err != nil {
			continue
		}
		counts[year] = count
	}

	return counts
}
