package bench

import (
	"fmt"
	"os"
	"strings"
)

// DefaultSuite returns the built-in benchmark queries against the events
// table. Each exercises a different access pattern: point lookup with time
// filter, time-bucketed aggregation, filtered aggregation, and a plain count.
func DefaultSuite(table string) []Query {
	return []Query{
		{
			Name: "Recent user events",
			SQL: fmt.Sprintf(`SELECT * FROM %s
WHERE user_id = 12345 AND event_time >= NOW() - INTERVAL '7 days'
ORDER BY event_time DESC LIMIT 100`, table),
		},
		{
			Name: "Hourly aggregation",
			SQL: fmt.Sprintf(`SELECT event_type, DATE_TRUNC('hour', event_time) AS hour,
       COUNT(*) AS event_count
FROM %s
WHERE event_time >= NOW() - INTERVAL '24 hours'
GROUP BY event_type, hour
ORDER BY hour DESC`, table),
		},
		{
			Name: "Revenue by product",
			SQL: fmt.Sprintf(`SELECT product_id, COUNT(*) AS purchase_count, SUM(revenue) AS total_revenue
FROM %s
WHERE event_type = 'purchase' AND event_time >= NOW() - INTERVAL '30 days'
  AND product_id IS NOT NULL
GROUP BY product_id
ORDER BY total_revenue DESC LIMIT 50`, table),
		},
		{
			Name: "Count recent events",
			SQL: fmt.Sprintf(`SELECT COUNT(*) FROM %s
WHERE event_time >= NOW() - INTERVAL '7 days'`, table),
		},
	}
}

// LoadQueries parses a .sql file into an ordered query list. Queries are
// delimited by "-- Query <name>" comment headers; other comment lines are
// ignored. Statements must not carry their own EXPLAIN prefix - the runner
// adds instrumentation itself.
func LoadQueries(path string) ([]Query, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading queries file: %w", err)
	}

	var queries []Query
	var name string
	var body []string

	flush := func() {
		if name != "" && len(body) > 0 {
			queries = append(queries, Query{Name: name, SQL: strings.Join(body, "\n")})
		}
		body = nil
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(line, "-- Query"):
			flush()
			name = strings.TrimSpace(strings.TrimPrefix(line, "-- Query"))
		case line == "" || strings.HasPrefix(line, "--"):
			// skip blanks and ordinary comments
		case strings.HasPrefix(strings.ToUpper(line), "EXPLAIN"):
			return nil, fmt.Errorf("query %q should not include EXPLAIN prefix - provide the raw statement only", name)
		default:
			body = append(body, line)
		}
	}
	flush()

	if len(queries) == 0 {
		return nil, fmt.Errorf("no queries found in %s (expected \"-- Query <name>\" headers)", path)
	}
	return queries, nil
}

// FilterQueries keeps only queries whose name matches the filter exactly. An
// empty filter keeps everything.
func FilterQueries(queries []Query, name string) []Query {
	if name == "" {
		return queries
	}
	var kept []Query
	for _, q := range queries {
		if q.Name == name {
			kept = append(kept, q)
		}
	}
	return kept
}
