package bench

// QuerySummary aggregates the successful trials of one named query.
type QuerySummary struct {
	QueryName         string  `json:"query_name"`
	Iterations        int     `json:"iterations"`
	AvgExecutionMs    float64 `json:"avg_execution_ms"`
	MinExecutionMs    float64 `json:"min_execution_ms"`
	MaxExecutionMs    float64 `json:"max_execution_ms"`
	AvgBufferHitRatio float64 `json:"avg_buffer_hit_ratio"`
}

// Summarize groups records by query name and derives per-query statistics.
// Query names with no successful trials simply have no entry; the result never
// contains an empty group.
func Summarize(records []MeasurementRecord) map[string]QuerySummary {
	summaries := make(map[string]QuerySummary)

	for _, rec := range records {
		s, ok := summaries[rec.QueryName]
		if !ok {
			s = QuerySummary{
				QueryName:      rec.QueryName,
				MinExecutionMs: rec.ExecutionTimeMs,
				MaxExecutionMs: rec.ExecutionTimeMs,
			}
		}

		s.Iterations++
		s.AvgExecutionMs += rec.ExecutionTimeMs
		s.AvgBufferHitRatio += rec.BufferHitRatio
		if rec.ExecutionTimeMs < s.MinExecutionMs {
			s.MinExecutionMs = rec.ExecutionTimeMs
		}
		if rec.ExecutionTimeMs > s.MaxExecutionMs {
			s.MaxExecutionMs = rec.ExecutionTimeMs
		}

		summaries[rec.QueryName] = s
	}

	for name, s := range summaries {
		s.AvgExecutionMs /= float64(s.Iterations)
		s.AvgBufferHitRatio /= float64(s.Iterations)
		summaries[name] = s
	}

	return summaries
}
