package plan

import (
	"encoding/json"
	"fmt"
)

// Parse decodes raw EXPLAIN (FORMAT JSON) output. PostgreSQL always returns a
// JSON array with one element per statement; anything else means the
// instrumented-mode contract was violated.
func Parse(data []byte) ([]ExplainOutput, error) {
	var outputs []ExplainOutput
	if err := json.Unmarshal(data, &outputs); err != nil {
		return nil, fmt.Errorf("invalid EXPLAIN JSON: %w", err)
	}
	if len(outputs) == 0 {
		return nil, fmt.Errorf("empty EXPLAIN output")
	}
	return outputs, nil
}
