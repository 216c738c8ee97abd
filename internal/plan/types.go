package plan

// Node is one step of an EXPLAIN (ANALYZE, BUFFERS, FORMAT JSON) plan tree.
// Buffer counters are pointers so that an absent key is distinguishable from
// an explicit zero.
type Node struct {
	NodeType     string `json:"Node Type"`
	Strategy     string `json:"Strategy,omitempty"`
	PartialMode  string `json:"Partial Mode,omitempty"`
	RelationName string `json:"Relation Name,omitempty"`
	Alias        string `json:"Alias,omitempty"`
	IndexName    string `json:"Index Name,omitempty"`

	StartupCost float64 `json:"Startup Cost"`
	TotalCost   float64 `json:"Total Cost"`
	PlanRows    int64   `json:"Plan Rows"`
	PlanWidth   int     `json:"Plan Width"`

	ActualStartupTime float64 `json:"Actual Startup Time,omitempty"`
	ActualTotalTime   float64 `json:"Actual Total Time,omitempty"`
	ActualRows        int64   `json:"Actual Rows,omitempty"`
	ActualLoops       int64   `json:"Actual Loops,omitempty"`

	SharedHitBlocks     *int64 `json:"Shared Hit Blocks,omitempty"`
	SharedReadBlocks    *int64 `json:"Shared Read Blocks,omitempty"`
	SharedDirtiedBlocks int64  `json:"Shared Dirtied Blocks,omitempty"`
	SharedWrittenBlocks int64  `json:"Shared Written Blocks,omitempty"`
	TempReadBlocks      int64  `json:"Temp Read Blocks,omitempty"`
	TempWrittenBlocks   int64  `json:"Temp Written Blocks,omitempty"`

	Plans []Node `json:"Plans,omitempty"`
}

// ExplainOutput is the top-level document PostgreSQL returns for one
// instrumented statement. Planning Time and Execution Time may be omitted by
// the planner under some configurations; a zero value stands in for either.
type ExplainOutput struct {
	Plan          Node    `json:"Plan"`
	PlanningTime  float64 `json:"Planning Time,omitempty"`
	ExecutionTime float64 `json:"Execution Time,omitempty"`
	Triggers      []any   `json:"Triggers,omitempty"`
}
