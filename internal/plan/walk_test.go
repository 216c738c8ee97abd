package plan

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func i64(v int64) *int64 { return &v }

func TestBuffers_SingleNode(t *testing.T) {
	root := Node{NodeType: "Seq Scan", SharedHitBlocks: i64(5), SharedReadBlocks: i64(10)}

	totals := Buffers(&root)
	if totals.SharedHit != 5 {
		t.Errorf("SharedHit = %d, want 5", totals.SharedHit)
	}
	if totals.SharedRead != 10 {
		t.Errorf("SharedRead = %d, want 10", totals.SharedRead)
	}
}

func TestBuffers_NestedTree(t *testing.T) {
	// {hit:5, children: [{hit:3}, {read:2}]} must walk to hit=8, read=2.
	root := Node{
		NodeType:        "Nested Loop",
		SharedHitBlocks: i64(5),
		Plans: []Node{
			{NodeType: "Index Scan", SharedHitBlocks: i64(3)},
			{NodeType: "Seq Scan", SharedReadBlocks: i64(2)},
		},
	}

	totals := Buffers(&root)
	if totals.SharedHit != 8 {
		t.Errorf("SharedHit = %d, want 8", totals.SharedHit)
	}
	if totals.SharedRead != 2 {
		t.Errorf("SharedRead = %d, want 2", totals.SharedRead)
	}
	if got := totals.HitRatio(); got != 80.0 {
		t.Errorf("HitRatio = %f, want 80.0", got)
	}
}

func TestBuffers_MissingCountersAreZero(t *testing.T) {
	root := Node{
		NodeType: "Aggregate",
		Plans: []Node{
			{NodeType: "Seq Scan"},
			{NodeType: "Seq Scan", SharedHitBlocks: i64(0)},
		},
	}

	totals := Buffers(&root)
	if totals.SharedHit != 0 || totals.SharedRead != 0 {
		t.Errorf("totals = %+v, want all zero", totals)
	}
}

func TestBuffers_DeepSkewedTree(t *testing.T) {
	// A left-deep chain of 50 nodes, one hit block each.
	root := Node{NodeType: "Nested Loop", SharedHitBlocks: i64(1)}
	cur := &root
	for i := 0; i < 49; i++ {
		cur.Plans = []Node{{NodeType: "Nested Loop", SharedHitBlocks: i64(1)}}
		cur = &cur.Plans[0]
	}

	totals := Buffers(&root)
	if totals.SharedHit != 50 {
		t.Errorf("SharedHit = %d, want 50", totals.SharedHit)
	}
}

func TestBuffers_DoesNotMutateTree(t *testing.T) {
	root := Node{
		NodeType:        "Hash Join",
		SharedHitBlocks: i64(7),
		Plans:           []Node{{NodeType: "Seq Scan", SharedReadBlocks: i64(4)}},
	}

	Buffers(&root)
	if *root.SharedHitBlocks != 7 {
		t.Errorf("root hit counter changed: %d", *root.SharedHitBlocks)
	}
	if *root.Plans[0].SharedReadBlocks != 4 {
		t.Errorf("child read counter changed: %d", *root.Plans[0].SharedReadBlocks)
	}
}

func TestHitRatio(t *testing.T) {
	tests := []struct {
		name string
		hit  int64
		read int64
		want float64
	}{
		{"all hits", 100, 0, 100.0},
		{"all reads", 0, 100, 0.0},
		{"even split", 50, 50, 50.0},
		{"zero over zero", 0, 0, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BufferTotals{SharedHit: tt.hit, SharedRead: tt.read}.HitRatio()
			if got != tt.want {
				t.Errorf("HitRatio(%d, %d) = %f, want %f", tt.hit, tt.read, got, tt.want)
			}
		})
	}
}

// genTree builds arbitrary plan trees with bounded depth and fanout, alongside
// the expected counter sums.
func genTree(depth int) gopter.Gen {
	nodeGen := gopter.CombineGens(
		gen.Int64Range(0, 1000),
		gen.Int64Range(0, 1000),
		gen.Bool(),
		gen.Bool(),
	).Map(func(vals []interface{}) Node {
		n := Node{NodeType: "Seq Scan"}
		if vals[2].(bool) {
			v := vals[0].(int64)
			n.SharedHitBlocks = &v
		}
		if vals[3].(bool) {
			v := vals[1].(int64)
			n.SharedReadBlocks = &v
		}
		return n
	})

	if depth <= 0 {
		return nodeGen
	}

	return gopter.CombineGens(
		nodeGen,
		gen.SliceOfN(2, genTree(depth-1)),
		gen.IntRange(0, 2),
	).Map(func(vals []interface{}) Node {
		n := vals[0].(Node)
		children := vals[1].([]Node)
		n.Plans = children[:vals[2].(int)]
		return n
	})
}

func sumCounters(n *Node) (hit, read int64) {
	if n.SharedHitBlocks != nil {
		hit += *n.SharedHitBlocks
	}
	if n.SharedReadBlocks != nil {
		read += *n.SharedReadBlocks
	}
	for i := range n.Plans {
		h, r := sumCounters(&n.Plans[i])
		hit += h
		read += r
	}
	return hit, read
}

func TestBuffers_Properties(t *testing.T) {
	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 200
	properties := gopter.NewProperties(params)

	properties.Property("walk equals per-node sum for any tree shape", prop.ForAll(
		func(root Node) bool {
			totals := Buffers(&root)
			hit, read := sumCounters(&root)
			return totals.SharedHit == hit && totals.SharedRead == read
		},
		genTree(4),
	))

	properties.Property("hit ratio stays within [0, 100]", prop.ForAll(
		func(root Node) bool {
			ratio := Buffers(&root).HitRatio()
			return ratio >= 0 && ratio <= 100
		},
		genTree(4),
	))

	properties.TestingRun(t)
}
