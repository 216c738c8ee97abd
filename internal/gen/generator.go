package gen

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var eventTypes = []string{"page_view", "add_to_cart", "purchase", "wishlist_add", "search", "click"}

var productEventTypes = map[string]bool{
	"page_view":    true,
	"add_to_cart":  true,
	"purchase":     true,
	"wishlist_add": true,
}

var countries = []string{"US", "UK", "CA", "DE", "FR", "JP", "AU", "IN", "BR", "MX"}

var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36",
	"Mozilla/5.0 (iPhone; CPU iPhone OS 14_6 like Mac OS X)",
	"Mozilla/5.0 (Linux; Android 11; SM-G991B)",
}

var cities = []string{
	"New York", "London", "Toronto", "Berlin", "Paris",
	"Tokyo", "Sydney", "Mumbai", "Sao Paulo", "Mexico City",
}

var platforms = []string{"web", "mobile", "tablet"}
var referrers = []string{"google", "facebook", "direct", "email", "instagram"}
var deviceTypes = []string{"desktop", "mobile", "tablet"}
var searchTerms = []string{"shoes", "laptop", "headphones", "jacket", "camera", "desk", "monitor"}

// Columns lists the event table columns in insert order.
var Columns = []string{
	"event_time", "user_id", "event_type", "product_id", "session_id",
	"ip_address", "user_agent", "country_code", "city", "revenue",
	"metadata", "created_at",
}

const (
	maxUserID    = 1_000_000
	maxProductID = 100_000
)

// DB is the slice of pgx.Conn the generator needs.
type DB interface {
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Generator synthesizes event rows into a target table.
type Generator struct {
	db        DB
	out       io.Writer
	batchSize int
	rng       *rand.Rand
}

func New(db DB, out io.Writer, batchSize int, seed int64) *Generator {
	if batchSize < 1 {
		batchSize = 10_000
	}
	return &Generator{
		db:        db,
		out:       out,
		batchSize: batchSize,
		rng:       rand.New(rand.NewSource(seed)),
	}
}

// Run generates totalRows events spread over the past days. With growth
// enabled (the default), recent days receive proportionally more rows,
// approximating organic traffic growth; uniform spreads rows evenly. The
// table is ANALYZEd afterwards so the planner sees fresh statistics.
func (g *Generator) Run(ctx context.Context, table string, totalRows, days int, uniform bool) error {
	if totalRows < 1 {
		return fmt.Errorf("rows must be positive, got %d", totalRows)
	}
	if days < 1 {
		return fmt.Errorf("days must be positive, got %d", days)
	}

	pattern := "increasing"
	if uniform {
		pattern = "uniform"
	}
	fmt.Fprintf(g.out, "Generating %d rows into %q over %d days (%s, batch size %d)\n",
		totalRows, table, days, pattern, g.batchSize)

	end := time.Now()
	start := end.AddDate(0, 0, -days)
	generated := 0

	if uniform {
		for generated < totalRows {
			n := min(g.batchSize, totalRows-generated)
			if err := g.insertBatch(ctx, table, start, end, n); err != nil {
				return err
			}
			generated += n
			g.progress(generated, totalRows)
		}
	} else {
		for day := 0; day < days && generated < totalRows; day++ {
			dayStart := start.AddDate(0, 0, day)
			dayEnd := dayStart.AddDate(0, 0, 1)

			target := min(dayTarget(totalRows, days, day), totalRows-generated)
			for written := 0; written < target; {
				n := min(g.batchSize, target-written)
				if err := g.insertBatch(ctx, table, dayStart, dayEnd, n); err != nil {
					return err
				}
				written += n
				generated += n
				g.progress(generated, totalRows)
			}
		}
	}

	fmt.Fprintf(g.out, "Generated %d rows\n", generated)

	if _, err := g.db.Exec(ctx, "ANALYZE "+pgx.Identifier{table}.Sanitize()); err != nil {
		return fmt.Errorf("analyzing %s: %w", table, err)
	}
	fmt.Fprintf(g.out, "Table %q analyzed\n", table)
	return nil
}

// dayTarget weights the day's share of rows so density grows toward the
// present: weight (day+1)/days scaled by 1.5 gives the last day about 1.5x
// the uniform share. The weights sum to roughly 0.75x totalRows, so growth
// mode deliberately stops short of the requested count.
func dayTarget(totalRows, days, day int) int {
	weight := float64(day+1) / float64(days)
	return int(float64(totalRows) / float64(days) * weight * 1.5)
}

func (g *Generator) progress(generated, total int) {
	if generated%100_000 == 0 {
		fmt.Fprintf(g.out, "  %d / %d rows (%.1f%%)\n", generated, total, 100*float64(generated)/float64(total))
	}
}

func (g *Generator) insertBatch(ctx context.Context, table string, start, end time.Time, n int) error {
	rows := make([][]any, n)
	window := end.Sub(start)
	for i := range rows {
		at := start.Add(time.Duration(g.rng.Int63n(int64(window))))
		rows[i] = g.event(at)
	}

	if _, err := g.db.CopyFrom(ctx, pgx.Identifier{table}, Columns, pgx.CopyFromRows(rows)); err != nil {
		return fmt.Errorf("inserting batch into %s: %w", table, err)
	}
	return nil
}

func (g *Generator) event(at time.Time) []any {
	eventType := eventTypes[g.rng.Intn(len(eventTypes))]

	var productID *int64
	if productEventTypes[eventType] {
		id := int64(g.rng.Intn(maxProductID) + 1)
		productID = &id
	}

	var revenue *float64
	if eventType == "purchase" {
		r := float64(int(g.rng.Float64()*49000+1000)) / 100 // 10.00 to 500.00
		revenue = &r
	}

	metadata := map[string]any{
		"platform":    platforms[g.rng.Intn(len(platforms))],
		"referrer":    referrers[g.rng.Intn(len(referrers))],
		"device_type": deviceTypes[g.rng.Intn(len(deviceTypes))],
	}
	if eventType == "search" {
		metadata["search_term"] = searchTerms[g.rng.Intn(len(searchTerms))]
	}

	return []any{
		at,
		int64(g.rng.Intn(maxUserID) + 1),
		eventType,
		productID,
		uuid.New().String(),
		g.randomIP(),
		userAgents[g.rng.Intn(len(userAgents))],
		countries[g.rng.Intn(len(countries))],
		cities[g.rng.Intn(len(cities))],
		revenue,
		metadata,
		at,
	}
}

func (g *Generator) randomIP() string {
	return fmt.Sprintf("%d.%d.%d.%d",
		g.rng.Intn(223)+1, g.rng.Intn(256), g.rng.Intn(256), g.rng.Intn(256))
}
