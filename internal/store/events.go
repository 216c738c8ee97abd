package store

import (
	"context"
	"fmt"
	"time"
)

const eventColumns = `
    event_time TIMESTAMPTZ NOT NULL,
    user_id BIGINT NOT NULL,
    event_type TEXT NOT NULL,
    product_id BIGINT,
    session_id UUID,
    ip_address INET,
    user_agent TEXT,
    country_code TEXT,
    city TEXT,
    revenue NUMERIC(10,2),
    metadata JSONB,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()`

// CreateEventLayouts creates the two table layouts under comparison: a plain
// heap table and a range-partitioned variant with one partition per month,
// covering the past months plus the current one.
func CreateEventLayouts(ctx context.Context, db Execer, months int) error {
	if months < 1 {
		return fmt.Errorf("months must be positive, got %d", months)
	}

	plain := fmt.Sprintf("CREATE TABLE IF NOT EXISTS events (%s)", eventColumns)
	if _, err := db.Exec(ctx, plain); err != nil {
		return fmt.Errorf("creating events: %w", err)
	}
	if _, err := db.Exec(ctx, "CREATE INDEX IF NOT EXISTS idx_events_time ON events (event_time)"); err != nil {
		return fmt.Errorf("indexing events: %w", err)
	}

	partitioned := fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS events_partitioned (%s) PARTITION BY RANGE (event_time)", eventColumns)
	if _, err := db.Exec(ctx, partitioned); err != nil {
		return fmt.Errorf("creating events_partitioned: %w", err)
	}
	if _, err := db.Exec(ctx, "CREATE INDEX IF NOT EXISTS idx_events_partitioned_time ON events_partitioned (event_time)"); err != nil {
		return fmt.Errorf("indexing events_partitioned: %w", err)
	}

	now := time.Now().UTC()
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	for i := months; i >= 0; i-- {
		start := firstOfMonth.AddDate(0, -i, 0)
		end := start.AddDate(0, 1, 0)
		name := fmt.Sprintf("events_partitioned_y%04dm%02d", start.Year(), start.Month())

		ddl := fmt.Sprintf(
			"CREATE TABLE IF NOT EXISTS %s PARTITION OF events_partitioned FOR VALUES FROM ('%s') TO ('%s')",
			name, start.Format("2006-01-02"), end.Format("2006-01-02"))
		if _, err := db.Exec(ctx, ddl); err != nil {
			return fmt.Errorf("creating partition %s: %w", name, err)
		}
	}

	return nil
}
