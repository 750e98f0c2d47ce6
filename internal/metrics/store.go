package metrics

import (
	"context"
	"database/sql"
	"time"
)

// AICall records metadata for a single assistant turn.
type AICall struct {
	Model     string
	Intent    string
	LatencyMS int64
	ReplyLen  int
	Timestamp time.Time
}

// Store handles persistence of AI call metrics to SQLite.
type Store struct {
	db *sql.DB
}

// NewStore initializes the Store with an existing database connection.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Record saves a metric to the database.
func (s *Store) Record(ctx context.Context, m AICall) error {
	ts := m.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO ai_metrics (model, intent, latency_ms, reply_len, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		m.Model, m.Intent, m.LatencyMS, m.ReplyLen, ts)
	return err
}

// DailyUsage represents AI call totals for a single day.
type DailyUsage struct {
	Date         string
	Calls        int
	AvgLatencyMS int64
}

// GetDailyUsage retrieves usage for the last N days, most recent first.
func (s *Store) GetDailyUsage(ctx context.Context, days int) ([]DailyUsage, error) {
	since := time.Now().UTC().AddDate(0, 0, -days)

	rows, err := s.db.QueryContext(ctx, `
		SELECT date(created_at) AS day, COUNT(*), CAST(AVG(latency_ms) AS INTEGER)
		FROM ai_metrics
		WHERE created_at >= ?
		GROUP BY day
		ORDER BY day DESC`,
		since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []DailyUsage
	for rows.Next() {
		var u DailyUsage
		var avg sql.NullInt64
		if err := rows.Scan(&u.Date, &u.Calls, &avg); err != nil {
			return nil, err
		}
		u.AvgLatencyMS = avg.Int64
		results = append(results, u)
	}
	return results, rows.Err()
}

// Cleanup removes records older than the specified number of days.
func (s *Store) Cleanup(ctx context.Context, olderThanDays int) error {
	threshold := time.Now().UTC().AddDate(0, 0, -olderThanDays)
	_, err := s.db.ExecContext(ctx, `DELETE FROM ai_metrics WHERE created_at < ?`, threshold)
	return err
}
