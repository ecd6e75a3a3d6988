package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// eventRepo implements EventRepo on the craft_events table.
type eventRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
}

func (r *eventRepo) AppendCraftEvent(ctx context.Context, data CraftEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	ts := data.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(tableCraftEvents).
		Columns("sequence", "timestamp_ms", "kind", "message", "profession", "recipe_id", "job_id", "item_kind", "quantity").
		Values(seqNum, ts.UnixMilli(), data.Kind, data.Message, data.Profession, data.RecipeID, data.JobID, data.ItemKind, data.Quantity).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save craft event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryCraftEvents(ctx context.Context, opts QueryOpts) ([]CraftEventRecord, error) {
	selector := entsql.Dialect(dialect.SQLite).
		Select("sequence", "timestamp_ms", "kind", "message", "profession", "recipe_id", "job_id", "item_kind", "quantity").
		From(entsql.Table(tableCraftEvents)).
		OrderBy(entsql.Desc("sequence"))

	var preds []*entsql.Predicate
	if opts.After > 0 {
		preds = append(preds, entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		preds = append(preds, entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE("timestamp_ms", opts.From.UnixMilli()))
	}
	if !opts.To.IsZero() {
		preds = append(preds, entsql.LTE("timestamp_ms", opts.To.UnixMilli()))
	}
	if opts.Kind != "" {
		preds = append(preds, entsql.EQ("kind", opts.Kind))
	}
	if len(preds) > 0 {
		selector = selector.Where(entsql.And(preds...))
	}
	if opts.Limit > 0 {
		selector = selector.Limit(opts.Limit)
	}

	query, args := selector.Query()
	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query craft events: %w", err)
	}
	defer rows.Close()

	var records []CraftEventRecord
	for rows.Next() {
		var (
			rec  CraftEventRecord
			tsMs int64
		)
		if err := rows.Scan(&rec.Sequence, &tsMs, &rec.Kind, &rec.Message, &rec.Profession,
			&rec.RecipeID, &rec.JobID, &rec.ItemKind, &rec.Quantity); err != nil {
			return nil, fmt.Errorf("scan craft event: %w", err)
		}
		rec.Timestamp = time.UnixMilli(tsMs).UTC()
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate craft events: %w", err)
	}
	return records, nil
}

func (r *eventRepo) CraftEventCounts(ctx context.Context) (map[string]int, int, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("kind", entsql.Count("*")).
		From(entsql.Table(tableCraftEvents)).
		GroupBy("kind").
		Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, 0, fmt.Errorf("count craft events: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	total := 0
	for rows.Next() {
		var (
			kind string
			n    int
		)
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, 0, fmt.Errorf("scan craft event count: %w", err)
		}
		counts[kind] = n
		total += n
	}
	return counts, total, rows.Err()
}

func (r *eventRepo) LatestSequence(ctx context.Context) (int64, error) {
	return r.seq.Current(ctx)
}
