package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// eventRepo implements EventRepo over api_events and llm_events.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *eventRepo) AppendAPICall(ctx context.Context, data APIEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO api_events (sequence, created_at, request_id, method, endpoint, status, latency_ms, success, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, time.Now().UnixMilli(), data.RequestID, data.Method, data.Endpoint,
		data.Status, data.LatencyMs, data.Success, data.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("save API event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO llm_events (sequence, created_at, provider, model, purpose, input_tokens, output_tokens,
		                         latency_ms, success, error, request_body, response_body)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, time.Now().UnixMilli(), data.Provider, data.Model, data.Purpose,
		data.InputTokens, data.OutputTokens, data.LatencyMs, data.Success,
		data.ErrorMessage, data.RequestBody, data.ResponseBody,
	)
	if err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryEvents(ctx context.Context, opts QueryOpts) ([]EventRecord, error) {
	q := `SELECT sequence, kind, created_at, name, detail, latency_ms, success, error FROM (
		SELECT sequence, 'api' AS kind, created_at, endpoint AS name,
		       method || ' ' || status AS detail, latency_ms, success, error
		  FROM api_events
		UNION ALL
		SELECT sequence, 'llm' AS kind, created_at, purpose AS name,
		       model AS detail, latency_ms, success, error
		  FROM llm_events
	) WHERE sequence > ? ORDER BY sequence DESC`
	args := []any{opts.After}
	if opts.Limit > 0 {
		q += ` LIMIT ?`
		args = append(args, opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var out []EventRecord
	for rows.Next() {
		var rec EventRecord
		var kind string
		var createdMs int64
		if err := rows.Scan(&rec.Sequence, &kind, &createdMs, &rec.Name, &rec.Detail,
			&rec.LatencyMs, &rec.Success, &rec.Error); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		rec.Kind = EventKind(kind)
		rec.Timestamp = time.UnixMilli(createdMs)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *eventRepo) GetLLMRequest(ctx context.Context, sequence int64) (*LLMRequestRecord, error) {
	var rec LLMRequestRecord
	var createdMs int64
	err := r.db.QueryRowContext(ctx,
		`SELECT sequence, created_at, provider, model, purpose, input_tokens, output_tokens,
		        latency_ms, success, error, request_body, response_body
		   FROM llm_events WHERE sequence = ?`, sequence,
	).Scan(&rec.Sequence, &createdMs, &rec.Provider, &rec.Model, &rec.Purpose,
		&rec.InputTokens, &rec.OutputTokens, &rec.LatencyMs, &rec.Success,
		&rec.ErrorMessage, &rec.RequestBody, &rec.ResponseBody)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get LLM event %d: %w", sequence, err)
	}
	rec.Timestamp = time.UnixMilli(createdMs)
	return &rec, nil
}

func (r *eventRepo) Stats(ctx context.Context) ([]EventStat, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT 'api', endpoint, COUNT(*), SUM(CASE WHEN success THEN 0 ELSE 1 END), AVG(latency_ms)
		  FROM api_events GROUP BY endpoint
		UNION ALL
		SELECT 'llm', purpose, COUNT(*), SUM(CASE WHEN success THEN 0 ELSE 1 END), AVG(latency_ms)
		  FROM llm_events GROUP BY purpose
		ORDER BY 1, 2`)
	if err != nil {
		return nil, fmt.Errorf("event stats: %w", err)
	}
	defer rows.Close()

	var out []EventStat
	for rows.Next() {
		var s EventStat
		var kind string
		if err := rows.Scan(&kind, &s.Name, &s.Count, &s.Failures, &s.AvgLatencyMs); err != nil {
			return nil, fmt.Errorf("scan stat: %w", err)
		}
		s.Kind = EventKind(kind)
		out = append(out, s)
	}
	return out, rows.Err()
}
